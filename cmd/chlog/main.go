package main

import (
	"os"

	"github.com/ariel-frischer/chlog/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
