package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	errorMsg   = color.New(color.FgRed)
	category   = color.New(color.FgYellow)
	usageColor = color.New(color.FgCyan)
	fixColor   = color.New(color.FgGreen, color.Bold)
	bullet     = color.New(color.FgGreen)
)

// FprintError writes err to w with its usage line and remediation steps.
// Errors without a category are reported as Runtime errors. Colors follow
// color.NoColor.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = Wrap(err, Runtime)
	}
	fmt.Fprint(w, formatError(cliErr))
}

func formatError(err *CLIError) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		errorLabel.Sprint("Error"), category.Sprint(err.Category), errorMsg.Sprint(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s\n", usageColor.Sprint("Usage: "+err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", fixColor.Sprint("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", bullet.Sprint("•"), step)
		}
	}

	return sb.String()
}
