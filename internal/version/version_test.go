package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	assert.True(t, IsDevBuild())
	assert.Contains(t, String(), "chlog dev")
	assert.Contains(t, String(), "[development build]")

	Version = "1.2.3"
	assert.False(t, IsDevBuild())
	assert.NotContains(t, String(), "[development build]")
}
