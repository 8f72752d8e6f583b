package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, input string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, execute(t, "", "version"), "draftkit version")
}

func TestEditThenShow(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	flags := []string{"--dir", dir, "--store", "file", "--log-level", "off"}

	execute(t, "# Notes\n*** important\n:quit\n", append([]string{"edit"}, flags...)...)

	out := execute(t, "", append([]string{"show", "--format", "markdown"}, flags...)...)
	assert.Equal(t, "# Notes\n\n# <u>important</u>\n", out)

	out = execute(t, "", append([]string{"show", "--format", "json"}, flags...)...)
	assert.Contains(t, out, `"UNDERLINE"`)
}
