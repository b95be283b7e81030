package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// executeCommand runs the root command with the given args against a
// nonexistent config path, so configuration defaults apply.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithConfig(t, "/tmp/nonexistent-dropletctl-config.yaml", args...)
}

func executeCommandWithConfig(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	root := NewRootCommand(Config{
		ConfigPath:   configPath,
		OutputWriter: buf,
	})
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand(DefaultConfig())
	require.NotNil(t, root)
	assert.Equal(t, "dropletctl", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"sanitize", "plan", "render", "ports", "monitoring", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommandRejectsUnknownOutputFormat(t *testing.T) {
	_, err := executeCommand(t, "sanitize", "example.com", "-o", "xml")
	require.Error(t, err)
}

func TestNewCompletionCommand(t *testing.T) {
	cmd := NewCompletionCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "completion [bash|zsh|fish|powershell]", cmd.Use)
	assert.Contains(t, cmd.Short, "completion")
}

func TestCompletionCommand_UnsupportedShell(t *testing.T) {
	_, err := executeCommand(t, "completion", "unsupported")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestCompletionCommand_Bash(t *testing.T) {
	out, err := executeCommand(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")
}

func TestCompletionCommand_Zsh(t *testing.T) {
	out, err := executeCommand(t, "completion", "zsh")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
