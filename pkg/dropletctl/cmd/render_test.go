package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNginxCommand(t *testing.T) {
	out, err := executeCommand(t, "render", "nginx", "example.com", "--port", "9003")
	require.NoError(t, err)

	assert.Contains(t, out, "server_name example.com www.example.com;")
	assert.Contains(t, out, "proxy_pass http://127.0.0.1:9003;")
	assert.Contains(t, out, "/etc/letsencrypt/live/example.com/fullchain.pem")
}

func TestRenderNginxCommandSubdomain(t *testing.T) {
	out, err := executeCommand(t, "render", "nginx", "api.example.com", "--port", "9003")
	require.NoError(t, err)

	assert.Contains(t, out, "server_name api.example.com;")
	assert.NotContains(t, out, "www.api.example.com")
}

func TestRenderNginxCommandHonorsConfiguredCertDir(t *testing.T) {
	configPath := t.TempDir() + "/config.yaml"
	writeTestConfig(t, configPath, `
version: v1
certificates:
  live-dir: /opt/le/live
`)

	out, err := executeCommandWithConfig(t, configPath, "render", "nginx", "example.com", "--port", "9003")
	require.NoError(t, err)

	assert.Contains(t, out, "ssl_certificate /opt/le/live/example.com/fullchain.pem;")
	assert.NotContains(t, out, "/etc/letsencrypt")
}

func TestRenderNginxCommandRequiresPort(t *testing.T) {
	_, err := executeCommand(t, "render", "nginx", "example.com")
	require.Error(t, err)
}

func TestRenderSystemdCommand(t *testing.T) {
	out, err := executeCommand(t, "render", "systemd", "example.com")
	require.NoError(t, err)

	assert.Contains(t, out, "User=examplecom5ababd")
	assert.Contains(t, out, "WorkingDirectory=/home/examplecom5ababd/app")
	assert.Contains(t, out, "Restart=always")
}
