package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropletstack/provision/pkg/provision"
)

func TestPlanCommandTable(t *testing.T) {
	out, err := executeCommand(t, "plan", "example.com", "--port", "9005")
	require.NoError(t, err)

	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "examplecom5ababd")
	assert.Contains(t, out, "9005")
	assert.Contains(t, out, "/etc/nginx/sites-available/examplecom5ababd")
	assert.Contains(t, out, "app-examplecom5ababd.service")
	assert.Contains(t, out, "/etc/letsencrypt/live/example.com")
	assert.Contains(t, out, "www.example.com")
}

func TestPlanCommandJSON(t *testing.T) {
	out, err := executeCommand(t, "plan", "api.example.com", "--port", "9001", "-o", "json")
	require.NoError(t, err)

	var plan provision.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "api.example.com", plan.Domain)
	assert.Equal(t, "apiexamplecom0aa7c0", plan.Username)
	assert.True(t, plan.Subdomain)
	assert.Equal(t, 9001, plan.Port)
	assert.Equal(t, []string{"api.example.com"}, plan.CertificateDomains)
	assert.NotEmpty(t, plan.RunID)
}

func TestPlanCommandAssignsLowestFreePort(t *testing.T) {
	out, err := executeCommand(t, "plan", "example.com", "--in-use", "9000,9001", "-o", "json")
	require.NoError(t, err)

	var plan provision.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 9002, plan.Port)
}

func TestPlanCommandRejectsTakenPort(t *testing.T) {
	_, err := executeCommand(t, "plan", "example.com", "--port", "9000", "--in-use", "9000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestPlanCommandHonorsConfiguredLayout(t *testing.T) {
	dir := t.TempDir()
	configPath := dir + "/config.yaml"
	writeTestConfig(t, configPath, `
version: v1
nginx:
  sites-available: /srv/nginx/available
  sites-enabled: /srv/nginx/enabled
certificates:
  live-dir: /srv/certs
ports:
  range-start: 9100
  range-end: 9110
`)

	out, err := executeCommandWithConfig(t, configPath, "plan", "example.com", "-o", "json")
	require.NoError(t, err)

	var plan provision.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 9100, plan.Port)
	assert.Equal(t, "/srv/nginx/available/examplecom5ababd", plan.NginxConfigPath)
	assert.Equal(t, "/srv/nginx/enabled/examplecom5ababd", plan.NginxEnabledPath)
	assert.Equal(t, "/srv/certs/example.com", plan.CertificateDir)
}
