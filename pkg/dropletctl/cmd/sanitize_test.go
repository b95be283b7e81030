package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
		wantErr  bool
	}{
		{
			name:     "default derivation includes hash suffix",
			args:     []string{"sanitize", "example.com"},
			expected: "examplecom5ababd",
		},
		{
			name:     "subdomain",
			args:     []string{"sanitize", "api.example.com"},
			expected: "apiexamplecom0aa7c0",
		},
		{
			name:     "legacy derivation truncates only",
			args:     []string{"sanitize", "example.com", "--legacy"},
			expected: "examplecom",
		},
		{
			name:     "mixed case normalized",
			args:     []string{"sanitize", "API.Example.com"},
			expected: "apiexamplecomb91cf1",
		},
		{
			name:    "missing argument",
			args:    []string{"sanitize"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strings.TrimSpace(out))
		})
	}
}

func TestSanitizeCommandJSON(t *testing.T) {
	out, err := executeCommand(t, "sanitize", "api.example.com", "-o", "json")
	require.NoError(t, err)

	var res sanitizeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "api.example.com", res.Domain)
	assert.Equal(t, "apiexamplecom0aa7c0", res.Username)
	assert.True(t, res.Subdomain)
	assert.False(t, res.Legacy)
}
