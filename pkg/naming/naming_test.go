package naming

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var identifierPattern = regexp.MustCompile(`^[a-z0-9]{0,32}$`)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string stays empty", "", ""},
		{"plain root domain", "example.com", "examplecom"},
		{"uppercase lowered", "API.Example.com", "apiexamplecom"},
		{"hyphens stripped", "my-app.io", "myappio"},
		{"digits preserved", "app2.example.com", "app2examplecom"},
		{"only separators", "...", ""},
		{"unicode dropped", "héllo.com", "hllocom"},
		{"spaces and specials dropped", "my app!.com", "myappcom"},
		{"truncated to 32", strings.Repeat("a", 40) + ".com", strings.Repeat("a", 32)},
		{"collision skeleton a.bcdef", "a.bcdef", "abcdef"},
		{"collision skeleton ab.cdef", "ab.cdef", "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sanitize(tt.input)
			require.Equal(t, tt.expected, result)
			require.Regexp(t, identifierPattern, result)
		})
	}
}

func TestDeriveUsername(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"uppercase domain", "API.Example.com", "apiexamplecom" + "b91cf1"},
		{"root domain", "example.com", "examplecom" + "5ababd"},
		{"subdomain", "api.example.com", "apiexamplecom" + "0aa7c0"},
		{"only separators yields hash only", "...", "2f43b4"},
		{"empty input yields hash only", "", "d41d8c"},
		{"long base truncated to 26", strings.Repeat("a", 40) + ".com", strings.Repeat("a", 26) + "71f652"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveUsername(tt.input)
			require.Equal(t, tt.expected, result)
			require.LessOrEqual(t, len(result), MaxUsernameLength)
			require.Regexp(t, identifierPattern, result)
		})
	}
}

func TestDeriveUsernameDisambiguatesSkeletons(t *testing.T) {
	// Both inputs sanitize to "abcdef" under the legacy rule; the hash suffix
	// must keep them apart.
	require.Equal(t, Sanitize("a.bcdef"), Sanitize("ab.cdef"))
	require.NotEqual(t, DeriveUsername("a.bcdef"), DeriveUsername("ab.cdef"))
}

func TestDeriveUsernameWith(t *testing.T) {
	constant := func(string) string { return "zzzzzz" }

	require.Equal(t, "examplecom"+"zzzzzz", DeriveUsernameWith("example.com", constant))

	// Suffix is computed from the raw input, not the sanitized skeleton.
	var seen string
	capture := func(domain string) string {
		seen = domain
		return "000000"
	}
	DeriveUsernameWith("API.Example.com", capture)
	require.Equal(t, "API.Example.com", seen)
}

func TestMD5Suffix(t *testing.T) {
	require.Equal(t, "5ababd", MD5Suffix("example.com"))
	require.Len(t, MD5Suffix("anything"), SuffixLength)
	require.Regexp(t, `^[0-9a-f]{6}$`, MD5Suffix("Mixed Case Input!"))
}

func TestIsSubdomain(t *testing.T) {
	tests := []struct {
		domain    string
		subdomain bool
	}{
		{"example.com", false},
		{"myapp.io", false},
		{"test-site.org", false},
		{"rivalfeed.app", false},
		{"localhost", false},
		{"my-app.com", false},
		{"api.example.com", true},
		{"test.myapp.io", true},
		{"staging.rivalfeed.app", true},
		{"dev.api.example.com", true},
		{"my-api.my-app.com", true},
		{"a.b.c.d.e.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			require.Equal(t, tt.subdomain, IsSubdomain(tt.domain))
		})
	}
}

func TestSeparatorCount(t *testing.T) {
	require.Equal(t, 0, SeparatorCount("localhost"))
	require.Equal(t, 1, SeparatorCount("example.com"))
	require.Equal(t, 2, SeparatorCount("api.example.com"))
	require.Equal(t, 6, SeparatorCount("a.b.c.d.e.example.com"))
}

func TestIsAlnum(t *testing.T) {
	tests := []struct {
		input    byte
		expected bool
	}{
		{'a', true},
		{'z', true},
		{'0', true},
		{'9', true},
		{'A', false}, // input is lowercased before isAlnum is called
		{'-', false},
		{'.', false},
		{' ', false},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			require.Equal(t, tt.expected, isAlnum(tt.input))
		})
	}
}
