package naming

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const (
	// MaxUsernameLength is the hard cap on derived identifiers, matching the
	// useradd(8) limit on Linux account names.
	MaxUsernameLength = 32
	// SuffixLength is the number of hash hex characters appended by
	// DeriveUsername for collision resistance.
	SuffixLength = 6
	// MaxBaseLength is the longest sanitized prefix that still leaves room
	// for the hash suffix within MaxUsernameLength.
	MaxBaseLength = MaxUsernameLength - SuffixLength
)

// SuffixFunc produces a fixed-length lowercase hex suffix from the raw,
// unsanitized domain. The abstraction exists so the digest can be swapped
// for a stronger hash without touching callers.
type SuffixFunc func(domain string) string

// MD5Suffix is the default SuffixFunc: the first SuffixLength hex characters
// of the MD5 digest of the raw input. The suffix only disambiguates domains
// whose alphanumeric skeletons coincide; it is not a security boundary.
func MD5Suffix(domain string) string {
	sum := md5.Sum([]byte(domain))
	return hex.EncodeToString(sum[:])[:SuffixLength]
}

// Sanitize lowercases the domain, strips every character outside [a-z0-9],
// and truncates to MaxUsernameLength.
//
// This is the legacy rule used by earlier setup scripts. It is collision
// prone: "a.bcdef" and "ab.cdef" both sanitize to "abcdef". New callers
// should use DeriveUsername, which appends a hash suffix. The result may be
// empty when the input contains no alphanumeric characters; callers must
// handle that case.
func Sanitize(domain string) string {
	s := strip(strings.ToLower(domain))
	if len(s) > MaxUsernameLength {
		s = s[:MaxUsernameLength]
	}
	return s
}

// DeriveUsername maps a domain to the canonical identifier: the sanitized
// skeleton truncated to MaxBaseLength, followed by a SuffixLength-character
// hash of the raw input. The result always matches ^[a-z0-9]{6,32}$ and is a
// pure function of the input alone; for input with no alphanumeric
// characters the result is the hash suffix by itself.
//
// The suffix reduces, but does not eliminate, collisions between distinct
// raw inputs sharing a skeleton (truncated hashes admit birthday-bound
// collisions).
func DeriveUsername(domain string) string {
	return DeriveUsernameWith(domain, MD5Suffix)
}

// DeriveUsernameWith is DeriveUsername with an explicit suffix function.
func DeriveUsernameWith(domain string, suffix SuffixFunc) string {
	s := strip(strings.ToLower(domain))
	if len(s) > MaxBaseLength {
		s = s[:MaxBaseLength]
	}
	return s + suffix(domain)
}

// SeparatorCount returns the number of label separators (dots) in the domain.
func SeparatorCount(domain string) int {
	return strings.Count(domain, ".")
}

// IsSubdomain reports whether the domain has more than one label separator:
// "example.com" is a root domain, "api.example.com" is a subdomain. Used to
// decide whether a "www." alias should also be requested.
func IsSubdomain(domain string) bool {
	return SeparatorCount(domain) > 1
}

// strip removes every byte outside [a-z0-9]. Input is expected to be
// lowercased already; uppercase bytes are dropped like any other invalid
// character, and multi-byte runes never match.
func strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isAlnum(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// isAlnum returns true if the byte is a lowercase alphanumeric character.
func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
