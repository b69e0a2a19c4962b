package auth

import (
	"regexp"
	"strings"
)

// emailPattern is intentionally permissive: word characters, dots and
// hyphens around a single @, with a word-character TLD. Not RFC 5322.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// Normalize canonicalizes a login identifier: trimmed, lower-cased.
func Normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// ValidateEmail checks email syntax against the permissive pattern.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}
