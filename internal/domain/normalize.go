package domain

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases an address.
// Email comparison on the platform is case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
