package chain

import (
	"regexp"
	"strings"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsAddress reports whether s is a 0x-prefixed hex-40 address.
func IsAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// Normalize lowercases a valid address for use as a ledger key.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !IsAddress(s) {
		return "", ErrInvalidAddress
	}
	return strings.ToLower(s), nil
}
