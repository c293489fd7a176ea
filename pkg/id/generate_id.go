package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a random (v4) UUID as 32 lowercase hex characters, the
// public identifier format for loans, movements and users.
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewToken returns an opaque session token.
func NewToken() string { return uuid.NewString() }

// Valid32 reports whether s is a well-formed public identifier.
func Valid32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
