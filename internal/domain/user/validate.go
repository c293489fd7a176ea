package user

import (
	"fmt"
	"regexp"
	"strings"

	"familyledger/internal/domain/failure"
)

var reUsername = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)

func ValidateUsername(username string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return failure.Validation("username", "username is required")
	case len(username) < 3:
		return failure.Validation("username", "username must be at least 3 characters")
	case len(username) > 50:
		return failure.Validation("username", "username must be at most 50 characters")
	case !reUsername.MatchString(username):
		return failure.Validation("username", "username may only contain letters, digits and underscores")
	}
	return nil
}

// PasswordPolicy is pluggable; MinLength is the only rule enforced by default.
type PasswordPolicy struct {
	MinLength int
}

var DefaultPasswordPolicy = PasswordPolicy{MinLength: 4}

func (p PasswordPolicy) Check(password string) error {
	if password == "" {
		return failure.Validation("password", "password is required")
	}
	if len(password) < p.MinLength {
		return failure.Validation("password", fmt.Sprintf("password must be at least %d characters", p.MinLength))
	}
	return nil
}
