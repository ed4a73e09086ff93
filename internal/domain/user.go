package domain

import (
	"strings"
	"time"
)

// User represents a registered account of the recipe site.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail returns the form of an email used as the uniqueness and lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
