// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing a registered user identity.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account.
	Email        string    // The account's login identifier. Stored trimmed and lowercased.
	Name         string    // The account's display name.
	PasswordHash string    // The bcrypt hash of the account's password. The raw password is never stored.
	ProfilePic   string    // Optional reference to the account's profile image.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// NormalizeEmail canonicalizes an email address for lookup and storage.
// Emails are compared case-insensitively, so all reads and writes go
// through the same normalization.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
