package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by an issued credential.
type Claims struct {
	AccountID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying credentials.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, time-bounded credential for the given account.
	Issue(accountID uuid.UUID) (string, error)

	// Verify checks the validity of a token string and returns its claims.
	Verify(tokenString string) (*Claims, error)
}
