// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"gisty/config"
	domainerrors "gisty/internal/domain/errors"
	"gisty/internal/domain/service"
)

// tokenTTL is the fixed lifetime of an issued credential.
const tokenTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Secret key for signing tokens. Process-wide, loaded once at startup.
	ttl    time.Duration // Time-to-live for issued tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	return &jwtService{
		secret: cfg.SecretKey.Token,
		ttl:    tokenTTL,
	}, nil
}

// Issue creates a signed credential bound to the given account id,
// expiring exactly one hour after issuance.
func (s *jwtService) Issue(accountID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token string and returns its claims.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token validation failed")
	}

	registered, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("unexpected claims type")
	}

	accountID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("invalid subject claim")
	}

	return &service.Claims{
		AccountID:        accountID,
		RegisteredClaims: *registered,
	}, nil
}
