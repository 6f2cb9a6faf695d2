package middleware

import (
	"strings"

	"gisty/internal/delivery/http/response"
	"gisty/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyAccountID is the echo context key the authenticated account id is stored under.
const ContextKeyAccountID = "accountID"

// AuthMiddleware provides middleware for credential verification on guarded routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that verifies the bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		// Set the account id on the context for handlers to use
		c.Set(ContextKeyAccountID, claims.AccountID)

		return next(c)
	}
}
