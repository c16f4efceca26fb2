package middleware

import (
	stdErrors "errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/customer-pulse/errors"
	"github.com/johnquangdev/customer-pulse/internal/adapter/dto/common"
	"github.com/johnquangdev/customer-pulse/pkg/jwt"
)

// ClaimsContextKey is the echo context key for validated service claims
const ClaimsContextKey = "claims"

// EchoServiceAuth returns an Echo middleware that validates a service JWT and
// requires one of roles. When disabled every request passes (local development).
func EchoServiceAuth(manager *jwt.Manager, disabled bool, roles ...string) echo.MiddlewareFunc {
	if len(roles) == 0 {
		roles = []string{jwt.RoleService, jwt.RoleAdmin}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if disabled {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				return respondError(c, errors.ErrUnauthenticated())
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				if stdErrors.Is(err, jwt.ErrTokenExpired) {
					return respondError(c, errors.ErrTokenExpired())
				}
				return respondError(c, errors.ErrInvalidToken())
			}

			if !claims.HasRole(roles...) {
				return respondError(c, errors.ErrPermissionDenied("role "+claims.Role))
			}

			c.Set(ClaimsContextKey, claims)
			return next(c)
		}
	}
}

// GetClaims retrieves validated claims from the echo context
func GetClaims(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
	return claims, ok
}

// Helper functions

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func respondError(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, common.NewErrorResponse(appErr))
}
