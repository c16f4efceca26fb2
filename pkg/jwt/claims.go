package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Service roles allowed to call pipeline endpoints
const (
	RoleService = "service"
	RoleAdmin   = "admin"
)

// Claims represents JWT custom claims of a service token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries one of the roles
func (c *Claims) HasRole(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
