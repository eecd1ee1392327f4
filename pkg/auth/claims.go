// Package auth provides JWT issuing/validation and the gRPC auth interceptor.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the JWT claims used across the service.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// HasRole reports whether the claims contain the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
