package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload issued by the identity provider.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Namespace returns the record partition the caller reads from and writes to.
func (c *JWTClaims) Namespace() Namespace {
	if c == nil {
		return NamespaceStandard
	}
	return NamespaceForRole(c.Role)
}

// Actor returns the identifier stamped into recorded_by.
func (c *JWTClaims) Actor() string {
	if c == nil {
		return ""
	}
	if c.Username != "" {
		return c.Username
	}
	return c.UserID
}
