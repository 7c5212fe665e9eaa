package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token fields the client reads locally.
// The signature is never checked here: the backend owns verification and
// rejects bad tokens with 401.
type Claims struct {
	UserID    string
	IsStaff   bool
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
// Tokens without exp never expire locally.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

type accessClaims struct {
	jwt.RegisteredClaims
	IsStaff any `json:"is_staff,omitempty"`
	UserID  any `json:"user_id,omitempty"`
}

// ParseClaims decodes the payload of a JWT access token without verifying it.
// A token that is not a well-formed JWT yields an error.
func ParseClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, fmt.Errorf("token is empty")
	}

	var ac accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &ac); err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}

	c := Claims{UserID: flexibleID(ac.UserID)}
	if b, ok := ac.IsStaff.(bool); ok {
		c.IsStaff = b
	}
	if ac.ExpiresAt != nil {
		c.ExpiresAt = ac.ExpiresAt.Time
	}
	if c.UserID == "" {
		c.UserID = ac.Subject
	}
	return c, nil
}

func flexibleID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}
