package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken is a signed admin session JWT together with its expiry.
// Sessions are short-lived and carried in the Authorization header on
// admin endpoints; there is no refresh flow, an expired session simply
// requires logging in again.
type SessionToken struct {
	Token string
	Exp   time.Time
}

// NewSessionToken signs an HS256 JWT for an admin session.  Claims are
// subject (the admin id), name, role, exp and iat.  The role claim is
// always "ADMIN"; the role guard rejects anything else.
func NewSessionToken(secret string, adminID uint64, name string, ttlMin int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  adminID,
		"name": name,
		"role": "ADMIN",
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}
