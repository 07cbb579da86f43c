// Package auth validates the tokens minted at sign-in and exposes the
// claims to the rest of the request.
package auth

import (
	"context"
	"fmt"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// Key is used to store/retrieve Claims from a context.Context.
const Key ctxKey = 1

const (
	RoleAdmin    = "admin"
	RoleAgent    = "agent"
	RoleEmployee = "employee"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is what we put inside the JWT. For field staff UserId/Username are
// set; the single configured administrator carries Email instead.
type Claims struct {
	jwt.StandardClaims
	UserId   int    `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Type     string `json:"type"`
}

// Authorized reports whether the claims carry one of the given roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Auth is used to validate tokens signed with the configured key.
type Auth struct {
	key []byte
}

func NewAuth(jwtKey string) (*Auth, error) {
	if jwtKey == "" {
		return nil, errors.New("jwt key is not configured")
	}
	return &Auth{key: []byte(jwtKey)}, nil
}

// ValidateToken parses and verifies an access token.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if claims.Type != TypeAccess {
		return Claims{}, errors.New("expected an access token")
	}

	return claims, nil
}

// GetClaims pulls the authenticated claims out of the request context.
func GetClaims(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(Key).(Claims)
	return claims, ok
}
