package commands

import (
	"time"

	"foodzippy/backend/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenToken mints an access/refresh token pair for the given identity.
func GenToken(data auth.Claims, jwtKey string) (string, string, error) {
	now := time.Now()

	access := data
	access.Type = auth.TypeAccess
	access.IssuedAt = now.Unix()
	access.ExpiresAt = now.Add(AccessTokenTTL).Unix()

	refresh := data
	refresh.Type = auth.TypeRefresh
	refresh.IssuedAt = now.Unix()
	refresh.ExpiresAt = now.Add(RefreshTokenTTL).Unix()

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, access).SignedString([]byte(jwtKey))
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString([]byte(jwtKey))
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyRefreshToken parses a refresh token and returns its claims. The
// access token is not required to still be valid at refresh time.
func VerifyRefreshToken(refreshToken, jwtKey string) (auth.Claims, error) {
	var claims auth.Claims

	token, err := jwt.ParseWithClaims(refreshToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		return auth.Claims{}, errors.Wrap(err, "parsing refresh token")
	}
	if !token.Valid {
		return auth.Claims{}, errors.New("invalid refresh token")
	}
	if claims.Type != auth.TypeRefresh {
		return auth.Claims{}, errors.New("expected a refresh token")
	}

	return claims, nil
}
