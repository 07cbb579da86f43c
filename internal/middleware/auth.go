package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"foodzippy/backend/foundation/web"
	"foodzippy/backend/internal/auth"
)

// Authenticate validates the bearer token and, when roles are given,
// requires the claims to carry one of them. The claims land on the request
// context for the repositories to pick up.
func Authenticate(a *auth.Auth, role ...string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			// Expecting: Bearer <token>
			authStr := c.Request.Header.Get("authorization")

			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				err := errors.New("expected authorization header format: Bearer <token>")
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			claims, err := a.ValidateToken(parts[1])
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			if ok := claims.Authorized(role...); !ok && (len(role) > 0) {
				return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized))
			}

			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)

			return handler(c)
		}

		return h
	}

	return m
}
