package auth

import (
	"fmt"
	"net/http"

	"foodzippy/backend/foundation/web"
	internalauth "foodzippy/backend/internal/auth"
	"foodzippy/backend/internal/commands"
	"foodzippy/backend/internal/pkg/config"
	"foodzippy/backend/internal/repository/postgres/user"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	user  User
	redis *redis.Client
	cfg   *config.Config
}

func NewController(user User, redisDB *redis.Client, cfg *config.Config) *Controller {
	return &Controller{user: user, redis: redisDB, cfg: cfg}
}

func refreshKey(subject string) string {
	return fmt.Sprintf("refresh_token:%s", subject)
}

// storeRefreshToken keeps the latest refresh token per identity. Issuing a
// new pair revokes the previous refresh token.
func (uc Controller) storeRefreshToken(c *web.Context, subject, token string) error {
	return uc.redis.Set(c.Ctx, refreshKey(subject), token, commands.RefreshTokenTTL).Err()
}

// SignIn authenticates a field agent or employee.
func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	if err := c.BindFunc(&data, "Username", "Password"); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByUsername(c.Ctx, data.Username)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil {
		return c.RespondError(web.NewRequestError(errors.New("invalid username or password"), http.StatusUnauthorized))
	}
	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("invalid username or password"), http.StatusUnauthorized))
	}

	if detail.IsActive == nil || !*detail.IsActive {
		return c.RespondError(web.NewRequestError(errors.New("your account has been deactivated"), http.StatusForbidden))
	}

	claims := internalauth.Claims{
		UserId:   detail.ID,
		Username: stringOrEmpty(detail.Username),
		FullName: stringOrEmpty(detail.FullName),
		Role:     stringOrEmpty(detail.Role),
	}

	accessToken, refreshToken, err := commands.GenToken(claims, uc.cfg.JWTKey)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating tokens"), http.StatusInternalServerError))
	}

	if err = uc.storeRefreshToken(c, claims.Username, refreshToken); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "storing refresh token"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"data": map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"user": map[string]interface{}{
				"id":        detail.ID,
				"full_name": detail.FullName,
				"username":  detail.Username,
				"role":      detail.Role,
			},
		},
	}, http.StatusOK)
}

// AdminSignIn compares against the single configured admin identity. There
// is no admin row in the users table.
func (uc Controller) AdminSignIn(c *web.Context) error {
	var data user.AdminSignInRequest

	if err := c.BindFunc(&data, "Email", "Password"); err != nil {
		return c.RespondError(err)
	}

	if data.Email != uc.cfg.AdminEmail {
		return c.RespondError(web.NewRequestError(errors.New("invalid credentials"), http.StatusUnauthorized))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.AdminPasswordHash), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("invalid credentials"), http.StatusUnauthorized))
	}

	claims := internalauth.Claims{
		Email: uc.cfg.AdminEmail,
		Role:  internalauth.RoleAdmin,
	}

	accessToken, refreshToken, err := commands.GenToken(claims, uc.cfg.JWTKey)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating tokens"), http.StatusInternalServerError))
	}

	if err = uc.storeRefreshToken(c, uc.cfg.AdminEmail, refreshToken); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "storing refresh token"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"data": map[string]interface{}{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"admin": map[string]interface{}{
				"email": uc.cfg.AdminEmail,
				"role":  internalauth.RoleAdmin,
			},
		},
	}, http.StatusOK)
}

// RefreshToken rotates a token pair. Only the most recently issued refresh
// token for an identity is accepted.
func (uc Controller) RefreshToken(c *web.Context) error {
	var data user.RefreshTokenRequest

	if err := c.BindFunc(&data, "RefreshToken"); err != nil {
		return c.RespondError(err)
	}

	claims, err := commands.VerifyRefreshToken(data.RefreshToken, uc.cfg.JWTKey)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	subject := claims.Username
	if claims.Role == internalauth.RoleAdmin {
		subject = claims.Email
	}

	stored, err := uc.redis.Get(c.Ctx, refreshKey(subject)).Result()
	if err != nil && err != redis.Nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "reading refresh token"), http.StatusInternalServerError))
	}
	if err == redis.Nil || stored != data.RefreshToken {
		return c.RespondError(web.NewRequestError(errors.New("refresh token has been revoked"), http.StatusUnauthorized))
	}

	newClaims := internalauth.Claims{
		UserId:   claims.UserId,
		Username: claims.Username,
		FullName: claims.FullName,
		Email:    claims.Email,
		Role:     claims.Role,
	}

	accessToken, refreshToken, err := commands.GenToken(newClaims, uc.cfg.JWTKey)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}

	if err = uc.storeRefreshToken(c, subject, refreshToken); err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "storing refresh token"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
	}, http.StatusOK)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
