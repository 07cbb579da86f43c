package user

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type SignInRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type AdminSignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type GetListResponse struct {
	ID       int     `json:"id"`
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type CreateRequest struct {
	Username *string `json:"username" form:"username"`
	Password *string `json:"password" form:"password"`
	FullName *string `json:"full_name" form:"full_name"`
	Role     *string `json:"role" form:"role"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID        int       `json:"id" bun:"-"`
	Username  *string   `json:"username" bun:"username"`
	Password  *string   `json:"-" bun:"password"`
	FullName  *string   `json:"full_name" bun:"full_name"`
	Role      *string   `json:"role" bun:"role"`
	IsActive  bool      `json:"is_active" bun:"is_active"`
	CreatedAt time.Time `json:"created_at" bun:"created_at"`
	CreatedBy *int      `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID       int     `json:"-"`
	Username *string `json:"username" form:"username"`
	Password *string `json:"password" form:"password"`
	FullName *string `json:"full_name" form:"full_name"`
	IsActive *bool   `json:"is_active" form:"is_active"`
}
