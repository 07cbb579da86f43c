package entity

import (
	"github.com/uptrace/bun"
)

// User is a field agent or employee account. The administrator is not a row
// here; it is a single configured identity compared at sign-in.
type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	Username *string `json:"username"  bun:"username"`
	Password *string `json:"-"         bun:"password"`
	FullName *string `json:"full_name" bun:"full_name"`
	Role     *string `json:"role"      bun:"role"`
	IsActive *bool   `json:"is_active" bun:"is_active"`
}
