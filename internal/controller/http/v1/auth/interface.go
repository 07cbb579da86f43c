package auth

import (
	"context"

	"foodzippy/backend/internal/entity"
)

type User interface {
	GetByUsername(ctx context.Context, username string) (entity.User, error)
}
