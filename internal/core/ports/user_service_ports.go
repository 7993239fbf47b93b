package ports

import (
	"context"

	"github.com/rjoohappeh/forum-backend/internal/core/domain"
)

type UserService interface {
	// GetByID returns a sanitized user or domain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
