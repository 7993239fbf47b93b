package ports

import (
	"context"

	"github.com/rjoohappeh/forum-backend/internal/core/domain"
)

// UserSelector addresses exactly one user, by id or by email.
type UserSelector struct {
	ID    *int64
	Email *string
}

// UserPatch carries the fields an update may touch. Nil pointers are
// left untouched; ClearRefreshTokenHash nulls the stored digest.
type UserPatch struct {
	Active                *bool
	RefreshTokenHash      *string
	ClearRefreshTokenHash bool
}

type UserRepository interface {
	// GetByEmail returns (nil, nil) when no user matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByID returns (nil, nil) when no user matches.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Create returns domain.ErrDuplicateEmail on a unique violation.
	Create(ctx context.Context, email, passwordHash, displayName string) (*domain.User, error)
	Update(ctx context.Context, selector UserSelector, patch UserPatch) (*domain.User, error)
	// ClearRefreshTokenHash nulls the stored digest for the user. Clearing
	// an already-null digest is a no-op, not an error.
	ClearRefreshTokenHash(ctx context.Context, userID int64) error
}
