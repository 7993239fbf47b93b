package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/rjoohappeh/forum-backend/internal/core/domain"
)

type PostRepository interface {
	// Save returns domain.ErrAuthorNotFound when the author id violates
	// the foreign key.
	Save(ctx context.Context, post *domain.Post) error
	// GetByID returns (nil, nil) when no post matches.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	GetAll(ctx context.Context) ([]*domain.Post, error)
	GetByDisplayName(ctx context.Context, displayName string) ([]*domain.Post, error)
	UpdateMessage(ctx context.Context, id uuid.UUID, message string) (*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePostInput struct {
	AuthorID int64
	Message  string
}

type UpdatePostInput struct {
	ActorID int64
	PostID  uuid.UUID
	Message string
}

type PostService interface {
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	ListByDisplayName(ctx context.Context, displayName string) ([]*domain.Post, error)
	Update(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
