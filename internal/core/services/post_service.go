package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rjoohappeh/forum-backend/internal/core/domain"
	"github.com/rjoohappeh/forum-backend/internal/core/ports"
)

type postService struct {
	repo ports.PostRepository
}

func NewPostService(repo ports.PostRepository) ports.PostService {
	return &postService{
		repo: repo,
	}
}

func (s *postService) Create(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		ID:        uuid.New(),
		AuthorID:  input.AuthorID,
		Message:   input.Message,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *postService) ListByDisplayName(ctx context.Context, displayName string) ([]*domain.Post, error) {
	posts, err := s.repo.GetByDisplayName(ctx, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by display name: %w", err)
	}
	return posts, nil
}

func (s *postService) Update(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	post, err := s.repo.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	if post.AuthorID != input.ActorID {
		return nil, domain.ErrNotPostAuthor
	}

	return s.repo.UpdateMessage(ctx, input.PostID, input.Message)
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
