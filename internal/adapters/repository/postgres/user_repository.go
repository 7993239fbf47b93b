package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/rjoohappeh/forum-backend/internal/core/domain"
	"github.com/rjoohappeh/forum-backend/internal/core/ports"
)

const uniqueViolation = "23505"

const userColumns = `id, email, display_name, password_hash, refresh_token_hash, active, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash, displayName string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := r.scanOne(r.db.QueryRowContext(ctx, query, email, passwordHash, displayName))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, selector ports.UserSelector, patch ports.UserPatch) (*domain.User, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}

	if patch.Active != nil {
		args = append(args, *patch.Active)
		sets = append(sets, fmt.Sprintf("active = $%d", len(args)))
	}
	if patch.RefreshTokenHash != nil {
		args = append(args, *patch.RefreshTokenHash)
		sets = append(sets, fmt.Sprintf("refresh_token_hash = $%d", len(args)))
	} else if patch.ClearRefreshTokenHash {
		sets = append(sets, "refresh_token_hash = NULL")
	}

	var where string
	switch {
	case selector.ID != nil:
		args = append(args, *selector.ID)
		where = fmt.Sprintf("id = $%d", len(args))
	case selector.Email != nil:
		args = append(args, *selector.Email)
		where = fmt.Sprintf("email = $%d", len(args))
	default:
		return nil, fmt.Errorf("user selector must carry an id or an email")
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE %s AND deleted_at IS NULL RETURNING %s`,
		strings.Join(sets, ", "), where, userColumns,
	)

	user, err := r.scanOne(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) ClearRefreshTokenHash(ctx context.Context, userID int64) error {
	// Idempotent on purpose: nothing to clear is not an error.
	query := `
		UPDATE users SET refresh_token_hash = NULL, updated_at = now()
		WHERE id = $1 AND refresh_token_hash IS NOT NULL
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var refreshTokenHash sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&refreshTokenHash,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if refreshTokenHash.Valid {
		user.RefreshTokenHash = &refreshTokenHash.String
	}
	return user, nil
}
