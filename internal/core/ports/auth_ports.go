package ports

import (
	"context"

	"github.com/rjoohappeh/forum-backend/internal/core/domain"
)

// PasswordHasher hashes plaintext secrets one way. Hash salts every
// call, so hashing the same input twice yields different outputs.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Check reports whether password matches hash. Malformed stored
	// hashes simply fail the check, they never panic or error.
	Check(password, hash string) bool
}

// TokenClaims is the verified payload of a session token.
type TokenClaims struct {
	UserID int64
	Email  string
}

// TokenIssuer mints and verifies the signed session token pair. Access
// and refresh tokens are signed with distinct secrets.
type TokenIssuer interface {
	IssuePair(userID int64, email string) (domain.TokenPair, error)
	// ParseAccess verifies signature and expiry of an access token
	// before returning any claim.
	ParseAccess(token string) (*TokenClaims, error)
	// ParseRefresh does the same for refresh tokens.
	ParseRefresh(token string) (*TokenClaims, error)
}

type AuthService interface {
	Signup(ctx context.Context, email, password, displayName string) (domain.TokenPair, error)
	Signin(ctx context.Context, email, password string) (domain.TokenPair, error)
	// SetActive flips the account's activity state. The caller must
	// re-assert the password and present an access token bound to the
	// same email; possession of either alone is not enough.
	SetActive(ctx context.Context, email, password, token string, active bool) (*domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
}
