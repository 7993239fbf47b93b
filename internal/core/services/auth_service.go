package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rjoohappeh/forum-backend/internal/core/domain"
	"github.com/rjoohappeh/forum-backend/internal/core/ports"
)

type AuthService struct {
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
}

func NewAuthService(userRepo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) ports.AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

func (s *AuthService) Signup(ctx context.Context, email, password, displayName string) (domain.TokenPair, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, email, passwordHash, displayName)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.TokenPair{}, domain.ErrCredentialsTaken
		}
		return domain.TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueAndStorePair(ctx, user.ID, user.Email)
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (domain.TokenPair, error) {
	user, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return domain.TokenPair{}, err
	}

	// A successful signin reactivates a deactivated account.
	if !user.Active {
		active := true
		if _, err := s.userRepo.Update(ctx, ports.UserSelector{ID: &user.ID}, ports.UserPatch{Active: &active}); err != nil {
			return domain.TokenPair{}, fmt.Errorf("failed to reactivate user: %w", err)
		}
	}

	return s.issueAndStorePair(ctx, user.ID, user.Email)
}

func (s *AuthService) SetActive(ctx context.Context, email, password, token string, active bool) (*domain.User, error) {
	// A bearer token alone is not enough to flip the activity state; the
	// caller has to re-assert the password as well.
	if _, err := s.verifyCredentials(ctx, email, password); err != nil {
		return nil, err
	}

	// The token must verify and carry the same email as the target
	// account, so a session for one account cannot alter another.
	claims, err := s.issuer.ParseAccess(token)
	if err != nil {
		return nil, domain.ErrAccessDenied
	}
	if claims.Email != email {
		return nil, domain.ErrAccessDenied
	}

	patch := ports.UserPatch{Active: &active}
	if !active {
		// Deactivation revokes the session: a deactivated account holds
		// no valid refresh token.
		patch.ClearRefreshTokenHash = true
	}

	user, err := s.userRepo.Update(ctx, ports.UserSelector{Email: &email}, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user.Sanitized(), nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, domain.ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.Active || user.RefreshTokenHash == nil {
		return domain.TokenPair{}, domain.ErrAccessDenied
	}

	digest := hashToken(refreshToken)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(*user.RefreshTokenHash)) != 1 {
		// Rotated or revoked token.
		return domain.TokenPair{}, domain.ErrAccessDenied
	}

	return s.issueAndStorePair(ctx, user.ID, user.Email)
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.userRepo.ClearRefreshTokenHash(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token hash: %w", err)
	}
	return nil
}

// verifyCredentials collapses "no such user" and "wrong password" into
// one ErrAccessDenied so callers cannot tell which check failed.
func (s *AuthService) verifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrAccessDenied
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, domain.ErrAccessDenied
	}
	return user, nil
}

// issueAndStorePair mints a fresh pair and persists the refresh token's
// digest, replacing whatever digest was stored before (rotation).
func (s *AuthService) issueAndStorePair(ctx context.Context, userID int64, email string) (domain.TokenPair, error) {
	pair, err := s.issuer.IssuePair(userID, email)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to issue token pair: %w", err)
	}

	digest := hashToken(pair.RefreshToken)
	if _, err := s.userRepo.Update(ctx, ports.UserSelector{ID: &userID}, ports.UserPatch{RefreshTokenHash: &digest}); err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to store refresh token hash: %w", err)
	}

	return pair, nil
}

// hashToken digests a refresh token for storage. SHA-256 rather than
// bcrypt: signed tokens exceed bcrypt's 72-byte input limit.
func hashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
