package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rjoohappeh/forum-backend/internal/core/domain"
	"github.com/rjoohappeh/forum-backend/internal/core/ports"
)

// JWTIssuer mints HS256 token pairs. The access and refresh secrets are
// independent so a leaked refresh secret cannot forge access tokens and
// vice versa. Secrets and lifetimes are fixed at construction.
type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewJWTIssuer(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) ports.TokenIssuer {
	return &JWTIssuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (i *JWTIssuer) IssuePair(userID int64, email string) (domain.TokenPair, error) {
	accessToken, err := i.sign(userID, email, i.accessSecret, i.accessTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := i.sign(userID, email, i.refreshSecret, i.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (i *JWTIssuer) ParseAccess(token string) (*ports.TokenClaims, error) {
	return i.parse(token, i.accessSecret)
}

func (i *JWTIssuer) ParseRefresh(token string) (*ports.TokenClaims, error) {
	return i.parse(token, i.refreshSecret)
}

func (i *JWTIssuer) sign(userID int64, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(userID, 10),
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		// Unique per token so two pairs minted within the same second
		// still differ; rotation depends on that.
		"jti": uuid.NewString(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *JWTIssuer) parse(raw string, secret []byte) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("failed to read sub claim: %w", err)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sub claim: %w", err)
	}

	email, _ := claims["email"].(string)

	return &ports.TokenClaims{UserID: userID, Email: email}, nil
}
