package http

import (
	"context"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rjoohappeh/forum-backend/internal/adapters/metrics"
	"github.com/rjoohappeh/forum-backend/internal/core/ports"
)

type contextKey string

const (
	// UserIDKey carries the authenticated user's id.
	UserIDKey contextKey = "userID"
	// BearerTokenKey carries the raw access token the request presented.
	// SetActive needs it verbatim for the token/email binding check.
	BearerTokenKey contextKey = "bearerToken"
)

// BearerAuth verifies the Authorization header's access token and puts
// the caller's identity into the request context.
func BearerAuth(issuer ports.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := issuer.ParseAccess(raw)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, BearerTokenKey, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StatusMetrics records every response's status code.
func StatusMetrics(recorder metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			recorder.RecordHTTPStatus(ww.Status())
		})
	}
}
