package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rjoohappeh/forum-backend/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// writeDomainError maps sentinel domain errors onto HTTP statuses. The
// auth failures all collapse into 403 with the same body, mirroring the
// single access-denied error the services return.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCredentialsTaken):
		http.Error(w, domain.ErrCredentialsTaken.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrAccessDenied):
		http.Error(w, domain.ErrAccessDenied.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, domain.ErrNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrAuthorNotFound):
		http.Error(w, domain.ErrAuthorNotFound.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotPostAuthor):
		http.Error(w, domain.ErrNotPostAuthor.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
