package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rjoohappeh/forum-backend/internal/adapters/metrics"
	"github.com/rjoohappeh/forum-backend/internal/core/ports"
)

type AuthHandler struct {
	logger   *slog.Logger
	service  ports.AuthService
	recorder metrics.Recorder
	validate *validator.Validate
}

func NewAuthHandler(logger *slog.Logger, service ports.AuthService, recorder metrics.Recorder) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		service:  service,
		recorder: recorder,
		validate: validator.New(),
	}
}

type signupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.service.Signup(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.recorder.RecordAuthFailure("signup")
		h.logger.Info("signup rejected", slog.String("error", err.Error()))
		writeDomainError(w, err)
		return
	}

	h.recorder.RecordAuthSuccess("signup")
	writeJSON(w, http.StatusCreated, pair)
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.service.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.recorder.RecordAuthFailure("signin")
		h.logger.Info("signin rejected", slog.String("error", err.Error()))
		writeDomainError(w, err)
		return
	}

	h.recorder.RecordAuthSuccess("signin")
	writeJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.recorder.RecordAuthFailure("refresh")
		writeDomainError(w, err)
		return
	}

	h.recorder.RecordAuthSuccess("refresh")
	writeJSON(w, http.StatusOK, pair)
}

// Activate and Deactivate share the same flow; only the desired state
// differs. The raw bearer token travels along because the service binds
// it to the target account.
func (h *AuthHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *AuthHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *AuthHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	var req credentialsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	token, ok := r.Context().Value(BearerTokenKey).(string)
	if !ok || token == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	user, err := h.service.SetActive(r.Context(), req.Email, req.Password, token, active)
	if err != nil {
		h.recorder.RecordAuthFailure("set_active")
		h.logger.Info("set active rejected", slog.Bool("active", active), slog.String("error", err.Error()))
		writeDomainError(w, err)
		return
	}

	h.recorder.RecordAuthSuccess("set_active")
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(int64)
	if !ok {
		http.Error(w, "unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(r.Context(), userID); err != nil {
		h.logger.Error("logout failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
