// Package handlers provides HTTP handlers for the current user's profile.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/rs/zerolog"
)

// UserStore is the subset of the users repository used here
type UserStore interface {
	GetByID(id string) (*domain.User, error)
	Update(user *domain.User) error
}

// Handler handles profile HTTP requests
type Handler struct {
	repo UserStore
	log  zerolog.Logger
}

// NewHandler creates a new users handler
func NewHandler(repo UserStore, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "users").Logger(),
	}
}

// HandleGetMe handles GET /me
func (h *Handler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	user, err := h.repo.GetByID(userID)
	if errors.Is(err, users.ErrUserNotFound) {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		h.writeError(w, http.StatusInternalServerError, "Unable to load user")
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

// HandleUpdateMe handles PUT /me
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	var update users.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := update.Validate(); err != nil {
		h.log.Debug().Err(err).Msg("Rejected profile update")
		h.writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	user, err := h.repo.GetByID(userID)
	if errors.Is(err, users.ErrUserNotFound) {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		h.writeError(w, http.StatusInternalServerError, "Unable to update user")
		return
	}

	update.Apply(user)
	if err := h.repo.Update(user); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to update user")
		h.writeError(w, http.StatusInternalServerError, "Unable to update user")
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
