// Package handlers provides HTTP handlers for account operations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountStore is the subset of the accounts repository used here
type AccountStore interface {
	ListByUser(userID string) ([]domain.Account, error)
	Create(a *domain.Account) error
}

// Handler handles account HTTP requests
type Handler struct {
	repo  AccountStore
	clock domain.Clock
	log   zerolog.Logger
}

// NewHandler creates a new accounts handler
func NewHandler(repo AccountStore, clock domain.Clock, log zerolog.Logger) *Handler {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &Handler{
		repo:  repo,
		clock: clock,
		log:   log.With().Str("handler", "accounts").Logger(),
	}
}

// HandleList handles GET /accounts
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	list, err := h.repo.ListByUser(userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list accounts")
		h.writeError(w, http.StatusInternalServerError, "Unable to load accounts")
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}

// HandleCreate handles POST /accounts
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	var req accounts.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid account payload")
		return
	}
	if err := req.Validate(); err != nil {
		h.log.Debug().Err(err).Msg("Rejected account payload")
		h.writeError(w, http.StatusBadRequest, "Invalid account payload")
		return
	}

	account := req.ToAccount(uuid.NewString(), userID, domain.FormatDate(h.clock()))
	if err := h.repo.Create(&account); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create account")
		h.writeError(w, http.StatusInternalServerError, "Unable to create account")
		return
	}

	h.log.Info().Str("account_id", account.ID).Str("type", string(account.Type)).Msg("Account created")
	h.writeJSON(w, http.StatusCreated, account)
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
