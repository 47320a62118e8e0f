// Package handlers provides HTTP handlers for the transaction ledger.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/modules/transactions"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransactionStore is the subset of the transactions repository used here
type TransactionStore interface {
	List(userID string, f transactions.Filter) (transactions.Page, error)
	Create(tx *domain.Transaction) error
}

// Handler handles transaction HTTP requests
type Handler struct {
	repo TransactionStore
	log  zerolog.Logger
}

// NewHandler creates a new transactions handler
func NewHandler(repo TransactionStore, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "transactions").Logger(),
	}
}

// HandleList handles GET /transactions
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())
	filter := transactions.ParseFilter(r.URL.Query().Get)

	page, err := h.repo.List(userID, filter)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to list transactions")
		h.writeError(w, http.StatusInternalServerError, "Unable to load transactions")
		return
	}

	h.writeJSON(w, http.StatusOK, page)
}

// HandleCreate handles POST /transactions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	var req transactions.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid transaction payload")
		return
	}
	if err := req.Validate(); err != nil {
		h.log.Debug().Err(err).Msg("Rejected transaction payload")
		h.writeError(w, http.StatusBadRequest, "Invalid transaction payload")
		return
	}

	tx := req.ToTransaction(uuid.NewString(), userID)
	err := h.repo.Create(&tx)
	if errors.Is(err, accounts.ErrAccountNotFound) {
		h.writeError(w, http.StatusNotFound, "Account not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create transaction")
		h.writeError(w, http.StatusInternalServerError, "Unable to create transaction")
		return
	}

	h.writeJSON(w, http.StatusCreated, tx)
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
