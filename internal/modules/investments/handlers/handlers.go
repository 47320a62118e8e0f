// Package handlers provides HTTP handlers for holdings, trades and the
// market asset list.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/accounts"
	"github.com/brenofinance/dashboard/internal/modules/investments"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/rs/zerolog"
)

// InvestmentService is the subset of investments.Service used here
type InvestmentService interface {
	ListPriced(ctx context.Context, userID string) ([]investments.PricedInvestment, error)
	Create(userID string, req investments.CreateRequest) (*domain.Investment, error)
	Trade(ctx context.Context, userID string, req investments.TradeRequest) (*investments.TradeResult, error)
	MarketAssets(ctx context.Context, currency domain.Currency) []investments.MarketAsset
}

// Handler handles investment HTTP requests
type Handler struct {
	service InvestmentService
	log     zerolog.Logger
}

// NewHandler creates a new investments handler
func NewHandler(service InvestmentService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "investments").Logger(),
	}
}

// HandleList handles GET /investments
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	list, err := h.service.ListPriced(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load investments")
		h.writeError(w, http.StatusInternalServerError, "Unable to load investments")
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}

// HandleCreate handles POST /investments
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	var req investments.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid investment payload")
		return
	}
	if err := req.Validate(); err != nil {
		h.log.Debug().Err(err).Msg("Rejected investment payload")
		h.writeError(w, http.StatusBadRequest, "Invalid investment payload")
		return
	}

	inv, err := h.service.Create(userID, req)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create investment")
		h.writeError(w, http.StatusInternalServerError, "Unable to create investment")
		return
	}

	h.writeJSON(w, http.StatusCreated, inv)
}

// HandleTrade handles POST /investments/trade
func (h *Handler) HandleTrade(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	var req investments.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid trade payload")
		return
	}
	if err := req.Validate(); err != nil {
		h.log.Debug().Err(err).Msg("Rejected trade payload")
		h.writeError(w, http.StatusBadRequest, "Invalid trade payload")
		return
	}

	result, err := h.service.Trade(r.Context(), userID, req)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, result)
	case errors.Is(err, accounts.ErrAccountNotFound):
		h.writeError(w, http.StatusNotFound, "Account not found")
	case errors.Is(err, investments.ErrCurrencyMismatch):
		h.writeError(w, http.StatusBadRequest, "Account currency mismatch")
	case errors.Is(err, investments.ErrInsufficientFunds):
		h.writeError(w, http.StatusBadRequest, "Insufficient funds")
	case errors.Is(err, investments.ErrInsufficientHoldings):
		h.writeError(w, http.StatusBadRequest, "Not enough holdings to sell")
	default:
		h.log.Error().Err(err).Str("user_id", userID).Str("symbol", req.Symbol).Msg("Trade failed")
		h.writeError(w, http.StatusInternalServerError, "Unable to execute trade")
	}
}

// HandleMarketAssets handles GET /market/assets?currency=USD
func (h *Handler) HandleMarketAssets(w http.ResponseWriter, r *http.Request) {
	currency := domain.Currency(strings.ToUpper(r.URL.Query().Get("currency")))
	if !currency.IsSupported() {
		currency = domain.DefaultCurrency
	}

	h.writeJSON(w, http.StatusOK, h.service.MarketAssets(r.Context(), currency))
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
