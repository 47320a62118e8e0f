// Package handlers provides HTTP handlers for dashboard summaries.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/brenofinance/dashboard/internal/modules/dashboard"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/rs/zerolog"
)

// SummaryService is satisfied by *dashboard.Service
type SummaryService interface {
	KPIs(ctx context.Context, userID string) (dashboard.KPIs, error)
	Cashflow(userID string, days int) (dashboard.Cashflow, error)
	ExpenseBreakdown(userID, from, to string) ([]dashboard.BreakdownEntry, error)
}

// Handler handles dashboard HTTP requests
type Handler struct {
	service SummaryService
	log     zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service SummaryService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// HandleCategories handles GET /categories
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, dashboard.Categories())
}

// HandleKPIs handles GET /kpis
func (h *Handler) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())

	kpis, err := h.service.KPIs(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute KPIs")
		h.writeError(w, http.StatusInternalServerError, "Unable to load KPIs")
		return
	}

	h.writeJSON(w, http.StatusOK, kpis)
}

// HandleCashflow handles GET /cashflow?days=N
func (h *Handler) HandleCashflow(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())
	days := dashboard.DefaultCashflowDays
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			days = n
		}
	}

	flow, err := h.service.Cashflow(userID, days)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Int("days", days).Msg("Failed to compute cash flow")
		h.writeError(w, http.StatusInternalServerError, "Unable to load cash flow")
		return
	}

	h.writeJSON(w, http.StatusOK, flow)
}

// HandleExpenseBreakdown handles GET /expenses/breakdown?from=&to=
func (h *Handler) HandleExpenseBreakdown(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := domain.ParseDate(d); err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid date range")
			return
		}
	}

	entries, err := h.service.ExpenseBreakdown(userID, from, to)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute expense breakdown")
		h.writeError(w, http.StatusInternalServerError, "Unable to load expense breakdown")
		return
	}

	h.writeJSON(w, http.StatusOK, entries)
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
