// Package handlers provides the HTTP handler for net-worth history.
package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/brenofinance/dashboard/internal/modules/networth"
	"github.com/brenofinance/dashboard/internal/modules/users"
	"github.com/rs/zerolog"
)

// HistoryService is satisfied by *networth.Service
type HistoryService interface {
	History(ctx context.Context, userID string, windowDays int) (networth.Series, error)
}

// Handler handles net-worth HTTP requests
type Handler struct {
	service HistoryService
	log     zerolog.Logger
}

// NewHandler creates a new net-worth handler
func NewHandler(service HistoryService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "networth").Logger(),
	}
}

// HandleGetNetWorth handles GET /net-worth?days=N
func (h *Handler) HandleGetNetWorth(w http.ResponseWriter, r *http.Request) {
	userID := users.UserIDFromContext(r.Context())
	days := parseDays(r.URL.Query().Get("days"))

	series, err := h.service.History(r.Context(), userID, days)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Int("days", days).Msg("Net worth error")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Unable to build net worth history",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, series)
}

// parseDays reads the window length. Missing or unparsable values use the
// default; clamping happens in the reconstructor.
func parseDays(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return networth.DefaultWindowDays
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsNaN(f) {
			return networth.DefaultWindowDays
		}
		if f > float64(networth.MaxWindowDays) {
			return networth.MaxWindowDays
		}
		if f < float64(networth.MinWindowDays) {
			return networth.MinWindowDays
		}
		return int(f)
	}
	return days
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
