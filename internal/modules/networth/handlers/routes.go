package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers net-worth routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/net-worth", h.HandleGetNetWorth)
}
