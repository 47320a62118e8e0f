package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers investment and market routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/investments", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Post("/trade", h.HandleTrade)
	})
	r.Get("/market/assets", h.HandleMarketAssets)
}
