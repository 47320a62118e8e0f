package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.HandleCategories)
	r.Get("/kpis", h.HandleKPIs)
	r.Get("/cashflow", h.HandleCashflow)
	r.Get("/expenses/breakdown", h.HandleExpenseBreakdown)
}
