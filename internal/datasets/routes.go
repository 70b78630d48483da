package datasets

import (
	"github.com/go-chi/chi/v5"

	"github.com/vantage-intel/vantage/internal/policy"
)

// MountRoutes attaches dataset routes. Reads are open to any login (the
// service filters by classification); cataloguing needs analyst, and
// reclassification is admin-only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.roles.RequireAuthenticated())
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(policy.RoleAnalyst))
		r.Post("/", h.create)
		r.Patch("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(policy.RoleAdmin))
		r.Post("/{id}/upgrade", h.upgrade)
		r.Post("/{id}/downgrade", h.downgrade)
	})
}
