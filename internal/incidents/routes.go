package incidents

import (
	"github.com/go-chi/chi/v5"

	"github.com/vantage-intel/vantage/internal/policy"
)

// MountRoutes attaches incident routes. Viewing requires a login; mutating
// requires the analyst role.
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
		r.Post("/{id}/transition", h.transition)
		r.Post("/{id}/assign", h.assign)
		r.Post("/{id}/escalate", h.escalate)
		r.Post("/{id}/deescalate", h.deescalate)
	})
}
