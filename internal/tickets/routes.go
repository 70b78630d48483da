package tickets

import (
	"github.com/go-chi/chi/v5"

	"github.com/vantage-intel/vantage/internal/policy"
)

// MountRoutes attaches ticket routes. Anyone logged in may open and view
// tickets; working them requires the analyst role.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.roles.RequireAuthenticated())
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(policy.RoleAnalyst))
		r.Get("/sla-breaches", h.slaBreaches)
		r.Patch("/{id}", h.update)
		r.Post("/{id}/transition", h.transition)
		r.Post("/{id}/assign", h.assign)
		r.Post("/{id}/raise-priority", h.raisePriority)
		r.Post("/{id}/lower-priority", h.lowerPriority)
	})
}
