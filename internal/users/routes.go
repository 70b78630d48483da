package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/vantage-intel/vantage/internal/policy"
)

// MountRoutes attaches account routes. Registration and the strength probe
// are public; account administration is admin-only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/password-strength", h.strength)

	r.Group(func(r chi.Router) {
		r.Use(h.roles.RequireAuthenticated())
		r.Post("/change-password", h.changePassword)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.roles.Require(policy.RoleAdmin))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
		r.Post("/{id}/reset-password", h.resetPassword)
		r.Post("/{id}/role", h.assignRole)
	})
}
