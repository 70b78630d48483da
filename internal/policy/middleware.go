package policy

import (
	"log/slog"
	"net/http"

	"github.com/vantage-intel/vantage/internal/shared"
)

// Middleware wires role based authorization helpers for HTTP handlers. The
// role is read from the session; the hierarchy comparison lives in
// HasPermission.
type Middleware struct {
	Logger *slog.Logger
}

// Require ensures the current user holds at least the given role.
func (m Middleware) Require(required Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := m.currentRole(r)
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if !HasPermission(role, required) {
				if m.Logger != nil {
					m.Logger.Warn("role gate denied", slog.String("role", string(role)), slog.String("required", string(required)), slog.String("path", r.URL.Path))
				}
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated ensures a logged-in user without any role floor.
func (m Middleware) RequireAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := m.currentRole(r); !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) currentRole(r *http.Request) (Role, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		return "", false
	}
	return Role(sess.Role()), true
}

// CurrentRole exposes the session role for handlers that branch on it.
func CurrentRole(r *http.Request) Role {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return ""
	}
	return Role(sess.Role())
}
