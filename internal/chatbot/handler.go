package chatbot

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantage-intel/vantage/internal/platform/httpx"
	"github.com/vantage-intel/vantage/internal/policy"
)

// Handler wires the chatbot HTTP endpoint.
type Handler struct {
	logger    *slog.Logger
	responder *Responder
	roles     policy.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, responder *Responder, roles policy.Middleware) *Handler {
	return &Handler{logger: logger, responder: responder, roles: roles}
}

// MountRoutes attaches chatbot routes. The bot only reports aggregates, but
// those aggregates still describe internal operations, so a login is
// required.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.roles.RequireAuthenticated())
		r.Post("/message", h.message)
	})
}

type messageRequest struct {
	Message string `json:"message"`
}

func (h *Handler) message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"reply": h.responder.Respond(req.Message),
	})
}
