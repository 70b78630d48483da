package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vantage-intel/vantage/internal/auth"
	"github.com/vantage-intel/vantage/internal/chatbot"
	"github.com/vantage-intel/vantage/internal/datasets"
	"github.com/vantage-intel/vantage/internal/incidents"
	"github.com/vantage-intel/vantage/internal/observability"
	"github.com/vantage-intel/vantage/internal/policy"
	"github.com/vantage-intel/vantage/internal/shared"
	"github.com/vantage-intel/vantage/internal/tickets"
	"github.com/vantage-intel/vantage/internal/users"
	"github.com/vantage-intel/vantage/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	SessionManager  *shared.SessionManager
	CSRFManager     *shared.CSRFManager
	AuthHandler     *auth.Handler
	UsersHandler    *users.Handler
	IncidentHandler *incidents.Handler
	TicketHandler   *tickets.Handler
	DatasetHandler  *datasets.Handler
	ChatbotHandler  *chatbot.Handler
	JobsHandler     *jobs.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with Vantage defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	if params.UsersHandler != nil {
		r.Route("/users", params.UsersHandler.MountRoutes)
	}
	if params.IncidentHandler != nil {
		r.Route("/incidents", params.IncidentHandler.MountRoutes)
	}
	if params.TicketHandler != nil {
		r.Route("/tickets", params.TicketHandler.MountRoutes)
	}
	if params.DatasetHandler != nil {
		r.Route("/datasets", params.DatasetHandler.MountRoutes)
	}
	if params.ChatbotHandler != nil {
		r.Route("/chatbot", params.ChatbotHandler.MountRoutes)
	}
	if params.JobsHandler != nil {
		roles := policy.Middleware{Logger: params.Logger}
		r.Route("/jobs", func(r chi.Router) {
			r.Use(roles.Require(policy.RoleAdmin))
			params.JobsHandler.MountRoutes(r)
		})
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
