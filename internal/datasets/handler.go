package datasets

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vantage-intel/vantage/internal/platform/httpx"
	"github.com/vantage-intel/vantage/internal/policy"
	"github.com/vantage-intel/vantage/internal/shared"
)

// Handler wires dataset HTTP endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	roles    policy.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, roles policy.Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		roles:    roles,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	req := ListDatasetsRequest{
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}
	if v := r.URL.Query().Get("classification"); v != "" {
		req.Classification = &v
	}
	if v := r.URL.Query().Get("format"); v != "" {
		req.Format = &v
	}

	datasets, total, err := h.service.List(r.Context(), req, policy.CurrentRole(r))
	if err != nil {
		h.logger.Error("list datasets", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"datasets": datasets,
		"total":    total,
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid dataset id")
		return
	}
	d, err := h.service.Get(r.Context(), id, policy.CurrentRole(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	d, err := h.service.Create(r.Context(), req, actorID(r))
	if err != nil {
		h.logger.Error("create dataset", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, d)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid dataset id")
		return
	}
	var req UpdateDatasetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	d, err := h.service.Update(r.Context(), id, req, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func (h *Handler) upgrade(w http.ResponseWriter, r *http.Request) {
	h.shiftClassification(w, r, true)
}

func (h *Handler) downgrade(w http.ResponseWriter, r *http.Request) {
	h.shiftClassification(w, r, false)
}

func (h *Handler) shiftClassification(w http.ResponseWriter, r *http.Request, up bool) {
	id, err := urlID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid dataset id")
		return
	}
	var d Dataset
	if up {
		d, err = h.service.Upgrade(r.Context(), id, actorID(r))
	} else {
		d, err = h.service.Downgrade(r.Context(), id, actorID(r))
	}
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(key))
	return v
}

func actorID(r *http.Request) int64 {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0
	}
	id, _ := strconv.ParseInt(sess.User(), 10, 64)
	return id
}
