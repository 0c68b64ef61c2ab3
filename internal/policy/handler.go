// AngelaMos | 2026
// handler.go

package policy

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/policies", func(r chi.Router) {
		r.Get("/", h.ListActive)
		r.Get("/providers", h.Providers)
		r.Get("/types", h.Types)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/policies", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListAll)
		r.Post("/", h.Create)
		r.Patch("/{policyID}/active", h.SetActive)
	})
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	policies, err := h.service.ListActive(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPolicyListResponse(policies))
}

func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	providers, err := h.service.Providers(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, OptionsResponse{Options: providers})
}

func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	provider := r.URL.Query().Get("provider")
	if provider == "" {
		core.BadRequest(w, "provider is required")
		return
	}

	types, err := h.service.Types(r.Context(), provider)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, OptionsResponse{Options: types})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	policies, err := h.service.ListAll(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToPolicyListResponse(policies))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePolicyRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	p, err := h.service.Create(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToPolicyResponse(*p))
}

func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req SetActiveRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	p, err := h.service.SetActive(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "policyID"),
		*req.IsActive,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToPolicyResponse(*p))
}

func writeError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "policy")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
