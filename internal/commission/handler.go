// AngelaMos | 2026
// handler.go

package commission

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.With(authenticator, adminOnly).Get("/admin/commissions", h.ListAll)
	r.With(authenticator, middleware.RequireRole(core.RoleAgent)).Get("/agent/commissions", h.ListMine)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	cs, err := h.service.ListAll(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToCommissionListResponse(cs, nil))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	cs, summary, err := h.service.ListMine(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToCommissionListResponse(cs, &summary))
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrForbidden) {
		core.Forbidden(w, "")
		return
	}
	core.InternalServerError(w, err)
}
