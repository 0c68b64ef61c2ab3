// AngelaMos | 2026
// handler.go

package quote

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, intakeLimit func(http.Handler) http.Handler) {
	r.With(intakeLimit).Post("/quotes", h.Submit)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	q, err := h.service.Submit(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, SubmitResponse{ID: q.ID, Status: q.Status})
}
