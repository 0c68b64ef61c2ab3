// AngelaMos | 2026
// handler.go

package notify

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

// RegisterRoutes expects r to be the authenticated /functions group.
func (h *Handler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.With(adminOnly).Post("/send-email", h.SendEmail)
}

func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	core.JSON(w, http.StatusOK, h.service.Deliver(r.Context(), req))
}
