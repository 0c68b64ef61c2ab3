// AngelaMos | 2026
// handler.go

package wizard

import (
	"errors"
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
	r.Route("/wizards/{wizard}", func(r chi.Router) {
		r.Use(intakeLimit)

		r.Post("/", h.Start)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Post("/{id}/advance", h.Advance)
		r.Post("/{id}/retreat", h.Retreat)
		r.Post("/{id}/submit", h.Submit)
	})
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Start(r.Context(), chi.URLParam(r, "wizard"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, view)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "wizard"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if !core.DecodeJSON(w, r, &req) {
		return
	}

	view, err := h.service.Update(
		r.Context(),
		chi.URLParam(r, "wizard"),
		chi.URLParam(r, "id"),
		req.Fields,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Advance(r.Context(), chi.URLParam(r, "wizard"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) Retreat(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Retreat(r.Context(), chi.URLParam(r, "wizard"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, view)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Submit(r.Context(), chi.URLParam(r, "wizard"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, view)
}

func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := core.AsAppError(err); ok {
		core.JSONError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, ErrUnknownWizard):
		core.NotFound(w, "wizard")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "wizard draft")
	case errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrInvalidValue),
		errors.Is(err, ErrIncomplete),
		errors.Is(err, ErrNotTerminal):
		core.BadRequest(w, err.Error())
	case errors.Is(err, ErrSubmitted):
		core.Conflict(w, err.Error())
	case errors.Is(err, ErrSubmitFailed):
		core.JSONError(w, core.NewAppError(
			err,
			ErrSubmitFailed.Error(),
			http.StatusServiceUnavailable,
			"SUBMIT_FAILED",
		))
	default:
		core.InternalServerError(w, err)
	}
}
