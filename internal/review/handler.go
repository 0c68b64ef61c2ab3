// AngelaMos | 2026
// handler.go

package review

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurafinsurance/insurance-backend/internal/agentapp"
	"github.com/aurafinsurance/insurance-backend/internal/contact"
	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/middleware"
	"github.com/aurafinsurance/insurance-backend/internal/quote"
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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Route("/admin/agent-applications", func(r chi.Router) {
			r.Get("/", h.ListApplications)
			r.Get("/{id}", h.GetApplication)
			r.Post("/{id}/decision", h.Decide)
			r.Get("/{id}/document", h.DocumentURL)
		})

		r.Route("/admin/contact-messages", func(r chi.Router) {
			r.Get("/", h.ListContacts)
			r.Get("/{id}", h.OpenContact)
			r.Post("/{id}/reply", h.reply(KindContact))
		})

		r.Route("/admin/quote-requests", func(r chi.Router) {
			r.Get("/", h.ListQuotes)
			r.Get("/{id}", h.GetQuote)
			r.Post("/{id}/reply", h.reply(KindQuote))
		})
	})
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListApplications(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		writeError(w, err, "application")
		return
	}

	core.OK(w, agentapp.ToApplicationListResponse(apps))
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.service.OpenApplication(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		writeError(w, err, "application")
		return
	}

	core.OK(w, agentapp.ToApplicationResponse(*app))
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	var req DecisionRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	out, err := h.service.Decide(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "id"),
		req.Decision,
		req.Note,
	)
	if err != nil {
		writeError(w, err, "application")
		return
	}

	core.OK(w, out)
}

func (h *Handler) DocumentURL(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.DocumentURL(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		writeError(w, err, "document")
		return
	}

	core.OK(w, link)
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListContacts(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		writeError(w, err, "contact message")
		return
	}

	core.OK(w, contact.ToMessageListResponse(messages))
}

func (h *Handler) OpenContact(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.OpenContact(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		writeError(w, err, "contact message")
		return
	}

	core.OK(w, contact.ToMessageResponse(*m))
}

func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.ListQuotes(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		writeError(w, err, "quote request")
		return
	}

	core.OK(w, quote.ToQuoteListResponse(quotes))
}

func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.OpenQuote(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		writeError(w, err, "quote request")
		return
	}

	core.OK(w, quote.ToQuoteResponse(*q))
}

func (h *Handler) reply(kind Kind) http.HandlerFunc {
	resource := "contact message"
	if kind == KindQuote {
		resource = "quote request"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req ReplyRequest
		if !core.DecodeValid(w, r, &req) {
			return
		}

		out, err := h.service.Reply(
			r.Context(),
			middleware.GetActor(r.Context()),
			kind,
			chi.URLParam(r, "id"),
			req.Message,
		)
		if err != nil {
			writeError(w, err, resource)
			return
		}

		core.OK(w, out)
	}
}

func writeError(w http.ResponseWriter, err error, resource string) {
	var transErr *TransitionError
	if errors.As(err, &transErr) {
		core.JSONError(w, core.NewAppError(
			core.ErrConflict,
			transErr.Message,
			http.StatusConflict,
			transErr.Code,
		))
		return
	}

	if appErr, ok := core.AsAppError(err); ok {
		core.JSONError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrConflict):
		core.Conflict(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
