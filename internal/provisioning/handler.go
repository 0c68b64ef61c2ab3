// AngelaMos | 2026
// handler.go

package provisioning

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

// RegisterRoutes expects r to be the authenticated /functions group.
func (h *Handler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.With(adminOnly).Post("/create-user", h.CreateUser)
	r.With(adminOnly).Post("/create-agent", h.CreateAgent)
	r.Post("/deactivate-account", h.DeactivateAccount)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	result, err := h.service.CreateUser(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.JSON(w, http.StatusOK, result)
}

func (h *Handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var req CreateAgentRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	result, err := h.service.CreateAgent(r.Context(), middleware.GetActor(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.JSON(w, http.StatusOK, result)
}

// DeactivateAccount serves both the admin ban/unban form and the
// self-service deactivation form.
func (h *Handler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	var req DeactivateRequest
	if !core.DecodeValid(w, r, &req) {
		return
	}

	actor := middleware.GetActor(r.Context())

	var (
		action string
		err    error
	)
	switch {
	case req.TargetUserID != "":
		if req.Action == "" {
			core.BadRequest(w, "Invalid request. Provide target_user_id and action (deactivate/activate).")
			return
		}
		action = req.Action
		err = h.service.SetAccountBanned(r.Context(), actor, req.TargetUserID, action == ActionDeactivate)
	case req.UserID != "":
		action = ActionDeactivate
		err = h.service.DeactivateSelf(r.Context(), actor, req.UserID)
	default:
		core.BadRequest(w, "Invalid request. Provide target_user_id and action, or user_id.")
		return
	}

	if err != nil {
		writeError(w, err)
		return
	}

	core.JSON(w, http.StatusOK, DeactivateResponse{Success: true, Action: action})
}

func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := core.AsAppError(err); ok {
		core.JSONError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
