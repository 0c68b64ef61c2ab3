// AngelaMos | 2026
// handler.go

package document

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

const multipartOverhead = 1 << 20

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type UploadResponse struct {
	Ref string `json:"ref"`
}

func (h *Handler) RegisterRoutes(r chi.Router, intakeLimit func(http.Handler) http.Handler) {
	r.Route("/documents", func(r chi.Router) {
		r.With(intakeLimit).Post("/", h.Upload)
		r.Get("/{ref}", h.Download)
	})
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.store.maxSize+multipartOverhead)

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			core.BadRequest(w, "file exceeds the maximum upload size")
			return
		}
		core.BadRequest(w, "multipart field \"file\" is required")
		return
	}
	defer func() {
		//nolint:errcheck // read-only upload handle
		_ = file.Close()
	}()

	ref, err := h.store.Save(r.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooLarge):
			core.BadRequest(w, "file exceeds the maximum upload size")
		case errors.Is(err, ErrUnsupportedType):
			core.BadRequest(w, "file must be a PDF, JPEG or PNG")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, UploadResponse{Ref: ref})
}

// Download serves a document to holders of a valid signed link.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	q := r.URL.Query()

	if err := h.store.Verify(ref, q.Get("expires"), q.Get("signature")); err != nil {
		if errors.Is(err, ErrLinkExpired) {
			core.Forbidden(w, "document link has expired")
			return
		}
		core.Forbidden(w, "invalid document link")
		return
	}

	f, contentType, err := h.store.Open(ref)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "document")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	defer func() {
		//nolint:errcheck // read-only file handle
		_ = f.Close()
	}()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, f); err != nil {
		slog.ErrorContext(r.Context(), "stream document", "ref", ref, "error", err)
	}
}
