// AngelaMos | 2026
// store_test.go

package document

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafinsurance/insurance-backend/internal/config"
)

var pdfBody = []byte("%PDF-1.4\n1 0 obj << /Type /Catalog >> endobj\ntrailer\n%%EOF\n")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(config.DocumentsConfig{
		Dir:        t.TempDir(),
		SigningKey: "test-signing-key-test-signing-key",
		URLTTL:     15 * time.Minute,
		MaxSize:    1024,
	})
	require.NoError(t, err)
	return store
}

func TestSaveSniffsType(t *testing.T) {
	store := newTestStore(t)

	ref, err := store.Save(context.Background(), bytes.NewReader(pdfBody))
	require.NoError(t, err)
	assert.True(t, ValidRef(ref))
	assert.True(t, strings.HasSuffix(ref, ".pdf"))
	assert.True(t, store.Exists(ref))

	f, contentType, err := store.Open(ref)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "application/pdf", contentType)

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, pdfBody, got)
}

func TestSaveRejects(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(context.Background(), strings.NewReader("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = store.Save(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	big := append(append([]byte{}, pdfBody...), bytes.Repeat([]byte("x"), 2048)...)
	_, err = store.Save(context.Background(), bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(store.dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads leave nothing behind")
}

func TestValidRef(t *testing.T) {
	assert.True(t, ValidRef("3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e.png"))
	assert.False(t, ValidRef("../etc/passwd"))
	assert.False(t, ValidRef("3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e.exe"))
	assert.False(t, ValidRef(""))
}

func TestSignedLinks(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ref := "3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e.pdf"
	link, expiresAt := store.SignURL(ref)
	assert.Equal(t, now.Add(15*time.Minute), expiresAt)
	assert.True(t, strings.HasPrefix(link, "/v1/documents/"+ref+"?"))

	req := httptest.NewRequest(http.MethodGet, link, nil)
	expires := req.URL.Query().Get("expires")
	signature := req.URL.Query().Get("signature")

	require.NoError(t, store.Verify(ref, expires, signature))

	other := "00000000-0000-4000-8000-000000000000.pdf"
	assert.ErrorIs(t, store.Verify(other, expires, signature), ErrInvalidSignature)
	assert.ErrorIs(t, store.Verify(ref, expires, signature[:len(signature)-1]+"0"), ErrInvalidSignature)

	now = now.Add(16 * time.Minute)
	assert.ErrorIs(t, store.Verify(ref, expires, signature), ErrLinkExpired)
}

func TestSweepKeepsReferencedDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	kept, err := store.Save(ctx, bytes.NewReader(pdfBody))
	require.NoError(t, err)
	orphan, err := store.Save(ctx, bytes.NewReader(pdfBody))
	require.NoError(t, err)
	fresh, err := store.Save(ctx, bytes.NewReader(pdfBody))
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	for _, ref := range []string{kept, orphan} {
		require.NoError(t, os.Chtimes(filepath.Join(store.dir, ref), old, old))
	}

	removed, err := store.Sweep(ctx, 24*time.Hour, map[string]struct{}{kept: {}})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.True(t, store.Exists(kept))
	assert.False(t, store.Exists(orphan))
	assert.True(t, store.Exists(fresh))
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	store.dir = filepath.Join(store.dir, "missing")
	assert.Error(t, store.Ping(context.Background()))
}

func TestDownloadHandler(t *testing.T) {
	store := newTestStore(t)
	ref, err := store.Save(context.Background(), bytes.NewReader(pdfBody))
	require.NoError(t, err)

	passthrough := func(next http.Handler) http.Handler { return next }
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		NewHandler(store).RegisterRoutes(r, passthrough)
	})

	link, _ := store.SignURL(ref)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, link, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, pdfBody, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/documents/"+ref+"?expires=1&signature=bad", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
