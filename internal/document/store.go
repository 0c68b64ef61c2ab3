// AngelaMos | 2026
// store.go

package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aurafinsurance/insurance-backend/internal/config"
	"github.com/aurafinsurance/insurance-backend/internal/core"
)

const sniffLen = 512

var (
	ErrTooLarge         = errors.New("document too large")
	ErrUnsupportedType  = errors.New("unsupported document type")
	ErrInvalidSignature = errors.New("invalid document signature")
	ErrLinkExpired      = errors.New("document link expired")

	refPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.(pdf|jpg|png)$`)

	extensions = map[string]string{
		"application/pdf": ".pdf",
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
	}
)

// Store keeps ID documents on local disk under random names and hands
// out HMAC-signed, time-limited download links.
type Store struct {
	dir     string
	key     []byte
	ttl     time.Duration
	maxSize int64
	now     func() time.Time
}

func NewStore(cfg config.DocumentsConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create documents dir: %w", err)
	}

	return &Store{
		dir:     cfg.Dir,
		key:     []byte(cfg.SigningKey),
		ttl:     cfg.URLTTL,
		maxSize: cfg.MaxSize,
		now:     time.Now,
	}, nil
}

func ValidRef(ref string) bool {
	return refPattern.MatchString(ref)
}

// Save stores r and returns the new document ref. The type is sniffed
// from content and must be PDF, JPEG or PNG.
func (s *Store) Save(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read document: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", fmt.Errorf("save document: empty file: %w", ErrUnsupportedType)
	}

	contentType := http.DetectContentType(head)
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("save document: %s: %w", contentType, ErrUnsupportedType)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		//nolint:errcheck // temp file is gone after a successful rename
		_ = os.Remove(tmp.Name())
	}()

	body := io.MultiReader(bytes.NewReader(head), r)
	written, err := io.Copy(tmp, io.LimitReader(body, s.maxSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	if written > s.maxSize {
		return "", fmt.Errorf("save document: %w", ErrTooLarge)
	}

	ref := uuid.New().String() + ext
	if err := os.Rename(tmp.Name(), s.path(ref)); err != nil {
		return "", fmt.Errorf("store document: %w", err)
	}

	return ref, nil
}

func (s *Store) Exists(ref string) bool {
	if !ValidRef(ref) {
		return false
	}
	_, err := os.Stat(s.path(ref))
	return err == nil
}

// Open returns the stored file and its content type.
func (s *Store) Open(ref string) (*os.File, string, error) {
	if !ValidRef(ref) {
		return nil, "", fmt.Errorf("open document: %w", core.ErrNotFound)
	}

	f, err := os.Open(s.path(ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("open document: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("open document: %w", err)
	}

	return f, contentTypeFor(ref), nil
}

// SignURL returns a download path for ref that stays valid for the
// configured TTL.
func (s *Store) SignURL(ref string) (string, time.Time) {
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	expires := strconv.FormatInt(expiresAt.Unix(), 10)

	q := url.Values{}
	q.Set("expires", expires)
	q.Set("signature", core.SignHMAC(s.key, signingPayload(ref, expires)))

	return "/v1/documents/" + ref + "?" + q.Encode(), expiresAt
}

func (s *Store) Verify(ref, expires, signature string) error {
	if !ValidRef(ref) {
		return fmt.Errorf("verify document link: %w", ErrInvalidSignature)
	}

	if !core.VerifyHMAC(s.key, signingPayload(ref, expires), signature) {
		return fmt.Errorf("verify document link: %w", ErrInvalidSignature)
	}

	unix, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return fmt.Errorf("verify document link: %w", ErrInvalidSignature)
	}

	if s.now().After(time.Unix(unix, 0)) {
		return fmt.Errorf("verify document link: %w", ErrLinkExpired)
	}

	return nil
}

// Sweep deletes documents older than olderThan that are not in keep and
// returns how many were removed.
func (s *Store) Sweep(
	ctx context.Context,
	olderThan time.Duration,
	keep map[string]struct{},
) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read documents dir: %w", err)
	}

	cutoff := s.now().Add(-olderThan)
	removed := 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		name := entry.Name()
		if entry.IsDir() || !ValidRef(name) {
			continue
		}
		if _, ok := keep[name]; ok {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove document %s: %w", name, err)
		}
		removed++
	}

	return removed, nil
}

func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("documents dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("documents dir %s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) path(ref string) string {
	return filepath.Join(s.dir, ref)
}

func signingPayload(ref, expires string) string {
	return ref + "\n" + expires
}

func contentTypeFor(ref string) string {
	switch {
	case strings.HasSuffix(ref, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(ref, ".png"):
		return "image/png"
	default:
		return "image/jpeg"
	}
}
