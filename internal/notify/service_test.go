// AngelaMos | 2026
// service_test.go

package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	id   string
	err  error
	sent []Message
}

func (s *stubMailer) Send(_ context.Context, msg Message) (string, error) {
	s.sent = append(s.sent, msg)
	return s.id, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeliverAlwaysSucceeds(t *testing.T) {
	req := SendEmailRequest{To: "a@b.com", Subject: "Hi", HTML: "<p>hi</p>"}

	tests := []struct {
		name    string
		mailer  Mailer
		message string
		id      string
	}{
		{name: "delivered", mailer: &stubMailer{id: "sg-1"}, message: messageSent, id: "sg-1"},
		{name: "provider error", mailer: &stubMailer{err: errors.New("401 unauthorized")}, message: messageFailed},
		{name: "not configured", mailer: NewLogMailer(quietLogger()), message: messageNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewService(tt.mailer, quietLogger()).Deliver(context.Background(), req)

			assert.True(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.id, resp.MessageID)
		})
	}
}

func TestSendReportsErrors(t *testing.T) {
	svc := NewService(&stubMailer{err: errors.New("boom")}, quietLogger())

	_, err := svc.Send(context.Background(), Message{To: "a@b.com"})
	require.Error(t, err)
}

func TestInstrumentCountsOutcomes(t *testing.T) {
	ok := Instrument(&stubMailer{}, "test-ok")
	bad := Instrument(&stubMailer{err: errors.New("down")}, "test-bad")

	_, _ = ok.Send(context.Background(), Message{})
	_, _ = ok.Send(context.Background(), Message{})
	_, _ = bad.Send(context.Background(), Message{})

	assert.InDelta(t, 2, testutil.ToFloat64(emailsSent.WithLabelValues("test-ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(emailsFailed.WithLabelValues("test-bad")), 0)
}

func TestSendEmailHandler(t *testing.T) {
	mailer := &stubMailer{err: errors.New("provider down")}
	h := NewHandler(NewService(mailer, quietLogger()))

	r := chi.NewRouter()
	h.RegisterRoutes(r, func(next http.Handler) http.Handler { return next })

	body := `{"to":"jane@x.com","subject":"Hello","html":"<p>hi</p>"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jane@x.com", mailer.sent[0].To)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(`{"to":"jane@x.com"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, mailer.sent, 1)
}
