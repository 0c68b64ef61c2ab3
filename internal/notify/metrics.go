// AngelaMos | 2026
// metrics.go

package notify

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	emailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auraf_emails_sent_total",
		Help: "Emails accepted by the provider",
	}, []string{"provider"})

	emailsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auraf_emails_failed_total",
		Help: "Emails the provider rejected or never received",
	}, []string{"provider"})
)

type instrumented struct {
	next     Mailer
	provider string
}

func Instrument(m Mailer, provider string) Mailer {
	return &instrumented{next: m, provider: provider}
}

func (i *instrumented) Send(ctx context.Context, msg Message) (string, error) {
	id, err := i.next.Send(ctx, msg)
	if err != nil {
		emailsFailed.WithLabelValues(i.provider).Inc()
		return "", err
	}

	emailsSent.WithLabelValues(i.provider).Inc()
	return id, nil
}
