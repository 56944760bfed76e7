// Package metrics объявляет Prometheus-метрики доменных операций.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder счётчики жизненного цикла пожертвований.
type Recorder struct {
	initiated   prometheus.Counter
	transitions *prometheus.CounterVec
	webhooks    *prometheus.CounterVec
}

// New регистрирует метрики в reg. В main передаётся prometheus.DefaultRegisterer,
// в тестах отдельный prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		initiated: factory.NewCounter(prometheus.CounterOpts{
			Name: "donations_initiated_total",
			Help: "Number of donations created with a payment intent.",
		}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "donation_status_transitions_total",
			Help: "Donation status transitions applied, by target status.",
		}, []string{"status"}),
		webhooks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Payment webhook events received, by event type and result.",
		}, []string{"type", "result"}),
	}
}

// DonationInitiated учитывает созданное пожертвование.
func (r *Recorder) DonationInitiated() {
	r.initiated.Inc()
}

// StatusTransition учитывает применённый переход статуса.
func (r *Recorder) StatusTransition(status string) {
	r.transitions.WithLabelValues(status).Inc()
}

// WebhookEvent учитывает обработанное webhook-событие.
func (r *Recorder) WebhookEvent(eventType, result string) {
	r.webhooks.WithLabelValues(eventType, result).Inc()
}
