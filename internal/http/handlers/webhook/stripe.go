// Package webhook принимает события Stripe и передаёт подтверждённые сигналы
// в менеджер жизненного цикла пожертвований.
package webhook

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AleFeri/cof-me-up/internal/http/response"
	"github.com/AleFeri/cof-me-up/internal/lib/sl"
	"github.com/AleFeri/cof-me-up/internal/paymentprovider"
)

// maxBodyBytes ограничение на размер тела события, как в примерах Stripe.
const maxBodyBytes = int64(65536)

// Результаты обработки события для метрик.
const (
	resultProcessed = "processed"
	resultIgnored   = "ignored"
	resultRejected  = "rejected"
	resultFailed    = "failed"
)

// Verifier проверяет подпись и разбирает событие.
type Verifier interface {
	VerifyAndParse(payload []byte, signature string) (*paymentprovider.Event, error)
}

// Reconciler применяет сигнал провайдера к пожертвованию.
type Reconciler interface {
	ReconcileBySignal(ctx context.Context, intentID, reported string) error
}

// Metrics учитывает обработанные события.
type Metrics interface {
	WebhookEvent(eventType, result string)
}

// Handler обрабатывает webhook Stripe.
type Handler struct {
	log        *slog.Logger
	verifier   Verifier
	reconciler Reconciler
	metrics    Metrics
}

// New создает новый Handler. metrics может быть nil.
func New(log *slog.Logger, verifier Verifier, reconciler Reconciler, metrics Metrics) *Handler {
	return &Handler{
		log:        log,
		verifier:   verifier,
		reconciler: reconciler,
		metrics:    metrics,
	}
}

// ServeHTTP godoc
// @Summary Webhook Stripe
// @Description Принимает payment_intent.succeeded и payment_intent.payment_failed. Подпись в заголовке Stripe-Signature.
// @Tags Webhooks
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]bool "Событие принято"
// @Failure 400 {object} response.ErrorResponse "Неверная подпись"
// @Failure 500 {object} response.ErrorResponse "Ошибка сохранения, Stripe повторит доставку"
// @Router /webhooks/stripe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.stripe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		h.record("unknown", resultRejected)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	event, err := h.verifier.VerifyAndParse(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Warn("webhook verification failed", sl.Err(err))
		h.record("unknown", resultRejected)
		response.WithError(w, r, err)
		return
	}

	log = log.With(slog.String("event_id", event.ID), slog.String("event_type", event.Type))

	if event.Signal == "" || event.IntentID == "" {
		log.Debug("event ignored")
		h.record(event.Type, resultIgnored)
		render.JSON(w, r, map[string]bool{"received": true})
		return
	}

	if err := h.reconciler.ReconcileBySignal(r.Context(), event.IntentID, event.Signal); err != nil {
		log.Error("failed to reconcile donation", slog.String("intent_id", event.IntentID), sl.Err(err))
		h.record(event.Type, resultFailed)
		response.WithError(w, r, err)
		return
	}

	log.Info("webhook processed", slog.String("intent_id", event.IntentID), slog.String("signal", event.Signal))
	h.record(event.Type, resultProcessed)
	render.JSON(w, r, map[string]bool{"received": true})
}

func (h *Handler) record(eventType, result string) {
	if h.metrics != nil {
		h.metrics.WebhookEvent(eventType, result)
	}
}
