// Package paymentprovider адаптер платежного провайдера Stripe: создание
// payment intent и проверка подписи webhook-событий.
package paymentprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/AleFeri/cof-me-up/internal/config"
	"github.com/AleFeri/cof-me-up/internal/models"
)

const defaultTimeout = 10 * time.Second

// Client клиент Stripe.
type Client struct {
	intents       *paymentintent.Client
	webhookSecret string
	currency      string
}

// NewClient создаёт клиент Stripe. Если задан BackendURL, запросы идут на него
// (stripe-mock или тестовый сервер).
func NewClient(cfg config.Stripe) *Client {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: defaultTimeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.BackendURL != "" {
		backendCfg.URL = stripe.String(cfg.BackendURL)
	}

	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	return &Client{
		intents: &paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		webhookSecret: cfg.WebhookSecret,
		currency:      currency,
	}
}

// Currency валюта платежей по умолчанию.
func (c *Client) Currency() string {
	return c.currency
}

// CreateIntent создаёт payment intent. Ошибки провайдера оборачиваются в ErrPaymentGateway.
func (c *Client) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	const op = "paymentprovider.CreateIntent"

	currency := req.Currency
	if currency == "" {
		currency = c.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.AmountMinorUnits),
		Currency:    stripe.String(currency),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := c.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, fmt.Errorf("%s: %w: %s", op, models.ErrPaymentGateway, stripeErr.Msg)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrPaymentGateway, err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// VerifyAndParse проверяет подпись webhook и извлекает событие payment intent.
func (c *Client) VerifyAndParse(payload []byte, signature string) (*Event, error) {
	const op = "paymentprovider.VerifyAndParse"

	if signature == "" {
		return nil, fmt.Errorf("%s: %w: missing stripe signature", op, models.ErrWebhookVerification)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrWebhookVerification, err)
	}

	result := &Event{
		ID:   event.ID,
		Type: string(event.Type),
	}

	switch result.Type {
	case EventPaymentIntentSucceeded:
		result.Signal = SignalSucceeded
	case EventPaymentIntentFailed:
		result.Signal = SignalPaymentFailed
	default:
		return result, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%s: %w: event has no data", op, models.ErrWebhookVerification)
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrWebhookVerification, err)
	}
	if pi.ID == "" {
		return nil, fmt.Errorf("%s: %w: payment intent id is empty", op, models.ErrWebhookVerification)
	}
	result.IntentID = pi.ID
	return result, nil
}
