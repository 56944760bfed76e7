package paymentprovider

// Типы событий Stripe, которые обрабатывает сервис.
const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"
)

// Сигналы, передаваемые в жизненный цикл пожертвования.
const (
	SignalSucceeded     = "succeeded"
	SignalPaymentFailed = "payment_failed"
)

// IntentRequest параметры создания payment intent.
type IntentRequest struct {
	AmountMinorUnits int64
	Currency         string
	Description      string
	Metadata         map[string]string
	// IdempotencyKey гарантирует, что повтор запроса вернёт тот же intent.
	IdempotencyKey string
}

// Intent созданный payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Event проверенное webhook-событие. Signal пуст для событий, которые сервис не обрабатывает.
type Event struct {
	ID       string
	Type     string
	IntentID string
	Signal   string
}
