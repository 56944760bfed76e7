package models

import "errors"

// Таксономия ошибок сервиса. Слои оборачивают их через fmt.Errorf("...: %w", Err...),
// HTTP-слой классифицирует через errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrConflict            = errors.New("already exists")
	ErrPaymentGateway      = errors.New("payment gateway error")
	ErrPersistence         = errors.New("persistence error")
	ErrWebhookVerification = errors.New("webhook verification failed")
)
