package models

import (
	"fmt"
	"time"
)

// Статусы пожертвования. Любой другой статус провайдера сохраняется как есть.
const (
	DonationStatusPending   = "pending"
	DonationStatusSucceeded = "succeeded"
	DonationStatusFailed    = "failed"
)

// IsTerminalStatus сообщает, является ли статус конечным. Из конечного статуса переходов нет.
func IsTerminalStatus(status string) bool {
	return status == DonationStatusSucceeded || status == DonationStatusFailed
}

// Donation пожертвование от донора создателю. Сумма хранится в центах USD.
type Donation struct {
	ID              string
	DonorID         string
	CreatorID       string
	AmountCents     int64
	Message         string
	Status          string
	PaymentIntentID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DonorInfo минимальные данные донора для дашборда создателя.
type DonorInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// DonationWithDonor пожертвование с данными донора.
type DonationWithDonor struct {
	ID        string    `json:"id"`
	Amount    string    `json:"amount"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatorID string    `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
	Donor     DonorInfo `json:"donor"`
}

// FormatCents форматирует сумму в центах как десятичную строку, например 1000 -> "10.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// DonationSucceededEvent публикуется в брокер при первом переходе пожертвования в succeeded.
type DonationSucceededEvent struct {
	DonationID   string    `json:"donation_id"`
	CreatorID    string    `json:"creator_id"`
	CreatorEmail string    `json:"creator_email"`
	CreatorName  string    `json:"creator_name"`
	DonorName    string    `json:"donor_name"`
	Amount       string    `json:"amount"`
	Message      string    `json:"message,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
