// Package money переводит десятичные суммы из запросов в минимальные единицы валюты.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidAmount сумма не является числом.
	ErrInvalidAmount = errors.New("amount must be a number")
	// ErrNonPositiveAmount сумма меньше одного цента после округления.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// maxCents ограничивает сумму одного пожертвования (Stripe принимает до 99 999 999 центов).
const maxCents = 99_999_999

// ToCents разбирает десятичную строку ("10", "10.5", "10.00") и возвращает сумму
// в центах, округленную до ближайшего целого.
func ToCents(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, ErrInvalidAmount
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(value * 100)
	if cents <= 0 {
		return 0, ErrNonPositiveAmount
	}
	if cents > maxCents {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}
