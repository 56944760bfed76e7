// Package sender уведомляет создателей о полученных пожертвованиях по email.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AleFeri/cof-me-up/internal/lib/sl"
	"github.com/AleFeri/cof-me-up/internal/lib/smtp"
	"github.com/AleFeri/cof-me-up/internal/models"
)

// Service обработчик событий donation.succeeded.
type Service struct {
	transport smtp.Dialer
	log       *slog.Logger
}

// New создаёт Service.
func New(transport smtp.Dialer, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// HandleDonationSucceeded разбирает событие и отправляет письмо создателю.
// Ошибка возвращает сообщение в очередь.
func (s *Service) HandleDonationSucceeded(ctx context.Context, body []byte) error {
	const op = "sender.HandleDonationSucceeded"
	log := s.log.With(sl.Op(op))

	var event models.DonationSucceededEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// неразбираемое сообщение не станет корректным при повторе
		log.Error("dropping malformed message", sl.Err(err))
		return nil
	}
	if event.CreatorEmail == "" {
		log.Warn("creator has no email, skipping", slog.String("donation_id", event.DonationID))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject, text := DonationEmail(event)
	if err := smtp.Send(s.transport, event.CreatorEmail, subject, text); err != nil {
		log.Error("failed to send donation email", slog.String("donation_id", event.DonationID), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("donation email sent", slog.String("donation_id", event.DonationID))
	return nil
}

// DonationEmail формирует тему и текст письма о пожертвовании.
func DonationEmail(event models.DonationSucceededEvent) (subject, body string) {
	subject = fmt.Sprintf("You received a $%s donation", event.Amount)

	donor := event.DonorName
	if donor == "" {
		donor = "A supporter"
	}
	greeting := "Hi"
	if event.CreatorName != "" {
		greeting += " " + event.CreatorName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s,\n\n%s sent you $%s.\n", greeting, donor, event.Amount)
	if event.Message != "" {
		fmt.Fprintf(&b, "\nMessage:\n%s\n", event.Message)
	}
	b.WriteString("\nThank you for creating!\n")
	return subject, b.String()
}
