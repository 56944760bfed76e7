// Package donation управляет жизненным циклом пожертвования: создание с
// payment intent, сверка статуса по сигналу провайдера и по отчёту клиента,
// выдача успешных пожертвований создателю.
//
// Конечные статусы (succeeded, failed) не меняются. Гонка между webhook и
// клиентским путём разрешается условным UPDATE в хранилище.
package donation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AleFeri/cof-me-up/internal/cache"
	"github.com/AleFeri/cof-me-up/internal/lib/money"
	"github.com/AleFeri/cof-me-up/internal/lib/sl"
	"github.com/AleFeri/cof-me-up/internal/models"
	"github.com/AleFeri/cof-me-up/internal/paymentprovider"
)

const defaultCurrency = "usd"

// Repository доступ к пользователям и пожертвованиям.
type Repository interface {
	// GetUserByID возвращает пользователя или models.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// CreateDonation сохраняет пожертвование в статусе pending.
	CreateDonation(ctx context.Context, d models.Donation) (string, error)
	// AttachPaymentIntent привязывает intent, если он ещё не привязан.
	AttachPaymentIntent(ctx context.Context, donationID, intentID string) error
	// GetDonation возвращает пожертвование или models.ErrNotFound.
	GetDonation(ctx context.Context, id string) (*models.Donation, error)
	// UpdateStatusByPaymentIntent применяет статус, если текущий не конечный. nil, если ничего не изменилось.
	UpdateStatusByPaymentIntent(ctx context.Context, intentID, status string) (*models.Donation, error)
	// UpdateStatusByID то же по ID пожертвования.
	UpdateStatusByID(ctx context.Context, donationID, status string) (*models.Donation, error)
	// ListSucceededDonationsForCreator успешные пожертвования, новые первыми.
	ListSucceededDonationsForCreator(ctx context.Context, creatorID string) ([]*models.DonationWithDonor, error)
}

// PaymentGateway создаёт payment intent у провайдера.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req paymentprovider.IntentRequest) (*paymentprovider.Intent, error)
}

// EventPublisher публикует событие успешного пожертвования.
type EventPublisher interface {
	PublishDonationSucceeded(ctx context.Context, event models.DonationSucceededEvent) error
}

// Cache инвалидирует закэшированные данные создателя.
type Cache interface {
	Invalidate(ctx context.Context, key string) error
}

// Metrics счётчики жизненного цикла.
type Metrics interface {
	DonationInitiated()
	StatusTransition(status string)
}

// InitiateInput запрос на создание пожертвования.
type InitiateInput struct {
	Amount    string `json:"amount" validate:"required"`
	Message   string `json:"message" validate:"max=500"`
	CreatorID string `json:"creatorId" validate:"required"`
}

// InitiateResult данные для подтверждения платежа на клиенте.
type InitiateResult struct {
	ClientSecret string `json:"clientSecret"`
	DonationID   string `json:"donationId"`
}

// Service менеджер жизненного цикла пожертвований.
type Service struct {
	repo      Repository
	gateway   PaymentGateway
	publisher EventPublisher
	cache     Cache
	metrics   Metrics
	currency  string
	log       *slog.Logger
}

// Option настраивает необязательные зависимости Service.
type Option func(*Service)

// WithPublisher включает публикацию событий succeeded.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithCache включает инвалидацию числа поддержавших.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithMetrics включает счётчики.
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCurrency задаёт валюту платежей.
func WithCurrency(currency string) Option {
	return func(s *Service) {
		if currency != "" {
			s.currency = currency
		}
	}
}

// New создаёт Service.
func New(repo Repository, gateway PaymentGateway, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		gateway:  gateway,
		currency: defaultCurrency,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MapSignal переводит сигнал провайдера в статус пожертвования:
// succeeded и payment_failed нормализуются, остальные сохраняются как есть.
func MapSignal(reported string) string {
	switch reported {
	case paymentprovider.SignalSucceeded:
		return models.DonationStatusSucceeded
	case paymentprovider.SignalPaymentFailed:
		return models.DonationStatusFailed
	default:
		return reported
	}
}

// Initiate создаёт пожертвование в статусе pending и payment intent для него.
// Ключ идемпотентности intent равен ID пожертвования.
func (s *Service) Initiate(ctx context.Context, identity models.Identity, in InitiateInput) (*InitiateResult, error) {
	const op = "donation.Initiate"
	log := s.log.With(sl.Op(op), slog.String("donor_id", identity.ID), slog.String("creator_id", in.CreatorID))

	cents, err := money.ToCents(in.Amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: amount: %w", op, models.ErrValidation, err)
	}
	if in.CreatorID == "" {
		return nil, fmt.Errorf("%s: %w: creator id is required", op, models.ErrValidation)
	}

	creator, err := s.repo.GetUserByID(ctx, in.CreatorID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w: creator %q: %w", op, models.ErrValidation, in.CreatorID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !creator.IsCreator {
		return nil, fmt.Errorf("%s: %w: user %q is not a creator", op, models.ErrValidation, in.CreatorID)
	}

	donationID, err := s.repo.CreateDonation(ctx, models.Donation{
		DonorID:     identity.ID,
		CreatorID:   creator.ID,
		AmountCents: cents,
		Message:     in.Message,
		Status:      models.DonationStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log = log.With(slog.String("donation_id", donationID))

	intent, err := s.gateway.CreateIntent(ctx, paymentprovider.IntentRequest{
		AmountMinorUnits: cents,
		Currency:         s.currency,
		Description:      "Donation to " + creator.DisplayName(),
		Metadata: map[string]string{
			"donation_id": donationID,
			"creator_id":  creator.ID,
			"donor_id":    identity.ID,
		},
		IdempotencyKey: donationID,
	})
	if err != nil {
		log.Error("failed to create payment intent, donation stays pending", sl.Err(err))
		if !errors.Is(err, models.ErrPaymentGateway) {
			err = fmt.Errorf("%w: %w", models.ErrPaymentGateway, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.repo.AttachPaymentIntent(ctx, donationID, intent.ID); err != nil {
		log.Error("failed to link payment intent", slog.String("intent_id", intent.ID), sl.Err(err))
		return nil, fmt.Errorf("%s: %w: link intent: %w", op, models.ErrPaymentGateway, err)
	}

	if s.metrics != nil {
		s.metrics.DonationInitiated()
	}
	log.Info("donation initiated", slog.String("intent_id", intent.ID), slog.Int64("amount_cents", cents))

	return &InitiateResult{
		ClientSecret: intent.ClientSecret,
		DonationID:   donationID,
	}, nil
}

// ReconcileBySignal применяет статус, сообщённый провайдером, к пожертвованию
// с указанным intent. Неизвестный intent не является ошибкой. Повторный и
// конкурентный вызов с тем же статусом ничего не меняет.
func (s *Service) ReconcileBySignal(ctx context.Context, intentID, reported string) error {
	const op = "donation.ReconcileBySignal"
	log := s.log.With(sl.Op(op), slog.String("intent_id", intentID))

	if intentID == "" {
		return fmt.Errorf("%s: %w: payment intent id is required", op, models.ErrValidation)
	}
	status := MapSignal(reported)
	if status == "" || status == models.DonationStatusPending {
		log.Debug("ignoring signal", slog.String("reported", reported))
		return nil
	}

	updated, err := s.repo.UpdateStatusByPaymentIntent(ctx, intentID, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if updated == nil {
		log.Debug("no transition applied", slog.String("status", status))
		return nil
	}

	s.afterTransition(ctx, log, updated)
	return nil
}

// UpdateStatus клиентский путь: донор сообщает статус платежа по ID пожертвования.
// Конечный статус не перезаписывается. Возвращает актуальное состояние.
func (s *Service) UpdateStatus(ctx context.Context, identity models.Identity, donationID, reported string) (*models.Donation, error) {
	const op = "donation.UpdateStatus"
	log := s.log.With(sl.Op(op), slog.String("donation_id", donationID))

	status := MapSignal(reported)
	if donationID == "" || status == "" {
		return nil, fmt.Errorf("%s: %w: donation id and status are required", op, models.ErrValidation)
	}
	if status == models.DonationStatusPending {
		return nil, fmt.Errorf("%s: %w: status cannot be set to pending", op, models.ErrValidation)
	}

	current, err := s.repo.GetDonation(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if current.DonorID != identity.ID {
		return nil, fmt.Errorf("%s: %w: only the donor can report status", op, models.ErrUnauthorized)
	}

	updated, err := s.repo.UpdateStatusByID(ctx, donationID, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if updated == nil {
		log.Debug("no transition applied", slog.String("status", status), slog.String("current", current.Status))
		latest, err := s.repo.GetDonation(ctx, donationID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return latest, nil
	}

	s.afterTransition(ctx, log, updated)
	return updated, nil
}

// ListSucceededForCreator возвращает успешные пожертвования создателю.
// Доступно только самому создателю.
func (s *Service) ListSucceededForCreator(ctx context.Context, creatorID, requesterID string) ([]*models.DonationWithDonor, error) {
	const op = "donation.ListSucceededForCreator"

	if requesterID == "" || requesterID != creatorID {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUnauthorized)
	}
	list, err := s.repo.ListSucceededDonationsForCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// afterTransition выполняет побочные эффекты применённого перехода. Ошибки
// публикации и кэша только логируются: статус уже сохранён.
func (s *Service) afterTransition(ctx context.Context, log *slog.Logger, d *models.Donation) {
	log.Info("donation status changed", slog.String("donation_id", d.ID), slog.String("status", d.Status))
	if s.metrics != nil {
		s.metrics.StatusTransition(d.Status)
	}
	if d.Status != models.DonationStatusSucceeded {
		return
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cache.SupportersKey(d.CreatorID)); err != nil {
			log.Warn("failed to invalidate supporter count", sl.Err(err))
		}
	}
	if s.publisher != nil {
		event, err := s.succeededEvent(ctx, d)
		if err != nil {
			log.Warn("failed to build donation event", sl.Err(err))
			return
		}
		if err := s.publisher.PublishDonationSucceeded(ctx, event); err != nil {
			log.Warn("failed to publish donation event", sl.Err(err))
		}
	}
}

func (s *Service) succeededEvent(ctx context.Context, d *models.Donation) (models.DonationSucceededEvent, error) {
	creator, err := s.repo.GetUserByID(ctx, d.CreatorID)
	if err != nil {
		return models.DonationSucceededEvent{}, err
	}
	event := models.DonationSucceededEvent{
		DonationID:   d.ID,
		CreatorID:    d.CreatorID,
		CreatorEmail: creator.Email,
		CreatorName:  creator.DisplayName(),
		Amount:       models.FormatCents(d.AmountCents),
		Message:      d.Message,
		OccurredAt:   time.Now().UTC(),
	}
	if donor, err := s.repo.GetUserByID(ctx, d.DonorID); err == nil {
		event.DonorName = donor.DisplayName()
	}
	return event, nil
}
