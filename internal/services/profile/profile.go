// Package profile публичные профили пользователей и их редактирование.
// Число поддержавших создателя кэшируется в Redis.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/AleFeri/cof-me-up/internal/cache"
	"github.com/AleFeri/cof-me-up/internal/lib/sl"
	"github.com/AleFeri/cof-me-up/internal/models"
)

// Repository данные пользователей и счётчик успешных пожертвований.
type Repository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) error
	CountSucceededDonations(ctx context.Context, creatorID string) (int, error)
}

// Cache кэш JSON-значений.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// UpdateInput изменения профиля. Пустое поле не меняет сохранённое значение.
type UpdateInput struct {
	Name  string `json:"name" validate:"max=100"`
	Bio   string `json:"bio" validate:"max=1000"`
	Image string `json:"image" validate:"omitempty,url"`
}

// Service операции с профилями.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создаёт Service. cache может быть nil, тогда счётчик читается из базы.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// Update меняет профиль текущего пользователя и возвращает обновлённый профиль.
func (s *Service) Update(ctx context.Context, identity models.Identity, in UpdateInput) (*models.Profile, error) {
	const op = "profile.Update"

	upd := models.ProfileUpdate{
		Name:  strings.TrimSpace(in.Name),
		Bio:   strings.TrimSpace(in.Bio),
		Image: strings.TrimSpace(in.Image),
	}
	if upd.Image != "" {
		if u, err := url.ParseRequestURI(upd.Image); err != nil || u.Host == "" {
			return nil, fmt.Errorf("%s: %w: image must be a URL", op, models.ErrValidation)
		}
	}
	if err := s.repo.UpdateProfile(ctx, identity.ID, upd); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetByID(ctx, identity.ID)
}

// GetByID публичный профиль по ID.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	const op = "profile.GetByID"
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.build(ctx, user)
}

// GetByUsername публичный профиль по username.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	const op = "profile.GetByUsername"
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.build(ctx, user)
}

func (s *Service) build(ctx context.Context, user *models.User) (*models.Profile, error) {
	p := &models.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Image:     user.Image,
		Bio:       user.Bio,
		IsCreator: user.IsCreator,
	}
	if !user.IsCreator {
		return p, nil
	}
	count, err := s.supporterCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	p.SupporterCount = count
	return p, nil
}

// supporterCount читает счётчик из кэша, при промахе считает в базе и кэширует.
// Ошибки кэша не прерывают запрос.
func (s *Service) supporterCount(ctx context.Context, creatorID string) (int, error) {
	const op = "profile.supporterCount"
	key := cache.SupportersKey(creatorID)
	log := s.log.With(sl.Op(op), slog.String("creator_id", creatorID))

	if s.cache != nil {
		var cached int
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn("failed to read supporter count from cache", sl.Err(err))
		} else if found {
			return cached, nil
		}
	}

	count, err := s.repo.CountSucceededDonations(ctx, creatorID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, count, cache.SupportersTTL); err != nil {
			log.Warn("failed to cache supporter count", sl.Err(err))
		}
	}
	return count, nil
}
