// Package auth регистрирует пользователей, выдаёт токены доступа и
// восстанавливает Identity по токену.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/AleFeri/cof-me-up/internal/lib/jwt"
	"github.com/AleFeri/cof-me-up/internal/lib/password"
	"github.com/AleFeri/cof-me-up/internal/models"
)

const minPasswordLength = 6

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID возвращает пользователя по ID или models.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// ExistsUserWithEmailOrUsername проверяет занятость email или username.
	ExistsUserWithEmailOrUsername(ctx context.Context, email string, username *string) (bool, error)
}

// RegisterInput данные регистрации.
type RegisterInput struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=32,alphanum"`
	IsCreator bool    `json:"isCreator"`
}

// LoginResult токен и данные вошедшего пользователя.
type LoginResult struct {
	Token    string          `json:"token"`
	Identity models.Identity `json:"user"`
}

// Service отвечает за регистрацию, вход и проверку токенов.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создаёт пользователя. Для создателя username обязателен.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	const op = "auth.Register"

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		in.Username = &trimmed
		if trimmed == "" {
			in.Username = nil
		}
	}

	if in.Name == "" {
		return "", fmt.Errorf("%s: %w: name is required", op, models.ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return "", fmt.Errorf("%s: %w: invalid email", op, models.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return "", fmt.Errorf("%s: %w: password must be at least %d characters", op, models.ErrValidation, minPasswordLength)
	}
	if in.IsCreator && in.Username == nil {
		return "", fmt.Errorf("%s: %w: username is required for creators", op, models.ErrValidation)
	}

	exists, err := s.users.ExistsUserWithEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %w: email or username is taken", op, models.ErrConflict)
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.users.CreateUser(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hashed,
		IsCreator:    in.IsCreator,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Login проверяет пароль и выдаёт токен. Неизвестный email и неверный пароль
// неразличимы для клиента.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w: invalid credentials", op, models.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w: invalid credentials", op, models.ErrUnauthorized)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LoginResult{Token: token, Identity: models.IdentityOf(user)}, nil
}

// Identify проверяет токен и загружает актуальные данные пользователя.
func (s *Service) Identify(ctx context.Context, token string) (*models.Identity, error) {
	const op = "auth.Identify"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrUnauthorized, err)
	}
	user, err := s.users.GetUserByID(ctx, claims.Subject)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w: user no longer exists", op, models.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	identity := models.IdentityOf(user)
	return &identity, nil
}
