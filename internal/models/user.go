// Package models содержит доменные структуры сервиса: пользователей, посты,
// пожертвования, идентичность аутентифицированного пользователя и таксономию ошибок.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная)
	Username     *string   // Имя пользователя (уникальное, обязательно для создателей)
	PasswordHash string    // bcrypt-хэш пароля
	Bio          string    // Описание профиля
	Image        string    // URL аватара
	IsCreator    bool      // Может ли пользователь получать пожертвования и публиковать посты
	CreatedAt    time.Time // Дата регистрации
	UpdatedAt    time.Time
}

// DisplayName возвращает имя для подписи платежа: имя, а при его отсутствии username.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Username != nil {
		return *u.Username
	}
	return ""
}

// Identity описывает аутентифицированного пользователя текущего запроса.
// Передается в операции явно, глобального состояния сессии нет.
type Identity struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Username  *string `json:"username,omitempty"`
	IsCreator bool    `json:"isCreator"`
}

// IdentityOf строит Identity из пользователя.
func IdentityOf(u *User) Identity {
	return Identity{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		Username:  u.Username,
		IsCreator: u.IsCreator,
	}
}

// Profile публичные данные пользователя вместе с числом поддержавших.
type Profile struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Username       *string `json:"username,omitempty"`
	Image          string  `json:"image"`
	Bio            string  `json:"bio"`
	IsCreator      bool    `json:"creatorProfile"`
	SupporterCount int     `json:"supporterCount"`
}

// ProfileUpdate изменения профиля, пустые поля не меняют сохраненные значения.
type ProfileUpdate struct {
	Name  string
	Bio   string
	Image string
}
