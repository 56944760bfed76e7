// Package read отдаёт публичный профиль пользователя по username или ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AleFeri/cof-me-up/internal/http/response"
	"github.com/AleFeri/cof-me-up/internal/lib/sl"
	"github.com/AleFeri/cof-me-up/internal/models"
)

// Service описывает чтение профилей.
type Service interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
}

// Handler обрабатывает чтение профиля. Способ поиска задаётся конструктором.
type Handler struct {
	log    *slog.Logger
	op     string
	param  string
	lookup func(ctx context.Context, key string) (*models.Profile, error)
}

// NewByUsername ищет профиль по username из параметра маршрута {creator}.
// @Summary Профиль создателя по username
// @Tags Profiles
// @Produce  json
// @Param creator path string true "Username"
// @Success 200 {object} response.Response "Публичный профиль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /creators/{creator} [get]
func NewByUsername(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:    log,
		op:     "handlers.profile.byUsername",
		param:  "creator",
		lookup: service.GetByUsername,
	}
}

// NewByID ищет профиль по параметру маршрута {id}.
// @Summary Профиль пользователя по ID
// @Tags Profiles
// @Produce  json
// @Param id path string true "ID пользователя"
// @Success 200 {object} response.Response "Публичный профиль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/{id} [get]
func NewByID(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:    log,
		op:     "handlers.profile.byID",
		param:  "id",
		lookup: service.GetByID,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		slog.String("op", h.op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	key := chi.URLParam(r, h.param)
	profile, err := h.lookup(r.Context(), key)
	if err != nil {
		log.Error("failed to read profile", slog.String(h.param, key), sl.Err(err))
		response.WithError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(profile))
}
