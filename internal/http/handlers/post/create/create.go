// Package create реализует HTTP-обработчик публикации поста создателем.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/AleFeri/cof-me-up/internal/http/middlewarectx"
	"github.com/AleFeri/cof-me-up/internal/http/response"
	"github.com/AleFeri/cof-me-up/internal/lib/sl"
	"github.com/AleFeri/cof-me-up/internal/models"
	"github.com/AleFeri/cof-me-up/internal/services/post"
)

// Service описывает бизнес-логику создания поста.
type Service interface {
	Create(ctx context.Context, identity models.Identity, in post.CreateInput) (*models.Post, error)
}

// Handler обрабатывает создание постов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать пост
// @Tags Posts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body post.CreateInput true "Заголовок, текст и изображение"
// @Success 201 {object} response.Response "Созданный пост"
// @Failure 403 {object} response.ErrorResponse "Пользователь не создатель"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /posts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		log.Error("identity not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req post.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		if verrs, ok := err.(validator.ValidationErrors); ok {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	p, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		response.WithError(w, r, err)
		return
	}

	log.Info("post created", slog.String("post_id", p.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(p))
}
