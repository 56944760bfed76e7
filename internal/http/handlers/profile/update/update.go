// Package update реализует изменение собственного профиля.
package update

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
	"github.com/AleFeri/cof-me-up/internal/services/profile"
)

// Service описывает изменение профиля.
type Service interface {
	Update(ctx context.Context, identity models.Identity, in profile.UpdateInput) (*models.Profile, error)
}

// Handler обрабатывает изменение профиля.
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
// @Summary Обновить профиль
// @Description Пустые поля не меняют сохранённые значения.
// @Tags Profiles
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body profile.UpdateInput true "Имя, описание и аватар"
// @Success 200 {object} response.Response "Обновлённый профиль"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /me/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"
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

	var req profile.UpdateInput
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

	p, err := h.service.Update(r.Context(), identity, req)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		response.WithError(w, r, err)
		return
	}

	log.Info("profile updated", slog.String("user_id", identity.ID))
	render.JSON(w, r, response.StatusOKWithData(p))
}
