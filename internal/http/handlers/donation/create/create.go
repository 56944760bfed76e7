// Package create реализует HTTP-обработчик создания пожертвования.
//
// Handler валидирует сумму и получателя, создаёт пожертвование в статусе pending
// и возвращает client secret для подтверждения платежа на клиенте.
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
	"github.com/AleFeri/cof-me-up/internal/services/donation"
)

// Service описывает бизнес-логику создания пожертвования.
type Service interface {
	Initiate(ctx context.Context, identity models.Identity, in donation.InitiateInput) (*donation.InitiateResult, error)
}

// Handler управляет HTTP-запросами на создание пожертвований.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Менеджер жизненного цикла пожертвований
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать пожертвование
// @Description Создаёт пожертвование в статусе pending и payment intent в Stripe.
// @Tags Donations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body donation.InitiateInput true "Сумма, сообщение и получатель"
// @Success 200 {object} donation.InitiateResult "Client secret и ID пожертвования"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Ошибка платёжного провайдера"
// @Router /donations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.create"
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

	var req donation.InitiateInput
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

	res, err := h.service.Initiate(r.Context(), identity, req)
	if err != nil {
		log.Error("failed to initiate donation", sl.Err(err))
		response.WithError(w, r, err)
		return
	}

	log.Info("donation initiated", slog.String("donation_id", res.DonationID))
	render.JSON(w, r, res)
}
