// Package status реализует клиентский путь подтверждения платежа: клиент сообщает
// статус, полученный от Stripe.js, а сервис применяет его с тем же запретом
// выхода из конечного статуса, что и webhook.
package status

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
)

// Request статус пожертвования, сообщённый клиентом.
type Request struct {
	DonationID string `json:"donationId" validate:"required,uuid"`
	Status     string `json:"status" validate:"required,max=64"`
}

// Service описывает бизнес-логику обновления статуса.
type Service interface {
	UpdateStatus(ctx context.Context, identity models.Identity, donationID, reported string) (*models.Donation, error)
}

// Handler обрабатывает обновление статуса пожертвования.
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
// @Summary Обновить статус пожертвования
// @Description Клиентское подтверждение платежа. Конечный статус не перезаписывается.
// @Tags Donations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "ID пожертвования и статус"
// @Success 200 {object} response.Response "Текущий статус"
// @Failure 403 {object} response.ErrorResponse "Пожертвование другого пользователя"
// @Failure 404 {object} response.ErrorResponse "Пожертвование не найдено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /donations/status [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.status"
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

	var req Request
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

	d, err := h.service.UpdateStatus(r.Context(), identity, req.DonationID, req.Status)
	if err != nil {
		log.Error("failed to update donation status", sl.Err(err))
		response.WithError(w, r, err)
		return
	}

	log.Info("donation status reported",
		slog.String("donation_id", d.ID),
		slog.String("reported", req.Status),
		slog.String("status", d.Status),
	)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     d.ID,
		"status": d.Status,
	}))
}
