// Package list отдаёт создателю список успешных пожертвований.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AleFeri/cof-me-up/internal/http/middlewarectx"
	"github.com/AleFeri/cof-me-up/internal/http/response"
	"github.com/AleFeri/cof-me-up/internal/lib/sl"
	"github.com/AleFeri/cof-me-up/internal/models"
)

// Service описывает бизнес-логику выборки пожертвований.
type Service interface {
	ListSucceededForCreator(ctx context.Context, creatorID, requesterID string) ([]*models.DonationWithDonor, error)
}

// Handler обрабатывает запросы на список пожертвований создателя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список успешных пожертвований
// @Description Доступен только самому создателю. Новые сверху.
// @Tags Donations
// @Produce  json
// @Security BearerAuth
// @Param creator path string true "ID создателя"
// @Success 200 {object} response.Response "Пожертвования с данными доноров"
// @Failure 403 {object} response.ErrorResponse "Чужой дашборд"
// @Router /creators/{creator}/donations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.donation.list"
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

	creatorID := chi.URLParam(r, "creator")
	donations, err := h.service.ListSucceededForCreator(r.Context(), creatorID, identity.ID)
	if err != nil {
		log.Error("failed to list donations", sl.Err(err))
		response.WithError(w, r, err)
		return
	}

	if donations == nil {
		donations = []*models.DonationWithDonor{}
	}
	log.Info("donations listed", slog.Int("count", len(donations)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"donations": donations,
	}))
}
