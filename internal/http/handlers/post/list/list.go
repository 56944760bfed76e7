// Package list отдаёт опубликованные посты создателя.
package list

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

// Service описывает выборку постов.
type Service interface {
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Post, error)
}

// Handler обрабатывает запросы на список постов.
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
// @Summary Посты создателя
// @Tags Posts
// @Produce  json
// @Param creator path string true "ID создателя"
// @Success 200 {object} response.Response "Опубликованные посты, новые сверху"
// @Router /creators/{creator}/posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	posts, err := h.service.ListByCreator(r.Context(), chi.URLParam(r, "creator"))
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		response.WithError(w, r, err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"posts": posts,
	}))
}
