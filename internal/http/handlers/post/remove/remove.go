// Package remove реализует удаление поста его автором.
package remove

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

// Service описывает удаление поста.
type Service interface {
	Delete(ctx context.Context, identity models.Identity, postID string) error
}

// Handler обрабатывает удаление постов.
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
// @Summary Удалить пост
// @Tags Posts
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID поста"
// @Success 200 {object} response.Response "Пост удалён"
// @Failure 403 {object} response.ErrorResponse "Пост другого автора"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Router /posts/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.remove"
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

	postID := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), identity, postID); err != nil {
		log.Error("failed to delete post", slog.String("post_id", postID), sl.Err(err))
		response.WithError(w, r, err)
		return
	}

	log.Info("post deleted", slog.String("post_id", postID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": postID,
	}))
}
