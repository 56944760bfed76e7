// Package post публикации создателей.
package post

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/AleFeri/cof-me-up/internal/models"
)

// Repository хранение постов.
type Repository interface {
	CreatePost(ctx context.Context, post models.Post) (string, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	ListPublishedPostsByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// CreateInput данные нового поста.
type CreateInput struct {
	Title   string  `json:"title" validate:"required,max=200"`
	Content string  `json:"content" validate:"required"`
	Image   *string `json:"image,omitempty" validate:"omitempty,url"`
}

// Service операции с постами.
type Service struct {
	repo Repository
}

// New создаёт Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create публикует пост от имени создателя.
func (s *Service) Create(ctx context.Context, identity models.Identity, in CreateInput) (*models.Post, error) {
	const op = "post.Create"

	if !identity.IsCreator {
		return nil, fmt.Errorf("%s: %w: only creators can publish posts", op, models.ErrUnauthorized)
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.Content == "" {
		return nil, fmt.Errorf("%s: %w: title and content are required", op, models.ErrValidation)
	}
	if in.Image != nil {
		if *in.Image == "" {
			in.Image = nil
		} else if u, err := url.ParseRequestURI(*in.Image); err != nil || u.Host == "" {
			return nil, fmt.Errorf("%s: %w: image must be a URL", op, models.ErrValidation)
		}
	}

	post := models.Post{
		AuthorID:  identity.ID,
		Title:     in.Title,
		Content:   in.Content,
		Image:     in.Image,
		Published: true,
	}
	id, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	post.ID = id
	return &post, nil
}

// ListByCreator опубликованные посты создателя, новые первыми.
func (s *Service) ListByCreator(ctx context.Context, creatorID string) ([]*models.Post, error) {
	const op = "post.ListByCreator"
	posts, err := s.repo.ListPublishedPostsByAuthor(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return posts, nil
}

// Delete удаляет пост. Удалить может только автор.
func (s *Service) Delete(ctx context.Context, identity models.Identity, postID string) error {
	const op = "post.Delete"

	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if post.AuthorID != identity.ID {
		return fmt.Errorf("%s: %w: not the author", op, models.ErrUnauthorized)
	}
	if err := s.repo.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
