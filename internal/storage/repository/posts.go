package repository

import (
	"context"
	"database/sql"

	"github.com/AleFeri/cof-me-up/internal/models"
)

// CreatePost сохраняет пост и возвращает его ID.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (string, error) {
	const op = "storage.CreatePost"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	query := `INSERT INTO posts (author_id, title, content, image, published)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id string
	if err := s.DB.QueryRowContext(ctx, query,
		post.AuthorID, post.Title, post.Content, post.Image, post.Published).Scan(&id); err != nil {
		return "", wrapErr(op, err)
	}
	return id, nil
}

// GetPost возвращает пост по ID.
func (s *Storage) GetPost(ctx context.Context, id string) (*models.Post, error) {
	const op = "storage.GetPost"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, author_id, title, content, image, published, created_at, updated_at
			  FROM posts
			  WHERE id = $1`
	var p models.Post
	var image sql.NullString
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.AuthorID, &p.Title,
		&p.Content, &image, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, wrapErr(op, err)
	}
	if image.Valid {
		p.Image = &image.String
	}
	return &p, nil
}

// ListPublishedPostsByAuthor возвращает опубликованные посты автора, новые первыми.
func (s *Storage) ListPublishedPostsByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	const op = "storage.ListPublishedPostsByAuthor"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, author_id, title, content, image, published, created_at, updated_at
			  FROM posts
			  WHERE author_id = $1 AND published = TRUE
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Post, 0)
	for rows.Next() {
		var p models.Post
		var image sql.NullString
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &image,
			&p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, wrapErr(op, err)
		}
		if image.Valid {
			p.Image = &image.String
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return result, nil
}

// DeletePost удаляет пост по ID.
func (s *Storage) DeletePost(ctx context.Context, id string) error {
	const op = "storage.DeletePost"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if affected == 0 {
		return wrapErr(op, sql.ErrNoRows)
	}
	return nil
}
