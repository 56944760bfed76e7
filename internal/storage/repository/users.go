package repository

import (
	"context"
	"database/sql"

	"github.com/AleFeri/cof-me-up/internal/models"
)

const userColumns = `id, name, email, username, password_hash, bio, image, is_creator, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	var username sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &username, &u.PasswordHash,
		&u.Bio, &u.Image, &u.IsCreator, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if username.Valid {
		u.Username = &username.String
	}
	return &u, nil
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	query := `INSERT INTO users (name, email, username, password_hash, is_creator)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id string
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Username, user.PasswordHash, user.IsCreator).Scan(&id); err != nil {
		return "", wrapErr(op, err)
	}
	return id, nil
}

// GetUserByID возвращает пользователя по ID.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// ExistsUserWithEmailOrUsername проверяет, занят ли email или username.
func (s *Storage) ExistsUserWithEmailOrUsername(ctx context.Context, email string, username *string) (bool, error) {
	const op = "storage.ExistsUserWithEmailOrUsername"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM users
			      WHERE email = $1 OR ($2::text IS NOT NULL AND username = $2)
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, email, username).Scan(&exists); err != nil {
		return false, wrapErr(op, err)
	}
	return exists, nil
}

// UpdateProfile обновляет имя, био и аватар. Пустые значения не меняют сохраненные.
func (s *Storage) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) error {
	const op = "storage.UpdateProfile"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE users
			  SET name = COALESCE(NULLIF($1, ''), name),
			      bio = COALESCE(NULLIF($2, ''), bio),
			      image = COALESCE(NULLIF($3, ''), image),
			      updated_at = NOW()
			  WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, query, upd.Name, upd.Bio, upd.Image, userID)
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
