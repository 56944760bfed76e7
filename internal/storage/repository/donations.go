package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AleFeri/cof-me-up/internal/models"
)

const donationColumns = `id, donor_id, creator_id, amount_cents, message, status, payment_intent_id, created_at, updated_at`

func scanDonation(row interface{ Scan(dest ...any) error }) (*models.Donation, error) {
	var d models.Donation
	var intentID sql.NullString
	if err := row.Scan(&d.ID, &d.DonorID, &d.CreatorID, &d.AmountCents, &d.Message,
		&d.Status, &intentID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if intentID.Valid {
		d.PaymentIntentID = &intentID.String
	}
	return &d, nil
}

// CreateDonation сохраняет пожертвование в статусе pending и возвращает его ID.
func (s *Storage) CreateDonation(ctx context.Context, d models.Donation) (string, error) {
	const op = "storage.CreateDonation"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	query := `INSERT INTO donations (donor_id, creator_id, amount_cents, message, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var id string
	if err := s.DB.QueryRowContext(ctx, query,
		d.DonorID, d.CreatorID, d.AmountCents, d.Message, models.DonationStatusPending).Scan(&id); err != nil {
		return "", wrapErr(op, err)
	}
	return id, nil
}

// GetDonation возвращает пожертвование по ID.
func (s *Storage) GetDonation(ctx context.Context, id string) (*models.Donation, error) {
	const op = "storage.GetDonation"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`
	d, err := scanDonation(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return d, nil
}

// AttachPaymentIntent привязывает payment intent к пожертвованию.
// Уже привязанный intent не перезаписывается: повтор с тем же ID не является ошибкой,
// попытка привязать другой ID возвращает ErrConflict.
func (s *Storage) AttachPaymentIntent(ctx context.Context, donationID, intentID string) error {
	const op = "storage.AttachPaymentIntent"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE donations
			  SET payment_intent_id = $1, updated_at = NOW()
			  WHERE id = $2 AND payment_intent_id IS NULL`
	res, err := s.DB.ExecContext(ctx, query, intentID, donationID)
	if err != nil {
		return wrapErr(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if affected > 0 {
		return nil
	}

	current, err := s.GetDonation(ctx, donationID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if current.PaymentIntentID != nil && *current.PaymentIntentID == intentID {
		return nil
	}
	return fmt.Errorf("%s: %w: donation already linked to another payment intent", op, models.ErrConflict)
}

// UpdateStatusByPaymentIntent переводит пожертвование с указанным intent в новый статус.
// Конечные статусы не меняются, pending выставить нельзя. Если ни одна строка не
// изменилась, возвращается nil без ошибки.
func (s *Storage) UpdateStatusByPaymentIntent(ctx context.Context, intentID, status string) (*models.Donation, error) {
	const op = "storage.UpdateStatusByPaymentIntent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE donations
			  SET status = $1, updated_at = NOW()
			  WHERE payment_intent_id = $2
			    AND $1 <> 'pending'
			    AND status NOT IN ('succeeded', 'failed')
			  RETURNING ` + donationColumns
	return s.guardedUpdate(ctx, op, query, status, intentID)
}

// UpdateStatusByID то же, что UpdateStatusByPaymentIntent, но по ID пожертвования.
func (s *Storage) UpdateStatusByID(ctx context.Context, donationID, status string) (*models.Donation, error) {
	const op = "storage.UpdateStatusByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE donations
			  SET status = $1, updated_at = NOW()
			  WHERE id = $2
			    AND $1 <> 'pending'
			    AND status NOT IN ('succeeded', 'failed')
			  RETURNING ` + donationColumns
	return s.guardedUpdate(ctx, op, query, status, donationID)
}

func (s *Storage) guardedUpdate(ctx context.Context, op, query, status, key string) (*models.Donation, error) {
	d, err := scanDonation(s.DB.QueryRowContext(ctx, query, status, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return d, nil
}

// ListSucceededDonationsForCreator возвращает успешные пожертвования создателю
// вместе с данными донора, новые первыми.
func (s *Storage) ListSucceededDonationsForCreator(ctx context.Context, creatorID string) ([]*models.DonationWithDonor, error) {
	const op = "storage.ListSucceededDonationsForCreator"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT d.id, d.amount_cents, d.message, d.status, d.creator_id, d.created_at,
			         u.id, u.name, u.image
			  FROM donations d
			  JOIN users u ON u.id = d.donor_id
			  WHERE d.creator_id = $1 AND d.status = 'succeeded'
			  ORDER BY d.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.DonationWithDonor, 0)
	for rows.Next() {
		var d models.DonationWithDonor
		var cents int64
		if err := rows.Scan(&d.ID, &cents, &d.Message, &d.Status, &d.CreatorID, &d.CreatedAt,
			&d.Donor.ID, &d.Donor.Name, &d.Donor.Image); err != nil {
			return nil, wrapErr(op, err)
		}
		d.Amount = models.FormatCents(cents)
		result = append(result, &d)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return result, nil
}

// CountSucceededDonations возвращает число успешных пожертвований, полученных создателем.
func (s *Storage) CountSucceededDonations(ctx context.Context, creatorID string) (int, error) {
	const op = "storage.CountSucceededDonations"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var count int
	query := `SELECT COUNT(*) FROM donations WHERE creator_id = $1 AND status = 'succeeded'`
	if err := s.DB.QueryRowContext(ctx, query, creatorID).Scan(&count); err != nil {
		return 0, wrapErr(op, err)
	}
	return count, nil
}
