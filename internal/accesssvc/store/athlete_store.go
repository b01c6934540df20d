package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AthleteStore struct {
	db *pgxpool.Pool
}

func NewAthleteStore(db *pgxpool.Pool) *AthleteStore {
	return &AthleteStore{db: db}
}

func (s *AthleteStore) Create(ctx context.Context, a models.Athlete) (*models.Athlete, error) {
	query := `
		INSERT INTO athletes (name, email, phone, rut, photo_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, phone, rut, photo_path, created_at
	`

	created := &models.Athlete{}
	err := s.db.QueryRow(ctx, query, a.Name, a.Email, a.Phone, a.Rut, a.PhotoPath).Scan(
		&created.ID,
		&created.Name,
		&created.Email,
		&created.Phone,
		&created.Rut,
		&created.PhotoPath,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create athlete: %w", err)
	}

	return created, nil
}

func (s *AthleteStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Athlete, error) {
	query := `
		SELECT id, name, email, phone, rut, photo_path, created_at
		FROM athletes
		WHERE id = $1
	`

	a := &models.Athlete{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.Rut,
		&a.PhotoPath,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get athlete by id: %w", err)
	}

	return a, nil
}

// DeleteCascade removes the athlete together with their cards and
// memberships. Access log rows are kept: the athlete reference is
// nulled first so the audit trail outlives the athlete.
func (s *AthleteStore) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin athlete delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE access_logs SET athlete_id = NULL WHERE athlete_id = $1`, id); err != nil {
		return fmt.Errorf("failed to detach access logs: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cards WHERE athlete_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM memberships WHERE athlete_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete memberships: %w", err)
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM athletes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete athlete: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("athlete %s not found", id)
	}

	return tx.Commit(ctx)
}
