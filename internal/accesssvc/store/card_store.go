package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrCardInUse signals that the UID belongs to another athlete's active card.
var ErrCardInUse = errors.New("card uid already assigned")

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

// GetActiveCardWithAthlete looks up the single active card for a
// canonical UID, joined with its owner. An inactive card with a
// matching UID is the same as no card at all: (nil, nil, nil).
func (s *CardStore) GetActiveCardWithAthlete(ctx context.Context, uid string) (*models.Card, *models.Athlete, error) {
	query := `
		SELECT c.id, c.uid, c.active, c.athlete_id, c.created_at,
		       a.id, a.name, a.email, a.phone, a.rut, a.photo_path, a.created_at
		FROM cards c
		JOIN athletes a ON a.id = c.athlete_id
		WHERE c.uid = $1 AND c.active = true
		LIMIT 1
	`

	card := &models.Card{}
	athlete := &models.Athlete{}
	err := s.db.QueryRow(ctx, query, uid).Scan(
		&card.ID,
		&card.UID,
		&card.Active,
		&card.AthleteID,
		&card.CreatedAt,
		&athlete.ID,
		&athlete.Name,
		&athlete.Email,
		&athlete.Phone,
		&athlete.Rut,
		&athlete.PhotoPath,
		&athlete.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get active card by uid: %w", err)
	}

	return card, athlete, nil
}

// GetActiveCardForAthlete returns the athlete's current card, or nil.
func (s *CardStore) GetActiveCardForAthlete(ctx context.Context, athleteID uuid.UUID) (*models.Card, error) {
	query := `
		SELECT id, uid, active, athlete_id, created_at
		FROM cards
		WHERE athlete_id = $1 AND active = true
		LIMIT 1
	`

	card := &models.Card{}
	err := s.db.QueryRow(ctx, query, athleteID).Scan(
		&card.ID,
		&card.UID,
		&card.Active,
		&card.AthleteID,
		&card.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active card for athlete: %w", err)
	}

	return card, nil
}

// Reassign deactivates every active card the athlete holds, then inserts
// a fresh active row with the new UID. Old rows stay as history. Both
// steps run inside one transaction, deactivate first, so a readback
// never sees two active cards.
func (s *CardStore) Reassign(ctx context.Context, athleteID uuid.UUID, newUID string) (*models.Card, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin card reassign: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE cards SET active = false
		WHERE athlete_id = $1 AND active = true
	`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate previous cards: %w", err)
	}

	card := &models.Card{}
	err = tx.QueryRow(ctx, `
		INSERT INTO cards (athlete_id, uid, active)
		VALUES ($1, $2, true)
		RETURNING id, uid, active, athlete_id, created_at
	`, athleteID, newUID).Scan(
		&card.ID,
		&card.UID,
		&card.Active,
		&card.AthleteID,
		&card.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", ErrCardInUse, newUID)
		}
		return nil, fmt.Errorf("failed to insert new card: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit card reassign: %w", err)
	}

	return card, nil
}
