package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MembershipStore struct {
	db *pgxpool.Pool
}

func NewMembershipStore(db *pgxpool.Pool) *MembershipStore {
	return &MembershipStore{db: db}
}

// ListByAthlete returns the athlete's full membership history, newest
// period first. Rows are never overwritten, so this is the ledger.
func (s *MembershipStore) ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]models.Membership, error) {
	query := `
		SELECT id, athlete_id, plan, start_date, end_date, status, created_at
		FROM memberships
		WHERE athlete_id = $1
		ORDER BY start_date DESC
	`

	rows, err := s.db.Query(ctx, query, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		var rawStatus string
		err := rows.Scan(
			&m.ID,
			&m.AthleteID,
			&m.Plan,
			&m.StartDate,
			&m.EndDate,
			&rawStatus,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		m.Status = models.ParseStatus(rawStatus)
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memberships: %w", err)
	}

	return memberships, nil
}

// SupersedeAndCreate flips every active row for the athlete to expired,
// then inserts the new active period. One transaction, expire first,
// so at most one active row is ever visible.
func (s *MembershipStore) SupersedeAndCreate(ctx context.Context, athleteID uuid.UUID, plan string, start, end time.Time) (*models.Membership, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin membership supersede: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE memberships SET status = 'expired'
		WHERE athlete_id = $1 AND status = 'active'
	`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to expire previous memberships: %w", err)
	}

	m := &models.Membership{}
	var rawStatus string
	err = tx.QueryRow(ctx, `
		INSERT INTO memberships (athlete_id, plan, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, 'active')
		RETURNING id, athlete_id, plan, start_date, end_date, status, created_at
	`, athleteID, plan, start, end).Scan(
		&m.ID,
		&m.AthleteID,
		&m.Plan,
		&m.StartDate,
		&m.EndDate,
		&rawStatus,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert new membership: %w", err)
	}
	m.Status = models.ParseStatus(rawStatus)

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit membership supersede: %w", err)
	}

	return m, nil
}

// ExpireActive flips the athlete's active rows to expired without
// creating a replacement. Manual admin action.
func (s *MembershipStore) ExpireActive(ctx context.Context, athleteID uuid.UUID) (int64, error) {
	cmd, err := s.db.Exec(ctx, `
		UPDATE memberships SET status = 'expired'
		WHERE athlete_id = $1 AND status = 'active'
	`, athleteID)
	if err != nil {
		return 0, fmt.Errorf("failed to expire memberships: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// RefreshStatuses re-derives the cached status column as of the
// effective date. Two bulk updates, each idempotent:
// lapsed active/sold rows become expired, covered expired/sold rows
// become active. Safe to run concurrently with live access checks,
// which derive coverage themselves and never trust the cache.
func (s *MembershipStore) RefreshStatuses(ctx context.Context, effectiveDate time.Time) (markedExpired, markedActive int64, err error) {
	expiredCmd, err := s.db.Exec(ctx, `
		UPDATE memberships SET status = 'expired'
		WHERE end_date < $1 AND status IN ('active', 'sold')
	`, effectiveDate)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to mark expired memberships: %w", err)
	}

	activeCmd, err := s.db.Exec(ctx, `
		UPDATE memberships SET status = 'active'
		WHERE start_date <= $1 AND end_date >= $1 AND status IN ('expired', 'sold')
	`, effectiveDate)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to mark active memberships: %w", err)
	}

	return expiredCmd.RowsAffected(), activeCmd.RowsAffected(), nil
}
