package store

import (
	"context"
	"fmt"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccessLogStore struct {
	db *pgxpool.Pool
}

func NewAccessLogStore(db *pgxpool.Pool) *AccessLogStore {
	return &AccessLogStore{db: db}
}

// Insert appends one decision attempt. The table is append-only;
// nothing in the engine updates or deletes rows.
func (s *AccessLogStore) Insert(ctx context.Context, athleteID uuid.NullUUID, cardUID string, result models.AccessResult, note string) (*models.AccessLog, error) {
	query := `
		INSERT INTO access_logs (athlete_id, card_uid, result, note, ts)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, ts
	`

	entry := &models.AccessLog{
		AthleteID: athleteID,
		CardUID:   cardUID,
		Result:    result,
		Note:      note,
	}
	err := s.db.QueryRow(ctx, query, athleteID, cardUID, string(result), note).Scan(&entry.ID, &entry.Ts)
	if err != nil {
		return nil, fmt.Errorf("failed to insert access log: %w", err)
	}

	return entry, nil
}

// ListByAthlete returns the athlete's most recent attempts, newest first.
func (s *AccessLogStore) ListByAthlete(ctx context.Context, athleteID uuid.UUID, limit int) ([]models.AccessLog, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, ts, athlete_id, card_uid, result, note
		FROM access_logs
		WHERE athlete_id = $1
		ORDER BY ts DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, athleteID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list access logs: %w", err)
	}
	defer rows.Close()

	var logs []models.AccessLog
	for rows.Next() {
		var l models.AccessLog
		var result string
		err := rows.Scan(&l.ID, &l.Ts, &l.AthleteID, &l.CardUID, &result, &l.Note)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access log: %w", err)
		}
		l.Result = models.AccessResult(result)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read access logs: %w", err)
	}

	return logs, nil
}
