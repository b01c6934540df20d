package service

import (
	"context"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/fitclub/gym-services/internal/accesssvc/store"
	"github.com/google/uuid"
)

type AthleteService struct {
	athletes *store.AthleteStore
	logs     *store.AccessLogStore
}

func NewAthleteService(athletes *store.AthleteStore, logs *store.AccessLogStore) *AthleteService {
	return &AthleteService{athletes: athletes, logs: logs}
}

func (s *AthleteService) Create(ctx context.Context, a models.Athlete) (*models.Athlete, error) {
	return s.athletes.Create(ctx, a)
}

func (s *AthleteService) GetByID(ctx context.Context, id uuid.UUID) (*models.Athlete, error) {
	return s.athletes.GetByID(ctx, id)
}

// Delete removes the athlete and their cards and memberships while the
// access log history stays behind with a nulled athlete reference.
func (s *AthleteService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.athletes.DeleteCascade(ctx, id)
}

func (s *AthleteService) RecentAccessLogs(ctx context.Context, id uuid.UUID, limit int) ([]models.AccessLog, error) {
	return s.logs.ListByAthlete(ctx, id, limit)
}
