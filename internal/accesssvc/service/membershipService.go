package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/fitclub/gym-services/internal/localdate"
	"github.com/google/uuid"
)

// MembershipRegistry is the membership persistence the service drives.
type MembershipRegistry interface {
	ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]models.Membership, error)
	SupersedeAndCreate(ctx context.Context, athleteID uuid.UUID, plan string, start, end time.Time) (*models.Membership, error)
	ExpireActive(ctx context.Context, athleteID uuid.UUID) (int64, error)
}

type MembershipService struct {
	store MembershipRegistry
}

func NewMembershipService(store MembershipRegistry) *MembershipService {
	return &MembershipService{store: store}
}

func (s *MembershipService) ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]models.Membership, error) {
	return s.store.ListByAthlete(ctx, athleteID)
}

// DefaultEndDate derives the end of a new period from its plan:
// Mensual is one calendar month, Anual twelve. Month arithmetic
// normalizes overflow (see localdate.AddMonths).
func DefaultEndDate(plan string, start time.Time) (time.Time, error) {
	switch plan {
	case models.PlanMensual:
		return localdate.AddMonths(start, 1), nil
	case models.PlanAnual:
		return localdate.AddMonths(start, 12), nil
	default:
		return time.Time{}, fmt.Errorf("cannot derive end date for plan %q", plan)
	}
}

// Renew supersedes any active membership and opens a new period. When
// end is zero it is derived from the plan.
func (s *MembershipService) Renew(ctx context.Context, athleteID uuid.UUID, plan string, start, end time.Time) (*models.Membership, error) {
	if plan == "" {
		return nil, fmt.Errorf("plan is required")
	}
	start = localdate.DateOnly(start)

	if end.IsZero() {
		derived, err := DefaultEndDate(plan, start)
		if err != nil {
			return nil, err
		}
		end = derived
	} else {
		end = localdate.DateOnly(end)
	}

	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", localdate.Format(end), localdate.Format(start))
	}

	return s.store.SupersedeAndCreate(ctx, athleteID, plan, start, end)
}

func (s *MembershipService) ExpireActive(ctx context.Context, athleteID uuid.UUID) (int64, error) {
	return s.store.ExpireActive(ctx, athleteID)
}
