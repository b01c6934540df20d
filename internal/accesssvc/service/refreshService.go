package service

import (
	"context"
	"time"

	"github.com/fitclub/gym-services/internal/localdate"
)

// StatusRefresher is the bulk status update the store exposes.
type StatusRefresher interface {
	RefreshStatuses(ctx context.Context, effectiveDate time.Time) (markedExpired, markedActive int64, err error)
}

type RefreshOptions struct {
	// ReferenceDate defaults to now.
	ReferenceDate time.Time
	// TimeZone overrides the service clock's zone for this run.
	TimeZone string
}

type RefreshResult struct {
	ReferenceDate time.Time `json:"reference_date"`
	EffectiveDate string    `json:"effective_date"`
	TimeZone      string    `json:"time_zone"`
	MarkedExpired int64     `json:"marked_expired"`
	MarkedActive  int64     `json:"marked_active"`
}

// RefreshService re-derives the cached membership status column as of
// "today" in the gym's calendar zone. Converged runs are no-ops, so a
// scheduler may fire it as often as it likes.
type RefreshService struct {
	store StatusRefresher
	clock *localdate.Clock
}

func NewRefreshService(store StatusRefresher, clock *localdate.Clock) *RefreshService {
	return &RefreshService{store: store, clock: clock}
}

func (s *RefreshService) Refresh(ctx context.Context, opts RefreshOptions) (*RefreshResult, error) {
	reference := opts.ReferenceDate
	if reference.IsZero() {
		reference = time.Now()
	}

	clock := s.clock
	if opts.TimeZone != "" {
		override, err := localdate.NewZoneClock(opts.TimeZone)
		if err != nil {
			return nil, err
		}
		clock = override
	}

	effective := clock.DateOf(reference)

	markedExpired, markedActive, err := s.store.RefreshStatuses(ctx, effective)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		ReferenceDate: reference,
		EffectiveDate: localdate.Format(effective),
		TimeZone:      clock.Zone(),
		MarkedExpired: markedExpired,
		MarkedActive:  markedActive,
	}, nil
}
