package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/fitclub/gym-services/internal/accesssvc/service"
	"github.com/fitclub/gym-services/internal/localdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	effectiveDates []time.Time
	markedExpired  int64
	markedActive   int64
	err            error
}

func (f *fakeRefresher) RefreshStatuses(ctx context.Context, effectiveDate time.Time) (int64, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	f.effectiveDates = append(f.effectiveDates, effectiveDate)
	return f.markedExpired, f.markedActive, nil
}

func TestRefreshUsesLocalCalendarDate(t *testing.T) {
	store := &fakeRefresher{markedExpired: 3, markedActive: 1}
	clock := localdate.NewFixedOffsetClock(-240) // UTC-4
	svc := service.NewRefreshService(store, clock)

	// 02:00 UTC on the 10th is still the 9th on the gym's wall clock
	reference := time.Date(2024, time.June, 10, 2, 0, 0, 0, time.UTC)
	result, err := svc.Refresh(context.Background(), service.RefreshOptions{ReferenceDate: reference})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-09", result.EffectiveDate)
	assert.Equal(t, "UTC-04:00", result.TimeZone)
	assert.Equal(t, int64(3), result.MarkedExpired)
	assert.Equal(t, int64(1), result.MarkedActive)
	require.Len(t, store.effectiveDates, 1)
	assert.Equal(t, "2024-06-09", localdate.Format(store.effectiveDates[0]))
}

func TestRefreshTimeZoneOverride(t *testing.T) {
	store := &fakeRefresher{}
	svc := service.NewRefreshService(store, localdate.NewFixedOffsetClock(0))

	reference := time.Date(2024, time.June, 10, 23, 30, 0, 0, time.UTC)
	result, err := svc.Refresh(context.Background(), service.RefreshOptions{
		ReferenceDate: reference,
		TimeZone:      "UTC",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", result.EffectiveDate)
	assert.Equal(t, "UTC", result.TimeZone)
}

func TestRefreshRejectsBogusZone(t *testing.T) {
	svc := service.NewRefreshService(&fakeRefresher{}, localdate.NewFixedOffsetClock(0))

	_, err := svc.Refresh(context.Background(), service.RefreshOptions{TimeZone: "Not/AZone"})
	require.Error(t, err)
}

func TestRefreshConvergedRunReportsZero(t *testing.T) {
	// second run against an already converged ledger flips nothing
	store := &fakeRefresher{markedExpired: 0, markedActive: 0}
	svc := service.NewRefreshService(store, localdate.NewFixedOffsetClock(0))

	reference := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	result, err := svc.Refresh(context.Background(), service.RefreshOptions{ReferenceDate: reference})
	require.NoError(t, err)
	assert.Zero(t, result.MarkedExpired)
	assert.Zero(t, result.MarkedActive)
}
