// Package access holds the membership coverage decision. Decide is a
// pure function over a ledger snapshot and a single "today" value, so a
// given ledger always yields the same answer for the same date.
package access

import (
	"time"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/fitclub/gym-services/internal/localdate"
)

type Decision struct {
	Result  models.AccessResult
	Matched *models.Membership // nil when Result is denied
}

// Decide evaluates an athlete's membership ledger as of today.
// The caller resolves the card first; unknown_card never reaches here.
//
//   - an active-status row covering today wins: allowed
//   - else any lapsed active-status row: expired, latest end date wins
//   - else any sold-status row (paid, never cleanly activated): expired,
//     latest end date then start date wins
//   - else: denied
func Decide(memberships []models.Membership, today time.Time) Decision {
	day := localdate.DateOnly(today)

	var active, sold []models.Membership
	for _, m := range memberships {
		switch m.Status {
		case models.StatusSold:
			sold = append(sold, m)
		case models.StatusActive:
			active = append(active, m)
		}
	}

	for i := range active {
		if localdate.Covers(active[i].StartDate, active[i].EndDate, day) {
			return Decision{Result: models.ResultAllowed, Matched: &active[i]}
		}
	}

	var lapsed *models.Membership
	for i := range active {
		if localdate.DateOnly(active[i].EndDate).Before(day) {
			if lapsed == nil || active[i].EndDate.After(lapsed.EndDate) {
				lapsed = &active[i]
			}
		}
	}
	if lapsed != nil {
		return Decision{Result: models.ResultExpired, Matched: lapsed}
	}

	if len(sold) > 0 {
		best := &sold[0]
		for i := 1; i < len(sold); i++ {
			if laterMembership(&sold[i], best) {
				best = &sold[i]
			}
		}
		return Decision{Result: models.ResultExpired, Matched: best}
	}

	return Decision{Result: models.ResultDenied}
}

func laterMembership(a, b *models.Membership) bool {
	if !a.EndDate.Equal(b.EndDate) {
		return a.EndDate.After(b.EndDate)
	}
	return a.StartDate.After(b.StartDate)
}
