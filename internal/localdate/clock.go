package localdate

import (
	"fmt"
	"time"
)

const DefaultZone = "America/Santiago"

// ClockMode selects how an instant is projected onto a calendar date.
type ClockMode string

const (
	// ModeZone formats instants in an IANA time zone.
	ModeZone ClockMode = "iana-zone"
	// ModeFixedOffset shifts instants by a fixed number of minutes.
	// Kept for installs where the admin pinned an offset manually.
	ModeFixedOffset ClockMode = "fixed-offset"
)

// Clock projects instants onto calendar dates in the gym's local zone.
// It replaces the reference system's process-wide mutable offset with an
// explicit capability that is passed to whoever needs "today".
type Clock struct {
	mode          ClockMode
	loc           *time.Location
	offsetMinutes int
	now           func() time.Time
}

// NewZoneClock builds a Clock over an IANA zone name.
func NewZoneClock(zone string) (*Clock, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", zone, err)
	}
	return &Clock{mode: ModeZone, loc: loc, now: time.Now}, nil
}

// NewFixedOffsetClock builds a Clock that shifts UTC by offsetMinutes.
func NewFixedOffsetClock(offsetMinutes int) *Clock {
	return &Clock{mode: ModeFixedOffset, offsetMinutes: offsetMinutes, now: time.Now}
}

func (c *Clock) Mode() ClockMode { return c.mode }

// Zone names the zone or offset the clock computes against.
func (c *Clock) Zone() string {
	if c.mode == ModeFixedOffset {
		sign := "+"
		m := c.offsetMinutes
		if m < 0 {
			sign = "-"
			m = -m
		}
		return fmt.Sprintf("UTC%s%02d:%02d", sign, m/60, m%60)
	}
	return c.loc.String()
}

// DateOf returns the calendar date of t as seen from the clock's zone.
func (c *Clock) DateOf(t time.Time) time.Time {
	if c.mode == ModeFixedOffset {
		return DateOnly(t.UTC().Add(time.Duration(c.offsetMinutes) * time.Minute))
	}
	return DateOnly(t.In(c.loc))
}

// Today is DateOf(now).
func (c *Clock) Today() time.Time {
	return c.DateOf(c.now())
}

// WithNow fixes the clock's notion of the current instant. Test hook.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	c.now = now
	return c
}
