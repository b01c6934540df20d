package localdate_test

import (
	"testing"
	"time"

	"github.com/fitclub/gym-services/internal/localdate"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{"plain month", "2024-03-15", 1, "2024-04-15"},
		{"year plan", "2024-03-15", 12, "2025-03-15"},
		// Go normalizes day-of-month overflow instead of clamping;
		// renewal dates keep that rollover.
		{"jan 31 rolls into march, leap year", "2024-01-31", 1, "2024-03-02"},
		{"jan 31 rolls into march, common year", "2023-01-31", 1, "2023-03-03"},
		{"dec to jan crosses year", "2023-12-05", 1, "2024-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := localdate.Parse(tt.start)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.start, err)
			}
			got := localdate.Format(localdate.AddMonths(start, tt.months))
			if got != tt.want {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", tt.start, tt.months, got, tt.want)
			}
		})
	}
}

func TestCovers(t *testing.T) {
	start := localdate.Date(2024, time.February, 1)
	end := localdate.Date(2024, time.February, 29)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"start boundary", start, true},
		{"end boundary", end, true},
		{"inside", localdate.Date(2024, time.February, 15), true},
		{"day before", localdate.Date(2024, time.January, 31), false},
		{"day after", localdate.Date(2024, time.March, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := localdate.Covers(start, end, tt.day); got != tt.want {
				t.Errorf("Covers(%s) = %v, want %v", localdate.Format(tt.day), got, tt.want)
			}
		})
	}
}

func TestCoversIgnoresClockAndZone(t *testing.T) {
	start := localdate.Date(2024, time.February, 1)
	end := localdate.Date(2024, time.February, 29)

	// a timestamp late in the local evening is still the same calendar day
	stamp := time.Date(2024, time.February, 29, 23, 45, 0, 0, time.FixedZone("X", -3*3600))
	if !localdate.Covers(start, end, stamp) {
		t.Error("Covers should compare calendar dates only")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2024-13-01", "15/02/2024", "not-a-date"} {
		if _, err := localdate.Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestFixedOffsetClockDateOf(t *testing.T) {
	// 02:30 UTC is still the previous day at UTC-4
	clock := localdate.NewFixedOffsetClock(-240)
	instant := time.Date(2024, time.June, 10, 2, 30, 0, 0, time.UTC)

	got := localdate.Format(clock.DateOf(instant))
	if got != "2024-06-09" {
		t.Errorf("DateOf = %s, want 2024-06-09", got)
	}
}

func TestZoneClockDateOf(t *testing.T) {
	clock, err := localdate.NewZoneClock("America/Santiago")
	if err != nil {
		t.Fatalf("NewZoneClock: %v", err)
	}

	// June: Chile is at UTC-4, so 03:00 UTC is the previous local day
	instant := time.Date(2024, time.June, 10, 3, 0, 0, 0, time.UTC)
	got := localdate.Format(clock.DateOf(instant))
	if got != "2024-06-09" {
		t.Errorf("DateOf = %s, want 2024-06-09", got)
	}
}

func TestZoneClockDefaultsAndErrors(t *testing.T) {
	clock, err := localdate.NewZoneClock("")
	if err != nil {
		t.Fatalf("NewZoneClock(\"\"): %v", err)
	}
	if clock.Zone() != localdate.DefaultZone {
		t.Errorf("Zone() = %s, want %s", clock.Zone(), localdate.DefaultZone)
	}

	if _, err := localdate.NewZoneClock("Not/AZone"); err == nil {
		t.Error("NewZoneClock with bogus zone succeeded, want error")
	}
}

func TestClockToday(t *testing.T) {
	clock := localdate.NewFixedOffsetClock(0).WithNow(func() time.Time {
		return time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	})

	if got := localdate.Format(clock.Today()); got != "2024-06-10" {
		t.Errorf("Today() = %s, want 2024-06-10", got)
	}
}
