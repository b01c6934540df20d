package models

import (
	"time"

	"github.com/google/uuid"
)

// AccessResult is the outcome of a single card read.
type AccessResult string

const (
	ResultAllowed     AccessResult = "allowed"
	ResultDenied      AccessResult = "denied"
	ResultExpired     AccessResult = "expired"
	ResultUnknownCard AccessResult = "unknown_card"
)

// AccessLog rows are append-only and outlive the athlete: on athlete
// deletion AthleteID is nulled, the row stays.
type AccessLog struct {
	ID        uuid.UUID     `json:"id"`
	Ts        time.Time     `json:"ts"`
	AthleteID uuid.NullUUID `json:"athlete_id"`
	CardUID   string        `json:"card_uid"`
	Result    AccessResult  `json:"result"`
	Note      string        `json:"note"` // operator-facing diagnostic, not machine-parsed
}
