package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Plan names as stored. Legacy rows may carry free-form strings,
// so Plan stays a plain string with the two known values as constants.
const (
	PlanMensual = "Mensual"
	PlanAnual   = "Anual"
)

// Status is the cached membership state. The stored column carries
// several historical spellings; ParseStatus folds them into one value
// so nothing deeper in the engine compares raw strings.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusSold    Status = "sold"
	// StatusUnknown marks an unrecognized stored string. Such rows never
	// grant access; only a missing status defaults to active.
	StatusUnknown Status = "unknown"
)

func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		// rows written before the status column existed behave as active
		return StatusActive
	case "active", "activo", "activa":
		return StatusActive
	case "expired", "expirado", "expirada", "vencido", "vencida":
		return StatusExpired
	case "sold", "vendido", "vendida":
		return StatusSold
	default:
		return StatusUnknown
	}
}

type Membership struct {
	ID        uuid.UUID `json:"id"`
	AthleteID uuid.UUID `json:"athlete_id"`
	Plan      string    `json:"plan"`
	StartDate time.Time `json:"start_date"` // inclusive calendar date
	EndDate   time.Time `json:"end_date"`   // inclusive calendar date
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
