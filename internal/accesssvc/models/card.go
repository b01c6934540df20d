package models

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	ID        uuid.UUID `json:"id"`         // Primary key
	UID       string    `json:"uid"`        // Canonical RFID identifier
	Active    bool      `json:"active"`     // Only one active card per athlete
	AthleteID uuid.UUID `json:"athlete_id"` // FK to athletes(id)
	CreatedAt time.Time `json:"created_at"`
}
