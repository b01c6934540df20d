package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Athlete represents the athletes table in the database.
type Athlete struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Rut       string         `json:"rut,omitempty"`
	PhotoPath sql.NullString `json:"photo_path,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
