package models_test

import (
	"testing"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Status
	}{
		{"english active", "active", models.StatusActive},
		{"spanish active", "activo", models.StatusActive},
		{"spanish feminine active", "activa", models.StatusActive},
		{"english expired", "expired", models.StatusExpired},
		{"legacy vencido", "vencido", models.StatusExpired},
		{"spanish expirada", "expirada", models.StatusExpired},
		{"english sold", "sold", models.StatusSold},
		{"spanish vendido", "vendido", models.StatusSold},
		{"mixed case with spaces", "  ACTIVE ", models.StatusActive},
		{"missing status behaves as active", "", models.StatusActive},
		{"blank status behaves as active", "   ", models.StatusActive},
		{"unrecognized string stays unknown", "suspended", models.StatusUnknown},
		{"garbage stays unknown", "whatever", models.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.ParseStatus(tt.raw); got != tt.want {
				t.Errorf("ParseStatus(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}
