package service

import (
	"context"
	"fmt"

	"github.com/fitclub/gym-services/internal/accesssvc/carduid"
	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/google/uuid"
)

// CardRegistry is the card persistence the service drives.
type CardRegistry interface {
	Reassign(ctx context.Context, athleteID uuid.UUID, newUID string) (*models.Card, error)
	GetActiveCardForAthlete(ctx context.Context, athleteID uuid.UUID) (*models.Card, error)
}

type CardService struct {
	store CardRegistry
}

func NewCardService(store CardRegistry) *CardService {
	return &CardService{store: store}
}

// Reassign gives the athlete a new card, keeping every superseded row
// as inactive history. The UID is canonicalized before storage so the
// kiosk lookup key always matches.
func (s *CardService) Reassign(ctx context.Context, athleteID uuid.UUID, newUID string) (*models.Card, error) {
	canonical := carduid.Canonicalize(carduid.Normalize(newUID))
	if canonical == "" {
		return nil, fmt.Errorf("card uid cannot be empty")
	}

	return s.store.Reassign(ctx, athleteID, canonical)
}

func (s *CardService) GetActiveCardForAthlete(ctx context.Context, athleteID uuid.UUID) (*models.Card, error) {
	return s.store.GetActiveCardForAthlete(ctx, athleteID)
}
