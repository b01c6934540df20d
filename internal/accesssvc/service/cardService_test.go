package service_test

import (
	"context"
	"testing"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/fitclub/gym-services/internal/accesssvc/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCardRegistry struct {
	reassigned []string
	card       *models.Card
	active     *models.Card
	err        error
}

func (f *fakeCardRegistry) Reassign(ctx context.Context, athleteID uuid.UUID, newUID string) (*models.Card, error) {
	f.reassigned = append(f.reassigned, newUID)
	if f.err != nil {
		return nil, f.err
	}
	if f.card != nil {
		return f.card, nil
	}
	return &models.Card{ID: uuid.New(), UID: newUID, Active: true, AthleteID: athleteID}, nil
}

func (f *fakeCardRegistry) GetActiveCardForAthlete(ctx context.Context, athleteID uuid.UUID) (*models.Card, error) {
	return f.active, f.err
}

func TestCardReassignCanonicalizesUID(t *testing.T) {
	registry := &fakeCardRegistry{}
	svc := service.NewCardService(registry)
	athleteID := uuid.New()

	card, err := svc.Reassign(context.Background(), athleteID, " 0000000222 ")
	require.NoError(t, err)

	// the store only ever sees the canonical key, zeros and padding gone
	require.Len(t, registry.reassigned, 1)
	assert.Equal(t, "222", registry.reassigned[0])
	assert.Equal(t, "222", card.UID)
	assert.True(t, card.Active)
	assert.Equal(t, athleteID, card.AthleteID)
}

func TestCardReassignRejectsEmptyUID(t *testing.T) {
	registry := &fakeCardRegistry{}
	svc := service.NewCardService(registry)

	for _, raw := range []string{"", "   ", "abc"} {
		_, err := svc.Reassign(context.Background(), uuid.New(), raw)
		require.Errorf(t, err, "Reassign(%q) succeeded, want error", raw)
	}
	assert.Empty(t, registry.reassigned, "empty input must never reach the store")
}

func TestCardReassignPropagatesCardInUse(t *testing.T) {
	registry := &fakeCardRegistry{err: errCardTaken{}}
	svc := service.NewCardService(registry)

	_, err := svc.Reassign(context.Background(), uuid.New(), "0000000222")
	require.Error(t, err)
	assert.ErrorIs(t, err, errCardTaken{})
}

type errCardTaken struct{}

func (errCardTaken) Error() string { return "card uid already assigned" }

func TestGetActiveCardForAthlete(t *testing.T) {
	athleteID := uuid.New()
	registry := &fakeCardRegistry{active: &models.Card{ID: uuid.New(), UID: "222", Active: true, AthleteID: athleteID}}
	svc := service.NewCardService(registry)

	card, err := svc.GetActiveCardForAthlete(context.Background(), athleteID)
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "222", card.UID)

	none := service.NewCardService(&fakeCardRegistry{})
	card, err = none.GetActiveCardForAthlete(context.Background(), athleteID)
	require.NoError(t, err)
	assert.Nil(t, card)
}
