package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fitclub/gym-services/internal/accesssvc/events"
	"github.com/fitclub/gym-services/internal/accesssvc/handlers"
	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/fitclub/gym-services/internal/accesssvc/service"
	"github.com/fitclub/gym-services/internal/accesssvc/store"
	"github.com/fitclub/gym-services/internal/localdate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCardRegistry struct {
	reassigned []string
	active     *models.Card
	err        error
}

func (s *stubCardRegistry) Reassign(ctx context.Context, athleteID uuid.UUID, newUID string) (*models.Card, error) {
	s.reassigned = append(s.reassigned, newUID)
	if s.err != nil {
		return nil, s.err
	}
	return &models.Card{ID: uuid.New(), UID: newUID, Active: true, AthleteID: athleteID}, nil
}

func (s *stubCardRegistry) GetActiveCardForAthlete(ctx context.Context, athleteID uuid.UUID) (*models.Card, error) {
	return s.active, s.err
}

func newCardRouter(registry *stubCardRegistry) *chi.Mux {
	clock := localdate.NewFixedOffsetClock(0).WithNow(func() time.Time {
		return time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC)
	})
	h := handlers.NewHandler(nil, nil, service.NewCardService(registry), nil, nil, events.NewRecorder(nil, 0), clock)

	r := chi.NewRouter()
	r.Get("/v1/athletes/{id}/card", h.GetCard)
	r.Put("/v1/athletes/{id}/card", h.ReassignCard)
	return r
}

func TestReassignCardSuccess(t *testing.T) {
	registry := &stubCardRegistry{}
	r := newCardRouter(registry)

	req := httptest.NewRequest(http.MethodPut, "/v1/athletes/"+uuid.NewString()+"/card",
		strings.NewReader(`{"uid":"0000000222"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, registry.reassigned, 1)
	assert.Equal(t, "222", registry.reassigned[0])
}

func TestReassignCardConflict(t *testing.T) {
	registry := &stubCardRegistry{err: fmt.Errorf("%w: 222", store.ErrCardInUse)}
	r := newCardRouter(registry)

	req := httptest.NewRequest(http.MethodPut, "/v1/athletes/"+uuid.NewString()+"/card",
		strings.NewReader(`{"uid":"0000000222"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReassignCardInvalidAthleteID(t *testing.T) {
	registry := &stubCardRegistry{}
	r := newCardRouter(registry)

	req := httptest.NewRequest(http.MethodPut, "/v1/athletes/not-a-uuid/card",
		strings.NewReader(`{"uid":"0000000222"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, registry.reassigned)
}

func TestGetCard(t *testing.T) {
	athleteID := uuid.New()
	registry := &stubCardRegistry{active: &models.Card{ID: uuid.New(), UID: "222", Active: true, AthleteID: athleteID}}
	r := newCardRouter(registry)

	req := httptest.NewRequest(http.MethodGet, "/v1/athletes/"+athleteID.String()+"/card", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// no active card reads as not found, not as an error
	r = newCardRouter(&stubCardRegistry{})
	req = httptest.NewRequest(http.MethodGet, "/v1/athletes/"+athleteID.String()+"/card", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
