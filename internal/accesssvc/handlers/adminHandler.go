package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/fitclub/gym-services/internal/accesssvc/service"
	"github.com/fitclub/gym-services/internal/accesssvc/store"
	"github.com/fitclub/gym-services/internal/localdate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

func (h *Handler) athleteIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.CreateResponse(w, Response{Message: "invalid athlete id", Code: http.StatusBadRequest, Error: err.Error()})
		return uuid.Nil, false
	}
	return id, true
}

type createAthleteRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Rut       string `json:"rut"`
	PhotoPath string `json:"photo_path"`
}

func (h *Handler) CreateAthlete(w http.ResponseWriter, r *http.Request) {
	var req createAthleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Message: "invalid payload", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}
	if req.Name == "" {
		h.CreateResponse(w, Response{Message: "name is required", Code: http.StatusBadRequest})
		return
	}

	athlete := models.Athlete{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Rut:   req.Rut,
	}
	if req.PhotoPath != "" {
		athlete.PhotoPath = sql.NullString{String: req.PhotoPath, Valid: true}
	}

	created, err := h.athletes.Create(r.Context(), athlete)
	if err != nil {
		h.CreateResponse(w, Response{Message: "could not create athlete", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	h.CreateResponse(w, Response{Message: "athlete created", Code: http.StatusCreated, Data: created})
}

func (h *Handler) DeleteAthlete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.athleteIDParam(w, r)
	if !ok {
		return
	}

	if err := h.athletes.Delete(r.Context(), id); err != nil {
		h.CreateResponse(w, Response{Message: "could not delete athlete", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	h.CreateResponse(w, Response{Message: "athlete deleted, access history retained", Code: http.StatusOK})
}

type reassignCardRequest struct {
	UID string `json:"uid"`
}

func (h *Handler) ReassignCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.athleteIDParam(w, r)
	if !ok {
		return
	}

	var req reassignCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Message: "invalid payload", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	card, err := h.cards.Reassign(r.Context(), id, req.UID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, store.ErrCardInUse) {
			code = http.StatusConflict
		}
		h.CreateResponse(w, Response{Message: "could not reassign card", Code: code, Error: err.Error()})
		return
	}

	h.CreateResponse(w, Response{Message: "card reassigned, previous cards kept as history", Code: http.StatusOK, Data: card})
}

func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.athleteIDParam(w, r)
	if !ok {
		return
	}

	card, err := h.cards.GetActiveCardForAthlete(r.Context(), id)
	if err != nil {
		h.CreateResponse(w, Response{Message: "could not get card", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}
	if card == nil {
		h.CreateResponse(w, Response{Message: "no active card", Code: http.StatusNotFound})
		return
	}

	h.CreateResponse(w, Response{Message: "active card", Code: http.StatusOK, Data: card})
}

type createMembershipRequest struct {
	Plan      string `json:"plan"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateMembership supersedes the athlete's active membership and opens
// a new period. Start defaults to today in the gym's zone; end is
// derived from the plan when omitted.
func (h *Handler) CreateMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := h.athleteIDParam(w, r)
	if !ok {
		return
	}

	var req createMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.CreateResponse(w, Response{Message: "invalid payload", Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	start := h.clock.Today()
	if req.StartDate != "" {
		parsed, err := localdate.Parse(req.StartDate)
		if err != nil {
			h.CreateResponse(w, Response{Message: "invalid start_date", Code: http.StatusBadRequest, Error: err.Error()})
			return
		}
		start = parsed
	}

	var end time.Time
	if req.EndDate != "" {
		parsed, err := localdate.Parse(req.EndDate)
		if err != nil {
			h.CreateResponse(w, Response{Message: "invalid end_date", Code: http.StatusBadRequest, Error: err.Error()})
			return
		}
		end = parsed
	} else {
		derived, err := service.DefaultEndDate(req.Plan, start)
		if err != nil {
			h.CreateResponse(w, Response{Message: "cannot derive end_date", Code: http.StatusBadRequest, Error: err.Error()})
			return
		}
		end = derived
	}

	created, err := h.memberships.Renew(r.Context(), id, req.Plan, start, end)
	if err != nil {
		h.CreateResponse(w, Response{Message: "could not create membership", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	h.CreateResponse(w, Response{Message: "membership created, previous periods expired", Code: http.StatusCreated, Data: created})
}

// ExpireMemberships flips the athlete's active periods to expired
// without opening a replacement. Manual admin action.
func (h *Handler) ExpireMemberships(w http.ResponseWriter, r *http.Request) {
	id, ok := h.athleteIDParam(w, r)
	if !ok {
		return
	}

	expired, err := h.memberships.ExpireActive(r.Context(), id)
	if err != nil {
		h.CreateResponse(w, Response{Message: "could not expire memberships", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	h.CreateResponse(w, Response{Message: "active memberships expired", Code: http.StatusOK, Data: map[string]int64{"expired": expired}})
}

func (h *Handler) ListAccessLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := h.athleteIDParam(w, r)
	if !ok {
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			h.CreateResponse(w, Response{Message: "invalid limit", Code: http.StatusBadRequest})
			return
		}
		limit = parsed
	}

	logs, err := h.athletes.RecentAccessLogs(r.Context(), id, limit)
	if err != nil {
		h.CreateResponse(w, Response{Message: "could not list access logs", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	h.CreateResponse(w, Response{Message: "access logs", Code: http.StatusOK, Data: logs})
}

// ManualRefresh lets an authenticated admin run the status refresher on
// demand, same operation the cron endpoint triggers.
func (h *Handler) ManualRefresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.refresh.Refresh(r.Context(), service.RefreshOptions{})
	if err != nil {
		h.CreateResponse(w, Response{Message: "refresh failed", Code: http.StatusInternalServerError, Error: err.Error()})
		return
	}

	h.CreateResponse(w, Response{Message: "membership statuses refreshed", Code: http.StatusOK, Data: result})
}
