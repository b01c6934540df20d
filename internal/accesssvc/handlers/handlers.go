package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	config "github.com/fitclub/gym-services/configs"
	"github.com/fitclub/gym-services/internal/accesssvc/events"
	"github.com/fitclub/gym-services/internal/accesssvc/service"
	"github.com/fitclub/gym-services/internal/localdate"
	"github.com/go-chi/jwtauth"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	access      *service.AccessService
	athletes    *service.AthleteService
	cards       *service.CardService
	memberships *service.MembershipService
	refresh     *service.RefreshService
	recorder    *events.Recorder
	clock       *localdate.Clock
}

func NewHandler(access *service.AccessService, athletes *service.AthleteService,
	cards *service.CardService, memberships *service.MembershipService,
	refresh *service.RefreshService, recorder *events.Recorder, clock *localdate.Clock) *Handler {
	return &Handler{
		access:      access,
		athletes:    athletes,
		cards:       cards,
		memberships: memberships,
		refresh:     refresh,
		recorder:    recorder,
		clock:       clock,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "access service is running at port " + os.Getenv("ACCESS_SERVICE_PORT"),
		Code:    200,
		Data:    map[string]string{"instance_id": config.GetInstanceId()},
	}
	json.NewEncoder(w).Encode(rsp)
}
