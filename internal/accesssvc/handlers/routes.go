package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		// public routes: kiosk traffic and scheduler callbacks
		r.Get("/health", h.HealthHandler)
		r.Post("/access/validate", h.ValidateAccess)
		r.Get("/cron/memberships/status", h.RefreshStatusesCron)
		r.Post("/cron/memberships/status", h.RefreshStatusesCron)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Post("/athletes", h.CreateAthlete)
			r.Delete("/athletes/{id}", h.DeleteAthlete)
			r.Get("/athletes/{id}/card", h.GetCard)
			r.Put("/athletes/{id}/card", h.ReassignCard)
			r.Post("/athletes/{id}/memberships", h.CreateMembership)
			r.Delete("/athletes/{id}/memberships", h.ExpireMemberships)
			r.Get("/athletes/{id}/access-logs", h.ListAccessLogs)
			r.Post("/memberships/refresh", h.ManualRefresh)
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"service_id": 8003022,
		"exp":        expirationTime,
	})

	// For debugging only, comment it out in production
	log.Infof("DEBUG: JWT for testing expires soon : %s", tokenString)
}
