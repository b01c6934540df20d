package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/fitclub/gym-services/internal/accesssvc/service"
)

// extractCronToken accepts the shared secret as a bearer token, an
// x-cron-secret header, or a token/secret query parameter, matching
// what hosted schedulers can send.
func extractCronToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if secret := r.Header.Get("X-Cron-Secret"); secret != "" {
		return strings.TrimSpace(secret)
	}

	q := r.URL.Query()
	if token := q.Get("token"); token != "" {
		return strings.TrimSpace(token)
	}
	if token := q.Get("secret"); token != "" {
		return strings.TrimSpace(token)
	}

	return ""
}

// RefreshStatusesCron is the scheduler entrypoint for the membership
// status refresher. Idempotent: a converged run reports zero changes.
func (h *Handler) RefreshStatusesCron(w http.ResponseWriter, r *http.Request) {
	expected := os.Getenv("MEMBERSHIP_STATUS_CRON_SECRET")
	if expected == "" {
		expected = os.Getenv("CRON_SECRET")
	}
	if expected == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"ok":    false,
			"error": "Cron secret not configured.",
		})
		return
	}

	provided := extractCronToken(r)
	if provided == "" || provided != expected {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"ok":    false,
			"error": "Unauthorized",
		})
		return
	}

	result, err := h.refresh.Refresh(r.Context(), service.RefreshOptions{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"result": result,
	})
}
