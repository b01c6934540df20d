package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fitclub/gym-services/internal/accesssvc/carduid"
	"github.com/fitclub/gym-services/internal/accesssvc/events"
	"github.com/fitclub/gym-services/internal/accesssvc/models"
)

type validateRequest struct {
	CardUID string `json:"cardUID"`
}

type validationErrorResponse struct {
	Ok         bool                     `json:"ok"`
	Error      string                   `json:"error"`
	Result     string                   `json:"result"`
	UID        string                   `json:"uid"`
	RawUID     string                   `json:"raw_uid"`
	Validation *carduid.ValidationIssue `json:"validation,omitempty"`
	Expected   int                      `json:"expected_length,omitempty"`
}

// ValidateAccess is the kiosk endpoint: one card read in, one decision
// out. Malformed input is rejected before any store lookup, with a
// status distinct from store failures (400/422 vs 500).
func (h *Handler) ValidateAccess(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	rawUID := req.CardUID
	normalized := carduid.Normalize(rawUID)

	cardForLog := normalized
	if cardForLog == "" {
		cardForLog = rawUID
	}

	readDetail := "input_received"
	readStatus := events.StatusOK
	if normalized == "" {
		readDetail = "missing_card_uid"
		readStatus = events.StatusValidationError
	}
	h.recorder.Record(r.Context(), cardForLog, events.ActionRead, readStatus, readDetail)

	if normalized == "" {
		h.recorder.Record(r.Context(), cardForLog, events.ActionValidate, events.StatusValidationError, carduid.ReasonEmpty)
		writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:      "cardUID requerido",
			Result:     "validation_error",
			UID:        normalized,
			RawUID:     rawUID,
			Validation: &carduid.ValidationIssue{Status: "VALIDATION_ERROR", Reason: carduid.ReasonEmpty},
			Expected:   h.access.UIDLength(),
		})
		return
	}

	if issue := carduid.ValidateFormat(normalized, h.access.UIDLength()); issue != nil {
		message := fmt.Sprintf("El número de tarjeta debe tener %d dígitos.", h.access.UIDLength())
		if issue.Reason == carduid.ReasonInvalidCharacters {
			message = "El número de tarjeta debe contener solo dígitos."
		}

		h.recorder.Record(r.Context(), normalized, events.ActionValidate, events.StatusValidationError, issue.Reason)
		writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
			Error:      message,
			Result:     "validation_error",
			UID:        normalized,
			RawUID:     rawUID,
			Validation: issue,
			Expected:   h.access.UIDLength(),
		})
		return
	}

	canonical := carduid.Canonicalize(normalized)
	resp, err := h.access.CheckAccess(r.Context(), canonical, normalized, rawUID)
	if err != nil {
		h.recorder.Record(r.Context(), normalized, events.ActionValidate, events.StatusError, err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"ok":      false,
			"error":   err.Error(),
			"result":  "error",
			"uid":     normalized,
			"raw_uid": rawUID,
		})
		return
	}

	statusForLog := events.StatusOK
	detail := string(resp.Result)
	if resp.Result == models.ResultUnknownCard {
		statusForLog = events.StatusUnrecognized
	}
	if resp.Validation != nil && resp.Validation.Reason != "" {
		detail = resp.Validation.Reason
	}
	h.recorder.Record(r.Context(), canonical, events.ActionValidate, statusForLog, detail)

	writeJSON(w, http.StatusOK, resp)
}
