package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fitclub/gym-services/internal/accesssvc/access"
	"github.com/fitclub/gym-services/internal/accesssvc/carduid"
	"github.com/fitclub/gym-services/internal/accesssvc/models"
	"github.com/fitclub/gym-services/internal/accesssvc/photos"
	"github.com/fitclub/gym-services/internal/comm"
	"github.com/fitclub/gym-services/internal/localdate"
	"github.com/google/uuid"
)

// CardDirectory resolves a canonical UID to its active card and owner.
type CardDirectory interface {
	GetActiveCardWithAthlete(ctx context.Context, uid string) (*models.Card, *models.Athlete, error)
}

// MembershipLedger reads an athlete's full membership history.
type MembershipLedger interface {
	ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]models.Membership, error)
}

// AccessLogWriter appends one decision attempt to the audit trail.
type AccessLogWriter interface {
	Insert(ctx context.Context, athleteID uuid.NullUUID, cardUID string, result models.AccessResult, note string) (*models.AccessLog, error)
}

// EventPublisher pushes decisions to the live admin feed. Best effort.
type EventPublisher interface {
	PublishAccessEvent(event comm.AccessEvent)
}

type AthletePayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type MembershipPayload struct {
	Plan      string `json:"plan"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Validation struct {
	Status         string `json:"status"` // OK | UNRECOGNIZED | VALIDATION_ERROR
	Reason         string `json:"reason,omitempty"`
	ExpectedLength int    `json:"expected_length"`
}

// AccessValidation is the full kiosk response for one card read.
type AccessValidation struct {
	Ok          bool                `json:"ok"`
	AccessID    string              `json:"access_id,omitempty"`
	Ts          time.Time           `json:"ts"`
	Result      models.AccessResult `json:"result"`
	UID         string              `json:"uid"`
	RawUID      string              `json:"raw_uid"`
	Athlete     *AthletePayload     `json:"athlete"`
	Membership  *MembershipPayload  `json:"membership"`
	Memberships []MembershipPayload `json:"memberships"`
	Note        string              `json:"note"`
	Validation  *Validation         `json:"validation,omitempty"`
}

type AccessService struct {
	cards       CardDirectory
	memberships MembershipLedger
	logs        AccessLogWriter
	photos      photos.Resolver
	clock       *localdate.Clock
	publisher   EventPublisher
	uidLength   int
}

func NewAccessService(cards CardDirectory, memberships MembershipLedger, logs AccessLogWriter,
	resolver photos.Resolver, clock *localdate.Clock, publisher EventPublisher, uidLength int) *AccessService {
	if uidLength <= 0 {
		uidLength = carduid.UIDLength
	}
	return &AccessService{
		cards:       cards,
		memberships: memberships,
		logs:        logs,
		photos:      resolver,
		clock:       clock,
		publisher:   publisher,
		uidLength:   uidLength,
	}
}

func (s *AccessService) UIDLength() int { return s.uidLength }

// CheckAccess resolves a canonical UID to a decision, records it in the
// audit trail and publishes the live event. A store or log-write failure
// fails the whole call: a decision without an audit row is never
// returned to the kiosk.
func (s *AccessService) CheckAccess(ctx context.Context, canonicalUID, normalizedUID, rawUID string) (*AccessValidation, error) {
	today := s.clock.Today()

	out := &AccessValidation{
		UID:    normalizedUID,
		RawUID: rawUID,
		Validation: &Validation{
			Status:         "OK",
			Reason:         "matched_in_db",
			ExpectedLength: s.uidLength,
		},
	}

	card, athlete, err := s.cards.GetActiveCardWithAthlete(ctx, canonicalUID)
	if err != nil {
		return nil, err
	}

	var athleteID uuid.NullUUID
	if card == nil {
		out.Result = models.ResultUnknownCard
		out.Note = fmt.Sprintf("Tarjeta no registrada o inactiva. UID recibido: %s (normalizado: %s)",
			sanitizeUID(rawUID), sanitizeUID(canonicalUID))
		out.Validation = &Validation{Status: "UNRECOGNIZED", Reason: "not_found_in_db", ExpectedLength: s.uidLength}
	} else {
		athleteID = uuid.NullUUID{UUID: athlete.ID, Valid: true}
		out.Athlete = &AthletePayload{
			ID:       athlete.ID.String(),
			Name:     athlete.Name,
			Email:    athlete.Email,
			Phone:    athlete.Phone,
			PhotoURL: s.resolvePhoto(athlete),
		}

		ledger, err := s.memberships.ListByAthlete(ctx, athlete.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range ledger {
			out.Memberships = append(out.Memberships, toMembershipPayload(m))
		}

		decision := access.Decide(ledger, today)
		out.Result = decision.Result
		if decision.Matched != nil {
			p := toMembershipPayload(*decision.Matched)
			out.Membership = &p
		}
		out.Note = buildNote(decision, canonicalUID)
	}

	entry, err := s.logs.Insert(ctx, athleteID, canonicalUID, out.Result, out.Note)
	if err != nil {
		return nil, fmt.Errorf("access log write failed: %w", err)
	}

	out.Ok = out.Result == models.ResultAllowed
	out.AccessID = entry.ID.String()
	out.Ts = entry.Ts

	if s.publisher != nil {
		event := comm.AccessEvent{
			AccessID: out.AccessID,
			Ts:       out.Ts,
			UID:      canonicalUID,
			Result:   string(out.Result),
			Note:     out.Note,
		}
		if out.Athlete != nil {
			event.AthleteID = out.Athlete.ID
			event.AthleteName = out.Athlete.Name
		}
		s.publisher.PublishAccessEvent(event)
	}

	return out, nil
}

func (s *AccessService) resolvePhoto(athlete *models.Athlete) string {
	if s.photos == nil || !athlete.PhotoPath.Valid {
		return ""
	}
	return s.photos.ResolveURL(athlete.PhotoPath.String)
}

func buildNote(d access.Decision, canonicalUID string) string {
	switch d.Result {
	case models.ResultAllowed:
		plan := ""
		if d.Matched.Plan != "" {
			plan = fmt.Sprintf(" (%s)", d.Matched.Plan)
		}
		return fmt.Sprintf("Acceso permitido. Membresía vigente%s. UID normalizado: %s", plan, sanitizeUID(canonicalUID))
	case models.ResultExpired:
		return fmt.Sprintf("Membresía expirada al %s. UID normalizado: %s",
			localdate.Format(d.Matched.EndDate), sanitizeUID(canonicalUID))
	default:
		return fmt.Sprintf("Sin membresía vigente activa a la fecha. UID normalizado: %s", sanitizeUID(canonicalUID))
	}
}

func toMembershipPayload(m models.Membership) MembershipPayload {
	return MembershipPayload{
		Plan:      m.Plan,
		Status:    string(m.Status),
		StartDate: localdate.Format(m.StartDate),
		EndDate:   localdate.Format(m.EndDate),
	}
}

func sanitizeUID(uid string) string {
	if uid == "" {
		return "(vacío)"
	}
	return uid
}
