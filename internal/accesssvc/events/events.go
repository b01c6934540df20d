// Package events records kiosk reader diagnostics: every READ and
// VALIDATE step with its outcome. These are short-lived troubleshooting
// breadcrumbs, not the audit trail; they expire via a TTL index and a
// write failure never fails the access check.
package events

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	Collection = "card_events"

	ActionRead     = "READ"
	ActionValidate = "VALIDATE"

	StatusOK              = "OK"
	StatusValidationError = "VALIDATION_ERROR"
	StatusUnrecognized    = "UNRECOGNIZED"
	StatusError           = "ERROR"

	cardPlaceholder = "<unknown-card>"
)

type CardEvent struct {
	Ts        time.Time `bson:"ts"`
	Card      string    `bson:"card"`
	Action    string    `bson:"action"`
	Status    string    `bson:"status"`
	Detail    string    `bson:"detail"`
	ExpiresAt time.Time `bson:"expires_at"`
}

type Recorder struct {
	col       *mongo.Collection
	retention time.Duration
}

// NewRecorder writes card events to the given database. A nil database
// yields a disabled recorder whose Record is a no-op.
func NewRecorder(db *mongo.Database, retention time.Duration) *Recorder {
	if db == nil {
		return &Recorder{}
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &Recorder{col: db.Collection(Collection), retention: retention}
}

func (r *Recorder) Enabled() bool {
	return r != nil && r.col != nil
}

// Record inserts one diagnostic event. Best effort: failures are logged
// and swallowed so kiosk traffic is never blocked on diagnostics.
func (r *Recorder) Record(ctx context.Context, card, action, status, detail string) {
	if !r.Enabled() {
		return
	}

	if card == "" {
		card = cardPlaceholder
	}
	now := time.Now().UTC()

	_, err := r.col.InsertOne(ctx, CardEvent{
		Ts:        now,
		Card:      card,
		Action:    action,
		Status:    status,
		Detail:    detail,
		ExpiresAt: now.Add(r.retention),
	})
	if err != nil {
		log.Warnf("card event write failed: %v", err)
	}
}
