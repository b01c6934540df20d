package comm

import (
	"encoding/json"
	"time"
)

// WSMessage is the envelope exchanged between services over NATS and
// relayed to websocket clients.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "access-event"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
}

// AccessEvent is published on "access.events" after every recorded
// access decision so the admin dashboard can show a live feed.
type AccessEvent struct {
	AccessID    string    `json:"access_id"`
	Ts          time.Time `json:"ts"`
	UID         string    `json:"uid"`
	Result      string    `json:"result"` // allowed | denied | expired | unknown_card
	AthleteID   string    `json:"athlete_id,omitempty"`
	AthleteName string    `json:"athlete_name,omitempty"`
	Note        string    `json:"note,omitempty"`
}
