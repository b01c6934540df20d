package broker

import (
	"encoding/json"

	"github.com/fitclub/gym-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const AccessEventsTopic = "access.events"

// Broker publishes access decisions to NATS for the live admin feed.
// The durable audit record is the access_logs row; publishing is
// fire-and-forget and never fails the request.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(conn *nats.Conn) *Broker {
	return &Broker{Conn: conn}
}

func (b *Broker) PublishAccessEvent(event comm.AccessEvent) {
	if b == nil || b.Conn == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("failed to marshal access event: %v", err)
		return
	}

	msg := comm.WSMessage{Type: "access-event", Data: data}
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("failed to marshal ws message: %v", err)
		return
	}

	if err := b.Conn.Publish(AccessEventsTopic, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", AccessEventsTopic, err)
	}
}
