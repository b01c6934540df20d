package broker

import (
	"encoding/json"

	"github.com/fitclub/gym-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker consumes access events from NATS and fans them out to the
// connected dashboard sockets.
type Broker struct {
	Conn      *nats.Conn
	Broadcast func(payload []byte)
}

func NewBroker(conn *nats.Conn, broadcast func(payload []byte)) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: broadcast,
	}
}

// SubscribeAccessEvents starts relaying the access feed.
func (b *Broker) SubscribeAccessEvents(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case "access-event":
		b.Broadcast(msgNats.Data)
	default:
		log.Warnf("unknown message type: %s", message.Type)
	}
}
