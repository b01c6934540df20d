package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Ws tracks connected admin dashboard sockets. Every socket receives
// every access event; there is no per-room routing.
type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
	writeMu sync.Mutex
}

func NewWs() *Ws {
	return &Ws{}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

// Broadcast writes a payload to every connected socket. Dead sockets
// are dropped from the map as they fail.
func (s *Ws) Broadcast(payload []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.connMap.Range(func(key, value interface{}) bool {
		conn := value.(*websocket.Conn)
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warnf("dropping socket %s: %v", key, err)
			conn.Close()
			s.connMap.Delete(key)
		}
		return true
	})
}
