package services

import (
	"github.com/buzzbingo/bingo-backend/utils/logger"
)

type roomMessage struct {
	room string
	data []byte
}

// Hub routes broadcasts to the clients of each room. Connection state is
// owned by the hub goroutine; clients talk to it over channels only.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage

	// broker mirrors broadcasts across server instances; nil when NATS
	// is not configured.
	broker *Broker
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 64),
	}
}

// SetBroker attaches the cross-instance mirror. Must be called before
// Run.
func (h *Hub) SetBroker(b *Broker) {
	h.broker = b
	b.OnRemote(func(room string, data []byte) {
		h.broadcast <- roomMessage{room: room, data: data}
	})
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			clients, ok := h.rooms[c.room]
			if !ok {
				clients = make(map[*Client]bool)
				h.rooms[c.room] = clients
			}
			clients[c] = true
			logger.Infof("[%s] client %s registered (total=%d)", c.room, c.oid, len(clients))

		case c := <-h.unregister:
			if clients, ok := h.rooms[c.room]; ok && clients[c] {
				delete(clients, c)
				if len(clients) == 0 {
					delete(h.rooms, c.room)
				}
				c.Close()
			}

		case msg := <-h.broadcast:
			for c := range h.rooms[msg.room] {
				select {
				case c.send <- msg.data:
				default:
					logger.Infof("[%s] dropping broadcast to %s", msg.room, c.oid)
				}
			}
		}
	}
}

// Broadcast sends an event to every client in the room, on this instance
// and (when a broker is attached) on every other instance.
func (h *Hub) Broadcast(room string, out Outbound) {
	data, err := out.encode()
	if err != nil {
		logger.Errorf("[%s] encode %s broadcast: %v", room, out.Event, err)
		return
	}
	h.broadcast <- roomMessage{room: room, data: data}
	if h.broker != nil {
		h.broker.Publish(room, data)
	}
}
