package services

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/buzzbingo/bingo-backend/game"
	"github.com/buzzbingo/bingo-backend/utils/logger"
)

const broadcastSubject = "bingo.room."

// Broker mirrors room broadcasts over NATS so several server instances
// can serve the same rooms. Each instance tags its messages with its own
// id and ignores its echoes.
type Broker struct {
	nc *nats.Conn
	id string
}

// NewBroker connects to the NATS server at url.
func NewBroker(url string) (*Broker, error) {
	nc, err := nats.Connect(url,
		nats.Name("bingo-backend"),
		nats.Timeout(10*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return &Broker{nc: nc, id: game.NewOid()}, nil
}

type brokerFrame struct {
	Origin string `json:"origin"`
	Room   string `json:"room"`
	Data   []byte `json:"data"`
}

// Publish mirrors one room broadcast to the other instances.
func (b *Broker) Publish(room string, data []byte) {
	payload, err := json.Marshal(brokerFrame{Origin: b.id, Room: room, Data: data})
	if err != nil {
		logger.Errorf("[broker] encode frame: %v", err)
		return
	}
	if err := b.nc.Publish(broadcastSubject+room, payload); err != nil {
		logger.Errorf("[broker] publish to %s: %v", room, err)
	}
}

// OnRemote subscribes to every room subject and forwards frames from
// other instances to fn.
func (b *Broker) OnRemote(fn func(room string, data []byte)) {
	_, err := b.nc.Subscribe(broadcastSubject+">", func(m *nats.Msg) {
		var frame brokerFrame
		if err := json.Unmarshal(m.Data, &frame); err != nil {
			logger.Errorf("[broker] decode frame: %v", err)
			return
		}
		if frame.Origin == b.id {
			return
		}
		fn(frame.Room, frame.Data)
	})
	if err != nil {
		logger.Errorf("[broker] subscribe: %v", err)
	}
}

func (b *Broker) Close() {
	b.nc.Drain()
}
