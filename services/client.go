package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/buzzbingo/bingo-backend/utils/logger"
)

// Client is one websocket connection. room and oid are set by the first
// successful join and act as the connection's session: events that omit
// them fall back to the session values.
type Client struct {
	conn  *websocket.Conn
	hub   *Hub
	coord *Coordinator
	send  chan []byte
	once  sync.Once

	room string
	oid  string
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// reply sends an event to this client only.
func (c *Client) reply(out Outbound) {
	data, err := out.encode()
	if err != nil {
		logger.Errorf("[client %s] encode %s: %v", c.oid, out.Event, err)
		return
	}
	select {
	case c.send <- data:
	default:
		logger.Infof("[client %s] dropping %s", c.oid, out.Event)
	}
}

func (c *Client) readPump() {
	defer func() {
		if c.room != "" {
			c.hub.unregister <- c
		} else {
			c.Close()
		}
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Infof("[client %s] disconnected", c.oid)
			} else {
				logger.Infof("[client %s] read error: %v", c.oid, err)
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(message, &ev); err != nil {
			c.reply(Outbound{Event: "error", Data: ErrorMsg{Error: &ErrorInfo{
				Kind: "bad_request", Message: "malformed frame",
			}}})
			continue
		}
		c.dispatch(context.Background(), ev)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Infof("[client %s] write error: %v", c.oid, err)
			return
		}
	}
}
