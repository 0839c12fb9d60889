package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/buzzbingo/bingo-backend/game"
	"github.com/buzzbingo/bingo-backend/models"
	"github.com/buzzbingo/bingo-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler returns the gin handler that upgrades to a websocket and
// starts the client pumps.
func WSHandler(hub *Hub, coord *Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("[ws] upgrade error: %v", err)
			return
		}
		client := &Client{
			conn:  conn,
			hub:   hub,
			coord: coord,
			send:  make(chan []byte, 32),
		}
		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) dispatch(ctx context.Context, ev Event) {
	switch ev.Event {
	case "join":
		c.onJoin(ctx, ev.Data)
	case "create_game":
		c.onCreateGame(ctx, ev.Data)
	case "get_card":
		c.onGetCard(ctx, ev.Data)
	case "cell_click":
		c.onCellClick(ctx, ev.Data)
	case "call_cell":
		c.onCallCell(ctx, ev.Data)
	case "get_end_message":
		c.onGetEndMessage(ctx, ev.Data)
	default:
		c.reply(Outbound{Event: "error", Data: ErrorMsg{Error: &ErrorInfo{
			Kind: "bad_request", Message: fmt.Sprintf("unknown event %q", ev.Event),
		}}})
	}
}

func (c *Client) onJoin(ctx context.Context, data json.RawMessage) {
	var p JoinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		c.reply(Outbound{Event: "join_rsp", Data: JoinRsp{Ok: false, Error: &ErrorInfo{
			Kind: "bad_request", Message: "room is required",
		}}})
		return
	}

	user, g, err := c.coord.Join(ctx, p.Room, p.Name, p.Oid)
	if err != nil {
		c.reply(Outbound{Event: "join_rsp", Data: JoinRsp{Ok: false, Error: errInfo(err)}})
		return
	}
	if user == nil {
		// Unknown oid: the client re-registers with a name.
		c.reply(Outbound{Event: "join_rsp", Data: JoinRsp{Ok: false}})
		return
	}

	c.oid = user.Oid
	if c.room == "" {
		c.room = p.Room
		c.hub.register <- c
	}

	state := g.State
	c.reply(Outbound{Event: "join_rsp", Data: JoinRsp{Ok: true, State: &state, Oid: user.Oid}})
	c.hub.Broadcast(p.Room, Outbound{Event: "room_join", Data: RoomJoin{Oid: user.Oid, Name: user.Name}})
}

func (c *Client) onCreateGame(ctx context.Context, data json.RawMessage) {
	var p CreateGamePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" || p.Oid == "" || p.Mode == "" || p.Pool == nil {
		c.reply(Outbound{Event: "create_game_rsp", Data: CreateGameRsp{Created: false, Error: &ErrorInfo{
			Kind: "bad_request", Message: "room, oid, mode and pool are required",
		}}})
		return
	}

	mode, err := models.ParseGameMode(p.Mode)
	if err != nil {
		c.reply(Outbound{Event: "create_game_rsp", Data: CreateGameRsp{Created: false, Error: errInfo(err)}})
		return
	}

	g, created, err := c.coord.CreateGame(ctx, p.Room, p.Oid, game.CreateParams{
		Mode:            mode,
		Pool:            p.Pool,
		MaximumSize:     p.MaximumSize,
		MiddleFree:      p.MiddleFree,
		RequiredWinners: p.RequiredWinners,
		Style:           p.Style,
	})
	if err != nil {
		c.reply(Outbound{Event: "create_game_rsp", Data: CreateGameRsp{Created: false, Error: errInfo(err)}})
		return
	}

	c.reply(Outbound{Event: "create_game_rsp", Data: CreateGameRsp{Created: created}})
	if created {
		c.hub.Broadcast(p.Room, Outbound{Event: "game_state", Data: GameStateMsg{State: g.State}})
		c.hub.Broadcast(p.Room, Outbound{Event: "style_state", Data: StyleState{Style: g.Style}})
	}
}

func (c *Client) onGetCard(ctx context.Context, data json.RawMessage) {
	var p GetCardPayload
	_ = json.Unmarshal(data, &p)
	room, oid := c.session(p.Room, p.Oid)
	if room == "" || oid == "" {
		c.replyError("bad_request", "room and oid are required")
		return
	}

	card, user, dealt, err := c.coord.GetCard(ctx, room, oid)
	if err != nil {
		c.reply(Outbound{Event: "error", Data: ErrorMsg{Error: errInfo(err)}})
		return
	}

	c.reply(Outbound{Event: "get_card_rsp", Data: GetCardRsp{Card: viewCard(card), Parent: user.Name}})
	if dealt {
		c.hub.Broadcast(room, Outbound{Event: "card_state", Data: CardState{Card: viewCard(card), Parent: user.Name}})
	}
}

func (c *Client) onCellClick(ctx context.Context, data json.RawMessage) {
	var p CellClickPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Card == "" {
		c.replyError("bad_request", "card is required")
		return
	}
	room, oid := c.session(p.Room, p.Oid)
	if room == "" || oid == "" {
		c.replyError("bad_request", "room and oid are required")
		return
	}

	card, ended, err := c.coord.CellClick(ctx, room, oid, p.Card, p.Cidx)
	if err != nil {
		c.reply(Outbound{Event: "error", Data: ErrorMsg{Error: errInfo(err)}})
		return
	}

	c.hub.Broadcast(room, Outbound{Event: "card_state", Data: CardState{Card: viewCard(card)}})
	if ended != nil {
		c.hub.Broadcast(room, Outbound{Event: "game_state", Data: GameStateMsg{State: ended.State}})
	}
}

func (c *Client) onCallCell(ctx context.Context, data json.RawMessage) {
	var p CallCellPayload
	_ = json.Unmarshal(data, &p)
	room, oid := c.session(p.Room, p.Oid)
	if room == "" || oid == "" {
		c.reply(Outbound{Event: "call_cell_rsp", Data: CallCellRsp{Ok: false, Error: &ErrorInfo{
			Kind: "bad_request", Message: "room and oid are required",
		}}})
		return
	}

	item, valid, err := c.coord.CallCell(ctx, room, oid, p.Item)
	if err != nil {
		c.reply(Outbound{Event: "call_cell_rsp", Data: CallCellRsp{Ok: false, Error: errInfo(err)}})
		return
	}

	c.reply(Outbound{Event: "call_cell_rsp", Data: CallCellRsp{Ok: true, Item: item}})
	c.hub.Broadcast(room, Outbound{Event: "cell_called", Data: CellCalled{Item: item, ValidCells: valid}})
}

func (c *Client) onGetEndMessage(ctx context.Context, data json.RawMessage) {
	var p GetEndMessagePayload
	_ = json.Unmarshal(data, &p)
	room, oid := c.session(p.Room, p.Oid)
	if room == "" || oid == "" {
		c.replyError("bad_request", "no room joined")
		return
	}

	text, replay, err := c.coord.EndMessage(ctx, room, oid)
	if err != nil {
		c.reply(Outbound{Event: "error", Data: ErrorMsg{Error: errInfo(err)}})
		return
	}
	c.reply(Outbound{Event: "end_message", Data: EndMessage{Text: text, Replay: replay}})
}

// session resolves room and oid from the payload, falling back to the
// values recorded at join time.
func (c *Client) session(room, oid string) (string, string) {
	if room == "" {
		room = c.room
	}
	if oid == "" {
		oid = c.oid
	}
	return room, oid
}

func (c *Client) replyError(kind, message string) {
	c.reply(Outbound{Event: "error", Data: ErrorMsg{Error: &ErrorInfo{Kind: kind, Message: message}}})
}
