package services

import (
	"encoding/json"

	"github.com/buzzbingo/bingo-backend/models"
)

// Event is the envelope for every websocket frame, inbound and outbound.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound pairs an event name with its payload, ready to marshal.
type Outbound struct {
	Event string
	Data  any
}

func (o Outbound) encode() ([]byte, error) {
	data, err := json.Marshal(o.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: o.Event, Data: data})
}

// ErrorInfo is the structured error carried inside response payloads.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func errInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	return &ErrorInfo{Kind: models.ErrorKind(err), Message: err.Error()}
}

// ---- inbound payloads ----

type JoinPayload struct {
	Room string `json:"room"`
	Name string `json:"name"`
	Oid  string `json:"oid"`
}

type CreateGamePayload struct {
	Room            string        `json:"room"`
	Oid             string        `json:"oid"`
	Mode            string        `json:"mode"`
	Pool            []string      `json:"pool"`
	MaximumSize     int           `json:"maximum_size"`
	MiddleFree      bool          `json:"middle_free"`
	RequiredWinners int           `json:"required_winners"`
	Style           *models.Style `json:"style"`
}

type GetCardPayload struct {
	Room string `json:"room"`
	Oid  string `json:"oid"`
}

type CellClickPayload struct {
	Room string `json:"room"`
	Oid  string `json:"oid"`
	Card string `json:"card"`
	Cidx int    `json:"cidx"`
}

type CallCellPayload struct {
	Room string `json:"room"`
	Oid  string `json:"oid"`
	Item string `json:"item"`
}

type GetEndMessagePayload struct {
	Room string `json:"room"`
	Oid  string `json:"oid"`
}

// ---- outbound payloads ----

type JoinRsp struct {
	Ok    bool              `json:"ok"`
	State *models.GameState `json:"state,omitempty"`
	Oid   string            `json:"oid,omitempty"`
	Error *ErrorInfo        `json:"error,omitempty"`
}

type CreateGameRsp struct {
	Created bool       `json:"created"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// CardView is the wire form of a card. It carries the computed
// moves_until_win field, which the stored form omits.
type CardView struct {
	models.Card
	MovesUntilWin int `json:"moves_until_win"`
}

func viewCard(c *models.Card) *CardView {
	if c == nil {
		return nil
	}
	return &CardView{Card: *c, MovesUntilWin: c.MovesUntilWin()}
}

type GetCardRsp struct {
	Card   *CardView `json:"card"`
	Parent string    `json:"parent"`
}

type CardState struct {
	Card   *CardView `json:"card"`
	Parent string    `json:"parent,omitempty"`
}

type GameStateMsg struct {
	State models.GameState `json:"state"`
}

type StyleState struct {
	Style models.Style `json:"style"`
}

type RoomJoin struct {
	Oid  string `json:"oid"`
	Name string `json:"name"`
}

type CallCellRsp struct {
	Ok    bool       `json:"ok"`
	Item  string     `json:"item,omitempty"`
	Error *ErrorInfo `json:"error,omitempty"`
}

type CellCalled struct {
	Item       string   `json:"item"`
	ValidCells []string `json:"valid_cells"`
}

type EndMessage struct {
	Text   string `json:"text"`
	Replay bool   `json:"replay"`
}

type ErrorMsg struct {
	Error *ErrorInfo `json:"error"`
}
