package models

import (
	"encoding/json"
	"fmt"
)

// GameMode selects how cells become checkable. FREE lets players check
// any cell; ADMIN and CPU require the item to have been called first.
type GameMode int

const (
	ModeFree GameMode = iota
	ModeAdmin
	ModeCPU
)

var modeNames = map[GameMode]string{
	ModeFree:  "FREE",
	ModeAdmin: "ADMIN",
	ModeCPU:   "CPU",
}

func (m GameMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("GameMode(%d)", int(m))
}

func (m GameMode) MarshalJSON() ([]byte, error) {
	s, ok := modeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown game mode %d", int(m))
	}
	return json.Marshal(s)
}

func (m *GameMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	mode, err := ParseGameMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseGameMode maps a wire name onto a GameMode.
func ParseGameMode(s string) (GameMode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown game mode %q", ErrBadRequest, s)
}

// GameState is the room lifecycle: CREATING until the first create_game,
// PLAYING during a round, ENDED once enough winners are recorded.
type GameState int

const (
	StateCreating GameState = iota
	StatePlaying
	StateEnded
)

var stateNames = map[GameState]string{
	StateCreating: "CREATING",
	StatePlaying:  "PLAYING",
	StateEnded:    "ENDED",
}

func (s GameState) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("GameState(%d)", int(s))
}

func (s GameState) MarshalJSON() ([]byte, error) {
	n, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown game state %d", int(s))
	}
	return json.Marshal(n)
}

func (s *GameState) UnmarshalJSON(b []byte) error {
	var n string
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	for st, name := range stateNames {
		if name == n {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", n)
}

// Style is the room's client styling config.
type Style struct {
	Background string `json:"background"`
}

// DefaultStyle is applied when create_game carries no style.
var DefaultStyle = Style{Background: "0x1a1a2e"}

// Game is one room's session state. Room is the natural key.
type Game struct {
	Room            string    `json:"room"`
	Mode            GameMode  `json:"mode"`
	Admin           string    `json:"admin"`
	State           GameState `json:"state"`
	Pool            []string  `json:"pool"`
	Players         []string  `json:"players"`
	Winners         []string  `json:"winners"`
	Style           Style     `json:"style"`
	ValidCells      []string  `json:"valid_cells"`
	RequiredWinners int       `json:"required_winners"`
	MaximumSize     int       `json:"maximum_size"`
	MiddleFree      bool      `json:"middle_free"`
}

// HasPlayer reports whether the oid is already in the players set.
func (g *Game) HasPlayer(oid string) bool {
	for _, p := range g.Players {
		if p == oid {
			return true
		}
	}
	return false
}

// HasWinner reports whether the oid has already been recorded as a winner.
func (g *Game) HasWinner(oid string) bool {
	for _, w := range g.Winners {
		if w == oid {
			return true
		}
	}
	return false
}

// Called reports whether the item has been called in this room.
func (g *Game) Called(item string) bool {
	for _, v := range g.ValidCells {
		if v == item {
			return true
		}
	}
	return false
}
