package game

import (
	"fmt"
	"math/rand"

	"github.com/buzzbingo/bingo-backend/models"
)

// NewGame builds the implicit game created on first join to an unseen
// room. The first joiner becomes the admin until a create_game replaces
// the settings.
func NewGame(room, adminOid string) *models.Game {
	return &models.Game{
		Room:            room,
		Mode:            models.ModeFree,
		Admin:           adminOid,
		State:           models.StateCreating,
		Style:           models.DefaultStyle,
		RequiredWinners: 1,
	}
}

// CreateParams carries the create_game settings.
type CreateParams struct {
	Mode            models.GameMode
	Pool            []string
	MaximumSize     int
	MiddleFree      bool
	RequiredWinners int
	Style           *models.Style
}

// Create starts (or restarts) a round. Permitted while the game is still
// CREATING, or after it ENDED when the caller is the recorded admin.
// Any other state/caller combination is rejected with no state change.
// On success the caller becomes admin, winners are cleared and the game
// moves to PLAYING; the coordinator purges the players' card references
// so everyone draws a fresh card.
func Create(g *models.Game, callerOid string, p CreateParams) bool {
	switch g.State {
	case models.StateCreating:
	case models.StateEnded:
		if callerOid != g.Admin {
			return false
		}
	default:
		return false
	}

	g.Mode = p.Mode
	g.Pool = append([]string(nil), p.Pool...)
	g.Admin = callerOid
	g.State = models.StatePlaying
	g.Winners = nil
	g.MaximumSize = p.MaximumSize
	g.MiddleFree = p.MiddleFree
	g.RequiredWinners = p.RequiredWinners
	if g.RequiredWinners < 1 {
		g.RequiredWinners = 1
	}
	if p.Style != nil {
		g.Style = *p.Style
	}
	// In FREE mode every pool item is checkable from the start; the
	// called-items modes begin with nothing called.
	if p.Mode == models.ModeFree {
		g.ValidCells = append([]string(nil), p.Pool...)
	} else {
		g.ValidCells = nil
	}
	return true
}

// Join adds the user to the players set. Idempotent.
func Join(g *models.Game, oid string) {
	if !g.HasPlayer(oid) {
		g.Players = append(g.Players, oid)
	}
}

// RecordWin appends the user to the winners (once) and ends the game when
// the winner threshold is reached. Reports whether the winners list grew.
func RecordWin(g *models.Game, oid string) bool {
	if g.HasWinner(oid) {
		return false
	}
	g.Winners = append(g.Winners, oid)
	if ShouldEnd(g) {
		g.State = models.StateEnded
	}
	return true
}

// ShouldEnd reports whether enough winners have been recorded. The
// default threshold of one means the first winner ends the game.
func ShouldEnd(g *models.Game) bool {
	required := g.RequiredWinners
	if required < 1 {
		required = 1
	}
	return len(g.Winners) >= required
}

// CallCell announces a pool item in an ADMIN or CPU room, making it
// checkable. Only the admin may call, and only while the game is
// PLAYING. In ADMIN mode the item must be an uncalled pool member; in
// CPU mode the server draws an uncalled item at random and the argument
// is ignored. Returns the called item.
func CallCell(g *models.Game, callerOid, item string) (string, error) {
	if g.Mode == models.ModeFree {
		return "", fmt.Errorf("%w: free-mode games have no called cells", models.ErrBadRequest)
	}
	if g.State != models.StatePlaying {
		return "", fmt.Errorf("%w: game is not in play", models.ErrBadRequest)
	}
	if callerOid != g.Admin {
		return "", fmt.Errorf("%w: only the admin calls cells", models.ErrBadRequest)
	}

	if g.Mode == models.ModeCPU {
		remaining := uncalled(g)
		if len(remaining) == 0 {
			return "", fmt.Errorf("%w: pool exhausted", models.ErrBadRequest)
		}
		item = remaining[rand.Intn(len(remaining))]
	} else {
		if !contains(g.Pool, item) {
			return "", fmt.Errorf("%w: %q is not in the pool", models.ErrBadRequest, item)
		}
		if g.Called(item) {
			return "", fmt.Errorf("%w: %q was already called", models.ErrBadRequest, item)
		}
	}

	g.ValidCells = append(g.ValidCells, item)
	return item, nil
}

func uncalled(g *models.Game) []string {
	var out []string
	for _, item := range g.Pool {
		if !g.Called(item) {
			out = append(out, item)
		}
	}
	return out
}

func contains(items []string, s string) bool {
	for _, v := range items {
		if v == s {
			return true
		}
	}
	return false
}
