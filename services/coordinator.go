package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/buzzbingo/bingo-backend/game"
	"github.com/buzzbingo/bingo-backend/models"
	"github.com/buzzbingo/bingo-backend/store"
	"github.com/buzzbingo/bingo-backend/utils/logger"
)

// Coordinator sequences the load-mutate-persist cycle for each player
// action. Every mutation of a single entity runs inside Store.Update so
// concurrent actions on the same card or game cannot silently lose a
// write; the store surfaces ErrWriteConflict when its bounded retries
// run out.
type Coordinator struct {
	store store.Store
}

func NewCoordinator(st store.Store) *Coordinator {
	return &Coordinator{store: st}
}

// Join resolves or creates the user, resolves or creates the room's game
// and adds the user to its players. A supplied oid that resolves to
// nothing is reported as (nil, nil, nil): the caller re-registers, it is
// not an error.
func (c *Coordinator) Join(ctx context.Context, room, name, oid string) (*models.User, *models.Game, error) {
	if !models.IsValidID(room) {
		return nil, nil, fmt.Errorf("%w: room %q", models.ErrInvalidIdentifier, room)
	}

	var user *models.User
	if oid != "" {
		u, err := c.getUser(ctx, oid)
		if err != nil {
			return nil, nil, err
		}
		if u == nil {
			return nil, nil, nil
		}
		user = u
	} else {
		if !models.IsValidID(name) {
			return nil, nil, fmt.Errorf("%w: name %q", models.ErrInvalidIdentifier, name)
		}
		user = models.NewUser(name, game.NewOid())
		if err := c.saveUser(ctx, user); err != nil {
			return nil, nil, err
		}
	}

	var joined *models.Game
	err := c.store.Update(ctx, store.GameKey(room), func(old []byte) ([]byte, error) {
		g := game.NewGame(room, user.Oid)
		if old != nil {
			g = new(models.Game)
			if err := json.Unmarshal(old, g); err != nil {
				return nil, err
			}
		}
		game.Join(g, user.Oid)
		joined = g
		return json.Marshal(g)
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Infof("[%s] %s joined (players=%d)", room, user.Oid, len(joined.Players))
	return user, joined, nil
}

// CreateGame applies the create/recreate transition. A rejection by the
// state machine is not an error: created comes back false and the game is
// untouched.
func (c *Coordinator) CreateGame(ctx context.Context, room, oid string, p game.CreateParams) (*models.Game, bool, error) {
	if !models.IsValidID(room) {
		return nil, false, fmt.Errorf("%w: room %q", models.ErrInvalidIdentifier, room)
	}

	created := false
	var g *models.Game
	err := c.store.Update(ctx, store.GameKey(room), func(old []byte) ([]byte, error) {
		if old == nil {
			return nil, fmt.Errorf("%w: game %q", models.ErrNotFound, room)
		}
		g = new(models.Game)
		if err := json.Unmarshal(old, g); err != nil {
			return nil, err
		}
		created = game.Create(g, oid, p)
		if !created {
			return nil, nil
		}
		return json.Marshal(g)
	})
	if err != nil {
		return nil, false, err
	}
	if !created {
		return nil, false, nil
	}

	// Purge every player's card reference for this room so the new round
	// deals fresh cards. Card bodies are left behind; they expire only
	// with a store-wide flush.
	for _, player := range g.Players {
		err := c.store.Update(ctx, store.UserKey(player), func(old []byte) ([]byte, error) {
			if old == nil {
				return nil, nil
			}
			u := new(models.User)
			if err := json.Unmarshal(old, u); err != nil {
				return nil, err
			}
			if _, ok := u.Cards[room]; !ok {
				return nil, nil
			}
			delete(u.Cards, room)
			return json.Marshal(u)
		})
		if err != nil {
			return nil, false, err
		}
	}

	logger.Infof("[%s] game created by %s mode=%s pool=%d", room, oid, g.Mode, len(g.Pool))
	return g, true, nil
}

// GetCard returns the user's card for the room, generating and persisting
// one on first request. The bool reports whether a card was freshly dealt
// (and so whether the room needs a card_state broadcast).
func (c *Coordinator) GetCard(ctx context.Context, room, oid string) (*models.Card, *models.User, bool, error) {
	g, err := c.getGame(ctx, room)
	if err != nil {
		return nil, nil, false, err
	}
	if g == nil {
		return nil, nil, false, fmt.Errorf("%w: game %q", models.ErrNotFound, room)
	}
	if g.State != models.StatePlaying {
		return nil, nil, false, fmt.Errorf("%w: game is not in play", models.ErrBadRequest)
	}

	// The common repeat request: the user already holds a card for this
	// room, so nothing is generated.
	user, err := c.getUser(ctx, oid)
	if err != nil {
		return nil, nil, false, err
	}
	if user == nil {
		return nil, nil, false, fmt.Errorf("%w: user %q", models.ErrNotFound, oid)
	}
	if existing, ok := user.Cards[room]; ok {
		card, err := c.getCard(ctx, existing)
		if err != nil {
			return nil, nil, false, err
		}
		if card == nil {
			return nil, nil, false, fmt.Errorf("%w: card %q", models.ErrNotFound, existing)
		}
		return card, user, false, nil
	}

	fresh, err := game.NewCard(g.Pool, g.MaximumSize, g.MiddleFree)
	if err != nil {
		return nil, nil, false, err
	}

	// Persist the candidate card first, then claim the card slot under
	// the user's key. If a concurrent request claimed a card between the
	// read above and this update, the existing one wins and the candidate
	// stays behind as an unreferenced key until the next store flush.
	if err := c.saveCard(ctx, fresh); err != nil {
		return nil, nil, false, err
	}

	cardOid := fresh.Oid
	dealt := false
	err = c.store.Update(ctx, store.UserKey(oid), func(old []byte) ([]byte, error) {
		if old == nil {
			return nil, fmt.Errorf("%w: user %q", models.ErrNotFound, oid)
		}
		user = new(models.User)
		if err := json.Unmarshal(old, user); err != nil {
			return nil, err
		}
		if existing, ok := user.Cards[room]; ok {
			cardOid = existing
			dealt = false
			return nil, nil
		}
		cardOid = fresh.Oid
		dealt = true
		if user.Cards == nil {
			user.Cards = make(map[string]string)
		}
		user.Cards[room] = fresh.Oid
		return json.Marshal(user)
	})
	if err != nil {
		return nil, nil, false, err
	}

	card := fresh
	if !dealt {
		card, err = c.getCard(ctx, cardOid)
		if err != nil {
			return nil, nil, false, err
		}
		if card == nil {
			return nil, nil, false, fmt.Errorf("%w: card %q", models.ErrNotFound, cardOid)
		}
	} else {
		logger.Infof("[%s] dealt card %s to %s (size=%d)", room, card.Oid, oid, card.Size)
	}
	return card, user, dealt, nil
}

// CellClick toggles a cell on the card and, when that completes a line,
// records the win on the game. The returned game is non-nil only when the
// game state changed (a win was recorded).
func (c *Coordinator) CellClick(ctx context.Context, room, oid, cardOid string, cidx int) (*models.Card, *models.Game, error) {
	g, err := c.getGame(ctx, room)
	if err != nil {
		return nil, nil, err
	}
	if g == nil {
		return nil, nil, fmt.Errorf("%w: game %q", models.ErrNotFound, room)
	}
	if g.State != models.StatePlaying {
		return nil, nil, fmt.Errorf("%w: game is not in play", models.ErrBadRequest)
	}

	var card *models.Card
	won := false
	err = c.store.Update(ctx, store.CardKey(cardOid), func(old []byte) ([]byte, error) {
		if old == nil {
			return nil, fmt.Errorf("%w: card %q", models.ErrNotFound, cardOid)
		}
		card = new(models.Card)
		won = false
		if err := json.Unmarshal(old, card); err != nil {
			return nil, err
		}
		if cidx < 0 || cidx >= len(card.Cells) {
			return nil, fmt.Errorf("%w: cell index %d out of range", models.ErrBadRequest, cidx)
		}
		if g.Mode != models.ModeFree && !card.Cells[cidx].Checked && !g.Called(card.Cells[cidx].Text) {
			return nil, fmt.Errorf("%w: %q has not been called", models.ErrBadRequest, card.Cells[cidx].Text)
		}
		toggled, err := game.CheckCell(card, cidx)
		if err != nil {
			return nil, err
		}
		if !toggled {
			return nil, nil
		}
		won = card.Cells[cidx].Checked && card.MovesUntilWin() == 0
		return json.Marshal(card)
	})
	if err != nil {
		return nil, nil, err
	}

	if !won {
		return card, nil, nil
	}

	var ended *models.Game
	err = c.store.Update(ctx, store.GameKey(room), func(old []byte) ([]byte, error) {
		if old == nil {
			return nil, fmt.Errorf("%w: game %q", models.ErrNotFound, room)
		}
		g := new(models.Game)
		if err := json.Unmarshal(old, g); err != nil {
			return nil, err
		}
		if !game.RecordWin(g, oid) {
			return nil, nil
		}
		ended = g
		return json.Marshal(g)
	})
	if err != nil {
		return nil, nil, err
	}
	if ended != nil {
		logger.Infof("[%s] %s completed a line (winners=%d state=%s)", room, oid, len(ended.Winners), ended.State)
	}
	return card, ended, nil
}

// CallCell announces a pool item (ADMIN mode) or draws one (CPU mode).
func (c *Coordinator) CallCell(ctx context.Context, room, oid, item string) (string, []string, error) {
	var called string
	var valid []string
	err := c.store.Update(ctx, store.GameKey(room), func(old []byte) ([]byte, error) {
		if old == nil {
			return nil, fmt.Errorf("%w: game %q", models.ErrNotFound, room)
		}
		g := new(models.Game)
		if err := json.Unmarshal(old, g); err != nil {
			return nil, err
		}
		item, err := game.CallCell(g, oid, item)
		if err != nil {
			return nil, err
		}
		called = item
		valid = g.ValidCells
		return json.Marshal(g)
	})
	if err != nil {
		return "", nil, err
	}
	return called, valid, nil
}

// EndMessage builds the end-of-game text for the caller. replay is true
// for the admin, who may recreate the room.
func (c *Coordinator) EndMessage(ctx context.Context, room, oid string) (string, bool, error) {
	g, err := c.getGame(ctx, room)
	if err != nil {
		return "", false, err
	}
	if g == nil {
		return "", false, fmt.Errorf("%w: game %q", models.ErrNotFound, room)
	}
	if g.State != models.StateEnded {
		return "", false, fmt.Errorf("%w: game has not ended", models.ErrBadRequest)
	}

	text := "Game over."
	if len(g.Winners) > 0 {
		names := make([]string, 0, len(g.Winners))
		for _, w := range g.Winners {
			u, err := c.getUser(ctx, w)
			if err != nil {
				return "", false, err
			}
			name := w
			if u != nil {
				name = u.Name
			}
			names = append(names, name)
		}
		text = fmt.Sprintf("Bingo! %s won the game.", joinNames(names))
	}
	return text, oid == g.Admin, nil
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		out := ""
		for i, n := range names {
			switch {
			case i == 0:
				out = n
			case i == len(names)-1:
				out += " and " + n
			default:
				out += ", " + n
			}
		}
		return out
	}
}

// ---- store accessors ----

func (c *Coordinator) getUser(ctx context.Context, oid string) (*models.User, error) {
	b, err := c.store.Get(ctx, store.UserKey(oid))
	if err != nil || b == nil {
		return nil, err
	}
	u := new(models.User)
	if err := json.Unmarshal(b, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Coordinator) saveUser(ctx context.Context, u *models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, store.UserKey(u.Oid), b)
}

func (c *Coordinator) getGame(ctx context.Context, room string) (*models.Game, error) {
	b, err := c.store.Get(ctx, store.GameKey(room))
	if err != nil || b == nil {
		return nil, err
	}
	g := new(models.Game)
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (c *Coordinator) getCard(ctx context.Context, oid string) (*models.Card, error) {
	b, err := c.store.Get(ctx, store.CardKey(oid))
	if err != nil || b == nil {
		return nil, err
	}
	card := new(models.Card)
	if err := json.Unmarshal(b, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (c *Coordinator) saveCard(ctx context.Context, card *models.Card) error {
	b, err := json.Marshal(card)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, store.CardKey(card.Oid), b)
}
