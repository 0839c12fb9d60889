package game

import (
	"errors"
	"testing"

	"github.com/buzzbingo/bingo-backend/models"
)

func TestNewGameDefaults(t *testing.T) {
	g := NewGame("room1", "admin1")
	if g.State != models.StateCreating {
		t.Errorf("state = %s, want CREATING", g.State)
	}
	if g.Admin != "admin1" || g.Room != "room1" {
		t.Errorf("room/admin = %s/%s", g.Room, g.Admin)
	}
	if g.RequiredWinners != 1 {
		t.Errorf("required winners = %d, want 1", g.RequiredWinners)
	}
}

func TestCreateFromCreating(t *testing.T) {
	g := NewGame("room1", "admin1")
	pool := testPool(9)

	if !Create(g, "admin1", CreateParams{Mode: models.ModeFree, Pool: pool}) {
		t.Fatal("create rejected from CREATING")
	}
	if g.State != models.StatePlaying {
		t.Errorf("state = %s, want PLAYING", g.State)
	}
	if len(g.ValidCells) != len(pool) {
		t.Errorf("free mode valid_cells = %d items, want the whole pool (%d)", len(g.ValidCells), len(pool))
	}
}

func TestCreateRejectedWhilePlaying(t *testing.T) {
	g := NewGame("room1", "admin1")
	Create(g, "admin1", CreateParams{Mode: models.ModeFree, Pool: testPool(9)})

	before := *g
	for _, caller := range []string{"admin1", "rando"} {
		if Create(g, caller, CreateParams{Mode: models.ModeFree, Pool: testPool(4)}) {
			t.Errorf("create by %s accepted while PLAYING", caller)
		}
	}
	if g.State != before.State || len(g.Pool) != len(before.Pool) {
		t.Error("rejected create mutated the game")
	}
}

func TestRecreateAfterEnd(t *testing.T) {
	g := NewGame("room1", "admin1")
	Create(g, "admin1", CreateParams{Mode: models.ModeFree, Pool: testPool(9)})
	RecordWin(g, "winner1")
	if g.State != models.StateEnded {
		t.Fatalf("state = %s, want ENDED", g.State)
	}

	if Create(g, "rando", CreateParams{Mode: models.ModeFree, Pool: testPool(9)}) {
		t.Fatal("non-admin recreated an ended game")
	}
	if !Create(g, "admin1", CreateParams{Mode: models.ModeFree, Pool: testPool(9)}) {
		t.Fatal("admin could not recreate an ended game")
	}
	if g.State != models.StatePlaying {
		t.Errorf("state = %s, want PLAYING", g.State)
	}
	if len(g.Winners) != 0 {
		t.Errorf("winners = %v, want cleared", g.Winners)
	}
}

func TestJoinIdempotent(t *testing.T) {
	g := NewGame("room1", "admin1")
	Join(g, "u1")
	Join(g, "u1")
	Join(g, "u2")
	if len(g.Players) != 2 {
		t.Errorf("players = %v, want [u1 u2]", g.Players)
	}
}

func TestRecordWinEndsGame(t *testing.T) {
	g := NewGame("room1", "admin1")
	Create(g, "admin1", CreateParams{Mode: models.ModeFree, Pool: testPool(9)})

	if !RecordWin(g, "u1") {
		t.Fatal("first win not recorded")
	}
	if RecordWin(g, "u1") {
		t.Error("duplicate win recorded")
	}
	if g.State != models.StateEnded {
		t.Errorf("state = %s, want ENDED", g.State)
	}
	if len(g.Winners) != 1 || g.Winners[0] != "u1" {
		t.Errorf("winners = %v, want [u1]", g.Winners)
	}
}

func TestRequiredWinnersThreshold(t *testing.T) {
	g := NewGame("room1", "admin1")
	Create(g, "admin1", CreateParams{Mode: models.ModeFree, Pool: testPool(9), RequiredWinners: 2})

	RecordWin(g, "u1")
	if g.State != models.StatePlaying {
		t.Fatalf("state = %s after first of two winners, want PLAYING", g.State)
	}
	RecordWin(g, "u2")
	if g.State != models.StateEnded {
		t.Fatalf("state = %s after second winner, want ENDED", g.State)
	}
	if len(g.Winners) != 2 {
		t.Errorf("winners = %v", g.Winners)
	}
}

func TestCallCellAdminMode(t *testing.T) {
	g := NewGame("room1", "admin1")
	Create(g, "admin1", CreateParams{Mode: models.ModeAdmin, Pool: testPool(4)})
	if len(g.ValidCells) != 0 {
		t.Fatalf("admin mode starts with called cells: %v", g.ValidCells)
	}

	if _, err := CallCell(g, "rando", "word00"); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("non-admin call: err = %v, want bad request", err)
	}
	if _, err := CallCell(g, "admin1", "not-in-pool"); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("non-pool item: err = %v, want bad request", err)
	}

	item, err := CallCell(g, "admin1", "word00")
	if err != nil || item != "word00" {
		t.Fatalf("CallCell = %q, %v", item, err)
	}
	if !g.Called("word00") {
		t.Error("called item missing from valid_cells")
	}
	if _, err := CallCell(g, "admin1", "word00"); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("repeat call: err = %v, want bad request", err)
	}
}

func TestCallCellCPUDrawsPool(t *testing.T) {
	g := NewGame("room1", "admin1")
	pool := testPool(4)
	Create(g, "admin1", CreateParams{Mode: models.ModeCPU, Pool: pool})

	drawn := make(map[string]bool)
	for range pool {
		item, err := CallCell(g, "admin1", "")
		if err != nil {
			t.Fatalf("CallCell: %v", err)
		}
		if drawn[item] {
			t.Fatalf("item %q drawn twice", item)
		}
		drawn[item] = true
	}
	if _, err := CallCell(g, "admin1", ""); !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("exhausted pool: err = %v, want bad request", err)
	}
}

func TestCallCellRejectedOutsidePlay(t *testing.T) {
	g := NewGame("room1", "admin1")
	g.Mode = models.ModeAdmin // still CREATING

	free := NewGame("room2", "admin1")
	Create(free, "admin1", CreateParams{Mode: models.ModeFree, Pool: testPool(4)})

	cases := []struct {
		name string
		g    *models.Game
	}{
		{"still creating", g},
		{"free mode", free},
	}
	for _, tc := range cases {
		if _, err := CallCell(tc.g, "admin1", "word00"); !errors.Is(err, models.ErrBadRequest) {
			t.Errorf("%s: err = %v, want bad request", tc.name, err)
		}
	}
}
