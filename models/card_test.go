package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func gridCard(size int) *Card {
	cells := make([]Cell, size*size)
	for i := range cells {
		cells[i] = Cell{Text: string(rune('A' + i))}
	}
	return &Card{Oid: "card1", Size: size, Cells: cells}
}

func TestLinesCount(t *testing.T) {
	for _, size := range []int{1, 2, 3, 5} {
		if got := len(gridCard(size).Lines()); got != 2*size+2 {
			t.Errorf("size %d: %d lines, want %d", size, got, 2*size+2)
		}
	}
	if got := len(gridCard(0).Lines()); got != 0 {
		t.Errorf("size 0: %d lines, want none", got)
	}
}

func TestLinesThroughCenter(t *testing.T) {
	// The center of an odd board sits on its row, column and both
	// diagonals.
	card := gridCard(3)
	if got := len(card.LinesThrough(4)); got != 4 {
		t.Errorf("lines through center = %d, want 4", got)
	}
	if got := len(card.LinesThrough(1)); got != 2 {
		t.Errorf("lines through edge cell = %d, want 2", got)
	}
	if got := len(card.LinesThrough(0)); got != 3 {
		t.Errorf("lines through corner = %d, want 3", got)
	}
}

func TestCardMarshalOmitsMoves(t *testing.T) {
	card := gridCard(2)
	card.Cells[0].Checked = true
	b, err := json.Marshal(card)
	if err != nil {
		t.Fatal(err)
	}

	// moves_until_win is computed on output; the stored form never
	// carries it.
	if strings.Contains(string(b), "moves_until_win") {
		t.Errorf("stored form carries computed field: %s", b)
	}

	var back Card
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Oid != card.Oid || back.Size != card.Size || len(back.Cells) != len(card.Cells) {
		t.Errorf("round trip lost fields: %+v", back)
	}
	if !back.Cells[0].Checked {
		t.Error("round trip lost checked flag")
	}
}
