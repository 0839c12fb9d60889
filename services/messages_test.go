package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/buzzbingo/bingo-backend/models"
)

func TestCardViewCarriesMoves(t *testing.T) {
	card := &models.Card{
		Oid:  "card1",
		Size: 2,
		Cells: []models.Cell{
			{Text: "a", Checked: true}, {Text: "b"},
			{Text: "c"}, {Text: "d"},
		},
	}

	b, err := json.Marshal(viewCard(card))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"moves_until_win":1`) {
		t.Errorf("wire form missing computed moves_until_win: %s", b)
	}
	if !strings.Contains(string(b), `"oid":"card1"`) {
		t.Errorf("wire form missing card fields: %s", b)
	}

	if viewCard(nil) != nil {
		t.Error("nil card must view as nil")
	}
}
