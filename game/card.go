package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/buzzbingo/bingo-backend/models"
)

// NewCard generates a card from the room's pool. The board edge is the
// largest n with n*n distinct pool items available, capped at maximumSize
// when that is positive. An empty pool yields a degenerate 0x0 card, not
// an error. middleFree marks the center cell of an odd-sized board as a
// pre-checked free space.
func NewCard(pool []string, maximumSize int, middleFree bool) (*models.Card, error) {
	items := distinct(pool)
	size := isqrt(len(items))
	if maximumSize > 0 && size > maximumSize {
		size = maximumSize
	}
	if len(items) < size*size {
		return nil, fmt.Errorf("%w: %d items for a %dx%d card", models.ErrInsufficientPool, len(items), size, size)
	}

	rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	cells := make([]models.Cell, size*size)
	for i := range cells {
		cells[i] = models.Cell{Text: items[i]}
	}
	if middleFree && size%2 == 1 {
		mid := size * size / 2
		cells[mid].Free = true
		cells[mid].Checked = true
	}

	return &models.Card{
		Oid:   NewOid(),
		Size:  size,
		Cells: cells,
	}, nil
}

// NewOid generates an entity identifier: 32 hex characters, no dashes.
func NewOid() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// CheckCell toggles the cell at idx. A cell may be toggled only if it is
// currently unchecked, or it is the most recently toggled cell (the one
// immediate undo a player gets after a misclick). Any other toggle is a
// silent no-op; the returned bool reports whether the card changed.
// Shake flags are recomputed after a successful toggle.
func CheckCell(card *models.Card, idx int) (bool, error) {
	if idx < 0 || idx >= len(card.Cells) {
		return false, fmt.Errorf("%w: cell index %d out of range", models.ErrBadRequest, idx)
	}
	cell := &card.Cells[idx]
	if cell.Checked && (card.LastCell == nil || *card.LastCell != idx) {
		return false, nil
	}
	cell.Checked = !cell.Checked
	i := idx
	card.LastCell = &i
	UpdateShake(card)
	return true, nil
}

// UpdateShake recomputes the near-win highlight across the whole card.
// Every shake flag is cleared, then for each line through the most
// recently toggled cell (if that cell is checked): when the line has at
// most min(size/2, 3) unchecked cells left, those cells are marked.
// Idempotent; a cell may qualify through several lines.
func UpdateShake(card *models.Card) {
	for i := range card.Cells {
		card.Cells[i].Shake = false
	}
	if card.LastCell == nil || !card.Cells[*card.LastCell].Checked {
		return
	}
	threshold := card.Size / 2
	if threshold > 3 {
		threshold = 3
	}
	for _, line := range card.LinesThrough(*card.LastCell) {
		remaining := card.Unchecked(line)
		if remaining == 0 || remaining > threshold {
			continue
		}
		for _, i := range line {
			if !card.Cells[i].Checked {
				card.Cells[i].Shake = true
			}
		}
	}
}

func distinct(pool []string) []string {
	seen := make(map[string]bool, len(pool))
	out := make([]string, 0, len(pool))
	for _, item := range pool {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func isqrt(n int) int {
	s := 0
	for (s+1)*(s+1) <= n {
		s++
	}
	return s
}
