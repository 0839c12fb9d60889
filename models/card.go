package models

// Card is one player's board. Cells always holds exactly Size*Size cells,
// row-major. LastCell is the index of the most recently toggled cell and
// gates re-toggling; nil until the first toggle. The stored form is the
// plain struct; the websocket layer wraps it to add the computed
// moves_until_win field on output.
type Card struct {
	Oid      string `json:"oid"`
	Size     int    `json:"size"`
	Cells    []Cell `json:"cells"`
	LastCell *int   `json:"last_cell"`
}

// Lines returns the cell indices of every winning line: each row, each
// column, the main diagonal and the anti-diagonal. A size-s card has
// 2s+2 lines; a size-0 card has none.
func (c *Card) Lines() [][]int {
	if c.Size == 0 {
		return nil
	}
	lines := make([][]int, 0, 2*c.Size+2)
	for r := 0; r < c.Size; r++ {
		row := make([]int, c.Size)
		for i := range row {
			row[i] = r*c.Size + i
		}
		lines = append(lines, row)
	}
	for col := 0; col < c.Size; col++ {
		column := make([]int, c.Size)
		for i := range column {
			column[i] = i*c.Size + col
		}
		lines = append(lines, column)
	}
	diag := make([]int, c.Size)
	anti := make([]int, c.Size)
	for i := 0; i < c.Size; i++ {
		diag[i] = i*c.Size + i
		anti[i] = i*c.Size + (c.Size - 1 - i)
	}
	return append(lines, diag, anti)
}

// LinesThrough returns only the lines that contain the given cell index.
func (c *Card) LinesThrough(idx int) [][]int {
	if c.Size == 0 {
		return nil
	}
	var lines [][]int
	for _, line := range c.Lines() {
		for _, i := range line {
			if i == idx {
				lines = append(lines, line)
				break
			}
		}
	}
	return lines
}

// Unchecked counts the unchecked cells among the given indices.
func (c *Card) Unchecked(line []int) int {
	n := 0
	for _, i := range line {
		if !c.Cells[i].Checked {
			n++
		}
	}
	return n
}

// MovesUntilWin is the minimum number of additional distinct toggles
// needed to complete the fastest-closing line. Zero means the card has a
// completed line. A size-0 card has no lines and reports zero.
func (c *Card) MovesUntilWin() int {
	lines := c.Lines()
	if len(lines) == 0 {
		return 0
	}
	best := len(c.Cells) + 1
	for _, line := range lines {
		if n := c.Unchecked(line); n < best {
			best = n
		}
	}
	return best
}
