package state

// GridCursor tracks the highlighted slot of a rows x columns menu grid.
type GridCursor struct {
	Rows    int
	Columns int
	Slot    int
}

// NewGridCursor returns a cursor on slot 0.
func NewGridCursor(rows, columns int) *GridCursor {
	return &GridCursor{Rows: rows, Columns: columns}
}

func (c *GridCursor) slots() int {
	return c.Rows * c.Columns
}

// Row and Column give the cursor position.
func (c *GridCursor) Row() int    { return c.Slot / c.Columns }
func (c *GridCursor) Column() int { return c.Slot % c.Columns }

// MoveBy shifts the cursor by rows and columns, clamping at the grid edges.
// It reports whether the slot changed.
func (c *GridCursor) MoveBy(dRow, dCol int) bool {
	if c.slots() == 0 {
		c.Slot = 0
		return false
	}
	old := c.Slot
	row := clamp(c.Row()+dRow, 0, c.Rows-1)
	col := clamp(c.Column()+dCol, 0, c.Columns-1)
	c.Slot = row*c.Columns + col
	return old != c.Slot
}

// MoveHome jumps to the first slot.
func (c *GridCursor) MoveHome() bool {
	old := c.Slot
	c.Slot = 0
	return old != c.Slot
}

// MoveEnd jumps to the last slot.
func (c *GridCursor) MoveEnd() bool {
	if c.slots() == 0 {
		return false
	}
	old := c.Slot
	c.Slot = c.slots() - 1
	return old != c.Slot
}

// Set places the cursor on slot when it is inside the grid.
func (c *GridCursor) Set(slot int) bool {
	if slot < 0 || slot >= c.slots() {
		return false
	}
	old := c.Slot
	c.Slot = slot
	return old != c.Slot
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
