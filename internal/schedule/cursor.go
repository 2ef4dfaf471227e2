package schedule

import "time"

// GridCursor is a (row, col) position on the month grid.
type GridCursor struct {
	Row int
	Col int
}

// GridNavigator maps arrow-key input to a cursor over the month grid.
// The cursor is nil until first focus and must be cleared whenever the
// granularity or the anchor month changes.
type GridNavigator struct {
	cursor *GridCursor
	grid   MonthGrid
}

func NewGridNavigator() *GridNavigator {
	return &GridNavigator{}
}

// SetGrid swaps in the grid currently rendered. If the anchor month changed,
// the cursor is reset.
func (n *GridNavigator) SetGrid(grid MonthGrid) {
	if !sameMonth(n.grid.Anchor, grid.Anchor) {
		n.cursor = nil
	}
	n.grid = grid
}

// Cursor returns the current position, ok=false when unfocused.
func (n *GridNavigator) Cursor() (GridCursor, bool) {
	if n.cursor == nil {
		return GridCursor{}, false
	}
	return *n.cursor, true
}

// Focus lazily initializes the cursor on first focus: today's cell when
// visible in the grid, else the first day of the anchor month, else (0,0).
func (n *GridNavigator) Focus() {
	if n.cursor != nil {
		return
	}
	for r, week := range n.grid.Weeks {
		for col, cell := range week {
			if cell.IsToday {
				n.cursor = &GridCursor{Row: r, Col: col}
				return
			}
		}
	}
	for r, week := range n.grid.Weeks {
		for col, cell := range week {
			if cell.InMonth && cell.Date.Day() == 1 {
				n.cursor = &GridCursor{Row: r, Col: col}
				return
			}
		}
	}
	n.cursor = &GridCursor{}
}

// Clear returns to the unfocused state (Escape).
func (n *GridNavigator) Clear() {
	n.cursor = nil
}

// Up moves one row up, clamped at the top edge.
func (n *GridNavigator) Up() bool {
	if n.cursor == nil || n.cursor.Row == 0 {
		return false
	}
	n.cursor.Row--
	return true
}

// Down moves one row down, clamped at the bottom edge.
func (n *GridNavigator) Down() bool {
	if n.cursor == nil || n.cursor.Row >= n.grid.Rows()-1 {
		return false
	}
	n.cursor.Row++
	return true
}

// Left moves one column left, wrapping to column 6 of the previous row.
// At (0,0) it is a no-op.
func (n *GridNavigator) Left() bool {
	if n.cursor == nil {
		return false
	}
	if n.cursor.Col > 0 {
		n.cursor.Col--
		return true
	}
	if n.cursor.Row == 0 {
		return false
	}
	n.cursor.Row--
	n.cursor.Col = 6
	return true
}

// Right moves one column right, wrapping to column 0 of the next row.
// At the last cell it is a no-op.
func (n *GridNavigator) Right() bool {
	if n.cursor == nil {
		return false
	}
	if n.cursor.Col < 6 {
		n.cursor.Col++
		return true
	}
	if n.cursor.Row >= n.grid.Rows()-1 {
		return false
	}
	n.cursor.Row++
	n.cursor.Col = 0
	return true
}

// Activate returns the date under the cursor (Enter), ok=false when
// unfocused or the cursor is out of the current grid.
func (n *GridNavigator) Activate() (time.Time, bool) {
	if n.cursor == nil {
		return time.Time{}, false
	}
	cell, ok := n.grid.CellAt(n.cursor.Row, n.cursor.Col)
	if !ok {
		return time.Time{}, false
	}
	return cell.Date, true
}
