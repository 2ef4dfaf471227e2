package schedule

import "time"

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Direction records which way the last navigation moved. It exists purely to
// drive the slide-transition affordance; it has no effect on data.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ViewState owns the anchor date, the active granularity, and the last
// navigation direction. Created once per session; mutated only through the
// navigation methods below.
type ViewState struct {
	Anchor      time.Time
	Granularity Granularity
	Direction   Direction

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

func NewViewState(now func() time.Time) ViewState {
	if now == nil {
		now = time.Now
	}
	return ViewState{
		Anchor:      startOfDay(now()),
		Granularity: GranularityWeek,
		Direction:   DirectionRight,
		now:         now,
	}
}

// Previous shifts the anchor back by one unit of the current granularity.
func (v *ViewState) Previous() {
	v.shift(-1)
	v.Direction = DirectionLeft
}

// Next shifts the anchor forward by one unit of the current granularity.
func (v *ViewState) Next() {
	v.shift(1)
	v.Direction = DirectionRight
}

func (v *ViewState) shift(sign int) {
	switch v.Granularity {
	case GranularityDay:
		v.Anchor = v.Anchor.AddDate(0, 0, sign)
	case GranularityWeek:
		v.Anchor = v.Anchor.AddDate(0, 0, 7*sign)
	case GranularityMonth:
		// Anchor to the first of the month before stepping so a Jan 31
		// anchor doesn't skip short months.
		y, m, _ := v.Anchor.Date()
		v.Anchor = time.Date(y, m, 1, 0, 0, 0, 0, v.Anchor.Location()).AddDate(0, sign, 0)
	}
}

// GoToToday re-anchors on the current date.
func (v *ViewState) GoToToday() {
	today := startOfDay(v.now())
	if today.After(v.Anchor) {
		v.Direction = DirectionRight
	} else {
		v.Direction = DirectionLeft
	}
	v.Anchor = today
}

// SetGranularity switches the view without moving the anchor.
func (v *ViewState) SetGranularity(g Granularity) {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		v.Granularity = g
	}
}

// DrillToDay jumps into a specific date's day view (activating a cell from
// month or week view).
func (v *ViewState) DrillToDay(date time.Time) {
	date = startOfDay(date)
	if date.After(v.Anchor) {
		v.Direction = DirectionRight
	} else {
		v.Direction = DirectionLeft
	}
	v.Anchor = date
	v.Granularity = GranularityDay
}

// VisibleDates returns the dates shown at the current granularity:
// the single anchor day, the Sunday-start week containing the anchor, or the
// full month grid (including leading/trailing days from adjacent months).
func (v ViewState) VisibleDates() []time.Time {
	switch v.Granularity {
	case GranularityDay:
		return []time.Time{startOfDay(v.Anchor)}
	case GranularityWeek:
		start := startOfWeek(v.Anchor)
		days := make([]time.Time, 7)
		for i := range days {
			days[i] = start.AddDate(0, 0, i)
		}
		return days
	case GranularityMonth:
		grid := BuildMonthGrid(v.Anchor, v.now())
		var days []time.Time
		for _, week := range grid.Weeks {
			for _, cell := range week {
				days = append(days, cell.Date)
			}
		}
		return days
	}
	return nil
}

// GridCell is one day cell of the month grid.
type GridCell struct {
	Date    time.Time
	Key     string
	InMonth bool
	IsToday bool
}

// MonthGrid is the Sunday-start calendar grid covering the anchor month:
// always 7 columns, 5 or 6 rows.
type MonthGrid struct {
	Anchor time.Time
	Weeks  [][]GridCell
}

func (g MonthGrid) Rows() int { return len(g.Weeks) }

// CellAt returns the cell at (row, col), reporting ok=false out of bounds.
func (g MonthGrid) CellAt(row, col int) (GridCell, bool) {
	if row < 0 || row >= len(g.Weeks) || col < 0 || col >= 7 {
		return GridCell{}, false
	}
	return g.Weeks[row][col], true
}

// BuildMonthGrid lays out the calendar weeks intersecting the anchor's month.
func BuildMonthGrid(anchor, now time.Time) MonthGrid {
	y, m, _ := anchor.Date()
	firstOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, anchor.Location())
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	grid := MonthGrid{Anchor: firstOfMonth}
	day := startOfWeek(firstOfMonth)
	for !day.After(lastOfMonth) {
		week := make([]GridCell, 7)
		for i := range week {
			week[i] = GridCell{
				Date:    day,
				Key:     DayKey(day),
				InMonth: sameMonth(day, firstOfMonth),
				IsToday: sameDay(day, now),
			}
			day = day.AddDate(0, 0, 1)
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}
