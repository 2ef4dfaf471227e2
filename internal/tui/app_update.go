package tui

import (
	"time"

	"labplan-cli/internal/schedule"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return tickReload() }

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) setStatus(text string) tea.Cmd {
	m.statusText = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reloadTickMsg:
		if m.storeChanged() {
			_ = m.reloadFromDisk()
		}
		return m, tickReload()

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusText = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals capture all input first.
	switch m.modal {
	case modalQuickAdd:
		return m.updateQuickAdd(msg)
	case modalFilter:
		return m.updateFilterMenu(msg)
	}

	// An in-flight grab gesture owns the navigation keys until drop/cancel.
	if m.drag.Active() {
		return m.updateDrag(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.saveTUIState()
		return m, tea.Quit

	case "d":
		return m.switchGranularity(schedule.GranularityDay)
	case "w":
		return m.switchGranularity(schedule.GranularityWeek)
	case "m":
		return m.switchGranularity(schedule.GranularityMonth)

	case "h":
		m.vs.Previous()
		m.syncGrid()
		m.clampTaskIdx()
		return m, nil
	case "l":
		m.vs.Next()
		m.syncGrid()
		m.clampTaskIdx()
		return m, nil
	case "t":
		m.vs.GoToToday()
		m.syncGrid()
		m.clampTaskIdx()
		return m, nil

	case "up", "down", "left", "right":
		return m.updateArrow(msg.String())

	case "j":
		m.taskIdx++
		m.clampTaskIdx()
		return m, nil
	case "k":
		m.taskIdx--
		m.clampTaskIdx()
		return m, nil

	case "g":
		return m.startGrab()

	case "enter":
		if m.vs.Granularity == schedule.GranularityMonth {
			if d, ok := m.nav.Activate(); ok {
				m.vs.DrillToDay(d)
				m.nav.Clear()
				m.syncGrid()
				m.taskIdx = 0
				return m, nil
			}
		}
		return m, nil

	case "esc":
		if m.vs.Granularity == schedule.GranularityMonth {
			m.nav.Clear()
		}
		return m, nil

	case "f":
		m.modal = modalFilter
		m.filterSection = filterSectionCategories
		m.filterIdx = 0
		return m, nil

	case "a":
		return m.openQuickAdd()

	case "r":
		// Reload from disk (so CLI commands run in another terminal are reflected).
		_ = m.reloadFromDisk()
		return m, nil
	}

	return m, nil
}

// switchGranularity changes the zoom level. The grid cursor never survives a
// granularity change.
func (m appModel) switchGranularity(g schedule.Granularity) (tea.Model, tea.Cmd) {
	m.vs.SetGranularity(g)
	m.nav.Clear()
	m.syncGrid()
	m.clampTaskIdx()
	return m, nil
}

func (m appModel) updateArrow(key string) (tea.Model, tea.Cmd) {
	if m.vs.Granularity == schedule.GranularityMonth {
		if _, ok := m.nav.Cursor(); !ok {
			// First arrow press focuses the grid; nothing moves yet.
			m.nav.Focus()
			m.taskIdx = 0
			return m, nil
		}
		moved := false
		switch key {
		case "up":
			moved = m.nav.Up()
		case "down":
			moved = m.nav.Down()
		case "left":
			moved = m.nav.Left()
		case "right":
			moved = m.nav.Right()
		}
		if moved {
			m.taskIdx = 0
		}
		return m, nil
	}

	// Day/week: vertical arrows walk the day's bucket, horizontal arrows move
	// the anchor one day at a time (crossing into the adjacent week shifts
	// the visible window, since the week derives from the anchor).
	switch key {
	case "up":
		m.taskIdx--
		m.clampTaskIdx()
	case "down":
		m.taskIdx++
		m.clampTaskIdx()
	case "left":
		m.vs.Anchor = m.vs.Anchor.AddDate(0, 0, -1)
		m.vs.Direction = schedule.DirectionLeft
		m.syncGrid()
		m.taskIdx = 0
	case "right":
		m.vs.Anchor = m.vs.Anchor.AddDate(0, 0, 1)
		m.vs.Direction = schedule.DirectionRight
		m.syncGrid()
		m.taskIdx = 0
	}
	return m, nil
}

func (m appModel) startGrab() (tea.Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, m.setStatus("Nothing to grab on " + schedule.DayKey(m.selectedDay()))
	}
	if !m.drag.Start(t.ID, m.visibleIndex()) {
		return m, nil
	}
	m.dragDay = m.selectedDay()
	m.drag.Over(schedule.DayKey(m.dragDay))
	return m, m.setStatus("Grabbed " + t.Title + "  (arrows: move, enter: drop, esc: cancel)")
}

func (m appModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.drag.Cancel()
		return m, m.setStatus("Reschedule cancelled")

	case "left":
		return m.moveDrag(-1)
	case "right":
		return m.moveDrag(1)
	case "up":
		return m.moveDrag(-7)
	case "down":
		return m.moveDrag(7)

	case "enter":
		key := schedule.DayKey(m.dragDay)
		title := ""
		if s, ok := m.drag.Session(); ok {
			if t, ok := m.db.FindTask(s.TaskID); ok {
				title = t.Title
			}
		}
		committed, err := m.drag.Drop(key)
		if err != nil {
			// Nothing was persisted and the in-memory task was rolled back.
			return m, m.setStatus("Reschedule failed: " + err.Error())
		}
		if committed {
			m.rebuildIndex()
			m.clampTaskIdx()
			m.captureStoreModTimes()
			return m, m.setStatus("Rescheduled " + title + " " + glyphArrow() + " " + key)
		}
		// Dropping back on the source cell is a click, not a reschedule.
		return m, m.setStatus("")

	case "ctrl+c":
		m.drag.Cancel()
		m.saveTUIState()
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) moveDrag(days int) (tea.Model, tea.Cmd) {
	m.dragDay = m.dragDay.AddDate(0, 0, days)
	m.drag.Over(schedule.DayKey(m.dragDay))
	// Keep the candidate cell visible when the gesture leaves the window.
	switch m.vs.Granularity {
	case schedule.GranularityMonth:
		if !sameMonthDay(m.dragDay, m.vs.Anchor) {
			m.vs.Anchor = m.dragDay
			m.syncGrid()
		}
	default:
		m.vs.Anchor = m.dragDay
		m.syncGrid()
	}
	return m, nil
}

func sameMonthDay(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}
