package tui

import (
	"time"

	"labplan-cli/internal/model"
	"labplan-cli/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

// taskBadges derives the per-task badge string from the shared scheduling
// predicates, so the calendar never disagrees with the focus header.
func taskBadges(t model.Task, now time.Time) string {
	var b string
	if schedule.IsOverdue(t, now) {
		b += glyphOverdue()
	}
	if t.WaitingForResponse && !t.IsClosed() {
		b += glyphWaiting()
	}
	if schedule.HasPendingReminder(t, now) {
		b += glyphReminder()
	}
	if schedule.HasIncompleteSubtasks(t) {
		b += glyphSubtasks()
	}
	if b != "" {
		b += " "
	}
	return b
}

// taskLine renders one task row for the calendar cells and day lists.
func (m appModel) taskLine(t model.Task, width int, selected bool) string {
	now := m.now()

	prefix := glyphBullet() + " "
	if held, ok := m.drag.Session(); ok && held.TaskID == t.ID {
		prefix = glyphGrab() + " "
	}

	line := truncateCell(prefix+taskBadges(t, now)+t.Title, width)

	st := lipgloss.NewStyle()
	switch {
	case selected:
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
	case schedule.IsOverdue(t, now):
		st = st.Foreground(colorOverdueFg)
	case schedule.IsFollowUpOverdue(t, now):
		st = st.Foreground(colorWaitingFg)
	}
	return st.Render(line)
}
