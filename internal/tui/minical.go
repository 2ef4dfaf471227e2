package tui

import (
	"fmt"
	"strings"

	"labplan-cli/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

// Mini calendar: a compact month-at-a-glance shown beside the day and week
// views. It is derived from the same anchor as the primary view, so it can
// never drift out of sync; days with due tasks are marked.

func (m appModel) viewMiniCalendar(width int) string {
	grid := schedule.BuildMonthGrid(m.vs.Anchor, m.now())
	idx := m.visibleIndex()
	anchorKey := schedule.DayKey(m.vs.Anchor)

	title := lipgloss.NewStyle().Bold(true).Render(grid.Anchor.Format("January 2006"))
	lines := []string{title, styleMuted().Render("Su Mo Tu We Th Fr Sa")}

	for _, week := range grid.Weeks {
		var cells []string
		for _, cell := range week {
			label := fmt.Sprintf("%2d", cell.Date.Day())

			st := lipgloss.NewStyle()
			switch {
			case cell.Key == anchorKey:
				st = st.Background(colorSelectedBg).Foreground(colorSelectedFg)
			case cell.IsToday:
				st = st.Bold(true).Foreground(colorTodayFg)
			case !cell.InMonth:
				st = st.Foreground(colorOutMonthFg)
			}
			if len(idx[cell.Key]) > 0 {
				st = st.Underline(true)
			}
			cells = append(cells, st.Render(label))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return normalizePane(strings.Join(lines, "\n"), width, len(lines))
}
