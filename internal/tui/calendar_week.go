package tui

import (
	"strconv"
	"strings"

	"labplan-cli/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

// Week view: seven day columns, Sunday first. The anchor day's column carries
// the task selection.

func (m appModel) viewWeek(width, height int) string {
	days := m.vs.VisibleDates()
	idx := m.visibleIndex()
	now := m.now()

	colW := width / 7
	if colW < 12 {
		colW = 12
	}
	colH := height
	if colH < 6 {
		colH = 6
	}

	anchorKey := schedule.DayKey(m.vs.Anchor)
	dragKey := ""
	if s, ok := m.drag.Session(); ok {
		dragKey = s.TargetKey
	}

	var cols []string
	for _, day := range days {
		key := schedule.DayKey(day)
		bucket := idx[key]

		headStyle := lipgloss.NewStyle().Bold(true)
		if key == schedule.DayKey(now) {
			headStyle = headStyle.Foreground(colorTodayFg)
		}
		head := headStyle.Render(day.Format("Mon 2"))

		lines := []string{head, styleMuted().Render(glyphHRule() + glyphHRule() + glyphHRule())}
		maxRows := colH - 3
		shown := bucket
		if len(shown) > maxRows && maxRows > 0 {
			shown = shown[:maxRows]
		}
		for i, t := range shown {
			selected := key == anchorKey && i == m.taskIdx && !m.drag.Active()
			lines = append(lines, m.taskLine(t, colW-1, selected))
		}
		if extra := len(bucket) - len(shown); extra > 0 {
			lines = append(lines, styleMuted().Render("+"+strconv.Itoa(extra)+" more"))
		}

		body := normalizePane(strings.Join(lines, "\n"), colW-1, colH)

		st := lipgloss.NewStyle()
		switch {
		case dragKey != "" && key == dragKey:
			st = st.Background(colorDropTargetBg)
		case key == anchorKey && !m.drag.Active():
			st = st.Background(colorSelectedBg)
		}
		cols = append(cols, st.Render(body)+" ")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
