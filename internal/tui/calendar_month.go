package tui

import (
	"strconv"
	"strings"

	"labplan-cli/internal/model"
	"labplan-cli/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

// Month grid: 7 columns, 5 or 6 weeks, at most maxTasksPerCell task rows per
// cell with a "+N more" overflow line.

const maxTasksPerCell = 3

var weekdayShort = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (m appModel) viewMonth(width int) string {
	grid := schedule.BuildMonthGrid(m.vs.Anchor, m.now())
	idx := m.visibleIndex()

	cellW := width / 7
	if cellW < 10 {
		cellW = 10
	}
	// Day-number line + task rows + overflow line.
	cellH := maxTasksPerCell + 2

	cursor, cursorOK := m.nav.Cursor()
	dragKey := ""
	if s, ok := m.drag.Session(); ok {
		dragKey = s.TargetKey
	}

	var header []string
	for _, wd := range weekdayShort {
		header = append(header, normalizePane(styleMuted().Render(wd), cellW, 1))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for r, week := range grid.Weeks {
		var cells []string
		for col, cell := range week {
			isCursor := cursorOK && cursor.Row == r && cursor.Col == col
			isDrop := dragKey != "" && cell.Key == dragKey
			cells = append(cells, m.renderMonthCell(cell, idx[cell.Key], cellW, cellH, isCursor, isDrop))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(rows, "\n")
}

func (m appModel) renderMonthCell(cell schedule.GridCell, bucket []model.Task, cellW, cellH int, isCursor, isDrop bool) string {
	dayStyle := lipgloss.NewStyle()
	switch {
	case cell.IsToday:
		dayStyle = dayStyle.Bold(true).Foreground(colorTodayFg)
	case !cell.InMonth:
		dayStyle = dayStyle.Foreground(colorOutMonthFg)
	}
	dayLabel := strconv.Itoa(cell.Date.Day())
	if cell.IsToday {
		dayLabel += " " + glyphBullet()
	}

	lines := []string{dayStyle.Render(dayLabel)}

	shown := bucket
	if len(shown) > maxTasksPerCell {
		shown = shown[:maxTasksPerCell]
	}
	selectedIdx := -1
	if isCursor && !m.drag.Active() {
		selectedIdx = m.taskIdx
	}
	for i, t := range shown {
		lines = append(lines, m.taskLine(t, cellW-1, i == selectedIdx))
	}
	if extra := len(bucket) - len(shown); extra > 0 {
		lines = append(lines, styleMuted().Render("+"+strconv.Itoa(extra)+" more"))
	}

	body := normalizePane(strings.Join(lines, "\n"), cellW-1, cellH)

	st := lipgloss.NewStyle()
	switch {
	case isDrop:
		st = st.Background(colorDropTargetBg)
	case isCursor:
		st = st.Background(colorSelectedBg)
	}
	// One column of breathing room between cells.
	return st.Render(body) + " "
}
