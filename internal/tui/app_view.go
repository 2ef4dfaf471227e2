package tui

import (
	"strconv"
	"strings"

	"labplan-cli/internal/schedule"

	"github.com/charmbracelet/lipgloss"
)

const miniCalW = 24

func (m appModel) View() string {
	width := m.width
	if width < 60 {
		width = 60
	}
	height := m.height
	if height < 16 {
		height = 16
	}
	bodyH := height - 7
	if bodyH < 8 {
		bodyH = 8
	}

	header := m.viewHeader(width)
	focus := m.viewFocusBar(width)

	var body string
	switch m.vs.Granularity {
	case schedule.GranularityMonth:
		body = m.viewMonth(width)
	case schedule.GranularityWeek:
		main := m.viewWeek(width-miniCalW-2, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", m.viewMiniCalendar(miniCalW))
	default:
		main := m.viewDay(width-miniCalW-2, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", m.viewMiniCalendar(miniCalW))
	}

	sections := []string{header, focus, body}
	switch m.modal {
	case modalQuickAdd:
		sections = append(sections, m.viewQuickAdd(width))
	case modalFilter:
		sections = append(sections, m.viewFilterMenu(width))
	}
	sections = append(sections, m.viewFooter(width))

	return strings.Join(sections, "\n")
}

func (m appModel) viewHeader(width int) string {
	label := m.vs.Anchor.Format("January 2006")
	if m.vs.Granularity == schedule.GranularityDay {
		label = m.vs.Anchor.Format("Jan 2, 2006")
	}

	title := lipgloss.NewStyle().Bold(true).Render("LabPlan")
	nav := dirGlyph(m.vs.Direction) + " " + label + " " + glyphBullet() + " " + string(m.vs.Granularity)

	line := title + "  " + nav
	if fs := m.filterSummary(); fs != "" {
		line += "  " + lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Render(" "+fs+" ")
	}
	if m.debugEnabled {
		line += "  " + styleMuted().Render(m.store.Dir)
	}
	return truncateCell(line, width)
}

func dirGlyph(d schedule.Direction) string {
	if d == schedule.DirectionLeft {
		if glyphs() == glyphSetASCII {
			return "<-"
		}
		return "←"
	}
	return glyphArrow()
}

// viewFocusBar renders the today's-focus summary over the full unfiltered
// collection.
func (m appModel) viewFocusBar(width int) string {
	s := schedule.BuildFocusSummary(m.db.Tasks, m.now())
	sep := " " + glyphBullet() + " "
	line := "Today: " +
		strconv.Itoa(s.DueTodayCount) + " due" + sep +
		strconv.Itoa(s.OverdueCount) + " overdue" + sep +
		strconv.Itoa(s.WaitingCount) + " waiting" + sep +
		strconv.Itoa(s.ReminderCount) + " reminders"
	return truncateCell(styleMuted().Render(line), width)
}

func (m appModel) viewFooter(width int) string {
	var help string
	switch {
	case m.drag.Active():
		help = "arrows: move  enter: drop  esc: cancel"
	case m.modal != modalNone:
		help = "esc: close"
	default:
		help = "d/w/m: view  h/l: prev/next  t: today  arrows: navigate  g: grab  a: add  f: filter  q: quit"
	}
	lines := []string{styleMuted().Render(help)}
	if m.statusText != "" {
		lines = append(lines, truncateCell(m.statusText, width))
	}
	return strings.Join(lines, "\n")
}
