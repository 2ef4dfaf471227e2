package tui

import (
	"strings"

	"labplan-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Filter menu: toggle category and assignee checkboxes. Toggles apply to the
// live filter immediately, so the calendar behind the menu updates as boxes
// are checked.

func (m appModel) filterAssignees() []string {
	return m.db.Assignees()
}

func (m *appModel) filterSectionLen() int {
	if m.filterSection == filterSectionCategories {
		return len(model.Categories)
	}
	return len(m.filterAssignees())
}

func (m appModel) updateFilterMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f", "q":
		m.modal = modalNone
		m.clampTaskIdx()
		return m, nil

	case "up", "k":
		if m.filterIdx > 0 {
			m.filterIdx--
		}
		return m, nil
	case "down", "j":
		if m.filterIdx < m.filterSectionLen()-1 {
			m.filterIdx++
		}
		return m, nil

	case "tab", "left", "right":
		if m.filterSection == filterSectionCategories {
			if len(m.filterAssignees()) > 0 {
				m.filterSection = filterSectionAssignees
			}
		} else {
			m.filterSection = filterSectionCategories
		}
		m.filterIdx = 0
		return m, nil

	case " ", "enter":
		if m.filterSection == filterSectionCategories {
			if m.filterIdx >= 0 && m.filterIdx < len(model.Categories) {
				m.filter.ToggleCategory(model.Categories[m.filterIdx])
			}
		} else {
			who := m.filterAssignees()
			if m.filterIdx >= 0 && m.filterIdx < len(who) {
				m.filter.ToggleAssignee(who[m.filterIdx])
			}
		}
		return m, nil

	case "c":
		// Clear everything: back to the match-all filter.
		for cat := range m.filter.Categories {
			delete(m.filter.Categories, cat)
		}
		for who := range m.filter.Assignees {
			delete(m.filter.Assignees, who)
		}
		return m, nil
	}
	return m, nil
}

func checkbox(label string, checked, cursor bool) string {
	box := "[ ] "
	if checked {
		box = "[x] "
	}
	line := box + label
	if cursor {
		return lipgloss.NewStyle().
			Background(colorSelectedBg).
			Foreground(colorSelectedFg).
			Render(line)
	}
	return line
}

func (m appModel) viewFilterMenu(width int) string {
	var cats []string
	cats = append(cats, lipgloss.NewStyle().Bold(true).Render("Categories"))
	for i, c := range model.Categories {
		cursor := m.filterSection == filterSectionCategories && m.filterIdx == i
		cats = append(cats, checkbox(string(c), m.filter.Categories[c], cursor))
	}

	var people []string
	people = append(people, lipgloss.NewStyle().Bold(true).Render("Assignees"))
	assignees := m.filterAssignees()
	if len(assignees) == 0 {
		people = append(people, styleMuted().Render("(none yet)"))
	}
	for i, who := range assignees {
		cursor := m.filterSection == filterSectionAssignees && m.filterIdx == i
		people = append(people, checkbox(who, m.filter.Assignees[who], cursor))
	}

	colH := len(cats)
	if len(people) > colH {
		colH = len(people)
	}
	left := normalizePane(strings.Join(cats, "\n"), 24, colH)
	right := normalizePane(strings.Join(people, "\n"), 24, colH)

	hint := styleMuted().Render("space: toggle  tab: switch column  c: clear  esc: close")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right) + "\n" + hint)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// filterSummary is the header chip describing the active filter.
func (m appModel) filterSummary() string {
	if m.filter.Empty() {
		return ""
	}
	var parts []string
	for _, c := range model.Categories {
		if m.filter.Categories[c] {
			parts = append(parts, string(c))
		}
	}
	for _, who := range m.filterAssignees() {
		if m.filter.Assignees[who] {
			parts = append(parts, who)
		}
	}
	return "filter: " + strings.Join(parts, ",")
}
