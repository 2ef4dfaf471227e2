package tui

import (
	"context"
	"strings"
	"time"

	"labplan-cli/internal/model"
	"labplan-cli/internal/schedule"
	"labplan-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Quick add: press "a" on any day to capture a task due that day without
// leaving the calendar. Title only; everything else gets defaults and can be
// edited through the CLI.

func (m appModel) openQuickAdd() (tea.Model, tea.Cmd) {
	m.modal = modalQuickAdd
	m.input.SetValue("")
	m.input.Placeholder = "Task title"
	m.input.Focus()
	return m, nil
}

func (m appModel) updateQuickAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.input.Blur()
		return m, nil

	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.modal = modalNone
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		key := schedule.DayKey(m.selectedDay())
		now := time.Now().UTC()
		t := model.Task{
			ID:        store.NewID("task"),
			Title:     title,
			Status:    model.StatusTodo,
			Priority:  model.PriorityMedium,
			Category:  model.CategoryOther,
			Due:       &model.DateTime{Date: key},
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.db.Tasks = append(m.db.Tasks, t)
		if err := m.store.Save(m.db); err != nil {
			return m, m.setStatus("Save failed: " + err.Error())
		}
		_ = m.store.RebuildIndex(context.Background(), m.db)
		_ = m.store.AppendEvent(store.EventTaskCreated, t.ID, t)
		m.captureStoreModTimes()
		m.rebuildIndex()
		return m, m.setStatus("Added " + title + " on " + key)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) viewQuickAdd(width int) string {
	day := schedule.DayKey(m.selectedDay())
	title := lipgloss.NewStyle().Bold(true).Render("New task " + glyphArrow() + " " + day)
	hint := styleMuted().Render("enter: add  esc: cancel")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(title + "\n" + m.input.View() + "\n" + hint)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
