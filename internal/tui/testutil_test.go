package tui

import (
	"testing"
	"time"

	"labplan-cli/internal/model"
	"labplan-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func fixedNow(key string) func() time.Time {
	d, err := time.Parse("2006-01-02", key)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return d }
}

func testModelAt(t *testing.T, tasks []model.Task, nowKey string) appModel {
	t.Helper()
	dir := t.TempDir()
	s := store.Store{Dir: dir}
	db := &store.DB{Version: 1, Tasks: tasks}
	if err := s.Save(db); err != nil {
		t.Fatalf("save db: %v", err)
	}
	return newAppModelAt(s, db, fixedNow(nowKey))
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		mAny, _ := m.Update(keyMsg(k))
		m = mAny.(appModel)
	}
	return m
}

func dueTask(id, title, dateKey string) model.Task {
	now := time.Now().UTC()
	return model.Task{
		ID:        id,
		Title:     title,
		Status:    model.StatusTodo,
		Priority:  model.PriorityMedium,
		Category:  model.CategoryOther,
		Due:       &model.DateTime{Date: dateKey},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
