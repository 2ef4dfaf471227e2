package schedule

import (
	"testing"
	"time"

	"labplan-cli/internal/model"
)

func TestFocusSummary_CountsOverFullCollection(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	since := now.Add(-60 * time.Hour)
	remindAt := now.Add(3 * time.Hour)

	tasks := []model.Task{
		{ID: "overdue", Due: due("2025-06-08")},
		{ID: "overdue-done", Due: due("2025-06-08"), Completed: true},
		{ID: "today-urgent", Due: due("2025-06-10"), Priority: model.PriorityUrgent},
		{ID: "today-low", Due: due("2025-06-10"), Priority: model.PriorityLow, ReminderAt: &remindAt},
		{ID: "today-done", Due: due("2025-06-10"), Status: model.StatusDone},
		{ID: "waiting", WaitingForResponse: true, WaitingSince: &since},
		{ID: "waiting-done", WaitingForResponse: true, Completed: true},
		{ID: "future", Due: due("2025-06-20")},
	}

	s := BuildFocusSummary(tasks, now)
	if s.OverdueCount != 1 {
		t.Fatalf("expected 1 overdue, got %d", s.OverdueCount)
	}
	if s.DueTodayCount != 2 {
		t.Fatalf("expected 2 due today, got %d", s.DueTodayCount)
	}
	if s.WaitingCount != 1 {
		t.Fatalf("expected 1 waiting (completed excluded), got %d", s.WaitingCount)
	}
	if s.ReminderCount != 1 {
		t.Fatalf("expected 1 pending reminder among today's tasks, got %d", s.ReminderCount)
	}
}

func TestFocusSummary_DueTodayListSortedLikeBuckets(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "low", Due: due("2025-06-10"), Priority: model.PriorityLow},
		{ID: "urgent", Due: due("2025-06-10"), Priority: model.PriorityUrgent},
		{ID: "med-a", Due: due("2025-06-10"), Priority: model.PriorityMedium},
		{ID: "med-b", Due: due("2025-06-10"), Priority: model.PriorityMedium},
	}

	s := BuildFocusSummary(tasks, now)
	want := []string{"urgent", "med-a", "med-b", "low"}
	if len(s.DueToday) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(s.DueToday))
	}
	for i, id := range want {
		if s.DueToday[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, s.DueToday[i].ID)
		}
	}
}

func TestFocusSummary_ReminderCountScopesToTodayOnly(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "tomorrow-reminder", Due: due("2025-06-11"), Reminders: []model.Reminder{{Status: model.ReminderPending}}},
	}
	s := BuildFocusSummary(tasks, now)
	if s.ReminderCount != 0 {
		t.Fatalf("reminders on non-today tasks must not count, got %d", s.ReminderCount)
	}
}

func TestFocusSummary_AgreesWithRendererPredicates(t *testing.T) {
	// The header numbers come from the same predicates the renderers use, so
	// recounting with the predicates directly must match.
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	since := now.Add(-50 * time.Hour)
	tasks := []model.Task{
		{ID: "a", Due: due("2025-06-01")},
		{ID: "b", Due: due("2025-06-10"), WaitingForResponse: true, WaitingSince: &since},
		{ID: "c", Due: due("2025-06-10"), Reminders: []model.Reminder{{Status: model.ReminderPending}}},
	}

	s := BuildFocusSummary(tasks, now)

	overdue, reminders := 0, 0
	for _, task := range tasks {
		if IsOverdue(task, now) {
			overdue++
		}
		if IsDueOn(task, now) && !task.IsClosed() && HasPendingReminder(task, now) {
			reminders++
		}
	}
	if s.OverdueCount != overdue || s.ReminderCount != reminders {
		t.Fatalf("summary disagrees with predicates: summary=(%d,%d) predicates=(%d,%d)",
			s.OverdueCount, s.ReminderCount, overdue, reminders)
	}
}
