package schedule

import (
	"testing"
	"time"

	"labplan-cli/internal/model"
)

func due(key string) *model.DateTime {
	return &model.DateTime{Date: key}
}

func TestBuildBucketIndex_SortsByPriorityWeight(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Due: due("2025-06-10"), Priority: model.PriorityLow},
		{ID: "b", Due: due("2025-06-10"), Priority: model.PriorityUrgent},
	}
	idx := BuildBucketIndex(tasks)

	bucket := idx["2025-06-10"]
	if len(bucket) != 2 {
		t.Fatalf("expected 2 tasks in bucket, got %d", len(bucket))
	}
	if bucket[0].ID != "b" || bucket[1].ID != "a" {
		t.Fatalf("expected order [b a], got [%s %s]", bucket[0].ID, bucket[1].ID)
	}
}

func TestBuildBucketIndex_EqualPriorityKeepsInputOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: "first", Due: due("2025-06-10"), Priority: model.PriorityMedium},
		{ID: "second", Due: due("2025-06-10"), Priority: model.PriorityMedium},
		{ID: "third", Due: due("2025-06-10"), Priority: model.PriorityMedium},
	}
	idx := BuildBucketIndex(tasks)

	bucket := idx["2025-06-10"]
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if bucket[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, bucket[i].ID)
		}
	}
}

func TestBuildBucketIndex_ExcludesClosedAndUndatedTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: "completed", Due: due("2025-06-10"), Completed: true},
		{ID: "done-status", Due: due("2025-06-10"), Status: model.StatusDone},
		{ID: "no-due"},
		{ID: "kept", Due: due("2025-06-10"), Status: model.StatusTodo},
	}
	idx := BuildBucketIndex(tasks)

	bucket := idx["2025-06-10"]
	if len(bucket) != 1 || bucket[0].ID != "kept" {
		t.Fatalf("expected only [kept], got %v", bucket)
	}
}

func TestBuildBucketIndex_MalformedDueDateIsSkippedNotFatal(t *testing.T) {
	tasks := []model.Task{
		{ID: "bad", Due: due("not-a-date")},
		{ID: "good", Due: due("2025-06-10")},
	}
	idx := BuildBucketIndex(tasks)

	if len(idx) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(idx))
	}
	if got := idx["2025-06-10"]; len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("expected [good], got %v", got)
	}
}

func TestBuildBucketIndex_TimestampDueDateBucketsByDatePrefix(t *testing.T) {
	tasks := []model.Task{
		{ID: "ts", Due: due("2025-06-10T23:45:00Z")},
	}
	idx := BuildBucketIndex(tasks)
	if got := idx["2025-06-10"]; len(got) != 1 {
		t.Fatalf("expected task bucketed under date prefix, got index %v", idx)
	}
}

func TestFlatIndex_CoversAllBuckets(t *testing.T) {
	idx := BuildBucketIndex([]model.Task{
		{ID: "a", Due: due("2025-06-10")},
		{ID: "b", Due: due("2025-06-11")},
	})
	flat := idx.FlatIndex()
	if len(flat) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(flat))
	}
	if _, ok := flat["a"]; !ok {
		t.Fatalf("missing task a in flat index")
	}
}

func TestIsFollowUpOverdue_DefaultAndExplicitThresholds(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	since := now.Add(-50 * time.Hour)

	base := model.Task{WaitingForResponse: true, WaitingSince: &since}

	if !IsFollowUpOverdue(base, now) {
		t.Fatalf("50h wait with default 48h threshold should be overdue")
	}

	withLonger := base
	withLonger.FollowUpAfterHours = 72
	if IsFollowUpOverdue(withLonger, now) {
		t.Fatalf("50h wait with 72h threshold should not be overdue")
	}

	notWaiting := base
	notWaiting.WaitingForResponse = false
	if IsFollowUpOverdue(notWaiting, now) {
		t.Fatalf("non-waiting task is never follow-up overdue")
	}
}

func TestIsOverdue_ComparesDayKeysNotTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		task model.Task
		want bool
	}{
		{"yesterday", model.Task{Due: due("2025-06-09")}, true},
		{"today", model.Task{Due: due("2025-06-10")}, false},
		{"tomorrow", model.Task{Due: due("2025-06-11")}, false},
		{"completed yesterday", model.Task{Due: due("2025-06-09"), Completed: true}, false},
		{"undated", model.Task{}, false},
	}
	for _, tc := range cases {
		if got := IsOverdue(tc.task, now); got != tc.want {
			t.Fatalf("%s: IsOverdue=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHasPendingReminder(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)

	cases := []struct {
		name string
		task model.Task
		want bool
	}{
		{"future reminderAt", model.Task{ReminderAt: &future}, true},
		{"past reminderAt", model.Task{ReminderAt: &past}, false},
		{"pending entry", model.Task{Reminders: []model.Reminder{{Status: model.ReminderPending}}}, true},
		{"sent entry", model.Task{Reminders: []model.Reminder{{Status: model.ReminderSent}}}, false},
		{"none", model.Task{}, false},
	}
	for _, tc := range cases {
		if got := HasPendingReminder(tc.task, now); got != tc.want {
			t.Fatalf("%s: HasPendingReminder=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestHasIncompleteSubtasks(t *testing.T) {
	open := model.Task{Subtasks: []model.Subtask{{Done: true}, {Done: false}}}
	if !HasIncompleteSubtasks(open) {
		t.Fatalf("task with an open subtask should report incomplete")
	}
	closed := model.Task{Subtasks: []model.Subtask{{Done: true}}}
	if HasIncompleteSubtasks(closed) {
		t.Fatalf("all-done subtasks should not report incomplete")
	}
	if HasIncompleteSubtasks(model.Task{}) {
		t.Fatalf("no subtasks should not report incomplete")
	}
}
