package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"labplan-cli/internal/model"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	now := time.Now().UTC().Truncate(time.Second)

	db := &DB{Tasks: []model.Task{
		{
			ID:        "task-a",
			Title:     "Run western blot",
			Status:    model.StatusTodo,
			Priority:  model.PriorityHigh,
			Category:  model.CategoryExperiment,
			Due:       &model.DateTime{Date: "2025-06-10"},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}}
	if err := s.Save(db); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("expected version 1, got %d", got.Version)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != "task-a" {
		t.Fatalf("unexpected tasks: %+v", got.Tasks)
	}
	if got.Tasks[0].Due == nil || got.Tasks[0].Due.Date != "2025-06-10" {
		t.Fatalf("due date lost in round trip: %+v", got.Tasks[0].Due)
	}
}

func TestStore_LoadMissingDirYieldsEmptyDB(t *testing.T) {
	s := Store{Dir: t.TempDir() + "/nested/.labplan"}
	db, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(db.Tasks) != 0 {
		t.Fatalf("expected empty db, got %d tasks", len(db.Tasks))
	}
}

func TestNewID_PrefixAndUniqueness(t *testing.T) {
	a := NewID("task")
	b := NewID("task")
	if !strings.HasPrefix(a, "task-") {
		t.Fatalf("expected task- prefix, got %s", a)
	}
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
}

func TestDB_Assignees_DistinctFirstSeenOrder(t *testing.T) {
	db := &DB{Tasks: []model.Task{
		{ID: "1", AssignedTo: "ida"},
		{ID: "2", AssignedTo: "sam"},
		{ID: "3", AssignedTo: "ida"},
		{ID: "4"},
		{ID: "5", AssignedTo: "  "},
	}}
	got := db.Assignees()
	if len(got) != 2 || got[0] != "ida" || got[1] != "sam" {
		t.Fatalf("expected [ida sam], got %v", got)
	}
}

func TestStore_AppendAndTailEvents(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	for _, id := range []string{"task-a", "task-b", "task-c"} {
		if err := s.AppendEvent(EventTaskRescheduled, id, map[string]string{"to": "2025-06-11"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	evs, err := s.ReadEventsTail(2)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].EntityID != "task-b" || evs[1].EntityID != "task-c" {
		t.Fatalf("expected chronological tail [task-b task-c], got [%s %s]", evs[0].EntityID, evs[1].EntityID)
	}
	if evs[0].Type != EventTaskRescheduled {
		t.Fatalf("unexpected event type %s", evs[0].Type)
	}
}

func TestStore_ReadEventsTailMissingFile(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	evs, err := s.ReadEventsTail(10)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(evs) != 0 {
		t.Fatalf("expected no events, got %d", len(evs))
	}
}

func TestStore_SQLiteIndexRangeQuery(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	db := &DB{Tasks: []model.Task{
		{ID: "task-early", Due: &model.DateTime{Date: "2025-06-01"}},
		{ID: "task-mid", Due: &model.DateTime{Date: "2025-06-10"}},
		{ID: "task-late", Due: &model.DateTime{Date: "2025-06-20"}},
		{ID: "task-done", Due: &model.DateTime{Date: "2025-06-10"}, Completed: true},
		{ID: "task-undated"},
	}}
	if err := s.RebuildIndex(ctx, db); err != nil {
		t.Fatalf("rebuild index: %v", err)
	}

	got, err := s.QueryDueBetween(ctx, "2025-06-05", "2025-06-15")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != "task-mid" {
		t.Fatalf("expected [task-mid], got %+v", got)
	}

	all, err := s.QueryDueBetween(ctx, "", "")
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 open dated tasks, got %d", len(all))
	}

	n, err := s.CountIndexed(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 indexed rows, got %d", n)
	}
}

func TestStore_RebuildIndexIsIdempotent(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()
	db := &DB{Tasks: []model.Task{{ID: "task-a", Due: &model.DateTime{Date: "2025-06-01"}}}}

	if err := s.RebuildIndex(ctx, db); err != nil {
		t.Fatalf("first rebuild: %v", err)
	}
	if err := s.RebuildIndex(ctx, db); err != nil {
		t.Fatalf("second rebuild: %v", err)
	}
	n, err := s.CountIndexed(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row after rebuilds, got %d", n)
	}
}

func TestTUIState_RoundTripAndCorruptionTolerance(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	st, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if st.Granularity != "" {
		t.Fatalf("expected zero state, got %+v", st)
	}

	st.Granularity = "month"
	st.AnchorDate = "2025-06-10"
	if err := s.SaveTUIState(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Granularity != "month" || got.AnchorDate != "2025-06-10" {
		t.Fatalf("round trip lost state: %+v", got)
	}
}
