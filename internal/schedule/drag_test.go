package schedule

import (
	"errors"
	"testing"

	"labplan-cli/internal/model"
)

type rescheduleRecorder struct {
	calls    []struct{ taskID, dateKey string }
	failWith error
}

func (r *rescheduleRecorder) fn(taskID, dateKey string) error {
	r.calls = append(r.calls, struct{ taskID, dateKey string }{taskID, dateKey})
	return r.failWith
}

func dragIndex() BucketIndex {
	return BuildBucketIndex([]model.Task{
		{ID: "x", Due: due("2025-06-05")},
		{ID: "y", Due: due("2025-06-06")},
	})
}

func TestDrag_StartOverDropEmitsOneCommand(t *testing.T) {
	rec := &rescheduleRecorder{}
	c := NewDragController(rec.fn)

	if !c.Start("x", dragIndex()) {
		t.Fatalf("expected drag to start")
	}
	if !c.Active() {
		t.Fatalf("expected active drag")
	}
	c.Over("2025-06-06")
	c.Over("2025-06-07")
	if ok, err := c.Drop("2025-06-07"); !ok || err != nil {
		t.Fatalf("expected drop to commit, got ok=%v err=%v", ok, err)
	}
	if c.Active() {
		t.Fatalf("controller must return to idle after drop")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected exactly one reschedule command, got %d", len(rec.calls))
	}
	if rec.calls[0].taskID != "x" || rec.calls[0].dateKey != "2025-06-07" {
		t.Fatalf("unexpected command: %+v", rec.calls[0])
	}
}

func TestDrag_StartOnStaleIDIsNoOp(t *testing.T) {
	rec := &rescheduleRecorder{}
	c := NewDragController(rec.fn)

	if c.Start("deleted-meanwhile", dragIndex()) {
		t.Fatalf("stale id must not start a drag")
	}
	if c.Active() {
		t.Fatalf("controller must stay idle")
	}
}

func TestDrag_CancelBeforeDropEmitsNothing(t *testing.T) {
	rec := &rescheduleRecorder{}
	c := NewDragController(rec.fn)

	c.Start("x", dragIndex())
	c.Over("2025-06-07")
	c.Cancel()
	if c.Active() {
		t.Fatalf("expected idle after cancel")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("cancel must not emit a reschedule, got %d", len(rec.calls))
	}
}

func TestDrag_DropWithoutTargetIsSilentCancellation(t *testing.T) {
	rec := &rescheduleRecorder{}
	c := NewDragController(rec.fn)

	c.Start("x", dragIndex())
	if ok, _ := c.Drop(""); ok {
		t.Fatalf("drop outside any cell must not commit")
	}
	if c.Active() || len(rec.calls) != 0 {
		t.Fatalf("expected idle with no command")
	}
}

func TestDrag_DropOnSourceCellIsClickNotReschedule(t *testing.T) {
	rec := &rescheduleRecorder{}
	c := NewDragController(rec.fn)

	c.Start("x", dragIndex())
	if ok, _ := c.Drop("2025-06-05"); ok {
		t.Fatalf("dropping on the source cell must not reschedule")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no command, got %d", len(rec.calls))
	}
}

func TestDrag_ReentrantDropIsRejected(t *testing.T) {
	rec := &rescheduleRecorder{}
	c := NewDragController(rec.fn)

	c.Start("x", dragIndex())
	c.Drop("2025-06-07")
	// Double-fire: the second drop arrives after the state left dragging.
	if ok, _ := c.Drop("2025-06-08"); ok {
		t.Fatalf("re-entrant drop must be rejected")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected exactly one command, got %d", len(rec.calls))
	}
}

func TestDrag_SecondStartWhileDraggingIsRejected(t *testing.T) {
	c := NewDragController(nil)
	c.Start("x", dragIndex())
	if c.Start("y", dragIndex()) {
		t.Fatalf("a second start must not replace the in-flight session")
	}
	s, _ := c.Session()
	if s.TaskID != "x" {
		t.Fatalf("expected original session, got %+v", s)
	}
}

func TestDrag_SessionRecordsSourceBucket(t *testing.T) {
	c := NewDragController(nil)
	c.Start("y", dragIndex())
	s, ok := c.Session()
	if !ok || s.SourceKey != "2025-06-06" {
		t.Fatalf("expected source key 2025-06-06, got %+v ok=%v", s, ok)
	}
}

func TestDrag_NoCallbackRegisteredStillReturnsToIdle(t *testing.T) {
	c := NewDragController(nil)
	c.Start("x", dragIndex())
	if ok, _ := c.Drop("2025-06-07"); ok {
		t.Fatalf("drop without a registered callback must not report a commit")
	}
	if c.Active() {
		t.Fatalf("expected idle")
	}
}

func TestDrag_CallbackFailureIsNotACommit(t *testing.T) {
	rec := &rescheduleRecorder{failWith: errors.New("disk full")}
	c := NewDragController(rec.fn)

	c.Start("x", dragIndex())
	ok, err := c.Drop("2025-06-07")
	if ok {
		t.Fatalf("a failed persist must not be reported as a commit")
	}
	if err == nil {
		t.Fatalf("expected the callback error to surface")
	}
	if c.Active() {
		t.Fatalf("session must still be destroyed after a failed drop")
	}
	// Retrying needs a fresh gesture; the dead session emits nothing more.
	if ok, _ := c.Drop("2025-06-08"); ok {
		t.Fatalf("re-entrant drop after a failure must be rejected")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected exactly one command, got %d", len(rec.calls))
	}
}

func TestDrag_SessionInvariantAcrossSequences(t *testing.T) {
	// After any start→over*→(drop|cancel) sequence the controller is idle and
	// exactly one command was emitted iff the sequence ended in a real drop.
	type step struct {
		op  string
		key string
	}
	cases := []struct {
		name      string
		steps     []step
		wantCalls int
	}{
		{"drop with target", []step{{"start", ""}, {"over", "2025-06-07"}, {"drop", "2025-06-07"}}, 1},
		{"cancel after overs", []step{{"start", ""}, {"over", "2025-06-06"}, {"over", "2025-06-07"}, {"cancel", ""}}, 0},
		{"drop no target", []step{{"start", ""}, {"drop", ""}}, 0},
		{"immediate cancel", []step{{"start", ""}, {"cancel", ""}}, 0},
	}
	for _, tc := range cases {
		rec := &rescheduleRecorder{}
		c := NewDragController(rec.fn)
		for _, s := range tc.steps {
			switch s.op {
			case "start":
				c.Start("x", dragIndex())
			case "over":
				c.Over(s.key)
			case "drop":
				c.Drop(s.key)
			case "cancel":
				c.Cancel()
			}
		}
		if c.Active() {
			t.Fatalf("%s: expected idle at end", tc.name)
		}
		if len(rec.calls) != tc.wantCalls {
			t.Fatalf("%s: expected %d commands, got %d", tc.name, tc.wantCalls, len(rec.calls))
		}
	}
}
