package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"labplan-cli/internal/model"
	"labplan-cli/internal/schedule"
	"labplan-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
)

type appModel struct {
	store store.Store
	db    *store.DB

	width  int
	height int

	vs     schedule.ViewState
	filter schedule.Filter
	drag   *schedule.DragController
	nav    *schedule.GridNavigator

	// idx is the unfiltered date index, rebuilt whenever the collection
	// changes. Renderers see it through filter.Apply.
	idx schedule.BucketIndex

	// taskIdx selects a task inside the selected day's bucket (j/k).
	taskIdx int

	// dragDay is the candidate drop date while a grab gesture is in flight.
	dragDay time.Time

	modal modalKind
	input textinput.Model

	// Filter menu cursor.
	filterSection filterSection
	filterIdx     int

	statusText string
	statusSeq  int

	debugEnabled bool

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time

	lastDBModTime     time.Time
	lastEventsModTime time.Time
}

func newAppModel(s store.Store, db *store.DB) appModel {
	return newAppModelAt(s, db, nil)
}

func newAppModelAt(s store.Store, db *store.DB, now func() time.Time) appModel {
	if now == nil {
		now = time.Now
	}
	m := appModel{
		store:  s,
		db:     db,
		vs:     schedule.NewViewState(now),
		filter: schedule.NewFilter(),
		nav:    schedule.NewGridNavigator(),
		now:    now,
	}
	m.drag = schedule.NewDragController(func(taskID, dateKey string) error {
		return applyReschedule(s, db, taskID, dateKey)
	})

	if strings.TrimSpace(os.Getenv("LABPLAN_TUI_DEBUG")) != "" {
		m.debugEnabled = true
	}

	m.input = textinput.New()
	m.input.Placeholder = "Task title"
	m.input.CharLimit = 200
	m.input.Width = 40

	m.rebuildIndex()
	m.syncGrid()

	// Best-effort: restore last calendar position.
	if st, err := s.LoadTUIState(); err == nil {
		m.applySavedTUIState(st)
	}

	m.captureStoreModTimes()
	return m
}

// applyReschedule is the single write path for a committed drop: mutate,
// persist, log. The drag controller guarantees it runs at most once per
// gesture. When the save fails the in-memory mutation is undone, so the
// task stays on its original date.
func applyReschedule(s store.Store, db *store.DB, taskID, dateKey string) error {
	t, ok := db.FindTask(taskID)
	if !ok {
		return fmt.Errorf("task not found: %s", taskID)
	}
	prevDue := t.Due
	prevUpdated := t.UpdatedAt
	if prevDue == nil {
		t.Due = &model.DateTime{Date: dateKey}
	} else {
		due := *prevDue
		due.Date = dateKey
		t.Due = &due
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.Save(db); err != nil {
		t.Due = prevDue
		t.UpdatedAt = prevUpdated
		return err
	}
	_ = s.RebuildIndex(context.Background(), db)
	_ = s.AppendEvent(store.EventTaskRescheduled, taskID, map[string]string{"due": dateKey})
	return nil
}

func (m *appModel) rebuildIndex() {
	m.idx = schedule.BuildBucketIndex(m.db.Tasks)
}

// visibleIndex is what the renderers consume: the date index narrowed by the
// active filter.
func (m appModel) visibleIndex() schedule.BucketIndex {
	return m.filter.Apply(m.idx)
}

// syncGrid keeps the navigator bound to the grid currently rendered. The
// navigator resets its cursor itself when the anchor month changes.
func (m *appModel) syncGrid() {
	m.nav.SetGrid(schedule.BuildMonthGrid(m.vs.Anchor, m.now()))
}

// selectedDay is the date task-level actions apply to: the cursor cell on the
// month grid when focused, otherwise the anchor day.
func (m appModel) selectedDay() time.Time {
	if m.vs.Granularity == schedule.GranularityMonth {
		if d, ok := m.nav.Activate(); ok {
			return d
		}
	}
	return m.vs.Anchor
}

// selectedTask resolves taskIdx against the selected day's visible bucket.
func (m appModel) selectedTask() (model.Task, bool) {
	bucket := m.visibleIndex()[schedule.DayKey(m.selectedDay())]
	if len(bucket) == 0 {
		return model.Task{}, false
	}
	i := m.taskIdx
	if i < 0 {
		i = 0
	}
	if i >= len(bucket) {
		i = len(bucket) - 1
	}
	return bucket[i], true
}

func (m *appModel) clampTaskIdx() {
	bucket := m.visibleIndex()[schedule.DayKey(m.selectedDay())]
	if m.taskIdx >= len(bucket) {
		m.taskIdx = len(bucket) - 1
	}
	if m.taskIdx < 0 {
		m.taskIdx = 0
	}
}

func (m *appModel) applySavedTUIState(st *store.TUIState) {
	if st == nil {
		return
	}
	if g := schedule.Granularity(st.Granularity); g != "" {
		m.vs.SetGranularity(g)
	}
	if st.AnchorDate != "" {
		if d, err := schedule.ParseDayKey(st.AnchorDate); err == nil {
			m.vs.Anchor = d
		}
	}
	m.syncGrid()
}

func (m appModel) saveTUIState() {
	_ = m.store.SaveTUIState(&store.TUIState{
		Version:     1,
		Granularity: string(m.vs.Granularity),
		AnchorDate:  schedule.DayKey(m.vs.Anchor),
	})
}

func (m *appModel) captureStoreModTimes() {
	m.lastDBModTime = fileModTime(filepath.Join(m.store.Dir, "db.json"))
	m.lastEventsModTime = fileModTime(filepath.Join(m.store.Dir, "events.jsonl"))
}

func (m *appModel) storeChanged() bool {
	dbMT := fileModTime(filepath.Join(m.store.Dir, "db.json"))
	evMT := fileModTime(filepath.Join(m.store.Dir, "events.jsonl"))
	return dbMT.After(m.lastDBModTime) || evMT.After(m.lastEventsModTime)
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

func (m *appModel) reloadFromDisk() error {
	db, err := m.store.Load()
	if err != nil {
		return err
	}
	// Replace contents in place so the drag controller's write path, which
	// closed over the original pointer, keeps seeing current data.
	*m.db = *db
	m.captureStoreModTimes()
	m.rebuildIndex()
	m.clampTaskIdx()
	return nil
}
