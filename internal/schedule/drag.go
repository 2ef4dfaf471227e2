package schedule

// DragSession is the ephemeral state of one grab-to-reschedule gesture. It
// exists only between start and drop/cancel and is destroyed unconditionally
// on either.
type DragSession struct {
	TaskID    string
	SourceKey string
	// TargetKey is the candidate drop bucket, empty until the gesture moves
	// over a cell.
	TargetKey string
}

// RescheduleFunc receives the single command emitted by a successful drop.
// Persistence is the host's job; the controller never mutates tasks. A
// non-nil error means the host failed to persist and the task stays put.
type RescheduleFunc func(taskID, dateKey string) error

// DragController coordinates drag-to-reschedule across the views: one shared
// session value, observed by every renderer, instead of per-cell hover flags
// that can orphan a popup mid-drag.
type DragController struct {
	session      *DragSession
	onReschedule RescheduleFunc
}

func NewDragController(onReschedule RescheduleFunc) *DragController {
	return &DragController{onReschedule: onReschedule}
}

// Active reports whether a drag is in flight. All renderers consult this to
// suppress their hover/preview affordances while a drag is in progress.
func (c *DragController) Active() bool {
	return c != nil && c.session != nil
}

// Session returns a copy of the in-flight session.
func (c *DragController) Session() (DragSession, bool) {
	if !c.Active() {
		return DragSession{}, false
	}
	return *c.session, true
}

// Start begins a drag for taskID, resolving it against the currently visible
// buckets. A stale id (task deleted or filtered out mid-gesture) is a silent
// no-op: the controller never enters dragging.
func (c *DragController) Start(taskID string, idx BucketIndex) bool {
	if c.session != nil {
		return false
	}
	for key, bucket := range idx {
		for _, t := range bucket {
			if t.ID == taskID {
				c.session = &DragSession{TaskID: taskID, SourceKey: key}
				return true
			}
		}
	}
	return false
}

// Over updates the candidate drop target. No persistence side effect.
func (c *DragController) Over(targetKey string) {
	if c.session == nil {
		return
	}
	c.session.TargetKey = targetKey
}

// Drop commits the gesture. At most one reschedule command is emitted, and
// only when there is a real target that differs from the source cell:
// dropping back where the task started is a click, not a reschedule. The
// session is destroyed either way, so a re-entrant drop is rejected. A
// callback failure is reported to the caller, never reinterpreted as a
// commit.
func (c *DragController) Drop(targetKey string) (bool, error) {
	s := c.session
	if s == nil {
		return false, nil
	}
	c.session = nil
	if targetKey == "" || targetKey == s.SourceKey {
		return false, nil
	}
	if c.onReschedule == nil {
		return false, nil
	}
	if err := c.onReschedule(s.TaskID, targetKey); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel abandons the gesture unconditionally (Escape, gesture cancel, or the
// owning view unmounting). No residual in-flight state survives.
func (c *DragController) Cancel() {
	c.session = nil
}
