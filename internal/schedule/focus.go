package schedule

import (
	"sort"
	"time"

	"labplan-cli/internal/model"
)

// FocusSummary is the today's-focus header data: derived counts over the
// entire task collection, independent of the active view or filters.
type FocusSummary struct {
	OverdueCount  int
	DueTodayCount int
	WaitingCount  int
	ReminderCount int

	// DueToday lists today's open tasks in bucket order.
	DueToday []model.Task
}

// BuildFocusSummary scans the full unfiltered collection. It reuses the same
// predicates as the renderers so the header numbers can never disagree with
// the per-task badges.
func BuildFocusSummary(tasks []model.Task, now time.Time) FocusSummary {
	var s FocusSummary
	for _, t := range tasks {
		if IsOverdue(t, now) {
			s.OverdueCount++
		}
		if t.WaitingForResponse && !t.IsClosed() {
			s.WaitingCount++
		}
		if IsDueOn(t, now) && !t.IsClosed() {
			s.DueToday = append(s.DueToday, t)
			if HasPendingReminder(t, now) {
				s.ReminderCount++
			}
		}
	}
	sort.SliceStable(s.DueToday, func(i, j int) bool {
		return PriorityWeight(s.DueToday[i].Priority) < PriorityWeight(s.DueToday[j].Priority)
	})
	s.DueTodayCount = len(s.DueToday)
	return s
}
