package schedule

import (
	"sort"
	"time"

	"labplan-cli/internal/model"
)

// DefaultFollowUpHours applies when a waiting task has no explicit threshold.
const DefaultFollowUpHours = 48

// BucketIndex maps a day key (YYYY-MM-DD) to the tasks due that day, each
// bucket sorted by ascending priority weight (stable: equal priorities keep
// input order).
type BucketIndex map[string][]model.Task

// PriorityWeight orders tasks within a bucket. Unknown priorities sort last.
func PriorityWeight(p model.Priority) int {
	switch p {
	case model.PriorityUrgent:
		return 0
	case model.PriorityHigh:
		return 1
	case model.PriorityMedium:
		return 2
	case model.PriorityLow:
		return 3
	default:
		return 4
	}
}

// BuildBucketIndex derives the date→tasks mapping from the full collection.
// Tasks with no due date, a malformed due date, or in a closed state are
// skipped. The input is never mutated; callers rebuild only when the
// collection changes.
func BuildBucketIndex(tasks []model.Task) BucketIndex {
	idx := BucketIndex{}
	for _, t := range tasks {
		key, ok := bucketKeyFor(t)
		if !ok {
			continue
		}
		idx[key] = append(idx[key], t)
	}
	for key, bucket := range idx {
		sort.SliceStable(bucket, func(i, j int) bool {
			return PriorityWeight(bucket[i].Priority) < PriorityWeight(bucket[j].Priority)
		})
		idx[key] = bucket
	}
	return idx
}

func bucketKeyFor(t model.Task) (string, bool) {
	if t.IsClosed() {
		return "", false
	}
	if t.Due == nil || t.Due.Date == "" {
		return "", false
	}
	d, err := ParseDayKey(t.Due.Date)
	if err != nil {
		// One bad record must not break the calendar; treat as undated.
		return "", false
	}
	return DayKey(d), true
}

// FlatIndex builds an id→task lookup over all bucketed tasks, used by the
// drag controller to resolve drag starts against what is actually visible.
func (idx BucketIndex) FlatIndex() map[string]model.Task {
	flat := make(map[string]model.Task)
	for _, bucket := range idx {
		for _, t := range bucket {
			flat[t.ID] = t
		}
	}
	return flat
}

// Keys returns the bucket keys in ascending date order.
func (idx BucketIndex) Keys() []string {
	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Per-task predicates. The renderers and the focus aggregator must share
// these; duplicating slightly different thresholds is how counters drift.

// IsOverdue reports whether the task's due-date key is strictly before
// now's day key. Comparing keys (not timestamps) avoids timezone skew.
func IsOverdue(t model.Task, now time.Time) bool {
	if t.IsClosed() || t.Due == nil || t.Due.Date == "" {
		return false
	}
	d, err := ParseDayKey(t.Due.Date)
	if err != nil {
		return false
	}
	return DayKey(d) < DayKey(now)
}

// IsDueOn reports whether the task is due on now's calendar date.
func IsDueOn(t model.Task, day time.Time) bool {
	if t.Due == nil || t.Due.Date == "" {
		return false
	}
	d, err := ParseDayKey(t.Due.Date)
	if err != nil {
		return false
	}
	return DayKey(d) == DayKey(day)
}

// IsFollowUpOverdue reports whether a waiting-for-response task has waited
// past its follow-up threshold (default 48h).
func IsFollowUpOverdue(t model.Task, now time.Time) bool {
	if !t.WaitingForResponse || t.WaitingSince == nil {
		return false
	}
	hours := t.FollowUpAfterHours
	if hours <= 0 {
		hours = DefaultFollowUpHours
	}
	return now.Sub(*t.WaitingSince) >= time.Duration(hours)*time.Hour
}

// HasPendingReminder reports whether the task has a reminder still to fire:
// either a future reminderAt, or any reminder entry with pending status.
func HasPendingReminder(t model.Task, now time.Time) bool {
	if t.ReminderAt != nil && t.ReminderAt.After(now) {
		return true
	}
	for _, r := range t.Reminders {
		if r.Status == model.ReminderPending {
			return true
		}
	}
	return false
}

// HasIncompleteSubtasks reports whether any subtask is still open.
func HasIncompleteSubtasks(t model.Task) bool {
	done, total := t.SubtaskProgress()
	return total > 0 && done < total
}
