package schedule

import "labplan-cli/internal/model"

// Filter narrows a BucketIndex by category and assignee. An empty set means
// "no filter" (match everything), not "match nothing".
type Filter struct {
	Categories map[model.Category]bool
	Assignees  map[string]bool
}

func NewFilter() Filter {
	return Filter{
		Categories: map[model.Category]bool{},
		Assignees:  map[string]bool{},
	}
}

// Empty reports whether the filter matches everything.
func (f Filter) Empty() bool {
	return len(f.Categories) == 0 && len(f.Assignees) == 0
}

// Matches applies both criteria; a task passes when its category is selected
// (or no categories are selected) and its assignee is selected (or none are).
func (f Filter) Matches(t model.Task) bool {
	if len(f.Categories) > 0 && !f.Categories[t.NormalizedCategory()] {
		return false
	}
	if len(f.Assignees) > 0 && !f.Assignees[t.AssignedTo] {
		return false
	}
	return true
}

// ToggleCategory flips membership of c in the selected set.
func (f Filter) ToggleCategory(c model.Category) {
	if f.Categories[c] {
		delete(f.Categories, c)
		return
	}
	f.Categories[c] = true
}

// ToggleAssignee flips membership of who in the selected set.
func (f Filter) ToggleAssignee(who string) {
	if f.Assignees[who] {
		delete(f.Assignees, who)
		return
	}
	f.Assignees[who] = true
}

// Apply narrows idx to tasks matching the filter. Dates whose bucket empties
// out are dropped entirely. When the filter is empty, the input index is
// returned as-is (a reference pass-through), so re-renders with no active
// filter cost nothing per keystroke.
func (f Filter) Apply(idx BucketIndex) BucketIndex {
	if f.Empty() {
		return idx
	}
	out := BucketIndex{}
	for key, bucket := range idx {
		var kept []model.Task
		for _, t := range bucket {
			if f.Matches(t) {
				kept = append(kept, t)
			}
		}
		if len(kept) > 0 {
			out[key] = kept
		}
	}
	return out
}
