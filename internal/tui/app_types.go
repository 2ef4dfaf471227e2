package tui

type modalKind int

const (
	modalNone modalKind = iota
	modalQuickAdd
	modalFilter
)

// filterSection is which column of the filter menu the cursor sits in.
type filterSection int

const (
	filterSectionCategories filterSection = iota
	filterSectionAssignees
)

type reloadTickMsg struct{}

type statusClearMsg struct{ seq int }
