package model

import "time"

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Category string

const (
	CategoryExperiment Category = "experiment"
	CategoryAnalysis   Category = "analysis"
	CategoryWriting    Category = "writing"
	CategoryReading    Category = "reading"
	CategoryTeaching   Category = "teaching"
	CategoryAdmin      Category = "admin"
	CategoryGrant      Category = "grant"
	CategoryOther      Category = "other"
)

// Categories lists the closed category set in display order.
var Categories = []Category{
	CategoryExperiment,
	CategoryAnalysis,
	CategoryWriting,
	CategoryReading,
	CategoryTeaching,
	CategoryAdmin,
	CategoryGrant,
	CategoryOther,
}

// DateTime represents an optional time attached to a date.
// If Time is nil, the value is date-only (no time semantics).
// Scheduling only ever looks at Date; the time portion is display-only.
type DateTime struct {
	Date string  `json:"date"`           // YYYY-MM-DD
	Time *string `json:"time,omitempty"` // HH:MM
}

type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderSent      ReminderStatus = "sent"
	ReminderDismissed ReminderStatus = "dismissed"
)

type Reminder struct {
	ID     string         `json:"id"`
	At     time.Time      `json:"at"`
	Status ReminderStatus `json:"status"`
}

type Subtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Status    Status   `json:"status,omitempty"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority,omitempty"`
	Category  Category `json:"category,omitempty"`

	// AssignedTo is free-text identity (lab member name or initials).
	AssignedTo string `json:"assignedTo,omitempty"`

	Due *DateTime `json:"due,omitempty"`

	// Follow-up tracking: a task waiting on someone else's response becomes
	// "follow-up overdue" once now - waitingSince >= followUpAfterHours
	// (48h when unset).
	WaitingForResponse bool       `json:"waitingForResponse,omitempty"`
	WaitingSince       *time.Time `json:"waitingSince,omitempty"`
	FollowUpAfterHours int        `json:"followUpAfterHours,omitempty"`

	ReminderAt *time.Time `json:"reminderAt,omitempty"`
	Reminders  []Reminder `json:"reminders,omitempty"`

	Subtasks []Subtask `json:"subtasks,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizedCategory returns the task's category, defaulting to "other"
// when absent or outside the closed set.
func (t Task) NormalizedCategory() Category {
	for _, c := range Categories {
		if t.Category == c {
			return c
		}
	}
	return CategoryOther
}

// IsClosed reports whether the task is finished for scheduling purposes.
// Closed tasks never appear on the calendar grid.
func (t Task) IsClosed() bool {
	return t.Completed || t.Status == StatusDone
}

// SubtaskProgress returns completed and total subtask counts.
func (t Task) SubtaskProgress() (done, total int) {
	for _, st := range t.Subtasks {
		if st.Done {
			done++
		}
	}
	return done, len(t.Subtasks)
}

// Booking is an equipment reservation record. The calendar engine does not
// schedule bookings; only the range validation below is shared with forms.
type Booking struct {
	ID        string    `json:"id"`
	Equipment string    `json:"equipment"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	BookedBy  string    `json:"bookedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
