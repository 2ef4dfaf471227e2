package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"time"

	"labplan-cli/internal/model"
)

// Event types appended by the host when it applies engine commands.
const (
	EventTaskCreated         = "task.created"
	EventTaskRescheduled     = "task.rescheduled"
	EventTaskCompleted       = "task.completed"
	EventTaskAssigned        = "task.assigned"
	EventTaskWaiting         = "task.waiting"
	EventTaskPriorityChanged = "task.priority_changed"
	EventTaskCategoryChanged = "task.category_changed"
	EventBookingCreated      = "booking.created"
)

// AppendEvent records one line in the append-only events.jsonl log.
func (s Store) AppendEvent(typ, entityID string, payload any) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	ev := model.Event{
		ID:       NewID("ev"),
		TS:       time.Now().UTC(),
		Type:     typ,
		EntityID: entityID,
		Payload:  payload,
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.eventsPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(append(b, '\n')); err != nil {
		return err
	}
	return f.Close()
}

// ReadEventsTail returns the last limit events in chronological order.
// limit <= 0 returns everything.
func (s Store) ReadEventsTail(limit int) ([]model.Event, error) {
	f, err := os.Open(s.eventsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Event{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []model.Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev model.Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			// Tolerate a torn trailing line from an interrupted append.
			continue
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
