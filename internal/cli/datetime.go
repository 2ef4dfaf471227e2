package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"labplan-cli/internal/model"
)

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})(?::\d{2})?$`)
)

// parseDateTime parses:
// - YYYY-MM-DD (date-only)
// - YYYY-MM-DD HH:MM (local date+time)
// - RFC3339 / RFC3339Nano (timezone-aware)
//
// It returns a DateTime where Time is nil for date-only inputs.
func parseDateTime(s string) (*model.DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty datetime")
	}

	if reDateOnly.MatchString(s) {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return nil, fmt.Errorf("invalid date %q", s)
		}
		return &model.DateTime{Date: s, Time: nil}, nil
	}

	if m := reDateTime.FindStringSubmatch(s); m != nil {
		date := m[1]
		hm := m[2]
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("invalid date %q", date)
		}
		return &model.DateTime{Date: date, Time: &hm}, nil
	}

	// RFC3339: interpret as absolute time, store as date+time in UTC.
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts = ts.UTC()
		date := ts.Format("2006-01-02")
		hm := ts.Format("15:04")
		return &model.DateTime{Date: date, Time: &hm}, nil
	}

	return nil, fmt.Errorf("invalid datetime %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}

func parsePriority(s string) (model.Priority, error) {
	switch model.Priority(strings.ToLower(strings.TrimSpace(s))) {
	case model.PriorityUrgent:
		return model.PriorityUrgent, nil
	case model.PriorityHigh:
		return model.PriorityHigh, nil
	case model.PriorityMedium, "":
		return model.PriorityMedium, nil
	case model.PriorityLow:
		return model.PriorityLow, nil
	}
	return "", fmt.Errorf("invalid priority %q (expected urgent|high|medium|low)", s)
}

func parseCategory(s string) (model.Category, error) {
	c := model.Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return model.CategoryOther, nil
	}
	for _, known := range model.Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q (expected one of %v)", s, model.Categories)
}
