package cli

import (
	"time"

	"labplan-cli/internal/schedule"

	"github.com/spf13/cobra"
)

// calendarDay is the JSON shape for one date bucket in calendar output.
type calendarDay struct {
	Date    string            `json:"date"`
	InMonth bool              `json:"inMonth,omitempty"`
	IsToday bool              `json:"isToday,omitempty"`
	Tasks   []calendarTaskRef `json:"tasks,omitempty"`
}

type calendarTaskRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority string `json:"priority,omitempty"`
	Category string `json:"category,omitempty"`
	Overdue  bool   `json:"overdue,omitempty"`
}

func newCalendarCmd(app *App) *cobra.Command {
	var (
		granStr   string
		anchorStr string
		catStr    string
		whoStr    string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the calendar view as JSON (day|week|month)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			now := time.Now()
			v := schedule.NewViewState(nil)
			switch schedule.Granularity(granStr) {
			case schedule.GranularityDay, schedule.GranularityWeek, schedule.GranularityMonth:
				v.SetGranularity(schedule.Granularity(granStr))
			default:
				return writeErr(cmd, errNotFound("granularity", granStr))
			}
			if anchorStr != "" {
				anchor, err := schedule.ParseDayKey(anchorStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				v.Anchor = anchor
			}

			f := schedule.NewFilter()
			if catStr != "" {
				c, err := parseCategory(catStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				f.ToggleCategory(c)
			}
			if whoStr != "" {
				f.ToggleAssignee(whoStr)
			}

			idx := f.Apply(schedule.BuildBucketIndex(db.Tasks))

			var days []calendarDay
			for _, d := range v.VisibleDates() {
				key := schedule.DayKey(d)
				day := calendarDay{
					Date:    key,
					InMonth: v.Granularity != schedule.GranularityMonth || sameMonthAsAnchor(d, v.Anchor),
					IsToday: key == schedule.DayKey(now),
				}
				for _, t := range idx[key] {
					day.Tasks = append(day.Tasks, calendarTaskRef{
						ID:       t.ID,
						Title:    t.Title,
						Priority: string(t.Priority),
						Category: string(t.NormalizedCategory()),
						Overdue:  schedule.IsOverdue(t, now),
					})
				}
				days = append(days, day)
			}

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"granularity": v.Granularity,
				"anchor":      schedule.DayKey(v.Anchor),
				"days":        days,
			}})
		},
	}

	cmd.Flags().StringVar(&granStr, "granularity", "week", "View granularity (day|week|month)")
	cmd.Flags().StringVar(&anchorStr, "anchor", "", "Anchor date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&catStr, "category", "", "Filter by category")
	cmd.Flags().StringVar(&whoStr, "assignee", "", "Filter by assignee")
	return cmd
}

func sameMonthAsAnchor(d, anchor time.Time) bool {
	return d.Month() == anchor.Month() && d.Year() == anchor.Year()
}
