package cli

import (
	"time"

	"labplan-cli/internal/schedule"

	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Today's focus: overdue/waiting/reminder/due-today counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			s := schedule.BuildFocusSummary(db.Tasks, time.Now())
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"overdueCount":  s.OverdueCount,
				"dueTodayCount": s.DueTodayCount,
				"waitingCount":  s.WaitingCount,
				"reminderCount": s.ReminderCount,
				"dueToday":      s.DueToday,
			}})
		},
	}
	return cmd
}
