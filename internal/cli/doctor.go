package cli

import (
	"labplan-cli/internal/schedule"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check store health and rebuild the SQLite index",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if err := s.RebuildIndex(cmd.Context(), db); err != nil {
				return writeErr(cmd, err)
			}
			indexed, err := s.CountIndexed(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			// Surface records the calendar silently skips so users can fix them.
			var badDates []string
			for _, t := range db.Tasks {
				if t.Due == nil || t.Due.Date == "" {
					continue
				}
				if _, err := schedule.ParseDayKey(t.Due.Date); err != nil {
					badDates = append(badDates, t.ID)
				}
			}

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dir":               app.Dir,
				"tasks":             len(db.Tasks),
				"indexed":           indexed,
				"indexInSync":       indexed == len(db.Tasks),
				"malformedDueDates": badDates,
			}})
		},
	}
	return cmd
}
