package cli

import (
	"strings"
	"time"

	"labplan-cli/internal/model"
	"labplan-cli/internal/store"

	"github.com/spf13/cobra"
)

func newBookingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Equipment booking commands",
	}
	cmd.AddCommand(newBookingsAddCmd(app))
	cmd.AddCommand(newBookingsListCmd(app))
	return cmd
}

func newBookingsAddCmd(app *App) *cobra.Command {
	var (
		equipment string
		startStr  string
		endStr    string
		bookedBy  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book equipment for a time range",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			start, err := time.Parse(time.RFC3339, strings.TrimSpace(startStr))
			if err != nil {
				return writeErr(cmd, err)
			}
			end, err := time.Parse(time.RFC3339, strings.TrimSpace(endStr))
			if err != nil {
				return writeErr(cmd, err)
			}

			b := model.Booking{
				ID:        store.NewID("book"),
				Equipment: strings.TrimSpace(equipment),
				Start:     start,
				End:       end,
				BookedBy:  strings.TrimSpace(bookedBy),
				CreatedAt: time.Now().UTC(),
			}
			// Degenerate ranges are rejected before any commit.
			if err := model.ValidateBookingRange(b); err != nil {
				return writeErr(cmd, err)
			}

			db.Bookings = append(db.Bookings, b)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(store.EventBookingCreated, b.ID, b)
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}

	cmd.Flags().StringVar(&equipment, "equipment", "", "Equipment name")
	cmd.Flags().StringVar(&startStr, "start", "", "Start time (RFC3339)")
	cmd.Flags().StringVar(&endStr, "end", "", "End time (RFC3339)")
	cmd.Flags().StringVar(&bookedBy, "by", "", "Who is booking")
	_ = cmd.MarkFlagRequired("equipment")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newBookingsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Bookings})
		},
	}
	return cmd
}
