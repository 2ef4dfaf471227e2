package cli

import (
	"context"
	"strings"
	"time"

	"labplan-cli/internal/model"
	"labplan-cli/internal/schedule"
	"labplan-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksSetDueCmd(app))
	cmd.AddCommand(newTasksSetPriorityCmd(app))
	cmd.AddCommand(newTasksSetCategoryCmd(app))
	cmd.AddCommand(newTasksCompleteCmd(app))
	cmd.AddCommand(newTasksAssignCmd(app))
	cmd.AddCommand(newTasksWaitCmd(app))
	cmd.AddCommand(newTasksRemindCmd(app))
	return cmd
}

func saveAndReindex(s store.Store, db *store.DB) error {
	if err := s.Save(db); err != nil {
		return err
	}
	// Index rebuild is best-effort; db.json stays the source of truth.
	_ = s.RebuildIndex(context.Background(), db)
	return nil
}

func newTasksAddCmd(app *App) *cobra.Command {
	var (
		title      string
		descr      string
		dueStr     string
		priStr     string
		catStr     string
		assignedTo string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			pri, err := parsePriority(priStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			cat, err := parseCategory(catStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			var due *model.DateTime
			if strings.TrimSpace(dueStr) != "" {
				due, err = parseDateTime(dueStr)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			now := time.Now().UTC()
			t := model.Task{
				ID:          store.NewID("task"),
				Title:       strings.TrimSpace(title),
				Description: strings.TrimSpace(descr),
				Status:      model.StatusTodo,
				Priority:    pri,
				Category:    cat,
				AssignedTo:  strings.TrimSpace(assignedTo),
				Due:         due,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			db.Tasks = append(db.Tasks, t)
			if err := saveAndReindex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(store.EventTaskCreated, t.ID, t)
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&descr, "description", "", "Task description (markdown)")
	cmd.Flags().StringVar(&dueStr, "due", "", "Due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&priStr, "priority", "medium", "Priority (urgent|high|medium|low)")
	cmd.Flags().StringVar(&catStr, "category", "other", "Category")
	cmd.Flags().StringVar(&assignedTo, "assign", "", "Assignee")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var (
		fromKey string
		toKey   string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (date-ranged listing uses the SQLite index)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if fromKey != "" || toKey != "" {
				// Range queries go through the index so scripts stay fast on
				// large logs; rebuild first so the mirror is current.
				if err := s.RebuildIndex(cmd.Context(), db); err != nil {
					return writeErr(cmd, err)
				}
				tasks, err := s.QueryDueBetween(cmd.Context(), fromKey, toKey)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": tasks})
			}

			if all {
				return writeOut(cmd, app, map[string]any{"data": db.Tasks})
			}
			var open []model.Task
			for _, t := range db.Tasks {
				if !t.IsClosed() {
					open = append(open, t)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": open})
		},
	}

	cmd.Flags().StringVar(&fromKey, "from", "", "Earliest due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toKey, "to", "", "Latest due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed/done tasks")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	return cmd
}

func newTasksSetDueCmd(app *App) *cobra.Command {
	var dueStr string
	var clear bool

	cmd := &cobra.Command{
		Use:   "set-due <task-id>",
		Short: "Set or clear a task's due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			if clear {
				t.Due = nil
			} else {
				due, err := parseDateTime(dueStr)
				if err != nil {
					return writeErr(cmd, err)
				}
				t.Due = due
			}
			t.UpdatedAt = time.Now().UTC()
			if err := saveAndReindex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(store.EventTaskRescheduled, t.ID, map[string]any{"due": t.Due})
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&dueStr, "due", "", "New due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the due date")
	return cmd
}

func newTasksSetPriorityCmd(app *App) *cobra.Command {
	var priStr string

	cmd := &cobra.Command{
		Use:   "set-priority <task-id>",
		Short: "Change a task's priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			pri, err := parsePriority(priStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			t.Priority = pri
			t.UpdatedAt = time.Now().UTC()
			if err := saveAndReindex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(store.EventTaskPriorityChanged, t.ID, map[string]string{"priority": string(t.Priority)})
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&priStr, "to", "", "New priority (urgent|high|medium|low)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTasksSetCategoryCmd(app *App) *cobra.Command {
	var catStr string

	cmd := &cobra.Command{
		Use:   "set-category <task-id>",
		Short: "Change a task's category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			cat, err := parseCategory(catStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			t.Category = cat
			t.UpdatedAt = time.Now().UTC()
			if err := saveAndReindex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(store.EventTaskCategoryChanged, t.ID, map[string]string{"category": string(t.Category)})
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&catStr, "to", "", "New category")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newTasksCompleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			t.Completed = true
			t.Status = model.StatusDone
			t.WaitingForResponse = false
			t.UpdatedAt = time.Now().UTC()
			if err := saveAndReindex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(store.EventTaskCompleted, t.ID, nil)
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	return cmd
}

func newTasksAssignCmd(app *App) *cobra.Command {
	var who string

	cmd := &cobra.Command{
		Use:   "assign <task-id>",
		Short: "Assign a task (empty --to unassigns)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			t.AssignedTo = strings.TrimSpace(who)
			t.UpdatedAt = time.Now().UTC()
			if err := saveAndReindex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(store.EventTaskAssigned, t.ID, map[string]string{"assignedTo": t.AssignedTo})
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&who, "to", "", "Assignee")
	return cmd
}

func newTasksWaitCmd(app *App) *cobra.Command {
	var (
		off        bool
		afterHours int
	)

	cmd := &cobra.Command{
		Use:   "wait <task-id>",
		Short: "Toggle waiting-for-response tracking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			if off {
				t.WaitingForResponse = false
				t.WaitingSince = nil
				t.FollowUpAfterHours = 0
			} else {
				now := time.Now().UTC()
				t.WaitingForResponse = true
				t.WaitingSince = &now
				if afterHours > 0 {
					t.FollowUpAfterHours = afterHours
				}
			}
			t.UpdatedAt = time.Now().UTC()
			if err := saveAndReindex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(store.EventTaskWaiting, t.ID, map[string]any{"waiting": t.WaitingForResponse})
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Stop waiting")
	cmd.Flags().IntVar(&afterHours, "after-hours", 0, "Follow-up threshold in hours (default 48)")
	return cmd
}

func newTasksRemindCmd(app *App) *cobra.Command {
	var atStr string

	cmd := &cobra.Command{
		Use:   "remind <task-id>",
		Short: "Add a pending reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			dt, err := parseDateTime(atStr)
			if err != nil {
				return writeErr(cmd, err)
			}
			day, err := schedule.ParseDayKey(dt.Date)
			if err != nil {
				return writeErr(cmd, err)
			}
			at := day
			if dt.Time != nil {
				if hm, err := time.Parse("15:04", *dt.Time); err == nil {
					at = day.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute)
				}
			}

			t.Reminders = append(t.Reminders, model.Reminder{
				ID:     store.NewID("rem"),
				At:     at,
				Status: model.ReminderPending,
			})
			t.UpdatedAt = time.Now().UTC()
			if err := saveAndReindex(s, db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&atStr, "at", "", "Reminder time (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}
