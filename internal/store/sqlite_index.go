package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"labplan-cli/internal/model"

	_ "modernc.org/sqlite"
)

const indexFileName = "index.sqlite"

// The SQLite index is a derived, rebuildable mirror of db.json used for
// scripted range queries (tasks list --from/--to) and doctor checks. db.json
// stays the source of truth; dropping index.sqlite loses nothing.

func (s Store) indexPath() string {
	return filepath.Join(s.Dir, indexFileName)
}

func (s Store) openIndex(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.indexPath())
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			due_date TEXT,
			completed INTEGER NOT NULL DEFAULT 0,
			status TEXT,
			priority TEXT,
			category TEXT,
			assigned_to TEXT,
			payload TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RebuildIndex replaces the task mirror with the current collection.
func (s Store) RebuildIndex(ctx context.Context, db *DB) error {
	idx, err := s.openIndex(ctx)
	if err != nil {
		return err
	}
	defer idx.Close()

	tx, err := idx.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, due_date, completed, status, priority, category, assigned_to, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range db.Tasks {
		dueDate := ""
		if t.Due != nil {
			dueDate = t.Due.Date
		}
		completed := 0
		if t.Completed {
			completed = 1
		}
		payload, err := json.Marshal(t)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID, dueDate, completed, string(t.Status), string(t.Priority),
			string(t.NormalizedCategory()), t.AssignedTo, string(payload),
		); err != nil {
			return fmt.Errorf("index task %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// QueryDueBetween returns open tasks with fromKey <= due_date <= toKey,
// ordered by due date. Keys are YYYY-MM-DD; empty bounds are open-ended.
func (s Store) QueryDueBetween(ctx context.Context, fromKey, toKey string) ([]model.Task, error) {
	idx, err := s.openIndex(ctx)
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	q := `SELECT payload FROM tasks WHERE due_date != '' AND completed = 0 AND status != 'done'`
	var args []any
	if fromKey != "" {
		q += ` AND due_date >= ?`
		args = append(args, fromKey)
	}
	if toKey != "" {
		q += ` AND due_date <= ?`
		args = append(args, toKey)
	}
	q += ` ORDER BY due_date, id`

	rows, err := idx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var t model.Task
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountIndexed reports how many tasks the mirror currently holds (doctor).
func (s Store) CountIndexed(ctx context.Context) (int, error) {
	idx, err := s.openIndex(ctx)
	if err != nil {
		return 0, err
	}
	defer idx.Close()

	var n int
	if err := idx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
