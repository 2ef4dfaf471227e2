package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"labplan-cli/internal/model"

	"github.com/google/uuid"
)

const (
	dbFileName     = "db.json"
	eventsFileName = "events.jsonl"
	storeDirName   = ".labplan"
)

// DB is the full on-disk state: the flat task collection plus equipment
// bookings. The calendar engine consumes Tasks read-only; every mutation
// goes through the CLI/TUI host and is saved here.
type DB struct {
	Version  int             `json:"version"`
	Tasks    []model.Task    `json:"tasks"`
	Bookings []model.Booking `json:"bookings,omitempty"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .labplan directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, storeDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.dbPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &DB{Version: 1}, nil
		}
		return nil, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", dbFileName, err)
	}
	if db.Version == 0 {
		db.Version = 1
	}
	return &db, nil
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if db.Version == 0 {
		db.Version = 1
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	path := s.dbPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// NewID returns prefix-<uuid> (e.g. task-9f1c…). UUIDs keep ids stable and
// collision-free across concurrent CLI invocations without a counter file.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	id = strings.TrimSpace(id)
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

// Assignees returns the distinct non-empty assignees across all tasks, in
// first-seen order. Feeds the assignee filter menu.
func (db *DB) Assignees() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range db.Tasks {
		who := strings.TrimSpace(t.AssignedTo)
		if who == "" || seen[who] {
			continue
		}
		seen[who] = true
		out = append(out, who)
	}
	return out
}
