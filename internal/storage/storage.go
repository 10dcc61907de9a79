// Package storage persists per-user habitflow state as plain JSON files in
// a local data directory.
//
// Each user's snapshot is split across four files named after the key
// pattern habitflow_{user}_{field}, plus a raw last-login stamp and a
// single global habitflow_current_user selector. Files are written
// atomically with a best-effort .bak, and corrupt or missing files degrade
// to documented defaults instead of failing the caller.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"habitflow/internal/fsutil"
)

// SchemaVersion is the current on-disk format version. Files written
// before versioning carry version 0 and are read as version 1.
const SchemaVersion = 1

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	maxUserNameLen = 40

	currentUserFile = "habitflow_current_user"
)

// Store reads and writes per-user snapshots in a data directory.
type Store struct {
	dataDir string
	now     func() time.Time // injectable clock for deterministic tests
}

// New creates a Store rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dataDir: dataDir, now: time.Now}, nil
}

// SetNowFunc overrides the clock used for date-key derivation.
// Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// DataDir returns the path to the data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

// DateKey formats t as the canonical local-time YYYY-MM-DD history key.
// Every reader and writer of History must derive keys through this
// function so that day boundaries agree.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// TodayKey returns the date key for the store's current time.
func (s *Store) TodayKey() string {
	return DateKey(s.Now())
}

// ValidateUserName reports whether name is usable as a user identifier.
// Names become file name components, so the charset is restricted.
func ValidateUserName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("user name is required")
	}
	if len(name) > maxUserNameLen {
		return fmt.Errorf("user name too long (max %d)", maxUserNameLen)
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("user name must not start with a dot")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-' || r == ' ':
		default:
			return fmt.Errorf("user name contains unsupported character %q", r)
		}
	}
	return nil
}

// UserFields are the per-user field names, in save order.
var UserFields = []string{"habits", "goals", "settings", "history"}

// UserFilePath returns the path of one of a user's data files.
// JSON fields carry a .json suffix; last_login is a raw string file.
func (s *Store) UserFilePath(user, field string) string {
	name := "habitflow_" + user + "_" + field
	if field != "last_login" {
		name += ".json"
	}
	return filepath.Join(s.dataDir, name)
}

// ============================================================================
// Snapshot load/save
// ============================================================================

// Load reads the user's snapshot from disk. Missing or unreadable fields
// fall back to their defaults; the returned snapshot is always usable.
// A non-nil error describes any recovery that happened and is advisory,
// never fatal.
func (s *Store) Load(user string) (*Snapshot, error) {
	if err := ValidateUserName(user); err != nil {
		return DefaultSnapshot(), err
	}

	snap := DefaultSnapshot()
	var errs []error

	hf := habitsFile{Version: SchemaVersion, Habits: []Habit{}}
	if err := s.loadJSONWithRecovery(s.UserFilePath(user, "habits"), &hf, func() {
		hf = habitsFile{Version: SchemaVersion, Habits: []Habit{}}
	}); err != nil {
		errs = append(errs, err)
	}
	snap.Habits = hf.Habits

	gf := goalsFile{Version: SchemaVersion, Goals: []Goal{}}
	if err := s.loadJSONWithRecovery(s.UserFilePath(user, "goals"), &gf, func() {
		gf = goalsFile{Version: SchemaVersion, Goals: []Goal{}}
	}); err != nil {
		errs = append(errs, err)
	}
	snap.Goals = gf.Goals

	sf := settingsFile{Version: SchemaVersion, Settings: Settings{Theme: ThemeDark}}
	if err := s.loadJSONWithRecovery(s.UserFilePath(user, "settings"), &sf, func() {
		sf = settingsFile{Version: SchemaVersion, Settings: Settings{Theme: ThemeDark}}
	}); err != nil {
		errs = append(errs, err)
	}
	snap.Settings = sf.Settings
	if snap.Settings.Theme != ThemeLight {
		snap.Settings.Theme = ThemeDark
	}

	yf := historyFile{Version: SchemaVersion, History: History{}}
	if err := s.loadJSONWithRecovery(s.UserFilePath(user, "history"), &yf, func() {
		yf = historyFile{Version: SchemaVersion, History: History{}}
	}); err != nil {
		errs = append(errs, err)
	}
	snap.History = yf.History

	// Guard nils left by partially-written files.
	if snap.Habits == nil {
		snap.Habits = []Habit{}
	}
	if snap.Goals == nil {
		snap.Goals = []Goal{}
	}
	if snap.History == nil {
		snap.History = History{}
	}

	return snap, errors.Join(errs...)
}

// Save writes the user's full snapshot to disk. Each field file is written
// atomically and independently, so a crash mid-save can never corrupt
// another user's data or a field that was not being rewritten.
func (s *Store) Save(user string, snap *Snapshot) error {
	if err := ValidateUserName(user); err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("snapshot is required")
	}

	if err := s.writeJSONAtomic(s.UserFilePath(user, "habits"), &habitsFile{
		Version: SchemaVersion, Habits: snap.Habits,
	}); err != nil {
		return err
	}
	if err := s.writeJSONAtomic(s.UserFilePath(user, "goals"), &goalsFile{
		Version: SchemaVersion, Goals: snap.Goals,
	}); err != nil {
		return err
	}
	if err := s.writeJSONAtomic(s.UserFilePath(user, "settings"), &settingsFile{
		Version: SchemaVersion, Settings: snap.Settings,
	}); err != nil {
		return err
	}
	return s.writeJSONAtomic(s.UserFilePath(user, "history"), &historyFile{
		Version: SchemaVersion, History: snap.History,
	})
}

// ============================================================================
// Current user and last login
// ============================================================================

// CurrentUser returns the logged-in user name, if any. Its presence is the
// sole authentication check; there are no credentials.
func (s *Store) CurrentUser() (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, currentUserFile))
	if err != nil {
		return "", false
	}
	name := strings.TrimSpace(string(data))
	if name == "" || ValidateUserName(name) != nil {
		return "", false
	}
	return name, true
}

// SetCurrentUser records name as the active user.
func (s *Store) SetCurrentUser(name string) error {
	name = strings.TrimSpace(name)
	if err := ValidateUserName(name); err != nil {
		return err
	}
	path := filepath.Join(s.dataDir, currentUserFile)
	if err := fsutil.WriteFileAtomic(path, []byte(name), dataFilePerm); err != nil {
		return fmt.Errorf("write current user: %w", err)
	}
	return nil
}

// ClearCurrentUser logs out. Clearing when nobody is logged in is a no-op.
func (s *Store) ClearCurrentUser() error {
	err := os.Remove(filepath.Join(s.dataDir, currentUserFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

// LastLogin returns the stored last-login date key for user, or "" if none
// was ever recorded.
func (s *Store) LastLogin(user string) string {
	data, err := os.ReadFile(s.UserFilePath(user, "last_login"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetLastLogin stamps the user's last-login date key.
func (s *Store) SetLastLogin(user, dateKey string) error {
	if err := ValidateUserName(user); err != nil {
		return err
	}
	path := s.UserFilePath(user, "last_login")
	if err := fsutil.WriteFileAtomic(path, []byte(dateKey), dataFilePerm); err != nil {
		return fmt.Errorf("write last login: %w", err)
	}
	return nil
}

// ListUsers returns the names of users with stored data, sorted.
func (s *Store) ListUsers() []string {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "habitflow_") || !strings.HasSuffix(name, "_habits.json") {
			continue
		}
		user := strings.TrimSuffix(strings.TrimPrefix(name, "habitflow_"), "_habits.json")
		if ValidateUserName(user) == nil {
			seen[user] = struct{}{}
		}
	}
	users := make([]string, 0, len(seen))
	for u := range seen {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

// ============================================================================
// JSON plumbing
// ============================================================================

// versioned lets the loader inspect a file's schema version without
// knowing its concrete envelope type.
type versioned interface {
	version() int
}

func (f *habitsFile) version() int   { return f.Version }
func (f *goalsFile) version() int    { return f.Version }
func (f *settingsFile) version() int { return f.Version }
func (f *historyFile) version() int  { return f.Version }

func (s *Store) writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", filepath.Base(path), err)
	}

	// Keep a best-effort backup before overwriting.
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// loadJSONWithRecovery reads path into v. A missing file leaves v at its
// default. Empty, unparsable, or future-versioned files are recovered from
// the .bak if possible, otherwise preserved aside and reset to defaults.
// reset must restore v to its zero state.
func (s *Store) loadJSONWithRecovery(path string, v versioned, reset func()) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recoverCorrupt(path, v, reset, fmt.Errorf("%s is empty", filepath.Base(path)))
	}

	if err := json.Unmarshal(data, v); err != nil {
		return s.recoverCorrupt(path, v, reset, fmt.Errorf("parse %s: %w", filepath.Base(path), err))
	}
	if v.version() > SchemaVersion {
		return s.recoverCorrupt(path, v, reset,
			fmt.Errorf("%s has unsupported schema version %d", filepath.Base(path), v.version()))
	}
	return nil
}

func (s *Store) recoverCorrupt(path string, v versioned, reset func(), cause error) error {
	// A partial unmarshal may have left fields half-populated.
	reset()

	// Try the backup first.
	bakData, bakErr := os.ReadFile(path + ".bak")
	if bakErr == nil && len(bytes.TrimSpace(bakData)) > 0 {
		if err := json.Unmarshal(bakData, v); err == nil && v.version() <= SchemaVersion {
			corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.Now().Format("20060102-150405"))
			_ = os.Rename(path, corruptPath)
			_ = s.writeJSONAtomic(path, v)
			return fmt.Errorf("%s (recovered from backup)", cause.Error())
		}
		reset()
	}

	// No usable backup: preserve the broken file (best effort) and reset.
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
	_ = s.writeJSONAtomic(path, v)
	return fmt.Errorf("%s (reset to defaults; original moved to %s)", cause.Error(), filepath.Base(corruptPath))
}
