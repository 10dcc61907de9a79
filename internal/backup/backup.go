// Package backup provides backup and restore functionality for the
// habitflow app. It manages timestamped backups of one user's data
// files (habits, goals, settings, history).
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"habitflow/internal/fsutil"
	"habitflow/internal/storage"
)

// Version constants for the backup format.
const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// Manager handles backup and restore operations.
type Manager struct {
	dataDir    string // Path to data directory (e.g., ~/.habitflow)
	backupDir  string // Path to backups directory (e.g., ~/.habitflow/backups)
	appVersion string // Application version for manifest
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	User       string         `json:"user"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo contains summary information about a backup.
type BackupInfo struct {
	Name      string         // Directory name (2026-03-10_143022_001)
	Path      string         // Full path to backup directory
	User      string         // User the backup belongs to
	CreatedAt time.Time      // When the backup was created
	Stats     map[string]int // Statistics (habits, goals, history_days)
}

// NewManager creates a new backup manager.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// userFiles lists the data files belonging to one user, relative to
// the data directory.
func userFiles(user string) []string {
	files := make([]string, 0, len(storage.UserFields)+1)
	for _, field := range storage.UserFields {
		files = append(files, "habitflow_"+user+"_"+field+".json")
	}
	files = append(files, "habitflow_"+user+"_last_login")
	return files
}

// Create creates a new backup of the user's data files.
// Returns the backup name (timestamp format) on success.
func (m *Manager) Create(user string) (string, error) {
	if err := storage.ValidateUserName(user); err != nil {
		return "", err
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Timestamp with milliseconds for uniqueness.
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	var copiedFiles []string
	stats := make(map[string]int)

	for _, filename := range userFiles(user) {
		srcPath := filepath.Join(m.dataDir, filename)
		dstPath := filepath.Join(backupPath, filename)

		// Skip if source file doesn't exist
		if _, err := os.Stat(srcPath); os.IsNotExist(err) {
			continue
		}

		if err := copyFileAtomic(srcPath, dstPath); err != nil {
			// Clean up on failure
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", filename, err)
		}

		copiedFiles = append(copiedFiles, filename)

		if key, count, err := countItems(srcPath); err == nil && key != "" {
			stats[key] = count
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		User:       user,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copiedFiles,
		Stats:      stats,
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	if err := writeJSON(manifestPath, manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, sorted by creation time (newest first).
func (m *Manager) List() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		backupPath := filepath.Join(m.backupDir, entry.Name())
		manifestPath := filepath.Join(backupPath, ManifestFile)

		var manifest Manifest
		if err := readJSON(manifestPath, &manifest); err != nil {
			// Fall back to the timestamp in the directory name.
			createdAt, parseErr := parseBackupName(entry.Name())
			if parseErr != nil {
				continue // Skip invalid backups
			}
			manifest.CreatedAt = createdAt
			manifest.Stats = make(map[string]int)
		}

		backups = append(backups, BackupInfo{
			Name:      entry.Name(),
			Path:      backupPath,
			User:      manifest.User,
			CreatedAt: manifest.CreatedAt,
			Stats:     manifest.Stats,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// ListForUser returns the user's backups, newest first.
func (m *Manager) ListForUser(user string) ([]BackupInfo, error) {
	all, err := m.List()
	if err != nil {
		return nil, err
	}
	filtered := make([]BackupInfo, 0, len(all))
	for _, b := range all {
		if b.User == user {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Restore restores data from a specific backup.
// It creates a safety backup of the affected user first.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	var manifest Manifest
	if err := readJSON(manifestPath, &manifest); err != nil {
		return fmt.Errorf("backup %s has no readable manifest: %w", name, err)
	}
	if manifest.User == "" {
		return fmt.Errorf("backup %s does not name a user", name)
	}

	// Create safety backup first
	safetyName, err := m.Create(manifest.User)
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, filename := range manifest.Files {
		srcPath := filepath.Join(backupPath, filename)
		dstPath := filepath.Join(m.dataDir, filename)

		// Skip if backup file doesn't exist
		if _, err := os.Stat(srcPath); os.IsNotExist(err) {
			continue
		}

		if err := copyFileAtomic(srcPath, dstPath); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	// Validate restored JSON files
	for _, filename := range manifest.Files {
		if !strings.HasSuffix(filename, ".json") {
			continue
		}
		dstPath := filepath.Join(m.dataDir, filename)
		if err := validateJSON(dstPath); err != nil {
			return fmt.Errorf("restored file %s is invalid (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	return nil
}

// RestoreLatest restores the user's most recent backup.
func (m *Manager) RestoreLatest(user string) error {
	backups, err := m.ListForUser(user)
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups available for %s", user)
	}

	return m.Restore(backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the N most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}

	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, backup := range backups[keepCount:] {
		if err := m.Delete(backup.Name); err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}

	backupPath := filepath.Join(m.backupDir, name)

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	var manifest Manifest
	if err := readJSON(manifestPath, &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		User:      manifest.User,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Helper functions

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

// writeJSON writes a value as JSON to a file.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// readJSON reads JSON from a file into a value.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateJSON checks that a file contains valid JSON.
func validateJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Missing file is OK
		}
		return err
	}

	var v interface{}
	return json.Unmarshal(data, &v)
}

// countItems counts items in a data file and names the stats key for
// them. Non-JSON and settings files report an empty key.
func countItems(path string) (string, int, error) {
	if !strings.HasSuffix(path, ".json") {
		return "", 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", 0, err
	}

	if habits, ok := result["habits"].([]interface{}); ok {
		return "habits", len(habits), nil
	}
	if goals, ok := result["goals"].([]interface{}); ok {
		return "goals", len(goals), nil
	}
	if history, ok := result["history"].(map[string]interface{}); ok {
		return "history_days", len(history), nil
	}

	return "", 0, nil
}

// parseBackupName parses a backup directory name into a timestamp.
// Supports both the plain format (2006-01-02_150405) and the
// millisecond-suffixed format (2006-01-02_150405_XXX).
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		// Format: 2006-01-02_150405_XXX
		baseTime, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}

	return time.Parse("2006-01-02_150405", name)
}
