// Package importer provides import functionality for migrating habits
// and goals from other trackers via CSV or JSON exports.
package importer

import (
	"io"

	"habitflow/internal/session"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Habits  int      // Number of successfully imported habits
	Goals   int      // Number of successfully imported goals
	Skipped int      // Number of skipped items (duplicates, blanks)
	Errors  []string // Error messages for failed imports
}

// PreviewItem represents one habit or goal before import.
type PreviewItem struct {
	Kind   string // "habit" or "goal"
	Title  string
	Icon   string // habits only
	Target int    // goals only
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads items from the reader and adds them to the session.
	// Streak counters are not carried over; imported habits start fresh.
	Import(reader io.Reader, sess *session.Session) (*ImportResult, error)

	// Preview reads items from the reader without importing.
	Preview(reader io.Reader) ([]PreviewItem, error)

	// Name returns the importer name (e.g., "csv", "json").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch format {
	case "csv":
		return &CSVImporter{}
	case "json":
		return &JSONImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"csv", "json"}
}
