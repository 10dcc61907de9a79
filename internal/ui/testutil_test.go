package ui

import (
	"testing"

	"habitflow/internal/config"
	"habitflow/internal/session"
	"habitflow/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStore creates a Store instance with a temporary directory.
func createTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

// createTestSession opens a session for a fresh test user.
func createTestSession(t *testing.T, store *storage.Store) *session.Session {
	t.Helper()
	sess, err := session.Open(store, "tester")
	if sess == nil {
		t.Fatalf("failed to open test session: %v", err)
	}
	return sess
}

// createTestStyles creates a default dark Styles instance for testing.
func createTestStyles() *Styles {
	return NewStyles(config.Default(), storage.ThemeDark)
}

