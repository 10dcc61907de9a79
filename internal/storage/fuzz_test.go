package storage

import (
	"os"
	"reflect"
	"testing"
	"unicode/utf8"
)

// FuzzSnapshotRoundTrip checks that arbitrary habit/goal/history contents
// survive a save/load cycle byte-for-byte.
func FuzzSnapshotRoundTrip(f *testing.F) {
	f.Add("Read", "📖", 3, 5, true, "Books", 12, 4, "2026-08-31", 2)
	f.Add("", "", 0, 0, false, "", 1, 0, "2020-01-01", 0)
	f.Add("Run\nfast", "🏃", 100, 100, false, "Miles", 1, -7, "1999-12-31", 50)
	f.Add("üñicodé", "✓", 0, 1, true, "quotes \"here\"", 99, 1000, "2026-02-28", 1)

	f.Fuzz(func(t *testing.T, title, icon string, streak, best int, done bool,
		goalTitle string, target, current int, dateKey string, count int) {
		// JSON replaces invalid UTF-8 during encoding, which would break
		// byte-for-byte comparison; such inputs are not valid snapshots.
		for _, s := range []string{title, icon, goalTitle, dateKey} {
			if !utf8.ValidString(s) {
				t.Skip("invalid UTF-8 input")
			}
		}

		store := createTestStore(t)

		want := &Snapshot{
			Habits: []Habit{{
				ID: "h_fuzz", Title: title, Icon: icon,
				Streak: streak, Best: best, CompletedToday: done,
			}},
			Goals: []Goal{{
				ID: "g_fuzz", Title: goalTitle, Target: target, Current: current,
			}},
			Settings: Settings{Theme: ThemeLight},
			History:  History{dateKey: count},
		}

		if err := store.Save("fuzz", want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load("fuzz")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
		}
	})
}

// FuzzLoadNeverPanics feeds arbitrary bytes into every field file and
// checks that Load always returns a usable snapshot.
func FuzzLoadNeverPanics(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("{"))
	f.Add([]byte("null"))
	f.Add([]byte(`{"version":1,"habits":null}`))
	f.Add([]byte(`{"version":2}`))
	f.Add([]byte(`[1,2,3]`))
	f.Add([]byte("\x00\x01\x02"))

	f.Fuzz(func(t *testing.T, data []byte) {
		store := createTestStore(t)

		for _, field := range UserFields {
			if err := os.WriteFile(store.UserFilePath("fuzz", field), data, 0600); err != nil {
				t.Fatalf("seed %s: %v", field, err)
			}
		}

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Load panicked with data=%q: %v", data, r)
			}
		}()

		snap, _ := store.Load("fuzz")
		if snap == nil {
			t.Fatal("Load() snapshot is nil")
		}
		if snap.Habits == nil || snap.Goals == nil || snap.History == nil {
			t.Error("Load() returned snapshot with nil fields")
		}
		if snap.Settings.Theme != ThemeDark && snap.Settings.Theme != ThemeLight {
			t.Errorf("Load() theme = %q, want dark or light", snap.Settings.Theme)
		}
	})
}
