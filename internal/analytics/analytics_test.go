package analytics

import (
	"testing"
	"time"

	"habitflow/internal/storage"
)

// A Tuesday.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func day(offset int) string {
	return storage.DateKey(testNow.AddDate(0, 0, offset))
}

func TestTrend7(t *testing.T) {
	history := storage.History{
		day(0):  3,
		day(-2): 1,
		day(-6): 5,
		day(-7): 9, // outside the window
	}

	points := Trend7(history, testNow)
	if len(points) != 7 {
		t.Fatalf("got %d points, want 7", len(points))
	}
	if points[0].Date != day(-6) || points[0].Count != 5 {
		t.Errorf("oldest point = %+v", points[0])
	}
	if points[6].Date != day(0) || points[6].Count != 3 {
		t.Errorf("newest point = %+v", points[6])
	}
	if points[4].Count != 1 {
		t.Errorf("points[4].Count = %d, want 1", points[4].Count)
	}
	if points[6].Weekday != "Tue" {
		t.Errorf("today's weekday = %q, want Tue", points[6].Weekday)
	}
	// Gap days report zero.
	if points[5].Count != 0 {
		t.Errorf("gap day count = %d, want 0", points[5].Count)
	}
}

func TestConsistency(t *testing.T) {
	tests := []struct {
		name       string
		history    storage.History
		habitCount int
		want       int
	}{
		{"empty history", storage.History{}, 3, 0},
		{"only zero days", storage.History{"2026-03-01": 0}, 3, 0},
		{"all full days", storage.History{"2026-03-01": 3, "2026-03-02": 3}, 3, 100},
		{"half days", storage.History{"2026-03-01": 1, "2026-03-02": 1}, 2, 50},
		{"mixed", storage.History{"2026-03-01": 2, "2026-03-02": 1}, 2, 75},
		{"over-complete clamps per day", storage.History{"2026-03-01": 10}, 2, 100},
		{"zero habits treated as one", storage.History{"2026-03-01": 1}, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Consistency(tt.history, tt.habitCount); got != tt.want {
				t.Errorf("Consistency = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTotalCompletions(t *testing.T) {
	history := storage.History{"2026-03-01": 2, "2026-03-02": 0, "2026-03-03": 5}
	if got := TotalCompletions(history); got != 7 {
		t.Errorf("TotalCompletions = %d, want 7", got)
	}
	if got := TotalCompletions(storage.History{}); got != 0 {
		t.Errorf("TotalCompletions(empty) = %d, want 0", got)
	}
}

func TestBestWeekday(t *testing.T) {
	// 2026-03-02 is a Monday, 2026-03-03 a Tuesday.
	history := storage.History{
		"2026-03-02": 2,
		"2026-03-09": 3, // also a Monday
		"2026-03-03": 4,
	}
	if got := BestWeekday(history); got != "Monday" {
		t.Errorf("BestWeekday = %q, want Monday", got)
	}
}

func TestBestWeekday_TieGoesToEarlierWeekday(t *testing.T) {
	// Monday and Tuesday both sum to 3; Sunday..Saturday order wins.
	history := storage.History{
		"2026-03-02": 3,
		"2026-03-03": 3,
	}
	if got := BestWeekday(history); got != "Monday" {
		t.Errorf("BestWeekday = %q, want Monday on a tie", got)
	}
}

func TestBestWeekday_Empty(t *testing.T) {
	if got := BestWeekday(storage.History{}); got != "N/A" {
		t.Errorf("BestWeekday = %q, want N/A", got)
	}
	if got := BestWeekday(storage.History{"2026-03-02": 0}); got != "N/A" {
		t.Errorf("BestWeekday with zero counts = %q, want N/A", got)
	}
	if got := BestWeekday(storage.History{"not-a-date": 5}); got != "N/A" {
		t.Errorf("BestWeekday with bad key = %q, want N/A", got)
	}
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name       string
		history    storage.History
		habitCount int
		want       Distribution
	}{
		{"empty", storage.History{}, 3, Distribution{0, 3}},
		{"no habits", storage.History{"2026-03-01": 2}, 0, Distribution{2, 0}},
		{"two days two habits", storage.History{"2026-03-01": 2, "2026-03-02": 1}, 2, Distribution{3, 1}},
		{"zero-count day still scheduled", storage.History{"2026-03-01": 2, "2026-03-02": 0}, 2, Distribution{2, 2}},
		{"over-complete floors missed", storage.History{"2026-03-01": 9}, 2, Distribution{9, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distribute(tt.history, tt.habitCount); got != tt.want {
				t.Errorf("Distribute = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	history := storage.History{day(0): 2, day(-1): 1}
	sum := Summarize(history, 2, testNow)

	if sum.TotalCompletions != 3 {
		t.Errorf("TotalCompletions = %d, want 3", sum.TotalCompletions)
	}
	if sum.Consistency != 75 {
		t.Errorf("Consistency = %d, want 75", sum.Consistency)
	}
	if len(sum.Trend) != 7 {
		t.Errorf("Trend length = %d, want 7", len(sum.Trend))
	}
	if sum.Distribution.Completed != 3 {
		t.Errorf("Distribution = %+v", sum.Distribution)
	}
}

func TestMonth(t *testing.T) {
	// March 2026 starts on a Sunday and has 31 days.
	history := storage.History{
		"2026-03-01": 1,
		"2026-03-05": 2,
	}
	grid := Month(history, 2, testNow)

	if grid.Year != 2026 || grid.Month != time.March {
		t.Fatalf("grid for %d-%s", grid.Year, grid.Month)
	}
	if len(grid.Cells) != 31 {
		t.Fatalf("got %d cells, want 31 (no leading blanks)", len(grid.Cells))
	}
	if grid.Cells[0].Day != 1 || grid.Cells[0].Status != StatusGood {
		t.Errorf("cell 1 = %+v, want day 1 Good", grid.Cells[0])
	}
	if grid.Cells[4].Status != StatusPerfect {
		t.Errorf("cell 5 = %+v, want Perfect", grid.Cells[4])
	}
	if grid.Cells[2].Status != StatusNone {
		t.Errorf("cell 3 = %+v, want None", grid.Cells[2])
	}
	if !grid.Cells[9].Today {
		t.Errorf("cell 10 = %+v, want today marker", grid.Cells[9])
	}
}

func TestMonth_LeadingBlanks(t *testing.T) {
	// April 2026 starts on a Wednesday: three leading blanks.
	april := time.Date(2026, 4, 15, 0, 0, 0, 0, time.Local)
	grid := Month(storage.History{}, 1, april)

	if len(grid.Cells) != 3+30 {
		t.Fatalf("got %d cells, want 33", len(grid.Cells))
	}
	for i := 0; i < 3; i++ {
		if grid.Cells[i].Day != 0 {
			t.Errorf("cell %d = %+v, want blank", i, grid.Cells[i])
		}
	}
	if grid.Cells[3].Day != 1 {
		t.Errorf("first real cell = %+v, want day 1", grid.Cells[3])
	}
}

func TestToday(t *testing.T) {
	habits := []storage.Habit{
		{ID: "h_1", Title: "Read", Streak: 3, CompletedToday: true},
		{ID: "h_2", Title: "Run", Streak: 7},
		{ID: "h_3", Title: "Write", Streak: 1, CompletedToday: true},
	}
	got := Today(habits)
	want := TodayStats{Total: 3, Completed: 2, Rate: 67, BestStreak: 7}
	if got != want {
		t.Errorf("Today = %+v, want %+v", got, want)
	}
}

func TestToday_Empty(t *testing.T) {
	got := Today(nil)
	if got != (TodayStats{}) {
		t.Errorf("Today(nil) = %+v, want zero", got)
	}
}
