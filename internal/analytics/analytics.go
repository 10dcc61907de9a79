// Package analytics derives statistics from the completion history.
// Everything here is a pure function; nothing is persisted.
package analytics

import (
	"math"
	"time"

	"habitflow/internal/storage"
)

// TrendPoint is one day in the rolling 7-day completion trend.
type TrendPoint struct {
	Date    string // YYYY-MM-DD
	Weekday string // short name, e.g. "Mon"
	Count   int
}

// Distribution splits scheduled habit-days into completed and missed.
type Distribution struct {
	Completed int
	Missed    int
}

// Summary bundles the derived numbers for the analytics pane and
// reports.
type Summary struct {
	Consistency      int
	TotalCompletions int
	BestWeekday      string
	Distribution     Distribution
	Trend            []TrendPoint
}

// DayStatus classifies one calendar day.
type DayStatus int

const (
	StatusNone DayStatus = iota
	StatusGood
	StatusPerfect
)

// MonthCell is one slot in the month grid. Day 0 marks a leading blank
// before the 1st.
type MonthCell struct {
	Day    int
	Status DayStatus
	Today  bool
}

// MonthGrid is the calendar for a single month, cells ordered Sun..Sat
// row-major.
type MonthGrid struct {
	Year  int
	Month time.Month
	Cells []MonthCell
}

// TodayStats summarizes the habit list for the dashboard header.
type TodayStats struct {
	Total      int
	Completed  int
	Rate       int // percent, 0 when no habits
	BestStreak int
}

// Trend7 returns the last seven days of completions, oldest first,
// ending today.
func Trend7(history storage.History, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := storage.DateKey(day)
		points = append(points, TrendPoint{
			Date:    key,
			Weekday: day.Format("Mon"),
			Count:   history[key],
		})
	}
	return points
}

// Consistency scores how fully active days were completed, as a
// rounded percentage. Each day with at least one completion contributes
// min(1, count/habitCount); days with no completions are ignored.
// The current habit count stands in for the count on historical days.
func Consistency(history storage.History, habitCount int) int {
	if habitCount < 1 {
		habitCount = 1
	}
	var sum float64
	days := 0
	for _, count := range history {
		if count <= 0 {
			continue
		}
		ratio := float64(count) / float64(habitCount)
		if ratio > 1 {
			ratio = 1
		}
		sum += ratio
		days++
	}
	if days == 0 {
		return 0
	}
	return int(math.Round(sum / float64(days) * 100))
}

// TotalCompletions sums every recorded completion.
func TotalCompletions(history storage.History) int {
	total := 0
	for _, count := range history {
		total += count
	}
	return total
}

// BestWeekday returns the weekday with the most completions overall.
// Ties go to the earliest day in Sunday..Saturday order; with no
// completions at all it returns "N/A".
func BestWeekday(history storage.History) string {
	var sums [7]int
	for key, count := range history {
		day, err := time.ParseInLocation("2006-01-02", key, time.Local)
		if err != nil {
			continue
		}
		sums[day.Weekday()] += count
	}

	best := time.Sunday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if sums[wd] > sums[best] {
			best = wd
		}
	}
	if sums[best] == 0 {
		return "N/A"
	}
	return best.String()
}

// Distribute splits the scheduled habit-days into completed and missed.
// Every recorded day counts habitCount scheduled slots, including days
// that ended at zero.
func Distribute(history storage.History, habitCount int) Distribution {
	completed := TotalCompletions(history)
	days := len(history)
	if days < 1 {
		days = 1
	}
	missed := habitCount*days - completed
	if missed < 0 {
		missed = 0
	}
	return Distribution{Completed: completed, Missed: missed}
}

// Summarize derives the full analytics bundle.
func Summarize(history storage.History, habitCount int, now time.Time) Summary {
	return Summary{
		Consistency:      Consistency(history, habitCount),
		TotalCompletions: TotalCompletions(history),
		BestWeekday:      BestWeekday(history),
		Distribution:     Distribute(history, habitCount),
		Trend:            Trend7(history, now),
	}
}

// Month builds the calendar grid for now's month. A day is Good with
// any completion and Perfect when completions reach the habit count.
func Month(history storage.History, habitCount int, now time.Time) MonthGrid {
	year, month, today := now.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := MonthGrid{Year: year, Month: month}
	for i := 0; i < int(first.Weekday()); i++ {
		grid.Cells = append(grid.Cells, MonthCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		key := storage.DateKey(time.Date(year, month, day, 0, 0, 0, 0, now.Location()))
		count := history[key]

		status := StatusNone
		if count > 0 {
			status = StatusGood
			if habitCount > 0 && count >= habitCount {
				status = StatusPerfect
			}
		}
		grid.Cells = append(grid.Cells, MonthCell{
			Day:    day,
			Status: status,
			Today:  day == today,
		})
	}
	return grid
}

// Today summarizes the live habit list.
func Today(habits []storage.Habit) TodayStats {
	stats := TodayStats{Total: len(habits)}
	for _, h := range habits {
		if h.CompletedToday {
			stats.Completed++
		}
		if h.Streak > stats.BestStreak {
			stats.BestStreak = h.Streak
		}
	}
	if stats.Total > 0 {
		stats.Rate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}
