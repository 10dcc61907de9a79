// Package reports provides daily report generation for the habitflow
// app. Reports aggregate habits, goals, and derived analytics for one
// user.
package reports

import (
	"time"
)

// DailyReport contains aggregated data for a single day.
type DailyReport struct {
	User        string           `json:"user"`
	Date        time.Time        `json:"date"`
	Habits      HabitSummary     `json:"habits"`
	Goals       GoalSummary      `json:"goals"`
	Analytics   AnalyticsSummary `json:"analytics"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// HabitSummary contains habit statistics for the day.
type HabitSummary struct {
	Habits         []HabitStatus `json:"habits"`
	CompletedCount int           `json:"completed_count"`
	TotalCount     int           `json:"total_count"`
	CompletionRate float64       `json:"completion_rate"`
	BestStreak     int           `json:"best_streak"`
}

// HabitStatus represents a habit and its completion status.
type HabitStatus struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`
	Done   bool   `json:"done"`
	Streak int    `json:"streak"`
	Best   int    `json:"best"`
}

// GoalSummary contains goal statistics.
type GoalSummary struct {
	Goals           []GoalStatus `json:"goals"`
	AverageProgress int          `json:"average_progress"`
}

// GoalStatus represents a goal and its progress.
type GoalStatus struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Current  int    `json:"current"`
	Target   int    `json:"target"`
	Progress int    `json:"progress"` // percent, clamped at 100
}

// AnalyticsSummary carries the derived history statistics.
type AnalyticsSummary struct {
	Consistency      int        `json:"consistency"`
	TotalCompletions int        `json:"total_completions"`
	BestWeekday      string     `json:"best_weekday"`
	Completed        int        `json:"completed"`
	Missed           int        `json:"missed"`
	Trend            []TrendDay `json:"trend"`
}

// TrendDay is one day in the rolling 7-day trend.
type TrendDay struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Count     int    `json:"count"`
}
