// Package reports provides daily report generation for the habitflow app.
package reports

import (
	"math"
	"time"

	"habitflow/internal/analytics"
	"habitflow/internal/storage"
)

// Generator creates reports from storage data.
type Generator struct {
	store *storage.Store
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Store) *Generator {
	return &Generator{store: store}
}

// GenerateDaily generates a report for the given user and date.
// Completion checkmarks reflect live state only when the date is today;
// for past dates they come from the history count.
func (g *Generator) GenerateDaily(user string, date time.Time) (*DailyReport, error) {
	snap, err := g.store.Load(user)
	if err != nil {
		// Recovery already ran; the snapshot is usable.
		snap = storage.DefaultSnapshot()
	}

	date = startOfDay(date)
	isToday := storage.DateKey(date) == g.store.TodayKey()

	return &DailyReport{
		User:        user,
		Date:        date,
		Habits:      habitSummary(snap.Habits, snap.History, date, isToday),
		Goals:       goalSummary(snap.Goals),
		Analytics:   analyticsSummary(snap.History, len(snap.Habits), date),
		GeneratedAt: g.store.Now(),
	}, nil
}

func habitSummary(habits []storage.Habit, history storage.History, date time.Time, isToday bool) HabitSummary {
	summary := HabitSummary{
		Habits:     make([]HabitStatus, 0, len(habits)),
		TotalCount: len(habits),
	}

	// For past dates the per-habit flag is unknown; count the day as
	// fully done when the history shows enough completions.
	doneForDate := history[storage.DateKey(date)] >= len(habits) && len(habits) > 0

	for _, h := range habits {
		done := doneForDate
		if isToday {
			done = h.CompletedToday
		}
		if done {
			summary.CompletedCount++
		}
		if h.Streak > summary.BestStreak {
			summary.BestStreak = h.Streak
		}
		summary.Habits = append(summary.Habits, HabitStatus{
			ID:     h.ID,
			Title:  h.Title,
			Icon:   h.Icon,
			Done:   done,
			Streak: h.Streak,
			Best:   h.Best,
		})
	}

	if summary.TotalCount > 0 {
		summary.CompletionRate = float64(summary.CompletedCount) / float64(summary.TotalCount) * 100
	}
	return summary
}

func goalSummary(goals []storage.Goal) GoalSummary {
	summary := GoalSummary{Goals: make([]GoalStatus, 0, len(goals))}

	total := 0
	for _, goal := range goals {
		progress := goal.Progress()
		total += progress
		summary.Goals = append(summary.Goals, GoalStatus{
			ID:       goal.ID,
			Title:    goal.Title,
			Current:  goal.Current,
			Target:   goal.Target,
			Progress: progress,
		})
	}
	if len(goals) > 0 {
		summary.AverageProgress = int(math.Round(float64(total) / float64(len(goals))))
	}
	return summary
}

func analyticsSummary(history storage.History, habitCount int, date time.Time) AnalyticsSummary {
	sum := analytics.Summarize(history, habitCount, date)

	trend := make([]TrendDay, 0, len(sum.Trend))
	for _, p := range sum.Trend {
		trend = append(trend, TrendDay{
			Date:      p.Date,
			DayOfWeek: p.Weekday,
			Count:     p.Count,
		})
	}

	return AnalyticsSummary{
		Consistency:      sum.Consistency,
		TotalCompletions: sum.TotalCompletions,
		BestWeekday:      sum.BestWeekday,
		Completed:        sum.Distribution.Completed,
		Missed:           sum.Distribution.Missed,
		Trend:            trend,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
