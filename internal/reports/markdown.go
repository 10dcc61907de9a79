// Package reports provides daily report generation for the habitflow app.
package reports

import (
	"fmt"
	"strings"
)

// FormatDailyMarkdown formats a daily report as human-readable Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Habit Report — %s\n\n", report.Date.Format("Monday, January 2, 2006"))
	fmt.Fprintf(&b, "User: %s\n\n", report.User)

	b.WriteString("## Habits\n\n")
	if len(report.Habits.Habits) == 0 {
		b.WriteString("_No habits yet._\n\n")
	} else {
		for _, h := range report.Habits.Habits {
			check := " "
			if h.Done {
				check = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s %s", check, h.Icon, h.Title)
			if h.Streak > 0 {
				fmt.Fprintf(&b, " — 🔥 %d day streak", h.Streak)
			}
			if h.Best > h.Streak {
				fmt.Fprintf(&b, " (best %d)", h.Best)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n**%d/%d completed (%.0f%%)**\n\n",
			report.Habits.CompletedCount, report.Habits.TotalCount, report.Habits.CompletionRate)
	}

	b.WriteString("## Goals\n\n")
	if len(report.Goals.Goals) == 0 {
		b.WriteString("_No goals yet._\n\n")
	} else {
		for _, g := range report.Goals.Goals {
			fmt.Fprintf(&b, "- %s: %d/%d %s %d%%\n", g.Title, g.Current, g.Target, progressBar(g.Progress, 10), g.Progress)
		}
		fmt.Fprintf(&b, "\nAverage progress: %d%%\n\n", report.Goals.AverageProgress)
	}

	b.WriteString("## Analytics\n\n")
	fmt.Fprintf(&b, "- Consistency: %d%%\n", report.Analytics.Consistency)
	fmt.Fprintf(&b, "- Total completions: %d\n", report.Analytics.TotalCompletions)
	fmt.Fprintf(&b, "- Best weekday: %s\n", report.Analytics.BestWeekday)
	fmt.Fprintf(&b, "- Completed vs missed: %d / %d\n\n", report.Analytics.Completed, report.Analytics.Missed)

	if len(report.Analytics.Trend) > 0 {
		b.WriteString("### Last 7 days\n\n")
		b.WriteString("| Day | Date | Completions |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, d := range report.Analytics.Trend {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", d.DayOfWeek, d.Date, d.Count)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_Generated at %s_\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	return b.String()
}

// progressBar renders a fixed-width unicode bar for a 0-100 percentage.
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
