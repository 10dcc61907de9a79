// Package importer provides import functionality for the habitflow app.
// This file implements JSON import of habits and goals.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"habitflow/internal/session"
)

// JSONImporter handles importing from a JSON document with "habits"
// and/or "goals" arrays, matching the shape of habitflow's own export.
type JSONImporter struct{}

// jsonDocument is the accepted wire shape.
type jsonDocument struct {
	Habits []struct {
		Title string `json:"title"`
		Icon  string `json:"icon"`
	} `json:"habits"`
	Goals []struct {
		Title  string `json:"title"`
		Target int    `json:"target"`
	} `json:"goals"`
}

// Name returns the importer name.
func (j *JSONImporter) Name() string {
	return "json"
}

// Import reads habits and goals from JSON and adds them to the session.
// Items whose title already exists are skipped.
func (j *JSONImporter) Import(reader io.Reader, sess *session.Session) (*ImportResult, error) {
	items, err := j.parse(reader)
	if err != nil {
		return nil, err
	}

	existingHabits := make(map[string]bool)
	for _, h := range sess.Habits() {
		existingHabits[strings.ToLower(h.Title)] = true
	}
	existingGoals := make(map[string]bool)
	for _, g := range sess.Goals() {
		existingGoals[strings.ToLower(g.Title)] = true
	}

	result := &ImportResult{}

	for _, item := range items {
		switch item.Kind {
		case "habit":
			if existingHabits[strings.ToLower(item.Title)] {
				result.Skipped++
				continue
			}
			if _, err := sess.AddHabit(item.Title, item.Icon); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.Title, err))
				continue
			}
			existingHabits[strings.ToLower(item.Title)] = true
			result.Habits++

		case "goal":
			if existingGoals[strings.ToLower(item.Title)] {
				result.Skipped++
				continue
			}
			if _, err := sess.AddGoal(item.Title, item.Target); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.Title, err))
				continue
			}
			existingGoals[strings.ToLower(item.Title)] = true
			result.Goals++
		}
	}

	return result, nil
}

// Preview returns a list of items that would be imported.
func (j *JSONImporter) Preview(reader io.Reader) ([]PreviewItem, error) {
	return j.parse(reader)
}

// parse reads and decodes the JSON document.
func (j *JSONImporter) parse(reader io.Reader) ([]PreviewItem, error) {
	var doc jsonDocument
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	var items []PreviewItem

	for _, habit := range doc.Habits {
		title := strings.TrimSpace(habit.Title)
		if title == "" {
			continue
		}
		items = append(items, PreviewItem{
			Kind:  "habit",
			Title: title,
			Icon:  strings.TrimSpace(habit.Icon),
		})
	}

	for _, goal := range doc.Goals {
		title := strings.TrimSpace(goal.Title)
		if title == "" {
			continue
		}
		items = append(items, PreviewItem{
			Kind:   "goal",
			Title:  title,
			Target: goal.Target,
		})
	}

	return items, nil
}
