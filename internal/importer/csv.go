// Package importer provides import functionality for the habitflow app.
// This file implements CSV habit import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"habitflow/internal/session"
)

// CSVImporter handles importing habits from CSV exports. The file needs
// a header with a NAME (or TITLE/HABIT) column; an ICON column is
// optional. This covers exports from common habit trackers.
type CSVImporter struct{}

// Name returns the importer name.
func (c *CSVImporter) Name() string {
	return "csv"
}

// Import reads habits from CSV and adds them to the session. Habits
// whose title already exists are skipped.
func (c *CSVImporter) Import(reader io.Reader, sess *session.Session) (*ImportResult, error) {
	items, err := c.parseHabits(reader)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool)
	for _, h := range sess.Habits() {
		existing[strings.ToLower(h.Title)] = true
	}

	result := &ImportResult{}

	for _, item := range items {
		if existing[strings.ToLower(item.Title)] {
			result.Skipped++
			continue
		}
		if _, err := sess.AddHabit(item.Title, item.Icon); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.Title, err))
			continue
		}
		existing[strings.ToLower(item.Title)] = true
		result.Habits++
	}

	return result, nil
}

// Preview returns a list of habits that would be imported.
func (c *CSVImporter) Preview(reader io.Reader) ([]PreviewItem, error) {
	return c.parseHabits(reader)
}

// parseHabits reads and parses the CSV format.
func (c *CSVImporter) parseHabits(reader io.Reader) ([]PreviewItem, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	// Read header
	header, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Find column indices
	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff") // UTF-8 BOM (common in some exports)
		}
		colIndex[strings.ToUpper(strings.TrimSpace(col))] = i
	}

	titleIdx := -1
	for _, name := range []string{"NAME", "TITLE", "HABIT"} {
		if idx, ok := colIndex[name]; ok {
			titleIdx = idx
			break
		}
	}
	if titleIdx < 0 {
		return nil, fmt.Errorf("missing required column: NAME, TITLE, or HABIT")
	}

	var items []PreviewItem

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(record) == 0 || titleIdx >= len(record) {
			continue
		}

		item := PreviewItem{Kind: "habit"}
		item.Title = strings.TrimSpace(record[titleIdx])
		if item.Title == "" {
			continue
		}

		if idx, ok := colIndex["ICON"]; ok && idx < len(record) {
			item.Icon = strings.TrimSpace(record[idx])
		}

		items = append(items, item)
	}

	return items, nil
}
