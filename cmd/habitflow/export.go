// Package main is the entry point for the habitflow application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"habitflow/internal/reports"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `habitflow export - Generate a progress report

USAGE:
    habitflow export [OPTIONS]

OPTIONS:
    -f, --format FORMAT   Output format: markdown (default) or json
    -o, --output FILE     Write to FILE instead of stdout
    -d, --date DATE       Report date as YYYY-MM-DD (default: today)
    -u, --user NAME       Report for NAME (default: current user)
    -h, --help            Show this help message

DESCRIPTION:
    Generates a report of habits, goals, and analytics for one day.
    Past dates derive habit completion from the recorded history.

EXAMPLES:
    # Print today's report as Markdown
    habitflow export

    # Save yesterday's report as JSON
    habitflow export -f json -d 2026-03-09 -o report.json
`

// runExport handles the "habitflow export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	format := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(format, "f", "markdown", "output format (shorthand)")

	output := fs.String("output", "", "output file (default: stdout)")
	fs.StringVar(output, "o", "", "output file (shorthand)")

	dateFlag := fs.String("date", "", "report date as YYYY-MM-DD")
	fs.StringVar(dateFlag, "d", "", "report date (shorthand)")

	userFlag := fs.String("user", "", "user to report on")
	fs.StringVar(userFlag, "u", "", "user to report on (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	if *format != "markdown" && *format != "json" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want markdown or json)\n", *format)
		os.Exit(1)
	}

	store := openStore()

	user := *userFlag
	if user == "" {
		current, ok := store.CurrentUser()
		if !ok {
			fmt.Fprintln(os.Stderr, "Error: no user is logged in")
			fmt.Fprintln(os.Stderr, "Run 'habitflow login NAME' or pass --user NAME")
			os.Exit(1)
		}
		user = current
	}

	date := store.Now()
	if *dateFlag != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *dateFlag, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid date %q (want YYYY-MM-DD)\n", *dateFlag)
			os.Exit(1)
		}
		date = parsed
	}

	generator := reports.NewGenerator(store)
	report, err := generator.GenerateDaily(user, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	var content []byte
	switch *format {
	case "json":
		content, err = reports.FormatDailyJSON(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting report: %v\n", err)
			os.Exit(1)
		}
	default:
		content = []byte(reports.FormatDailyMarkdown(report))
	}

	if *output == "" {
		fmt.Print(string(content))
		return
	}

	if err := os.WriteFile(*output, content, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("✓ Report written to %s\n", *output)
}
