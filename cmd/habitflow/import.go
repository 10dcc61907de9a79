// Package main is the entry point for the habitflow application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"habitflow/internal/importer"
	"habitflow/internal/session"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `habitflow import - Import habits and goals from other trackers

USAGE:
    habitflow import [OPTIONS] FILE

OPTIONS:
    -f, --format FORMAT   Input format: csv or json (default: by extension)
    -u, --user NAME       Import into NAME's profile (default: current user)
    --preview             Show what would be imported without importing
    -h, --help            Show this help message

DESCRIPTION:
    Imports habits (CSV or JSON) and goals (JSON) into a profile.
    CSV files need a NAME, TITLE, or HABIT column; an ICON column is
    optional. JSON files use the same shape as habitflow's export.
    Duplicates are skipped by title; imported habits start with fresh
    streaks.

EXAMPLES:
    # Preview an import
    habitflow import --preview habits.csv

    # Import a JSON export into alice's profile
    habitflow import -u alice backup.json
`

// runImport handles the "habitflow import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	format := fs.String("format", "", "input format: csv or json")
	fs.StringVar(format, "f", "", "input format (shorthand)")

	userFlag := fs.String("user", "", "user to import into")
	fs.StringVar(userFlag, "u", "", "user to import into (shorthand)")

	previewFlag := fs.Bool("preview", false, "show what would be imported")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one input file")
		fmt.Fprintln(os.Stderr, "Usage: habitflow import [OPTIONS] FILE")
		os.Exit(1)
	}
	path := fs.Arg(0)

	// Infer the format from the extension when not given
	if *format == "" {
		switch {
		case strings.HasSuffix(path, ".csv"):
			*format = "csv"
		case strings.HasSuffix(path, ".json"):
			*format = "json"
		default:
			fmt.Fprintln(os.Stderr, "Error: cannot infer format; pass --format csv or --format json")
			os.Exit(1)
		}
	}

	imp := importer.GetImporter(*format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (supported: %s)\n",
			*format, strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		os.Exit(1)
	}
	defer file.Close()

	if *previewFlag {
		items, err := imp.Preview(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
			os.Exit(1)
		}
		if len(items) == 0 {
			fmt.Println("Nothing to import.")
			return
		}
		fmt.Printf("Would import %d item(s):\n", len(items))
		for _, item := range items {
			switch item.Kind {
			case "goal":
				fmt.Printf("  goal   %s (target %d)\n", item.Title, item.Target)
			default:
				fmt.Printf("  habit  %s %s\n", item.Icon, item.Title)
			}
		}
		return
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

	sess, err := session.Open(store, user)
	if sess == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	result, err := imp.Import(file, sess)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Imported %d habit(s), %d goal(s) into %s\n", result.Habits, result.Goals, user)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped %d duplicate(s)\n", result.Skipped)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  Warning: %s\n", e)
	}
}
