// Package main is the entry point for the habitflow application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"habitflow/internal/config"
	"habitflow/internal/notify"
	"habitflow/internal/session"
	"habitflow/internal/storage"
	"habitflow/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `habitflow - A habit tracker for your terminal

USAGE:
    habitflow [OPTIONS]
    habitflow <command> [ARGS]

COMMANDS:
    login NAME       Switch to a user profile without opening the TUI
    logout           Clear the current user
    whoami           Show the current user and login date
    export           Generate a daily report (Markdown)
    export -f json   Output report as JSON
    backup           Create a backup of the current user's data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore the current user's most recent backup
    import FILE      Import habits and goals from a CSV or JSON file

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    habitflow is a keyboard-driven habit tracker with streaks, numeric
    goals, a completion calendar, and per-user profiles.

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1-4          Jump to specific pane
        ?            Show help overlay
        Ctrl+Z       Undo last action
        Ctrl+Y       Redo
        t            Toggle dark/light theme
        Ctrl+O       Log out
        q            Quit

    Habits Pane:
        j/k, ↓/↑     Navigate
        a            Add habit
        Space/Enter  Toggle today's completion
        x            Delete habit

    Goals Pane:
        j/k, ↓/↑     Navigate
        a            Add goal
        + / -        Adjust progress
        x            Delete goal

DATA STORAGE:
    All data is stored in ~/.habitflow/ as plain JSON files, one set
    per user:
        habitflow_<user>_habits.json
        habitflow_<user>_goals.json
        habitflow_<user>_settings.json
        habitflow_<user>_history.json

CONFIGURATION:
    Optional config file: ~/.config/habitflow/config.yaml

EXAMPLES:
    # Start the app
    habitflow

    # Generate today's report for the current user
    habitflow export

    # Back up, then restore the latest backup
    habitflow backup
    habitflow restore --latest
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "login":
			runLogin(os.Args[2:])
			return
		case "logout":
			runLogout(os.Args[2:])
			return
		case "whoami":
			runWhoami(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("habitflow version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Resume the last session if a current user is recorded. The daily
	// reset runs before the first render so stale completed-today flags
	// never appear.
	var sess *session.Session
	if user, ok := store.CurrentUser(); ok {
		sess, err = session.Open(store, user)
		if sess == nil {
			fmt.Fprintf(os.Stderr, "Error opening session for %s: %v\n", user, err)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		if _, err := sess.CheckDailyReset(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: daily reset failed: %v\n", err)
		}
	}

	notifier := notify.New()

	if err := ui.Run(store, cfg, notifier, sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
