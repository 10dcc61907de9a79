// Package main is the entry point for the habitflow application.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"habitflow/internal/backup"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `habitflow backup - Create and manage backups

USAGE:
    habitflow backup [OPTIONS]

OPTIONS:
    -l, --list        List available backups
    -u, --user NAME   Back up NAME's data (default: current user)
    --prune N         Delete all but the N newest backups
    -h, --help        Show this help message

DESCRIPTION:
    Creates a timestamped backup of one user's data files (habits,
    goals, settings, history). Backups are stored in
    ~/.habitflow/backups/ and can be restored later.

EXAMPLES:
    # Create a new backup for the current user
    habitflow backup

    # List all available backups
    habitflow backup --list

    # Keep only the ten newest backups
    habitflow backup --prune 10
`

// runBackup handles the "habitflow backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	userFlag := fs.String("user", "", "user to back up")
	fs.StringVar(userFlag, "u", "", "user to back up (shorthand)")

	pruneFlag := fs.Int("prune", 0, "delete all but the N newest backups")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	store := openStore()
	manager := backup.NewManager(store.DataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)

	case *pruneFlag > 0:
		deleted, err := manager.Prune(*pruneFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error pruning backups: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Pruned %d backup(s)\n", deleted)

	default:
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
		createBackup(manager, user)
	}
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager, user string) {
	name, err := manager.Create(user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  User: %s\n", info.User)
	fmt.Printf("  Habits: %d, Goals: %d, History days: %d\n",
		info.Stats["habits"], info.Stats["goals"], info.Stats["history_days"])
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'habitflow backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		age := formatAge(b.CreatedAt)
		fmt.Printf("  %s  %-12s (%s)   Habits: %d, Goals: %d\n",
			b.Name, b.User, age, b.Stats["habits"], b.Stats["goals"])
	}
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}
