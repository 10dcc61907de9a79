// Package main is the entry point for the habitflow application.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"habitflow/internal/backup"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `habitflow restore - Restore data from a backup

USAGE:
    habitflow restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore the current user's most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2026-03-10_143022_000)
                   Use 'habitflow backup --list' to see available backups.

DESCRIPTION:
    Restores one user's data files (habits, goals, settings, history)
    from a backup. A safety backup of the affected user is created
    automatically before restoring.

EXAMPLES:
    # Restore from a specific backup
    habitflow restore 2026-03-10_143022_000

    # Restore the current user's most recent backup
    habitflow restore --latest

    # Restore without confirmation prompt
    habitflow restore --force 2026-03-10_143022_000
`

// runRestore handles the "habitflow restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore the current user's most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	store := openStore()
	manager := backup.NewManager(store.DataDir(), version)

	// Determine which backup to restore
	var backupName string
	if *latestFlag {
		user, ok := store.CurrentUser()
		if !ok {
			fmt.Fprintln(os.Stderr, "Error: no user is logged in")
			fmt.Fprintln(os.Stderr, "Run 'habitflow login NAME' first, or name a backup directly.")
			os.Exit(1)
		}
		backups, err := manager.ListForUser(user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
			os.Exit(1)
		}
		if len(backups) == 0 {
			fmt.Fprintf(os.Stderr, "No backups available for %s.\n", user)
			os.Exit(1)
		}
		backupName = backups[0].Name
	} else if fs.NArg() > 0 {
		backupName = fs.Arg(0)
	} else {
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'habitflow restore BACKUP_NAME' or 'habitflow restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'habitflow backup --list' to see available backups.")
		os.Exit(1)
	}

	// Get backup info
	info, err := manager.GetBackup(backupName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  User: %s\n", info.User)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Habits: %d, Goals: %d, History days: %d\n",
		info.Stats["habits"], info.Stats["goals"], info.Stats["history_days"])
	fmt.Println()

	// Confirm unless --force is set
	if !*forceFlag {
		fmt.Printf("⚠ This will overwrite %s's current data.\n", info.User)
		fmt.Print("Continue? [y/N] ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(backupName); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", backupName)
}
