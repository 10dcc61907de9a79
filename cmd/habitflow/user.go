// Package main is the entry point for the habitflow application.
// This file contains the login, logout, and whoami subcommand handlers.
package main

import (
	"flag"
	"fmt"
	"os"

	"habitflow/internal/config"
	"habitflow/internal/session"
	"habitflow/internal/storage"
)

// loginHelpText is the help message for the login subcommand.
const loginHelpText = `habitflow login - Switch to a user profile

USAGE:
    habitflow login NAME

DESCRIPTION:
    Records NAME as the current user and runs the daily reset check.
    The next 'habitflow' invocation opens that profile directly. A name
    with no saved data starts a fresh profile.

EXAMPLES:
    habitflow login alice
`

// runLogin handles the "habitflow login" subcommand.
func runLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, loginHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(loginHelpText)
		os.Exit(0)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one user name")
		fmt.Fprintln(os.Stderr, "Usage: habitflow login NAME")
		os.Exit(1)
	}

	store := openStore()

	sess, err := session.Open(store, fs.Arg(0))
	if sess == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := store.SetCurrentUser(sess.User()); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording current user: %v\n", err)
		os.Exit(1)
	}

	wasReset, err := sess.CheckDailyReset()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: daily reset failed: %v\n", err)
	}

	fmt.Printf("✓ Logged in as %s\n", sess.User())
	if wasReset {
		fmt.Println("  New day: completed-today flags were reset.")
	}
	fmt.Printf("  Habits: %d, Goals: %d\n", len(sess.Habits()), len(sess.Goals()))
}

// logoutHelpText is the help message for the logout subcommand.
const logoutHelpText = `habitflow logout - Clear the current user

USAGE:
    habitflow logout

DESCRIPTION:
    Clears the current user marker. Profile data is kept; the next
    'habitflow' invocation shows the login screen.
`

// runLogout handles the "habitflow logout" subcommand.
func runLogout(args []string) {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, logoutHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(logoutHelpText)
		os.Exit(0)
	}

	store := openStore()

	user, ok := store.CurrentUser()
	if !ok {
		fmt.Println("No user is logged in.")
		return
	}

	if err := store.ClearCurrentUser(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Logged out %s\n", user)
}

// whoamiHelpText is the help message for the whoami subcommand.
const whoamiHelpText = `habitflow whoami - Show the current user

USAGE:
    habitflow whoami

DESCRIPTION:
    Prints the current user and their last recorded login date.
`

// runWhoami handles the "habitflow whoami" subcommand.
func runWhoami(args []string) {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, whoamiHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(whoamiHelpText)
		os.Exit(0)
	}

	store := openStore()

	user, ok := store.CurrentUser()
	if !ok {
		fmt.Println("No user is logged in.")
		os.Exit(1)
	}

	fmt.Printf("%s\n", user)
	if last := store.LastLogin(user); last != "" {
		fmt.Printf("Last login: %s\n", last)
	}
}

// openStore loads the config and opens the data directory, exiting on
// failure. Shared by the subcommand handlers.
func openStore() *storage.Store {
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
	return store
}
