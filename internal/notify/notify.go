// Package notify provides cross-platform desktop notification support.
// It uses native notification mechanisms on macOS (osascript) and Linux
// (notify-send), and builds the celebration messages shown when habits
// are completed.
package notify

import (
	"fmt"
	"sort"
)

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with sound.
	SendWithSound(title, message string) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (n *noopNotifier) Send(title, message string) error {
	return nil
}

func (n *noopNotifier) SendWithSound(title, message string) error {
	return nil
}

func (n *noopNotifier) IsSupported() bool {
	return false
}

// New creates a platform-specific notifier.
// Returns a no-op notifier if the platform doesn't support notifications.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return &noopNotifier{}
	}
	return n
}

// Celebration is the desktop message for a completed habit.
type Celebration struct {
	Title     string
	Message   string
	Milestone bool // streak hit a configured milestone
}

// NewCelebration builds the message for completing habitTitle with the
// given streak. Milestones come from config and get a louder cheer.
func NewCelebration(habitTitle string, streak int, milestones []int) Celebration {
	c := Celebration{Title: "Habit complete! 🎉"}

	sorted := append([]int(nil), milestones...)
	sort.Ints(sorted)
	for _, m := range sorted {
		if streak == m {
			c.Milestone = true
			break
		}
	}

	switch {
	case c.Milestone:
		c.Title = "Streak milestone! 🏆"
		c.Message = fmt.Sprintf("%s — %d days in a row!", habitTitle, streak)
	case streak > 1:
		c.Message = fmt.Sprintf("%s — %d day streak", habitTitle, streak)
	default:
		c.Message = fmt.Sprintf("%s — great start!", habitTitle)
	}
	return c
}

// Deliver sends the celebration through n, with sound when asked for.
func (c Celebration) Deliver(n Notifier, sound bool) error {
	if sound || c.Milestone {
		return n.SendWithSound(c.Title, c.Message)
	}
	return n.Send(c.Title, c.Message)
}
