//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

// linuxNotifier shells out to notify-send, which every mainstream
// desktop ships or can install. No daemon handling here; if the command
// exists it is assumed to reach one.
type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return &linuxNotifier{}
}

func (n *linuxNotifier) Send(title, message string) error {
	return n.run(title, message, false)
}

// SendWithSound raises the urgency hint. Whether that actually makes a
// noise is up to the user's notification daemon.
func (n *linuxNotifier) SendWithSound(title, message string) error {
	return n.run(title, message, true)
}

func (n *linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (n *linuxNotifier) run(title, message string, sound bool) error {
	args := []string{
		"--app-name=habitflow",
		title,
		message,
	}
	if sound {
		args = append([]string{"--urgency=normal"}, args...)
	}

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
