//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// darwinNotifier drives the macOS notification center through
// osascript, which needs no entitlements or bundle identity the way the
// native APIs do.
type darwinNotifier struct{}

func newPlatformNotifier() Notifier {
	return &darwinNotifier{}
}

func (n *darwinNotifier) Send(title, message string) error {
	return n.run(title, message, false)
}

func (n *darwinNotifier) SendWithSound(title, message string) error {
	return n.run(title, message, true)
}

func (n *darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (n *darwinNotifier) run(title, message string, sound bool) error {
	// Titles come from user-entered habit names, so escape for
	// AppleScript before interpolating.
	title = escapeAppleScript(title)
	message = escapeAppleScript(message)

	script := fmt.Sprintf(`display notification %q with title %q`, message, title)
	if sound {
		script += ` sound name "default"`
	}

	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
