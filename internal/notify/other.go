//go:build !darwin && !linux

package notify

// stubNotifier is what platforms without a known notification command
// get. Celebrations vanish quietly; the status bar still announces the
// streak, so nothing user-visible is lost.
type stubNotifier struct{}

func newPlatformNotifier() Notifier {
	return &stubNotifier{}
}

func (n *stubNotifier) Send(title, message string) error {
	return nil
}

func (n *stubNotifier) SendWithSound(title, message string) error {
	return nil
}

func (n *stubNotifier) IsSupported() bool {
	return false
}
