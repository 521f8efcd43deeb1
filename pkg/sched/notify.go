package sched

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Notifier delivers a user-facing notification. Delivery is best-effort:
// implementations silently skip when the platform reports notifications
// unavailable, and the reminder loop keeps running either way.
type Notifier interface {
	Deliver(title, body string)
}

// DesktopNotifier posts notifications through the desktop's own helper:
// notify-send on Linux, osascript on macOS.
type DesktopNotifier struct{}

// Enabled reports whether the platform can currently show notifications.
func (DesktopNotifier) Enabled() bool {
	switch runtime.GOOS {
	case "linux":
		_, err := exec.LookPath("notify-send")
		return err == nil
	case "darwin":
		_, err := exec.LookPath("osascript")
		return err == nil
	default:
		return false
	}
}

// Deliver shows the notification, or does nothing if delivery isn't
// available. Helper failures are ignored for the same reason.
func (n DesktopNotifier) Deliver(title, body string) {
	if !n.Enabled() {
		return
	}
	switch runtime.GOOS {
	case "linux":
		exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		exec.Command("osascript", "-e", script).Run()
	}
}
