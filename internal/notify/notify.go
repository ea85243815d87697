package notify

import (
	"os/exec"
)

// Urgency levels for notifications
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Send sends a desktop notification using notify-send
func Send(title, body string, urgency Urgency, icon string) error {
	args := []string{title, body}

	if urgency != "" {
		args = append(args, "--urgency="+string(urgency))
	}

	if icon != "" {
		args = append(args, "--icon="+icon)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// Info sends an informational notification
func Info(title, body string) error {
	return Send(title, body, UrgencyNormal, "video-x-generic")
}

// Error sends an error notification
func Error(title, body string) error {
	return Send(title, body, UrgencyCritical, "dialog-error")
}

// RenderStarted notifies that a composition render has started
func RenderStarted(scene string) error {
	return Info("Rendering Composition", "Rendering "+scene+"...")
}

// RenderComplete notifies that a composition render finished
func RenderComplete(filename string) error {
	return Info("Render Complete", filename+" saved!")
}

// RenderFailed notifies that a composition render failed
func RenderFailed(scene string) error {
	return Error("Render Failed", scene+" could not be rendered")
}
