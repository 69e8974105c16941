// Package notify carries transient user-facing notifications (toasts)
// out of library code without binding it to a UI.
package notify

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Notification is a single transient message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives notifications.
type Notifier interface {
	Notify(Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(Notification)

// Notify implements Notifier.
func (f Func) Notify(n Notification) { f(n) }

// Discard returns a Notifier that drops everything.
func Discard() Notifier {
	return Func(func(Notification) {})
}
