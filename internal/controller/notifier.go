package controller

// Notifier receives the toast-style outcome of every user action. The CLI
// prints styled lines; tests record the calls. Fire-and-forget: the
// controller never blocks on a notification.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NoopNotifier discards all notifications.
type NoopNotifier struct{}

func (NoopNotifier) Success(string) {}
func (NoopNotifier) Error(string)  {}
