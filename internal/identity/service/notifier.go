package service

// Notifier delivers account emails. Calls hand the message off and return
// immediately; delivery failures are the notifier's concern and never reach
// the caller.
type Notifier interface {
	NotifyWelcome(email, name string)
	NotifyPasswordReset(email, name, link string)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyWelcome(string, string)               {}
func (NopNotifier) NotifyPasswordReset(string, string, string) {}
