package realtime

// NopNotifier is a Notifier that drops every message. It is used in
// environments without realtime support and in handler tests.
type NopNotifier struct{}

// Publish discards the event.
func (NopNotifier) Publish(event string, payload any) {}
