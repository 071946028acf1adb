package simulator

// Publisher pushes a typed event to connected dashboard clients. The
// WebSocket hub satisfies this; generators never depend on it directly.
type Publisher interface {
	Publish(event string, data interface{})
}

// nopPublisher is used when no hub is wired, e.g. in tests.
type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

// NopPublisher returns a publisher that discards every event.
func NopPublisher() Publisher {
	return nopPublisher{}
}
