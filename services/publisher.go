package services

// EventPublisher fans job results out to live subscribers.
type EventPublisher interface {
	Publish(room, messageType string, payload interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
