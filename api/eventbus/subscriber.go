package eventbus

// SubscriberID represents one subscription to an event class.
type SubscriberID struct {
	// C receives published event payloads. It is closed when the
	// subscription ends.
	C chan any

	active bool
	unsub  func()
}

// Active reports whether the subscription still receives events.
func (s *SubscriberID) Active() bool {
	return s.active
}

// Unsubscribe removes the subscription from the event stream. It is safe to
// call more than once.
func (s *SubscriberID) Unsubscribe() {
	if !s.active {
		return
	}

	s.active = false
	if s.unsub != nil {
		s.unsub()
	}
}
