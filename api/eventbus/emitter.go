// Package eventbus provides a registerable global publisher/subscriber for
// session events.
package eventbus

import (
	"sync"

	"github.com/cskr/pubsub/v2"
)

// EventID describes the identity of an event class on the bus.
type EventID interface {
	// Value returns the numeric identity of the event.
	Value() uint

	// String returns the display name of the event.
	String() string
}

// EventHandler represents an interface that provides an event publisher and
// subscriber.
type EventHandler interface {
	// Publish publishes an event to the event stream.
	Publish(id uint, name string, data any)

	// Subscribe subscribes to an event from the event stream.
	Subscribe(id uint, name string) SubscriberID
}

// nilEventHandler represents a disabled event handler.
type nilEventHandler struct{}

// defaultEventHandler represents the internal pubsub-backed event handler.
type defaultEventHandler struct {
	*pubsub.PubSub[uint, any]
}

var (
	handlerMu sync.RWMutex
	handler   EventHandler = DefaultHandler()
)

// RegisterEventHandler registers the event handler interface.
func RegisterEventHandler(eh EventHandler) {
	if eh == nil {
		return
	}

	handlerMu.Lock()
	defer handlerMu.Unlock()

	handler = eh
}

// DisableEvents unregisters the event handler.
func DisableEvents() {
	RegisterEventHandler(&nilEventHandler{})
}

// Publish calls the registered publisher handler.
func Publish(id EventID, data any) {
	if id == nil {
		return
	}

	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()

	h.Publish(id.Value(), id.String(), data)
}

// Subscribe calls the registered subscriber handler.
func Subscribe(id EventID) SubscriberID {
	if id == nil {
		return (&nilEventHandler{}).Subscribe(0, "")
	}

	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()

	return h.Subscribe(id.Value(), id.String())
}

// DefaultHandler returns the default event handler.
func DefaultHandler() EventHandler {
	return &defaultEventHandler{PubSub: pubsub.New[uint, any](10)}
}

// NilHandler returns a disabled event handler.
func NilHandler() EventHandler {
	return &nilEventHandler{}
}

// Publish publishes an event to the event stream.
func (d *defaultEventHandler) Publish(id uint, name string, data any) {
	d.TryPub(data, id)
}

// Subscribe subscribes to an event from the event stream.
func (d *defaultEventHandler) Subscribe(id uint, name string) SubscriberID {
	ch := d.Sub(id)
	return SubscriberID{
		C:      ch,
		active: true,
		unsub: func() {
			go d.Unsub(ch, id)
		},
	}
}

// Publish does not do anything.
func (n *nilEventHandler) Publish(uint, string, any) {
}

// Subscribe does not do anything.
func (n *nilEventHandler) Subscribe(uint, string) SubscriberID {
	ch := make(chan any)
	close(ch)
	return SubscriberID{C: ch}
}
