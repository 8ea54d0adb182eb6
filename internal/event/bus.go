// Package event provides the synchronous publish/subscribe bus that carries
// model-change notifications from the edit engine to render consumers.
package event

// Names of the events the edit engine emits after a committed command.
const (
	PointsAdded   = "points:added"
	PointsMoved   = "points:moved"
	PointsRemoved = "points:removed"
	GlyphChanged  = "glyph:changed"
)

// Event is one published notification.
type Event struct {
	Name    string
	Payload any
}

// Handler consumes a published event.
type Handler func(Event)

// Subscription identifies one registered handler. Go functions are not
// comparable, so the subscription itself is the identity unit for
// unsubscription.
type Subscription struct {
	name    string
	handler Handler
}

// Bus is a synchronous, single-threaded publish/subscribe registry keyed by
// event name. Handlers run in registration order on the publisher's
// goroutine. There is no re-entrancy guard: a handler that re-emits the
// event it is handling recurses through the same subscriber list, so
// handlers must avoid unbounded recursion by contract.
type Bus struct {
	subs map[string][]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*Subscription)}
}

// Subscribe registers a handler for the named event and returns its
// subscription.
func (b *Bus) Subscribe(name string, h Handler) *Subscription {
	sub := &Subscription{name: name, handler: h}
	b.subs[name] = append(b.subs[name], sub)
	return sub
}

// Unsubscribe removes the handler identified by the subscription. Unknown
// subscriptions are ignored.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	list := b.subs[sub.name]
	for i, s := range list {
		if s == sub {
			b.subs[sub.name] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Publish invokes every handler registered for the named event, in
// registration order, before returning.
func (b *Bus) Publish(name string, payload any) {
	// Copy the list so a handler that unsubscribes itself mid-dispatch
	// does not disturb iteration.
	list := append([]*Subscription(nil), b.subs[name]...)
	for _, s := range list {
		s.handler(Event{Name: name, Payload: payload})
	}
}
