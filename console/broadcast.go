package console

import "sync"

// Event is one log notification before it reaches a buffer.
type Event struct {
	Level   Level
	Message string
	Context string
}

// Handler receives published events. Handlers may be invoked from any
// goroutine and must not block.
type Handler func(Event)

// Broadcaster fans log events out to subscribers. Subscribing returns a
// token whose Close unsubscribes exactly once, so idempotent overlay
// enable/disable cycles cannot leak or double-register handlers.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[int]Handler
	next int
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]Handler)}
}

// Subscribe registers h and returns its subscription token.
func (b *Broadcaster) Subscribe(h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = h
	return &Subscription{b: b, id: id}
}

// Publish delivers e to every current subscriber.
func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	// Delivery happens outside the lock so a handler appending to a
	// console buffer cannot deadlock against Subscribe/Close.
	for _, h := range handlers {
		h(e)
	}
}

// Subscription is the registration token returned by Subscribe.
type Subscription struct {
	b    *Broadcaster
	id   int
	once sync.Once
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.b.mu.Lock()
		delete(s.b.subs, s.id)
		s.b.mu.Unlock()
	})
}
