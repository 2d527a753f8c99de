package notify

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Empty is the payload of signals that carry no data.
type Empty struct{}

type subscriber[T any] struct {
	id uuid.UUID
	fn func(T)
}

// Signal is an ordered, synchronous observer list.
// Subscribers run in subscription order on the firing goroutine. A panicking subscriber is
// logged and skipped; the rest still run. Firing iterates a snapshot, so subscribers may
// subscribe or unsubscribe while a fire is in progress.
type Signal[T any] struct {
	mu          *sync.Mutex
	name        string
	subscribers []subscriber[T]
}

// NewSignal creates an empty signal. The name only appears in diagnostics.
//
// Parameters:
//   - name: signal name used in log output
//
// Returns:
//   - *Signal[T]: the new signal
func NewSignal[T any](name string) *Signal[T] {
	return &Signal[T]{
		mu:   &sync.Mutex{},
		name: name,
	}
}

// Name returns the diagnostic name of the signal.
func (s *Signal[T]) Name() string {
	return s.name
}

// Subscribe appends fn to the subscriber list.
// Every call creates a distinct subscription; the returned handle is the only way to remove it.
//
// Parameters:
//   - fn: the callback; nil is ignored
//
// Returns:
//   - uuid.UUID: subscription handle, uuid.Nil when fn is nil
func (s *Signal[T]) Subscribe(fn func(T)) uuid.UUID {
	if fn == nil {
		return uuid.Nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.subscribers = append(s.subscribers, subscriber[T]{id: id, fn: fn})
	return id
}

// Unsubscribe removes the subscription with the given handle.
//
// Returns:
//   - bool: true if a subscription was removed
func (s *Signal[T]) Unsubscribe(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subscribers {
		if sub.id == id {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether the handle is currently subscribed.
func (s *Signal[T]) Has(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subscribers {
		if sub.id == id {
			return true
		}
	}
	return false
}

// Count returns the number of subscribers.
func (s *Signal[T]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Clear removes every subscriber.
func (s *Signal[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = nil
}

// Fire delivers value to every subscriber registered at the time of the call.
//
// Parameters:
//   - value: the payload passed to each subscriber
func (s *Signal[T]) Fire(value T) {
	s.mu.Lock()
	snapshot := make([]subscriber[T], len(s.subscribers))
	copy(snapshot, s.subscribers)
	s.mu.Unlock()

	for _, sub := range snapshot {
		s.deliver(sub, value)
	}
}

func (s *Signal[T]) deliver(sub subscriber[T], value T) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Notify] subscriber %s of %q panicked: %v", sub.id, s.name, r)
		}
	}()
	sub.fn(value)
}
