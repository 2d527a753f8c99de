package input

import "sync"

// Sink accepts input events. Windows and pollers push into a Sink from their callback goroutines.
type Sink interface {
	Push(e Event)
}

// Queue is a mutex-protected FIFO of input events drained once per tick.
type Queue struct {
	mu     *sync.Mutex
	events []Event
}

var _ Sink = &Queue{}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		mu:     &sync.Mutex{},
		events: make([]Event, 0, 64),
	}
}

// Push appends e. Safe for concurrent use.
func (q *Queue) Push(e Event) {
	if e == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, e)
}

// Drain removes and returns every queued event in arrival order.
//
// Returns:
//   - []Event: the queued events, nil if none
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]Event, 0, cap(out))
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
