package telemetry

import (
	"sync"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// Queue is an unbounded FIFO of events not yet delivered.
//
// The notify channel (capacity 1) wakes the drain loop when an event is
// pushed. Events leave the queue only through Pop, after the drain loop has
// written them, so a lost connection never reorders or drops them.
type Queue struct {
	mu      sync.Mutex
	entries []m.Event
	notify  chan struct{}
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push appends event and signals the drain loop.
func (q *Queue) Push(event m.Event) {
	q.mu.Lock()
	q.entries = append(q.entries, event)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Peek returns the oldest event without removing it.
func (q *Queue) Peek() (m.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil, false
	}

	return q.entries[0], true
}

// Pop removes the oldest event. No-op if the queue is empty.
func (q *Queue) Pop() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return
	}

	q.entries[0] = nil
	q.entries = q.entries[1:]
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.entries)
}

// Notify returns a channel that receives a signal when events are pushed.
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}
