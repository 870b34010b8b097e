package event

import (
	"sync/atomic"

	"github.com/lixenwraith/lizard-arena/parameter"
)

// Queue is a lock-free MPSC ring buffer for game events
//   - Push: lock-free CAS, multiple producers OK
//   - Drain: single consumer (frame loop)
//   - Published flags keep the consumer from reading a half-written slot
//
// On overflow the oldest events are overwritten and counted as dropped
type Queue struct {
	events    [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
	dropped   atomic.Uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event, overwriting the oldest one when full
func (q *Queue) Push(ev GameEvent) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if !q.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := tail & parameter.EventBufferMask
		q.events[idx] = ev
		q.published[idx].Store(true) // After the write

		head := q.head.Load()
		if next-head > parameter.EventQueueSize {
			if q.head.CompareAndSwap(head, next-parameter.EventQueueSize) {
				q.dropped.Add(next - parameter.EventQueueSize - head)
			}
		}
		return
	}
}

// Drain hands every published event to fn in FIFO order and returns how many were delivered
func (q *Queue) Drain(fn func(GameEvent)) int {
	delivered := 0
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if head == tail {
			return delivered
		}
		if tail-head > parameter.EventQueueSize {
			head = tail - parameter.EventQueueSize
		}

		idx := head & parameter.EventBufferMask
		if !q.published[idx].Load() {
			return delivered // Writer incomplete, pick it up next frame
		}
		ev := q.events[idx]
		if !q.head.CompareAndSwap(head, head+1) {
			continue // Overflow moved head under us
		}
		q.published[idx].Store(false)
		fn(ev)
		delivered++
	}
}

// Len returns the approximate pending event count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	if n := tail - head; n < parameter.EventQueueSize {
		return int(n)
	}
	return parameter.EventQueueSize
}

// Dropped returns the number of events lost to overflow
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
