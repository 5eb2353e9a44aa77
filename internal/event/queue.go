package event

// queue is a bounded FIFO ring of deferred events. Capacity is fixed at
// construction; push never blocks and fails when full. Thread-confined like
// the registry.
type queue struct {
	buf   []Event
	head  int
	count int
}

func newQueue(capacity int) *queue {
	return &queue{buf: make([]Event, capacity)}
}

// push enqueues at the tail, or returns ErrQueueFull without enqueuing.
func (q *queue) push(ev Event) error {
	if q.count == len(q.buf) {
		return ErrQueueFull
	}
	q.buf[(q.head+q.count)%len(q.buf)] = ev
	q.count++
	return nil
}

// pop dequeues from the head. The second return is false when empty.
func (q *queue) pop() (Event, bool) {
	if q.count == 0 {
		return Event{}, false
	}
	ev := q.buf[q.head]
	q.buf[q.head] = Event{}
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return ev, true
}

func (q *queue) len() int {
	return q.count
}
