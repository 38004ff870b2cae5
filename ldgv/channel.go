package ldgv

import "sync"

// Queue is an unbounded FIFO queue of values.  Enqueue never blocks;
// Dequeue blocks until a value is available.  A queue is shared by the
// two endpoints of a channel pair and by any forked process holding an
// endpoint, so all access goes through the mutex.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond
	vals []*Val
}

// NewQueue initializes and returns an empty Queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends v to the queue and wakes one blocked Dequeue.
func (q *Queue) Enqueue(v *Val) {
	q.mu.Lock()
	q.vals = append(q.vals, v)
	q.cond.Signal()
	q.mu.Unlock()
}

// Dequeue removes and returns the oldest value in the queue, blocking
// the calling goroutine until one is available.  There is no timeout; a
// value that never arrives blocks forever.
func (q *Queue) Dequeue() *Val {
	q.mu.Lock()
	for len(q.vals) == 0 {
		q.cond.Wait()
	}
	v := q.vals[0]
	q.vals = q.vals[1:]
	q.mu.Unlock()
	return v
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	q.mu.Lock()
	n := len(q.vals)
	q.mu.Unlock()
	return n
}

// NewChanPair allocates two fresh queues and returns the two endpoints
// of a channel pair, cross-wired so each endpoint's write queue is the
// other's read queue.
func NewChanPair() (*Val, *Val) {
	a := NewQueue()
	b := NewQueue()
	return ChanVal(a, b), ChanVal(b, a)
}
