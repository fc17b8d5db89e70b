package channel

import (
	"sync"
)

// duplex is the state shared by both endpoints.
type duplex struct {
	mutex sync.Mutex
	cond  *sync.Cond

	queue   [2][]int64 // Inbound queue, by endpoint index.
	waiting int        // Endpoints blocked in Receive.
	closed  bool       // No further value will ever be delivered.
}

// Endpoint is one side of a duplex channel.
type Endpoint struct {
	duplex *duplex
	own    int
	peer   int
}

var _ Channel = (*Endpoint)(nil)

// NewDuplex creates a duplex channel, returning both of its endpoints.
func NewDuplex() (a, b *Endpoint) {
	dx := &duplex{}
	dx.cond = sync.NewCond(&dx.mutex)

	a = &Endpoint{duplex: dx, own: 0, peer: 1}
	b = &Endpoint{duplex: dx, own: 1, peer: 0}

	return
}

// Index returns the endpoint index, 0 or 1.
func (ep *Endpoint) Index() int {
	return ep.own
}

// Send queues a value for the other endpoint.
func (ep *Endpoint) Send(value int64) {
	dx := ep.duplex

	dx.mutex.Lock()
	defer dx.mutex.Unlock()

	dx.queue[ep.peer] = append(dx.queue[ep.peer], value)
	dx.cond.Broadcast()
}

// quiescent is true when no value can ever be delivered again: the channel
// was closed, or both endpoints wait and nothing is queued for the other.
// The caller holds the mutex and has an empty inbound queue.
func (ep *Endpoint) quiescent() bool {
	dx := ep.duplex
	return dx.closed || (dx.waiting == 2 && len(dx.queue[ep.peer]) == 0)
}

// Receive blocks for the next value sent by the other endpoint.
// Returns ok == false once the channel is closed, or both endpoints are
// waiting with nothing queued.
func (ep *Endpoint) Receive() (value int64, ok bool) {
	dx := ep.duplex

	dx.mutex.Lock()
	defer dx.mutex.Unlock()

	dx.waiting++
	defer func() { dx.waiting-- }()

	for {
		if queue := dx.queue[ep.own]; len(queue) > 0 {
			value = queue[0]
			dx.queue[ep.own] = queue[1:]
			ok = true
			return
		}

		if ep.quiescent() {
			// Quiescence is terminal; latch it so the other side sees it
			// even after this endpoint stops waiting.
			dx.closed = true
			dx.cond.Broadcast()
			return
		}

		dx.cond.Wait()
	}
}

// Pending returns the number of values queued for this endpoint.
func (ep *Endpoint) Pending() int {
	dx := ep.duplex

	dx.mutex.Lock()
	defer dx.mutex.Unlock()

	return len(dx.queue[ep.own])
}

// Close marks the channel closed and wakes any waiter.
// Values already queued are still delivered.
func (ep *Endpoint) Close() (err error) {
	dx := ep.duplex

	dx.mutex.Lock()
	defer dx.mutex.Unlock()

	dx.closed = true
	dx.cond.Broadcast()

	return
}
