// Package channel provides the duplex channel connecting two duet peers.
//
// Each peer holds one Endpoint. Values sent on one endpoint are received, in
// order, on the other. Receive blocks until a value arrives, or until the
// channel can prove that no value will ever arrive: either the other side has
// closed its endpoint, or both endpoints are blocked in Receive with nothing
// in flight.
package channel

// Channel is the peer facing side of a duplex channel.
type Channel interface {
	// Send queues a value for the other endpoint. Never blocks.
	Send(value int64)
	// Receive returns the next value for this endpoint, or ok == false when
	// no value will ever arrive.
	Receive() (value int64, ok bool)
	// Close releases the endpoint, unblocking the other side.
	Close() error
}
