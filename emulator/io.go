package emulator

import (
	"log"

	"github.com/ezrec/duet/channel"
	"github.com/ezrec/duet/cpu"
)

// NO_VALUE is the sentinel for a value never sent or recovered.
const NO_VALUE = -1

// Recover is the solo mode strategy: snd remembers the last value sent,
// and rcv with a nonzero operand recovers it and halts.
type Recover struct {
	LastSent  int64 // Last value sent, or NO_VALUE.
	Recovered int64 // Recovered value, or NO_VALUE.
}

var _ cpu.Io = (*Recover)(nil)

// NewRecover creates a solo mode strategy.
func NewRecover() *Recover {
	return &Recover{
		LastSent:  NO_VALUE,
		Recovered: NO_VALUE,
	}
}

func (rec *Recover) Send(reg cpu.RegisterFile, value cpu.Value) {
	rec.LastSent = reg.Resolve(value)
}

// Receive is a conditional trap, not a read: it never blocks.
func (rec *Recover) Receive(reg cpu.RegisterFile, value cpu.Value) (halt bool) {
	if reg.Resolve(value) == 0 {
		return
	}

	rec.Recovered = rec.LastSent
	halt = true
	return
}

// Peer is the duet mode strategy: snd and rcv go over a channel endpoint.
type Peer struct {
	Verbose  bool            // Set to enable verbose logging.
	Id       int             // Peer index.
	Endpoint channel.Channel // Channel to the other peer.

	Sent uint64 // Count of values sent.
	Err  error  // Usage error that halted the peer, if any.
}

var _ cpu.Io = (*Peer)(nil)

func (peer *Peer) Send(reg cpu.RegisterFile, value cpu.Value) {
	peer.Sent++
	v := reg.Resolve(value)
	if peer.Verbose {
		log.Printf("peer %d: send %d", peer.Id, v)
	}
	peer.Endpoint.Send(v)
}

func (peer *Peer) Receive(reg cpu.RegisterFile, value cpu.Value) (halt bool) {
	if !value.IsRegister() {
		peer.Err = ErrReceiveTarget
		log.Printf("peer %d: %v: rcv %v", peer.Id, peer.Err, value)
		halt = true
		return
	}

	v, ok := peer.Endpoint.Receive()
	if !ok {
		if peer.Verbose {
			log.Printf("peer %d: channel drained", peer.Id)
		}
		halt = true
		return
	}

	reg.Set(value.Reg, v)
	return
}
