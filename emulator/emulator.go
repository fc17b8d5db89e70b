// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/duet/channel"
	"github.com/ezrec/duet/cpu"
)

const (
	PEER_COUNT    = 2                 // Peers in a duet.
	PEER_REGISTER = cpu.Register('p') // Register seeded with the peer index.
)

// Emulator runs a program in solo or duet mode.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Program *cpu.Program // Reference to the program listing.
}

// NewEmulator creates a new emulator for a program.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	if prog == nil {
		prog = &cpu.Program{}
	}

	emu = &Emulator{
		Program: prog,
	}

	return
}

// Solo runs the program on a single machine, where snd remembers the last
// value sent and a nonzero rcv recovers it.
// Returns NO_VALUE if nothing was recovered.
func (emu *Emulator) Solo() (recovered int64, err error) {
	rec := NewRecover()

	cp := cpu.NewCpu(emu.Program.Instructions(), rec)
	cp.Verbose = emu.Verbose
	cp.Name = "solo"

	err = cp.Run()
	if err != nil {
		err = &ErrRuntime{LineNo: emu.Program.LineNo(cp.Ip), Err: err}
	}

	recovered = rec.Recovered

	if emu.Verbose {
		log.Printf("solo: recovered %d after %d ticks", recovered, cp.Ticks)
	}

	return
}

// DuetResult is the outcome of both peers of a duet.
type DuetResult struct {
	Sent  [PEER_COUNT]uint64 // Values sent, by peer.
	Ticks [PEER_COUNT]int    // Instructions executed, by peer.
	Err   [PEER_COUNT]error  // Error that stopped the peer, if any.
}

// Result returns the reported outcome of a duet, the count of values sent
// by peer 1.
func (res *DuetResult) Result() uint64 {
	return res.Sent[1]
}

// Duet runs two copies of the program concurrently, connected by a duplex
// channel. Register 'p' holds the peer index. Both peers run until each has
// halted; a peer halts when its program ends, or when it waits on a channel
// that can never deliver.
//
// err is the first peer error, if any. A panic in either peer is re-raised
// once both have stopped.
func (emu *Emulator) Duet() (result DuetResult, err error) {
	code := emu.Program.Instructions()

	var endpoints [PEER_COUNT]*channel.Endpoint
	endpoints[0], endpoints[1] = channel.NewDuplex()

	var panics [PEER_COUNT]any
	var group errgroup.Group

	for n := range PEER_COUNT {
		peer := &Peer{
			Verbose:  emu.Verbose,
			Id:       n,
			Endpoint: endpoints[n],
		}

		cp := cpu.NewCpu(code, peer)
		cp.Verbose = emu.Verbose
		cp.Name = fmt.Sprintf("peer %d", n)
		cp.Register.Set(PEER_REGISTER, int64(n))

		group.Go(func() (err error) {
			defer endpoints[n].Close()
			defer func() {
				if r := recover(); r != nil {
					panics[n] = r
				}
			}()

			err = cp.Run()
			if err == nil {
				err = peer.Err
			}
			if err != nil {
				err = &ErrPeer{Peer: n, Err: &ErrRuntime{LineNo: emu.Program.LineNo(cp.Ip), Err: err}}
			}

			result.Sent[n] = peer.Sent
			result.Ticks[n] = cp.Ticks
			result.Err[n] = err

			if emu.Verbose {
				log.Printf("peer %d: sent %d after %d ticks", n, peer.Sent, cp.Ticks)
			}

			return
		})
	}

	err = group.Wait()

	for _, r := range panics {
		if r != nil {
			panic(r)
		}
	}

	return
}
