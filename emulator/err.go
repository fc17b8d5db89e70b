package emulator

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	// ErrReceiveTarget is raised when a peer's rcv names no register.
	ErrReceiveTarget = errors.New(f("rcv target is not a register"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrPeer indicates which duet peer failed.
type ErrPeer struct {
	Peer int
	Err  error
}

func (err *ErrPeer) Error() string {
	return f("peer %d: %v", err.Peer, err.Err)
}

func (err *ErrPeer) Unwrap() error {
	return err.Err
}
