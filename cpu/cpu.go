package cpu

import (
	"errors"
	"fmt"
	"log"
)

// Io is the strategy for the side effects of the snd and rcv instructions.
// Any bookkeeping a mode needs lives in the implementation.
type Io interface {
	// Send is called for snd with its unresolved operand.
	Send(reg RegisterFile, value Value)
	// Receive is called for rcv with its unresolved operand.
	// Returning true halts the machine.
	Receive(reg RegisterFile, value Value) (halt bool)
}

// Cpu is the execution context of a single duet machine.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging.
	Name    string // Name used as the log prefix.

	Code     []Instruction // Instruction sequence, immutable while running.
	Ip       int64         // Current instruction pointer.
	Register RegisterFile  // Register bank.
	Io       Io            // snd and rcv strategy.

	Ticks int // Executed instruction counter.

	halted bool
}

// NewCpu creates a new machine for an instruction sequence.
func NewCpu(code []Instruction, io Io) (cpu *Cpu) {
	cpu = &Cpu{
		Code:     code,
		Register: RegisterFile{},
		Io:       io,
	}

	return
}

// Reset the machine state.
// - Clears the registers.
// - Zeros the instruction pointer and statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("%v: reset", cpu.name())
	}

	if cpu.Register == nil {
		cpu.Register = RegisterFile{}
	}
	clear(cpu.Register)
	cpu.Ip = 0
	cpu.Ticks = 0
	cpu.halted = false
}

func (cpu *Cpu) name() string {
	if len(cpu.Name) == 0 {
		return "cpu"
	}
	return cpu.Name
}

// Halted returns true once the machine has stopped.
func (cpu *Cpu) Halted() bool {
	return cpu.halted || cpu.Ip < 0 || cpu.Ip >= int64(len(cpu.Code))
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("% 5s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)
	text += fmt.Sprintf("% 5s: %v\n", "regs", cpu.Register)

	return
}

// Fetch fetches the instruction at the instruction pointer.
// Returns ErrHalt if the machine has stopped.
func (cpu *Cpu) Fetch() (ins Instruction, err error) {
	if cpu.Halted() {
		err = ErrHalt
		return
	}

	ins = cpu.Code[cpu.Ip]
	return
}

// Tick executes a single instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	ins, err := cpu.Fetch()
	if err != nil {
		return
	}

	err = cpu.Execute(ins)

	return
}

// Run ticks the machine until it halts.
func (cpu *Cpu) Run() (err error) {
	for err = cpu.Tick(); err == nil; err = cpu.Tick() {
	}

	if errors.Is(err, ErrHalt) {
		err = nil
	}

	return
}

// Execute executes a single decoded instruction at the current ip.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%v: %03d: %v", cpu.name(), cpu.Ip, ins)
	}

	reg := cpu.Register
	if reg == nil {
		reg = RegisterFile{}
		cpu.Register = reg
	}

	next_ip := cpu.Ip + 1

	switch ins.Op {
	case OP_SND:
		if cpu.Io == nil {
			err = ErrIoMissing
			return
		}
		cpu.Io.Send(reg, ins.A)
	case OP_SET:
		reg.Set(ins.Dst, reg.Resolve(ins.A))
	case OP_ADD, OP_MUL, OP_MOD:
		value := reg.Resolve(ins.A)
		input := reg.Get(ins.Dst)
		reg.Set(ins.Dst, doAlu(ins.Op, input, value))
	case OP_RCV:
		if cpu.Io == nil {
			err = ErrIoMissing
			return
		}
		if cpu.Io.Receive(reg, ins.A) {
			cpu.Ticks++
			cpu.halted = true
			if cpu.Verbose {
				log.Printf("%v: halt at %03d", cpu.name(), cpu.Ip)
			}
			err = ErrHalt
			return
		}
	case OP_JGZ:
		// The offset is only read when the jump is taken.
		if reg.Resolve(ins.A) > 0 {
			next_ip = cpu.Ip + reg.Resolve(ins.B)
		}
	default:
		err = ErrOpcodeInvalid
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks++

	return
}

// doAlu performs the requested arithmetic, and returns the output value.
// Overflow wraps and a zero modulus panics, as int64 does.
func doAlu(op Op, input int64, value int64) (output int64) {
	switch op {
	case OP_ADD:
		output = input + value
	case OP_MUL:
		output = input * value
	case OP_MOD:
		output = input % value
	}

	return
}
