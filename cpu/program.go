package cpu

import (
	"iter"
)

// Opcode is a line of assembled code with its source location.
type Opcode struct {
	LineNo      int
	Ip          int
	Words       []string
	Instruction Instruction
	LinkLabel   string
}

// Program is an assembled instruction listing.
type Program struct {
	Opcodes []Opcode
}

// NewProgram wraps a bare instruction sequence in a Program without source
// information.
func NewProgram(code ...Instruction) (prog *Program) {
	prog = &Program{}
	for ip, ins := range code {
		prog.Opcodes = append(prog.Opcodes, Opcode{Ip: ip, Instruction: ins})
	}

	return
}

type Debug struct {
	*Opcode
}

// Debug finds the opcode located at ip.
func (prog *Program) Debug(ip int64) (dbg Debug) {
	if prog == nil || ip < 0 || ip >= int64(len(prog.Opcodes)) {
		return
	}

	dbg.Opcode = &prog.Opcodes[ip]
	return
}

// LineNo returns the source line of the opcode at ip, or 0 if unknown.
func (prog *Program) LineNo(ip int64) int {
	dbg := prog.Debug(ip)
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Codes iterates over the instructions, indexed by ip.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, ins Instruction) bool) {
		if prog == nil {
			return
		}
		for n := range prog.Opcodes {
			if !yield(n, prog.Opcodes[n].Instruction) {
				return
			}
		}
	}
}

// Instructions returns the bare instruction sequence.
func (prog *Program) Instructions() (code []Instruction) {
	for _, ins := range prog.Codes() {
		code = append(code, ins)
	}

	return
}
