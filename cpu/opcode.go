package cpu

import (
	"fmt"
)

//go:generate go tool stringer -linecomment -type=Op

// Op is an instruction operation type.
type Op int

const (
	OP_SND = Op(0) // snd
	OP_SET = Op(1) // set
	OP_ADD = Op(2) // add
	OP_MUL = Op(3) // mul
	OP_MOD = Op(4) // mod
	OP_RCV = Op(5) // rcv
	OP_JGZ = Op(6) // jgz
)

// opMap maps mnemonics to operations.
var opMap = map[string]Op{
	"snd": OP_SND,
	"set": OP_SET,
	"add": OP_ADD,
	"mul": OP_MUL,
	"mod": OP_MOD,
	"rcv": OP_RCV,
	"jgz": OP_JGZ,
}

// Instruction is a single decoded instruction.
//
// Dst is only used by set, add, mul and mod. A is the sole operand of snd
// and rcv, the source operand of the arithmetic operations, and the
// condition of jgz. B is only used as the jgz offset.
type Instruction struct {
	Op  Op
	Dst Register
	A   Value
	B   Value
}

// MakeSnd creates a send instruction.
func MakeSnd(value Value) Instruction {
	return Instruction{Op: OP_SND, A: value}
}

// MakeSet creates a register set instruction.
func MakeSet(dst Register, value Value) Instruction {
	return Instruction{Op: OP_SET, Dst: dst, A: value}
}

// MakeAdd creates a register add instruction.
func MakeAdd(dst Register, value Value) Instruction {
	return Instruction{Op: OP_ADD, Dst: dst, A: value}
}

// MakeMul creates a register multiply instruction.
func MakeMul(dst Register, value Value) Instruction {
	return Instruction{Op: OP_MUL, Dst: dst, A: value}
}

// MakeMod creates a register modulo instruction.
func MakeMod(dst Register, value Value) Instruction {
	return Instruction{Op: OP_MOD, Dst: dst, A: value}
}

// MakeRcv creates a receive instruction.
func MakeRcv(value Value) Instruction {
	return Instruction{Op: OP_RCV, A: value}
}

// MakeJgz creates a jump-if-greater-than-zero instruction.
func MakeJgz(cond, offset Value) Instruction {
	return Instruction{Op: OP_JGZ, A: cond, B: offset}
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() (out string) {
	switch ins.Op {
	case OP_SND, OP_RCV:
		out = fmt.Sprintf("%v %v", ins.Op, ins.A)
	case OP_SET, OP_ADD, OP_MUL, OP_MOD:
		out = fmt.Sprintf("%v %v %v", ins.Op, ins.Dst, ins.A)
	case OP_JGZ:
		out = fmt.Sprintf("%v %v %v", ins.Op, ins.A, ins.B)
	default:
		out = ins.Op.String()
	}

	return
}
