package cpu

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Register is a register name, a single lowercase letter.
type Register byte

// Valid returns true if the register name is in 'a'..'z'.
func (r Register) Valid() bool {
	return r >= 'a' && r <= 'z'
}

func (r Register) String() string {
	return string(rune(r))
}

// ParseRegister parses a single letter register name.
func ParseRegister(word string) (r Register, err error) {
	if len(word) != 1 || !Register(word[0]).Valid() {
		err = ErrRegisterInvalid
		return
	}

	r = Register(word[0])
	return
}

// Value is an instruction operand: either an immediate or a register reference.
type Value struct {
	Reg Register // Register referenced, or zero for an immediate.
	Imm int64    // Immediate value, if Reg is zero.
}

// Imm makes an immediate value.
func Imm(value int64) Value {
	return Value{Imm: value}
}

// Ref makes a register reference value.
func Ref(reg Register) Value {
	return Value{Reg: reg}
}

// IsRegister returns true if the value is a register reference.
func (v Value) IsRegister() bool {
	return v.Reg != 0
}

func (v Value) String() string {
	if v.IsRegister() {
		return v.Reg.String()
	}
	return fmt.Sprintf("%d", v.Imm)
}

// RegisterFile is the sparse register bank of a single machine.
// Registers are created on first use with a value of zero.
type RegisterFile map[Register]int64

// Get reads a register, creating it if unset.
func (rf RegisterFile) Get(reg Register) int64 {
	value, ok := rf[reg]
	if !ok {
		rf[reg] = 0
	}
	return value
}

// Set writes a register.
func (rf RegisterFile) Set(reg Register, value int64) {
	rf[reg] = value
}

// Resolve returns the value of an operand.
func (rf RegisterFile) Resolve(v Value) int64 {
	if v.IsRegister() {
		return rf.Get(v.Reg)
	}
	return v.Imm
}

// Clone returns an independent copy of the register file.
func (rf RegisterFile) Clone() RegisterFile {
	if rf == nil {
		return RegisterFile{}
	}
	return maps.Clone(rf)
}

// String lists the registers in name order.
func (rf RegisterFile) String() string {
	var parts []string
	for _, reg := range slices.Sorted(maps.Keys(rf)) {
		parts = append(parts, fmt.Sprintf("%v=%d", reg, rf[reg]))
	}
	return strings.Join(parts, " ")
}
