package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"set", "a", "1"}, Instruction: MakeSet('a', Imm(1))},
			{LineNo: 3, Ip: 1, Words: []string{"snd", "a"}, Instruction: MakeSnd(Ref('a'))},
			{LineNo: 4, Ip: 2, Words: []string{"rcv", "a"}, Instruction: MakeRcv(Ref('a'))},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)

	dbg = prog.Debug(2)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.LineNo)

	assert.Equal(3, prog.LineNo(1))
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram(MakeSnd(Imm(1)))

	assert.Nil(prog.Debug(1).Opcode)
	assert.Nil(prog.Debug(-1).Opcode)
	assert.Equal(0, prog.LineNo(10))

	var none *Program
	assert.Nil(none.Debug(0).Opcode)
}

func TestProgram_Instructions(t *testing.T) {
	assert := assert.New(t)

	code := []Instruction{
		MakeSet('a', Imm(1)),
		MakeJgz(Ref('a'), Imm(2)),
		MakeSnd(Ref('a')),
	}

	prog := NewProgram(code...)
	assert.Equal(3, len(prog.Opcodes))
	assert.Equal(2, prog.Opcodes[2].Ip)
	assert.Equal(code, prog.Instructions())

	var ips []int
	for ip := range prog.Codes() {
		ips = append(ips, ip)
		if ip == 1 {
			break
		}
	}
	assert.Equal([]int{0, 1}, ips)
}
