package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
}

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssemblerInstructions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"set a 1",
		"add a 2 ; comment",
		"mul a a",
		"",
		"mod a 5",
		"snd a",
		"set a 0",
		"\trcv   a",
		"jgz a -1",
		"set a 0x10",
		"jgz a -2",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Opcode{
		{1, 0, []string{"set", "a", "1"}, MakeSet('a', Imm(1)), ""},
		{2, 1, []string{"add", "a", "2"}, MakeAdd('a', Imm(2)), ""},
		{3, 2, []string{"mul", "a", "a"}, MakeMul('a', Ref('a')), ""},
		{5, 3, []string{"mod", "a", "5"}, MakeMod('a', Imm(5)), ""},
		{6, 4, []string{"snd", "a"}, MakeSnd(Ref('a')), ""},
		{7, 5, []string{"set", "a", "0"}, MakeSet('a', Imm(0)), ""},
		{8, 6, []string{"rcv", "a"}, MakeRcv(Ref('a')), ""},
		{9, 7, []string{"jgz", "a", "-1"}, MakeJgz(Ref('a'), Imm(-1)), ""},
		{10, 8, []string{"set", "a", "0x10"}, MakeSet('a', Imm(16)), ""},
		{11, 9, []string{"jgz", "a", "-2"}, MakeJgz(Ref('a'), Imm(-2)), ""},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".equ CONST_10 0x10",
		"set a CONST_10",
		"set b $(CONST_10 + CONST_10)",
		".equ CONST_30 $(2 * CONST_10 + CONST_10)",
		"set c CONST_30",
		"set d $(LINENO * 8 + 0x10)",
		"set e $(-CONST_10)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(errors.Unwrap(err))
	}

	assert.Equal([]Instruction{
		MakeSet('a', Imm(0x10)),
		MakeSet('b', Imm(0x20)),
		MakeSet('c', Imm(0x30)),
		MakeSet('d', Imm(0x40)),
		MakeSet('e', Imm(-0x10)),
	}, prog.Instructions())
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("PEER", "p")
	asm.Predefine("COUNT", "3")
	asm.Predefine("COUNT", "4")

	prog, err := asm.Parse(strings.NewReader("snd PEER\nadd a $(COUNT * 2)"))
	assert.NoError(err)
	assert.Equal([]Instruction{
		MakeSnd(Ref('p')),
		MakeAdd('a', Imm(8)),
	}, prog.Instructions())
}

func TestAssemblerLoadEquates(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	err := asm.LoadEquates(strings.NewReader("ROUNDS: 127\nMODULUS: 0x7fffffff\nCOUNTER: i\n"))
	assert.NoError(err)

	prog, err := asm.Parse(strings.NewReader("set COUNTER ROUNDS\nmod a MODULUS\nset b $(ROUNDS + 1)"))
	assert.NoError(err)
	assert.Equal([]Instruction{
		MakeSet('i', Imm(127)),
		MakeMod('a', Imm(0x7fffffff)),
		MakeSet('b', Imm(128)),
	}, prog.Instructions())

	err = (&Assembler{}).LoadEquates(strings.NewReader(""))
	assert.NoError(err)

	err = (&Assembler{}).LoadEquates(strings.NewReader("LIST: [1, 2]\n"))
	assert.ErrorIs(err, ErrEquateValue)

	err = (&Assembler{}).LoadEquates(strings.NewReader("- not a mapping\n"))
	assert.Error(err)
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"set i 3",
		"LOOP: add a 2",
		"add i -1",
		"jgz i LOOP",
		"jgz 1 DONE",
		"snd a",
		"DONE:",
		"END: rcv a",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(map[string]int{"LOOP": 1, "DONE": 6, "END": 6}, asm.Label)
	assert.Equal("LOOP", prog.Opcodes[3].LinkLabel)
	assert.Equal([]Instruction{
		MakeSet('i', Imm(3)),
		MakeAdd('a', Imm(2)),
		MakeAdd('i', Imm(-1)),
		MakeJgz(Ref('i'), Imm(-2)),
		MakeJgz(Imm(1), Imm(2)),
		MakeSnd(Ref('a')),
		MakeRcv(Ref('a')),
	}, prog.Instructions())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".macro SETADD rn x y",
		"set rn x",
		"add rn y",
		".endm",
		"SETADD a 8 8",
		".equ CONST_10 0x10",
		"SETADD b CONST_10 CONST_10",
		"SETADD c $(CONST_10 + CONST_10) a",
		".macro COUNTDOWN rn",
		"@top: add rn -1",
		"jgz rn @top",
		".endm",
		"COUNTDOWN d",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Opcode{
		{2, 0, []string{"set", "a", "8"}, MakeSet('a', Imm(8)), ""},
		{3, 1, []string{"add", "a", "8"}, MakeAdd('a', Imm(8)), ""},
		{2, 2, []string{"set", "b", "0x10"}, MakeSet('b', Imm(0x10)), ""},
		{3, 3, []string{"add", "b", "0x10"}, MakeAdd('b', Imm(0x10)), ""},
		{2, 4, []string{"set", "c", "32"}, MakeSet('c', Imm(32)), ""},
		{3, 5, []string{"add", "c", "a"}, MakeAdd('c', Ref('a')), ""},
		{10, 6, []string{"add", "d", "-1"}, MakeAdd('d', Imm(-1)), ""},
		{11, 7, []string{"jgz", "d", "COUNTDOWN_13_top"}, MakeJgz(Ref('d'), Imm(-1)), "COUNTDOWN_13_top"},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"unknown", []string{"set a 1", "nop"}, 2, ErrInstructionInvalid},
		{"missing", []string{"snd"}, 1, ErrOpcodeValueMissing},
		{"extra", []string{"rcv a b"}, 1, ErrOpcodeExtraArgs},
		{"register", []string{"set 1 1"}, 1, ErrRegisterInvalid},
		{"register-upper", []string{"add A 1"}, 1, ErrRegisterInvalid},
		{"value", []string{"snd 1x"}, 1, ErrParseValue("1x")},
		{"label-value", []string{"jgz LOOP 1"}, 1, ErrParseValue("LOOP")},
		{"label-missing", []string{"set a 1", "jgz a NOWHERE"}, 2, ErrLabelMissing("NOWHERE")},
		{"label-duplicate", []string{"X: snd 1", "X: snd 2"}, 2, ErrLabelDuplicate},
		{"equ-syntax", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ-duplicate", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"macro-nesting", []string{".macro A", ".macro B"}, 2, ErrMacroNesting},
		{"macro-duplicate", []string{".macro A", ".endm", ".macro A"}, 3, ErrMacroDuplicate},
		{"macro-lonely", []string{".macro A", "snd 1"}, 2, ErrMacroLonely},
		{"macro-endm", []string{"snd 1", ".endm"}, 2, ErrMacroLonelyEndm},
		{"macro-args", []string{".macro A x", "snd x", ".endm", "A"}, 4, ErrMacroSyntax},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(err, entry.err, entry.name)

		var syn *ErrSyntax
		if assert.ErrorAs(err, &syn, entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}
	}
}

func TestAssemblerMacroError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".macro BAD x",
		"set x 1",
		".endm",
		"BAD 7",
	}

	_, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.ErrorIs(err, ErrRegisterInvalid)

	var macro *ErrMacro
	if assert.ErrorAs(err, &macro) {
		assert.Equal("BAD", macro.Macro)
		assert.Equal(2, macro.Line)
	}
}

func TestAssemblerExpressionError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("set a $(1 +)"))
	assert.ErrorIs(err, ErrParseExpression("1 +"))

	_, err = asm.Parse(strings.NewReader("set a $(\"text\")"))
	assert.ErrorIs(err, ErrParseExpression("\"text\""))
}
