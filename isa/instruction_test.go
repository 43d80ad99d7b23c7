package isa

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeFields(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op     Opcode
		format Format
		funct  uint8
	}){
		{OP_HALT, FORMAT_I, 0},
		{OP_ADDI, FORMAT_DSI, 0},
		{OP_SRAI, FORMAT_DSI, 7},
		{OP_LD, FORMAT_DSI, 12},
		{OP_ST, FORMAT_DSI, 13},
		{OP_JL0, FORMAT_DSI, 14},
		{OP_JL1, FORMAT_DSI, 15},
		{OP_ADD, FORMAT_DSS, 0},
		{OP_EQ, FORMAT_DSS, 8},
		{OP_NE, FORMAT_DSS, 11},
		{OP_JLR0, FORMAT_DSS, 14},
		{OP_JLR1, FORMAT_DSS, 15},
	}

	for _, entry := range table {
		name := entry.op.String()
		assert.Equal(entry.format, entry.op.Format(), name)
		assert.Equal(entry.funct, entry.op.Funct(), name)
		assert.Equal(entry.op, MakeOpcode(entry.format, entry.funct), name)

		om, ok := OpcodeFromValue(entry.op)
		assert.True(ok, name)
		assert.Equal(entry.format, om.Format, name)
		assert.Equal(entry.funct, om.Funct, name)
	}
}

func TestOpcodeTable(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for om := range Opcodes() {
		count++
		assert.False(om.Pseudo(), om.Symbol)
		assert.True(om.Format.Valid(), om.Symbol)
		assert.Equal(om.Opcode, MakeOpcode(om.Format, om.Funct), om.Symbol)

		by_symbol, ok := OpcodeFromSymbol(om.Symbol)
		assert.True(ok, om.Symbol)
		assert.Equal(om.Opcode, by_symbol.Opcode, om.Symbol)
	}
	assert.Equal(27, count)

	for _, symbol := range []string{"j", "jl", "jlr", "j0", "j1", "call", "li", "mv", "nop", "ret"} {
		om, ok := OpcodeFromSymbol(symbol)
		assert.True(ok, symbol)
		assert.True(om.Pseudo(), symbol)

		// The expansion target is always a core instruction.
		_, ok = OpcodeFromValue(om.Opcode)
		assert.True(ok, symbol)
	}

	_, ok := OpcodeFromSymbol("jmp")
	assert.False(ok)

	_, ok = OpcodeFromValue(Opcode(0b000001))
	assert.False(ok)
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		in   Instruction
		word uint32
	}){
		{"halt", Instruction{Opcode: OP_HALT}, 0x0000_0000},
		{"halt 0x1234", Instruction{Opcode: OP_HALT, Immediate: 0x1234}, 0x1234_0000},
		{"addi t0, zero, 0xffff", Instruction{Opcode: OP_ADDI, Dest: REG_T0, Immediate: 0xffff}, 0xffff_02c2},
		{"ori a0, zero, 0x0005", Instruction{Opcode: OP_ORI, Dest: REG_A0, Immediate: 5}, 0x0005_00ce},
		{"add a0, a0, a1", Instruction{Opcode: OP_ADD, Dest: REG_A0, Source1: REG_A0, Source2: REG_A1}, 0x0004_18c3},
		{"or zero, zero, zero", Instruction{Opcode: OP_OR}, 0x0000_000f},
		{"jlr0 zero, zero, ra", Instruction{Opcode: OP_JLR0, Source2: REG_RA}, 0x0001_003b},
		{"sra s12, s12, s12", Instruction{Opcode: OP_SRA, Dest: REG_S12, Source1: REG_S12, Source2: REG_S12}, 0x001f_ffdf},
	}

	for _, entry := range table {
		word, err := entry.in.Encode()
		assert.NoError(err, entry.name)
		assert.Equal(entry.word, word, entry.name)
		assert.Equal(entry.name, Disassemble(word), entry.name)
	}
}

func TestEncodeInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := Instruction{Opcode: Opcode(0b000001)}.Encode()
	assert.ErrorIs(err, ErrOpcodeUnknown(0b000001))

	_, err = Instruction{Opcode: OP_ADD, Dest: Register(32)}.Encode()
	var reg_err ErrRegister
	assert.True(errors.As(err, &reg_err))
	assert.Equal(ErrRegister(32), reg_err)
}

func TestDecodeInvalid(t *testing.T) {
	assert := assert.New(t)

	// Unassigned format.
	_, err := Decode(0x0000_0001)
	assert.ErrorIs(err, ErrFormat(0b01))

	// Unmapped funct under a valid format still decodes the fields.
	in, err := Decode(MakeDSI(MakeOpcode(FORMAT_DSI, 9), REG_T0, REG_T1, 0x55aa))
	assert.ErrorIs(err, ErrOpcodeUnknown(MakeOpcode(FORMAT_DSI, 9)))
	assert.Equal(REG_T0, in.Dest)
	assert.Equal(REG_T1, in.Source1)
	assert.Equal(uint16(0x55aa), in.Immediate)

	assert.Equal(".word 0x00000001", Disassemble(1))
}

// randomInstruction builds an instruction for a core opcode, with only
// the fields of its format populated.
func randomInstruction(rnd *rand.Rand, om OpcodeMap) (in Instruction) {
	in.Opcode = om.Opcode
	switch om.Format {
	case FORMAT_I:
		in.Immediate = uint16(rnd.Intn(0x10000))
	case FORMAT_DSI:
		in.Dest = Register(rnd.Intn(REGISTER_COUNT))
		in.Source1 = Register(rnd.Intn(REGISTER_COUNT))
		in.Immediate = uint16(rnd.Intn(0x10000))
	case FORMAT_DSS:
		in.Dest = Register(rnd.Intn(REGISTER_COUNT))
		in.Source1 = Register(rnd.Intn(REGISTER_COUNT))
		in.Source2 = Register(rnd.Intn(REGISTER_COUNT))
	}
	return
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	rnd := rand.New(rand.NewSource(16))

	for om := range Opcodes() {
		// Extremes.
		for _, in := range []Instruction{
			{Opcode: om.Opcode},
			randomInstruction(rnd, om),
		} {
			word, err := in.Encode()
			assert.NoError(err, om.Symbol)
			assert.Equal(om.Format, WordFormat(word), om.Symbol)

			out, err := Decode(word)
			assert.NoError(err, om.Symbol)
			assert.Equal(in, out, om.Symbol)
		}

		for range 256 {
			in := randomInstruction(rnd, om)
			word, err := in.Encode()
			assert.NoError(err, om.Symbol)
			out, err := Decode(word)
			assert.NoError(err, om.Symbol)
			assert.Equal(in, out, om.Symbol)
		}
	}
}

func TestPseudoInstruction(t *testing.T) {
	assert := assert.New(t)

	nop, _ := OpcodeFromSymbol("nop")
	assert.Equal(Instruction{Opcode: OP_OR}, nop.Instruction())

	ret, _ := OpcodeFromSymbol("ret")
	assert.Equal(Instruction{Opcode: OP_JLR0, Source2: REG_RA}, ret.Instruction())

	call, _ := OpcodeFromSymbol("call")
	assert.Equal(Instruction{Opcode: OP_JL0, Dest: REG_RA}, call.Instruction())
}

func FuzzDecode(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(0xffffffff))
	f.Add(MakeDSI(OP_ADDI, REG_T0, REG_ZERO, 0xffff))
	f.Add(MakeDSS(OP_JLR0, REG_ZERO, REG_ZERO, REG_RA))

	f.Fuzz(func(t *testing.T, word uint32) {
		assert := assert.New(t)

		in, err := Decode(word)
		if err != nil {
			return
		}

		// Reserved bits are dropped, so re-decoding the re-encoded word
		// must give the same fields.
		again, err := in.Encode()
		assert.NoError(err)
		out, err := Decode(again)
		assert.NoError(err)
		assert.Equal(in, out)
	})
}
