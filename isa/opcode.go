package isa

import (
	"iter"
)

// Opcode is the 6-bit (funct << 2) | format value of an instruction.
type Opcode uint8

// Core opcodes.
const (
	// I format
	OP_HALT = Opcode(0b000000)

	// DSI format
	OP_ADDI = Opcode(0b000010)
	OP_SUBI = Opcode(0b000110)
	OP_ANDI = Opcode(0b001010)
	OP_ORI  = Opcode(0b001110)
	OP_XORI = Opcode(0b010010)
	OP_SLLI = Opcode(0b010110)
	OP_SRLI = Opcode(0b011010)
	OP_SRAI = Opcode(0b011110)
	OP_LD   = Opcode(0b110010)
	OP_ST   = Opcode(0b110110)
	OP_JL0  = Opcode(0b111010)
	OP_JL1  = Opcode(0b111110)

	// DSS format
	OP_ADD  = Opcode(0b000011)
	OP_SUB  = Opcode(0b000111)
	OP_AND  = Opcode(0b001011)
	OP_OR   = Opcode(0b001111)
	OP_XOR  = Opcode(0b010011)
	OP_SLL  = Opcode(0b010111)
	OP_SRL  = Opcode(0b011011)
	OP_SRA  = Opcode(0b011111)
	OP_EQ   = Opcode(0b100011)
	OP_GT   = Opcode(0b100111)
	OP_LT   = Opcode(0b101011)
	OP_NE   = Opcode(0b101111)
	OP_JLR0 = Opcode(0b111011)
	OP_JLR1 = Opcode(0b111111)
)

// MakeOpcode combines a format and funct into an opcode.
func MakeOpcode(format Format, funct uint8) Opcode {
	return Opcode(((funct & FUNCT_MASK) << FORMAT_SIZE) | (uint8(format) & FORMAT_MASK))
}

// Format returns the format bits of the opcode.
func (op Opcode) Format() Format {
	return Format(uint8(op) & FORMAT_MASK)
}

// Funct returns the funct bits of the opcode.
func (op Opcode) Funct() uint8 {
	return (uint8(op) >> FORMAT_SIZE) & FUNCT_MASK
}

// String returns the mnemonic of a core opcode.
func (op Opcode) String() string {
	om, ok := OpcodeFromValue(op)
	if !ok {
		return f("op?%#02x", uint8(op))
	}
	return om.Symbol
}

// Operand is an instruction operand slot.
type Operand int

//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_DEST      = Operand(0) // dest
	OPERAND_SOURCE1   = Operand(1) // source1
	OPERAND_SOURCE2   = Operand(2) // source2
	OPERAND_IMMEDIATE = Operand(3) // immediate
)

var (
	operandsI   = []Operand{OPERAND_IMMEDIATE}
	operandsDSI = []Operand{OPERAND_DEST, OPERAND_SOURCE1, OPERAND_IMMEDIATE}
	operandsDSS = []Operand{OPERAND_DEST, OPERAND_SOURCE1, OPERAND_SOURCE2}
)

// OpcodeMap describes one assembler mnemonic.
//
// Core entries carry their own format and funct. Pseudo entries have a
// Format of FORMAT_PSEUDO, and the Opcode of the core instruction they
// expand to.
type OpcodeMap struct {
	Symbol   string               // Assembler mnemonic.
	Opcode   Opcode               // Machine opcode (expansion target for pseudos).
	Format   Format               // Encoding format, or FORMAT_PSEUDO.
	Funct    uint8                // Funct field.
	Operands []Operand            // Operand slots, in source order.
	Optional bool                 // If set, a trailing immediate may be omitted.
	Fixed    map[Operand]Register // Registers fixed by a pseudo expansion.
}

func core(symbol string, op Opcode, operands []Operand) OpcodeMap {
	return OpcodeMap{
		Symbol:   symbol,
		Opcode:   op,
		Format:   op.Format(),
		Funct:    op.Funct(),
		Operands: operands,
	}
}

func pseudo(symbol string, op Opcode, operands []Operand, fixed map[Operand]Register) OpcodeMap {
	return OpcodeMap{
		Symbol:   symbol,
		Opcode:   op,
		Format:   FORMAT_PSEUDO,
		Funct:    uint8(FORMAT_PSEUDO),
		Operands: operands,
		Fixed:    fixed,
	}
}

// opcodeTable lists every mnemonic. Operand slots left unmentioned by a
// pseudo instruction are register zero.
var opcodeTable = []OpcodeMap{
	func() OpcodeMap {
		om := core("halt", OP_HALT, operandsI)
		om.Optional = true
		return om
	}(),

	core("addi", OP_ADDI, operandsDSI),
	core("subi", OP_SUBI, operandsDSI),
	core("andi", OP_ANDI, operandsDSI),
	core("ori", OP_ORI, operandsDSI),
	core("xori", OP_XORI, operandsDSI),
	core("slli", OP_SLLI, operandsDSI),
	core("srli", OP_SRLI, operandsDSI),
	core("srai", OP_SRAI, operandsDSI),
	core("ld", OP_LD, operandsDSI),
	core("st", OP_ST, operandsDSI),
	core("jl0", OP_JL0, operandsDSI),
	core("jl1", OP_JL1, operandsDSI),

	core("add", OP_ADD, operandsDSS),
	core("sub", OP_SUB, operandsDSS),
	core("and", OP_AND, operandsDSS),
	core("or", OP_OR, operandsDSS),
	core("xor", OP_XOR, operandsDSS),
	core("sll", OP_SLL, operandsDSS),
	core("srl", OP_SRL, operandsDSS),
	core("sra", OP_SRA, operandsDSS),
	core("eq", OP_EQ, operandsDSS),
	core("gt", OP_GT, operandsDSS),
	core("lt", OP_LT, operandsDSS),
	core("ne", OP_NE, operandsDSS),
	core("jlr0", OP_JLR0, operandsDSS),
	core("jlr1", OP_JLR1, operandsDSS),

	// j imm => jl0 zero, zero, imm
	pseudo("j", OP_JL0, operandsI, nil),
	// jl rd, imm => jl0 rd, zero, imm
	pseudo("jl", OP_JL0, []Operand{OPERAND_DEST, OPERAND_IMMEDIATE}, nil),
	// jlr rd, rs => jlr0 rd, zero, rs
	pseudo("jlr", OP_JLR0, []Operand{OPERAND_DEST, OPERAND_SOURCE2}, nil),
	// j0 rs, imm => jl0 zero, rs, imm
	pseudo("j0", OP_JL0, []Operand{OPERAND_SOURCE1, OPERAND_IMMEDIATE}, nil),
	// j1 rs, imm => jl1 zero, rs, imm
	pseudo("j1", OP_JL1, []Operand{OPERAND_SOURCE1, OPERAND_IMMEDIATE}, nil),
	// call imm => jl0 ra, zero, imm
	pseudo("call", OP_JL0, operandsI, map[Operand]Register{OPERAND_DEST: REG_RA}),
	// li rd, imm => ori rd, zero, imm
	pseudo("li", OP_ORI, []Operand{OPERAND_DEST, OPERAND_IMMEDIATE}, nil),
	// mv rd, rs => or rd, rs, zero
	pseudo("mv", OP_OR, []Operand{OPERAND_DEST, OPERAND_SOURCE1}, nil),
	// nop => or zero, zero, zero
	pseudo("nop", OP_OR, nil, nil),
	// ret => jlr0 zero, zero, ra
	pseudo("ret", OP_JLR0, nil, map[Operand]Register{OPERAND_SOURCE2: REG_RA}),
}

var (
	opcodeSymbol map[string]int
	opcodeValue  map[Opcode]int
)

func init() {
	opcodeSymbol = make(map[string]int, len(opcodeTable))
	opcodeValue = make(map[Opcode]int, len(opcodeTable))
	for n, om := range opcodeTable {
		opcodeSymbol[om.Symbol] = n
		if !om.Pseudo() {
			opcodeValue[om.Opcode] = n
		}
	}
}

// OpcodeFromSymbol returns the core or pseudo instruction for a mnemonic.
func OpcodeFromSymbol(symbol string) (om OpcodeMap, ok bool) {
	n, ok := opcodeSymbol[symbol]
	if ok {
		om = opcodeTable[n]
	}
	return
}

// OpcodeFromValue returns the core instruction for an opcode.
// Pseudo instructions have no opcode of their own, and are never found.
func OpcodeFromValue(op Opcode) (om OpcodeMap, ok bool) {
	n, ok := opcodeValue[op]
	if ok {
		om = opcodeTable[n]
	}
	return
}

// Opcodes returns an iterator over all core instructions.
func Opcodes() iter.Seq[OpcodeMap] {
	return func(yield func(OpcodeMap) bool) {
		for _, om := range opcodeTable {
			if om.Pseudo() {
				continue
			}
			if !yield(om) {
				return
			}
		}
	}
}

// Pseudo returns true for pseudo instructions.
func (om OpcodeMap) Pseudo() bool {
	return om.Format == FORMAT_PSEUDO
}

// Instruction returns the instruction skeleton of the mnemonic, with any
// registers fixed by a pseudo expansion already in place.
func (om OpcodeMap) Instruction() (in Instruction) {
	in.Opcode = om.Opcode
	for operand, reg := range om.Fixed {
		in.Set(operand, reg)
	}
	return
}
