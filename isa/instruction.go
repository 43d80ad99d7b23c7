package isa

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction word. Fields not used by the
// instruction's format are zero.
type Instruction struct {
	Opcode    Opcode
	Dest      Register
	Source1   Register
	Source2   Register
	Immediate uint16
}

// MakeI creates an I format instruction word.
func MakeI(op Opcode, imm uint16) uint32 {
	return (uint32(op.Format()) << FORMAT_SHIFT) |
		(uint32(op.Funct()) << FUNCT_SHIFT) |
		(uint32(imm) << IMMEDIATE_SHIFT)
}

// MakeDSI creates a DSI format instruction word.
func MakeDSI(op Opcode, dest, source1 Register, imm uint16) uint32 {
	return (uint32(op.Format()) << FORMAT_SHIFT) |
		(uint32(op.Funct()) << FUNCT_SHIFT) |
		((uint32(dest) & REGISTER_MASK) << DEST_SHIFT) |
		((uint32(source1) & REGISTER_MASK) << SOURCE1_SHIFT) |
		(uint32(imm) << IMMEDIATE_SHIFT)
}

// MakeDSS creates a DSS format instruction word.
func MakeDSS(op Opcode, dest, source1, source2 Register) uint32 {
	return (uint32(op.Format()) << FORMAT_SHIFT) |
		(uint32(op.Funct()) << FUNCT_SHIFT) |
		((uint32(dest) & REGISTER_MASK) << DEST_SHIFT) |
		((uint32(source1) & REGISTER_MASK) << SOURCE1_SHIFT) |
		((uint32(source2) & REGISTER_MASK) << SOURCE2_SHIFT)
}

// WordOpcode returns the opcode of an instruction word.
func WordOpcode(word uint32) Opcode {
	return Opcode(word & ((1 << (FORMAT_SIZE + FUNCT_SIZE)) - 1))
}

// DecodeI decodes the fields of an I format word.
func DecodeI(word uint32) (op Opcode, imm uint16) {
	op = WordOpcode(word)
	imm = uint16((word >> IMMEDIATE_SHIFT) & IMMEDIATE_MASK)
	return
}

// DecodeDSI decodes the fields of a DSI format word.
func DecodeDSI(word uint32) (op Opcode, dest, source1 Register, imm uint16) {
	op = WordOpcode(word)
	dest = Register((word >> DEST_SHIFT) & REGISTER_MASK)
	source1 = Register((word >> SOURCE1_SHIFT) & REGISTER_MASK)
	imm = uint16((word >> IMMEDIATE_SHIFT) & IMMEDIATE_MASK)
	return
}

// DecodeDSS decodes the fields of a DSS format word.
func DecodeDSS(word uint32) (op Opcode, dest, source1, source2 Register) {
	op = WordOpcode(word)
	dest = Register((word >> DEST_SHIFT) & REGISTER_MASK)
	source1 = Register((word >> SOURCE1_SHIFT) & REGISTER_MASK)
	source2 = Register((word >> SOURCE2_SHIFT) & REGISTER_MASK)
	return
}

// Decode splits an instruction word into its fields, according to the
// layout selected by its format bits.
//
// The fields are decoded even when the opcode is unknown under a valid
// format, in which case ErrOpcodeUnknown is also returned.
func Decode(word uint32) (in Instruction, err error) {
	switch WordFormat(word) {
	case FORMAT_I:
		in.Opcode, in.Immediate = DecodeI(word)
	case FORMAT_DSI:
		in.Opcode, in.Dest, in.Source1, in.Immediate = DecodeDSI(word)
	case FORMAT_DSS:
		in.Opcode, in.Dest, in.Source1, in.Source2 = DecodeDSS(word)
	default:
		in.Opcode = WordOpcode(word)
		err = ErrFormat(WordFormat(word))
		return
	}

	_, ok := OpcodeFromValue(in.Opcode)
	if !ok {
		err = ErrOpcodeUnknown(in.Opcode)
	}

	return
}

// Encode packs the instruction into a word, using the layout of its
// opcode's format.
func (in Instruction) Encode() (word uint32, err error) {
	om, ok := OpcodeFromValue(in.Opcode)
	if !ok {
		err = ErrOpcodeUnknown(in.Opcode)
		return
	}

	for _, reg := range []Register{in.Dest, in.Source1, in.Source2} {
		if !reg.Valid() {
			err = ErrRegister(reg)
			return
		}
	}

	switch om.Format {
	case FORMAT_I:
		word = MakeI(om.Opcode, in.Immediate)
	case FORMAT_DSI:
		word = MakeDSI(om.Opcode, in.Dest, in.Source1, in.Immediate)
	case FORMAT_DSS:
		word = MakeDSS(om.Opcode, in.Dest, in.Source1, in.Source2)
	default:
		err = ErrFormat(om.Format)
	}

	return
}

// Get returns the register in an operand slot.
func (in Instruction) Get(operand Operand) (reg Register) {
	switch operand {
	case OPERAND_DEST:
		reg = in.Dest
	case OPERAND_SOURCE1:
		reg = in.Source1
	case OPERAND_SOURCE2:
		reg = in.Source2
	}
	return
}

// Set places a register in an operand slot.
func (in *Instruction) Set(operand Operand, reg Register) {
	switch operand {
	case OPERAND_DEST:
		in.Dest = reg
	case OPERAND_SOURCE1:
		in.Source1 = reg
	case OPERAND_SOURCE2:
		in.Source2 = reg
	}
}

// String returns the assembly language form of the instruction.
func (in Instruction) String() string {
	om, ok := OpcodeFromValue(in.Opcode)
	if !ok {
		return fmt.Sprintf(".op %#02x", uint8(in.Opcode))
	}

	args := make([]string, 0, len(om.Operands))
	for _, operand := range om.Operands {
		if operand == OPERAND_IMMEDIATE {
			if om.Optional && in.Immediate == 0 {
				continue
			}
			args = append(args, fmt.Sprintf("0x%04x", in.Immediate))
		} else {
			args = append(args, in.Get(operand).String())
		}
	}

	if len(args) == 0 {
		return om.Symbol
	}

	return om.Symbol + " " + strings.Join(args, ", ")
}

// Disassemble returns the assembly language form of an instruction word.
func Disassemble(word uint32) string {
	in, err := Decode(word)
	if err != nil {
		return fmt.Sprintf(".word 0x%08x", word)
	}
	return in.String()
}
