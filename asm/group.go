package asm

import (
	"encoding/binary"

	"github.com/ezrec/s16/isa"
)

//go:generate go tool stringer -linecomment -type GroupKind

// GroupKind is the kind of a parsed group.
type GroupKind int

const (
	GROUP_LABEL       = GroupKind(iota) // label
	GROUP_INSTRUCTION                   // instruction
	GROUP_HALF                          // half
	GROUP_DATA                          // data
)

// Group is a unit of program text: a label definition, an instruction,
// a 16-bit data value, or a run of raw bytes.
type Group struct {
	Kind     GroupKind
	Position Cursor // Source position of the group's first token.
	Address  uint16 // Address of the group in the program image.
	Symbol   string // Mnemonic or directive as written.
	Label    string // Name of a GROUP_LABEL.

	isa.Instruction        // Instruction fields; Immediate also holds GROUP_HALF values.
	ImmediateLabel  string // If set, Immediate is the address of this label.

	Data   []byte // Bytes of a GROUP_DATA.
	Binary uint32 // Encoded instruction word, or half value.
}

// Size returns the number of bytes the group occupies.
func (grp Group) Size() int {
	switch grp.Kind {
	case GROUP_INSTRUCTION:
		return 4
	case GROUP_HALF:
		return 2
	case GROUP_DATA:
		return len(grp.Data)
	}
	return 0
}

// Bytes returns the little-endian image of the group.
func (grp Group) Bytes() (data []byte) {
	switch grp.Kind {
	case GROUP_INSTRUCTION:
		data = binary.LittleEndian.AppendUint32(nil, grp.Binary)
	case GROUP_HALF:
		data = binary.LittleEndian.AppendUint16(nil, uint16(grp.Binary))
	case GROUP_DATA:
		data = grp.Data
	}
	return
}

// String returns the group as assembly text.
func (grp Group) String() string {
	switch grp.Kind {
	case GROUP_LABEL:
		return grp.Label + ":"
	case GROUP_INSTRUCTION:
		if len(grp.ImmediateLabel) != 0 {
			return grp.Symbol + " " + grp.ImmediateLabel
		}
		return grp.Instruction.String()
	case GROUP_HALF:
		if len(grp.ImmediateLabel) != 0 {
			return ".half " + grp.ImmediateLabel
		}
		return f(".half 0x%04x", grp.Immediate)
	case GROUP_DATA:
		return f(".%v %d bytes", grp.Symbol, len(grp.Data))
	}
	return grp.Kind.String()
}
