package isa

import (
	"github.com/ezrec/s16/translate"
)

var f = translate.From

// ErrOpcodeUnknown is an opcode not in the instruction table.
type ErrOpcodeUnknown Opcode

func (err ErrOpcodeUnknown) Error() string {
	return f("unknown opcode %#02x", uint8(err))
}

// ErrFormat is an unassigned instruction format.
type ErrFormat Format

func (err ErrFormat) Error() string {
	return f("invalid format %#b", uint8(err))
}

// ErrRegister is a register index that does not fit its field.
type ErrRegister Register

func (err ErrRegister) Error() string {
	return f("invalid register %d", uint8(err))
}
