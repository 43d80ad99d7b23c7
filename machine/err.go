package machine

import (
	"errors"

	"github.com/ezrec/s16/isa"
	"github.com/ezrec/s16/translate"
)

var f = translate.From

var (
	ErrHalted             = errors.New(f("halted"))
	ErrInvalidArgument    = errors.New(f("invalid argument"))
	ErrInvalidInstruction = errors.New(f("invalid instruction"))
	ErrOutOfMemory        = errors.New(f("out of memory"))
)

// ErrExecute locates an instruction that failed to execute.
type ErrExecute struct {
	Pc   uint16
	Word uint32
	Err  error
}

func (err *ErrExecute) Error() string {
	return f("%04x: %08x (%v) %v", err.Pc, err.Word, isa.Disassemble(err.Word), err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}
