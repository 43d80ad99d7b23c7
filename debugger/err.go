package debugger

import (
	"errors"

	"github.com/ezrec/s16/translate"
)

var (
	f       = translate.From
	fprintf = translate.Fprintf
)

var (
	ErrArguments     = errors.New(f("unexpected arguments"))
	ErrResetAsserted = errors.New(f("reset is asserted, not ticking clock"))
	ErrCycleLimit    = errors.New(f("cycle limit reached"))
)

// ErrCommandUnknown is a command not in the command table.
type ErrCommandUnknown string

func (err ErrCommandUnknown) Error() string {
	return f("unknown command '%v', try 'help'", string(err))
}

// ErrAddress is an address that is neither a number nor a label.
type ErrAddress string

func (err ErrAddress) Error() string {
	return f("invalid address '%v'", string(err))
}

// ErrRegisterUnknown is a register name the processor does not have.
type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("unknown register name %v", string(err))
}

// ErrBreakpointUnknown is a breakpoint number not in use.
type ErrBreakpointUnknown int

func (err ErrBreakpointUnknown) Error() string {
	return f("no breakpoint number %d", int(err))
}

// ErrCommand locates the command that failed.
type ErrCommand struct {
	Command string
	Err     error
}

func (err *ErrCommand) Error() string {
	return f("%v: %v", err.Command, err.Err)
}

func (err *ErrCommand) Unwrap() error {
	return err.Err
}
