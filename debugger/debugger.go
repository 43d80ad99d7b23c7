// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package debugger

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/s16/asm"
	"github.com/ezrec/s16/internal"
	"github.com/ezrec/s16/isa"
	"github.com/ezrec/s16/machine"
)

// Breakpoint stops 'continue' when the program counter reaches Address.
type Breakpoint struct {
	Id      int
	Address uint16
}

// Debugger is an interactive monitor for a processor.
type Debugger struct {
	Log                *logrus.Logger // Log of the debugger and processor; standard logger if nil.
	Output             io.Writer      // Command output.
	*machine.Processor                // Reference to the processor simulation.
	Program            *asm.Program   // Most recently assembled program, for labels.
	Limit              int            // Maximum cycles per 'continue'; unlimited if 0.

	breakpoint []Breakpoint
	nextId     int
	input      LineReader
	quit       bool
}

// NewDebugger creates a debugger over a new processor, held in reset.
func NewDebugger(output io.Writer) (dbg *Debugger) {
	dbg = &Debugger{
		Output:    output,
		Processor: machine.NewProcessor(),
		nextId:    1,
	}

	return
}

func (dbg *Debugger) printf(format string, args ...any) {
	_, _ = fprintf(dbg.Output, format, args...)
}

// Breakpoints returns the breakpoints, in order of creation.
func (dbg *Debugger) Breakpoints() []Breakpoint {
	return slices.Clone(dbg.breakpoint)
}

// Break adds a breakpoint at address.
func (dbg *Debugger) Break(address uint16) (bp Breakpoint) {
	bp = Breakpoint{Id: dbg.nextId, Address: address}
	dbg.nextId++
	dbg.breakpoint = append(dbg.breakpoint, bp)
	return
}

// Unbreak removes a breakpoint by number.
func (dbg *Debugger) Unbreak(id int) (err error) {
	index := slices.IndexFunc(dbg.breakpoint, func(bp Breakpoint) bool { return bp.Id == id })
	if index < 0 {
		err = ErrBreakpointUnknown(id)
		return
	}
	dbg.breakpoint = slices.Delete(dbg.breakpoint, index, index+1)
	return
}

// breakpointAt returns the breakpoint at address, if any.
func (dbg *Debugger) breakpointAt(address uint16) (bp Breakpoint, ok bool) {
	for _, bp = range dbg.breakpoint {
		if bp.Address == address {
			ok = true
			return
		}
	}
	return Breakpoint{}, false
}

// Address parses a number, or a label of the current program.
func (dbg *Debugger) Address(text string) (address uint16, err error) {
	value, err := strconv.ParseUint(text, 0, 16)
	if err == nil {
		address = uint16(value)
		return
	}
	err = nil

	if dbg.Program != nil {
		if addr, ok := dbg.Program.Labels[text]; ok {
			address = addr
			return
		}
	}

	err = ErrAddress(text)
	return
}

// Where describes the instruction at the program counter.
func (dbg *Debugger) Where() string {
	pc := dbg.Register.Pc
	text := f("0x%04x: %v", pc, isa.Disassemble(dbg.Memory.LoadWord(pc)))
	if dbg.Program != nil {
		if labels := dbg.Program.Symbols(pc); len(labels) > 0 {
			text += " <" + strings.Join(labels, ",") + ">"
		}
	}
	return text
}

// Assemble assembles source at address, with the memory map predefined.
func (dbg *Debugger) Assemble(source io.Reader, address uint16) (prog *asm.Program, err error) {
	as := &asm.Assembler{Base: address, Log: dbg.Log}
	for key, value := range machine.Defines() {
		as.Predefine(key, value)
	}
	return as.Parse(source)
}

// LoadFile loads a binary object, or assembles a '.s' source file, at address.
func (dbg *Debugger) LoadFile(path string, address uint16) (n int, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	var image io.Reader = inf
	if strings.HasSuffix(path, ".s") {
		var prog *asm.Program
		prog, err = dbg.Assemble(inf, address)
		if err != nil {
			return
		}
		dbg.Program = prog
		image = bytes.NewReader(prog.Binary())
	}

	return dbg.Processor.Load(image, address, machine.MEMORY_SIZE-int(address))
}

// Tick runs up to cycles instructions. It stops early at a halt or an error.
func (dbg *Debugger) Tick(cycles int) (ticks int, err error) {
	if dbg.Halted() {
		err = ErrResetAsserted
		return
	}

	for ; ticks < cycles; ticks++ {
		err = dbg.Processor.Tick()
		if err != nil {
			return
		}
	}
	return
}

// Continue runs until a halt, an error, the cycle limit, or a breakpoint.
func (dbg *Debugger) Continue() (ticks int, bp Breakpoint, hit bool, err error) {
	if dbg.Halted() {
		err = ErrResetAsserted
		return
	}

	for {
		if dbg.Limit > 0 && ticks >= dbg.Limit {
			err = ErrCycleLimit
			return
		}
		err = dbg.Processor.Tick()
		if err != nil {
			return
		}
		ticks++
		bp, hit = dbg.breakpointAt(dbg.Register.Pc)
		if hit {
			return
		}
	}
}

// Execute runs a single command line.
func (dbg *Debugger) Execute(line string) (err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	cmd, args, ok := lookup(words)
	if !ok {
		err = ErrCommandUnknown(words[0])
		return
	}

	dbg.Processor.Log = dbg.Log
	internal.Logger(dbg.Log).Debugf("debugger: %v %v", cmd.Name, args)

	err = cmd.Handler(dbg, args)
	if err != nil {
		err = &ErrCommand{Command: cmd.Name, Err: err}
	}
	return
}

// confirm asks a yes or no question on the command input.
func (dbg *Debugger) confirm(question string) bool {
	dbg.printf("%v (y/n) ", question)
	if dbg.input == nil {
		return false
	}
	answer, err := dbg.input.ReadLine()
	if err != nil {
		return false
	}
	return strings.TrimSpace(answer) == "y"
}

// Run reads and executes commands until 'quit' or the end of input.
// Command errors are reported on the output, and do not stop the loop.
func (dbg *Debugger) Run(input LineReader) (err error) {
	dbg.input = input
	defer func() { dbg.input = nil }()

	dbg.quit = false
	for !dbg.quit {
		var line string
		line, err = input.ReadLine()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		cmd_err := dbg.Execute(line)
		if cmd_err != nil {
			internal.Logger(dbg.Log).Debugf("debugger: %v", cmd_err)
			dbg.printf("error: %v\n", cmd_err)
		}
	}

	return
}

// labels returns the program labels ordered by address, for display.
func (dbg *Debugger) labels() (names []string) {
	if dbg.Program == nil {
		return
	}
	names = slices.Sorted(maps.Keys(dbg.Program.Labels))
	slices.SortStableFunc(names, func(a, b string) int {
		return int(dbg.Program.Labels[a]) - int(dbg.Program.Labels[b])
	})
	return
}
