package debugger

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/s16/internal"
	"github.com/ezrec/s16/machine"
)

// Command is a debugger command.
type Command struct {
	Name    string                                   // One or two words.
	Args    string                                   // Argument synopsis.
	Help    string                                   // One line description.
	Handler func(dbg *Debugger, args []string) error // Command action.
}

var commandTable []Command

func init() {
	commandTable = []Command{
		{"help", "", f("print command help information"), cmdHelp},
		{"break", "<address>", f("add a breakpoint at address"), cmdBreak},
		{"continue", "", f("continue until reset is asserted, an error occurs, or a breakpoint is hit"), cmdContinue},
		{"load", "<file> [address]", f("load a binary file, or assemble a .s file, at address"), cmdLoad},
		{"quit", "", f("exit the simulator"), cmdQuit},
		{"info break", "", f("show all breakpoint numbers and their addresses"), cmdInfoBreak},
		{"info labels", "", f("show the labels of the loaded program"), cmdInfoLabels},
		{"info memory", "[[start:]end ...]", f("show contents of main memory"), cmdInfoMemory},
		{"info registers", "[name ...]", f("show contents of registers"), cmdInfoRegisters},
		{"start", "", f("assert and deassert reset to cycle the simulated core"), cmdStart},
		{"tick", "[cycles]", f("tick the clock by specified amount"), cmdTick},
		{"unbreak", "<breakpoint>", f("remove a breakpoint"), cmdUnbreak},
		{"verbose", "[level]", f("set or view level of debug messages"), cmdVerbose},
	}
}

// Commands returns the command table.
func Commands() []Command {
	return commandTable
}

// lookup finds the command named by the leading words.
func lookup(words []string) (cmd Command, args []string, ok bool) {
	for _, cmd = range commandTable {
		name := strings.Fields(cmd.Name)
		if len(words) < len(name) {
			continue
		}
		if strings.Join(words[:len(name)], " ") == cmd.Name {
			return cmd, words[len(name):], true
		}
	}
	return Command{}, nil, false
}

func cmdHelp(dbg *Debugger, args []string) error {
	if len(args) != 0 {
		return ErrArguments
	}
	for _, cmd := range commandTable {
		dbg.printf("%-32v -- %v\n", strings.TrimSpace(cmd.Name+" "+cmd.Args), cmd.Help)
	}
	return nil
}

func cmdBreak(dbg *Debugger, args []string) error {
	if len(args) != 1 {
		return ErrArguments
	}
	address, err := dbg.Address(args[0])
	if err != nil {
		return err
	}
	bp := dbg.Break(address)
	dbg.printf("breakpoint %d at 0x%04x\n", bp.Id, bp.Address)
	return nil
}

func cmdUnbreak(dbg *Debugger, args []string) error {
	if len(args) != 1 {
		return ErrArguments
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return err
	}
	return dbg.Unbreak(id)
}

func cmdInfoBreak(dbg *Debugger, args []string) error {
	if len(args) != 0 {
		return ErrArguments
	}
	for _, bp := range dbg.breakpoint {
		var label string
		if dbg.Program != nil {
			label = strings.Join(dbg.Program.Symbols(bp.Address), ",")
		}
		dbg.printf("%d\t0x%04x\t%v\n", bp.Id, bp.Address, label)
	}
	return nil
}

func cmdInfoLabels(dbg *Debugger, args []string) error {
	if len(args) != 0 {
		return ErrArguments
	}
	for _, name := range dbg.labels() {
		dbg.printf("0x%04x\t%v\n", dbg.Program.Labels[name], name)
	}
	return nil
}

// memoryRange parses '[start:]end'.
func (dbg *Debugger) memoryRange(text string) (start, end uint16, err error) {
	first, last, found := strings.Cut(text, ":")
	end, err = dbg.Address(last)
	if err != nil {
		return
	}
	start = end
	if found {
		start, err = dbg.Address(first)
		if err != nil {
			return
		}
	}
	if start > end {
		err = ErrAddress(text)
	}
	return
}

func cmdInfoMemory(dbg *Debugger, args []string) error {
	if len(args) == 0 {
		args = []string{"0x0000:0xffff"}
	}

	for _, arg := range args {
		start, end, err := dbg.memoryRange(arg)
		if err != nil {
			return err
		}

		var line strings.Builder
		for addr := int(start); addr <= int(end); addr++ {
			if line.Len() == 0 {
				line.WriteString(f("0x%04x:", addr))
			}
			line.WriteString(f(" %02x", dbg.Memory.LoadByte(uint16(addr))))
			if addr%16 == 15 || addr == int(end) {
				dbg.printf("%v\n", line.String())
				line.Reset()
			}
		}
	}
	return nil
}

func cmdInfoRegisters(dbg *Debugger, args []string) (err error) {
	if len(args) == 0 {
		for name, value := range dbg.Registers() {
			dbg.printf("%v = 0x%04x\n", name, value)
		}
		return
	}

	for _, name := range args {
		value, ok := dbg.RegisterValue(name)
		if !ok {
			err = errors.Join(err, ErrRegisterUnknown(name))
			continue
		}
		dbg.printf("%v = 0x%04x\n", name, value)
	}
	return
}

func cmdLoad(dbg *Debugger, args []string) error {
	var address uint16 = machine.RESET_VECTOR
	switch len(args) {
	case 1:
	case 2:
		var err error
		address, err = dbg.Address(args[1])
		if err != nil {
			return err
		}
	default:
		return ErrArguments
	}

	n, err := dbg.LoadFile(args[0], address)
	if err != nil {
		return err
	}
	dbg.printf("loaded %d bytes at 0x%04x\n", n, address)
	return nil
}

func cmdStart(dbg *Debugger, args []string) error {
	if len(args) != 0 {
		return ErrArguments
	}

	if !dbg.Halted() && !dbg.confirm(f("simulation already running, restart from beginning?")) {
		return nil
	}

	dbg.AssertReset()
	dbg.DeassertReset()
	dbg.printf("simulation started, execution paused at %v\n", dbg.Where())
	return nil
}

// stopped reports why execution stopped. A halt is not an error.
func (dbg *Debugger) stopped(ticks int, err error) error {
	if errors.Is(err, machine.ErrHalted) {
		dbg.printf("halted after %d cycles at %v\n", ticks, dbg.Where())
		return nil
	}
	return err
}

func cmdTick(dbg *Debugger, args []string) error {
	cycles := 1
	switch len(args) {
	case 0:
	case 1:
		var err error
		cycles, err = strconv.Atoi(args[0])
		if err != nil {
			return err
		}
	default:
		return ErrArguments
	}

	ticks, err := dbg.Tick(cycles)
	if err != nil {
		return dbg.stopped(ticks, err)
	}
	dbg.printf("%v\n", dbg.Where())
	return nil
}

func cmdContinue(dbg *Debugger, args []string) error {
	if len(args) != 0 {
		return ErrArguments
	}

	ticks, bp, hit, err := dbg.Continue()
	if err != nil {
		return dbg.stopped(ticks, err)
	}
	if hit {
		dbg.printf("breakpoint %d after %d cycles at %v\n", bp.Id, ticks, dbg.Where())
	}
	return nil
}

func cmdVerbose(dbg *Debugger, args []string) error {
	log := internal.Logger(dbg.Log)
	switch len(args) {
	case 0:
	case 1:
		level, err := logrus.ParseLevel(args[0])
		if err != nil {
			count, num_err := strconv.Atoi(args[0])
			if num_err != nil {
				return err
			}
			level = internal.Verbosity(count)
		}
		log.SetLevel(level)
	default:
		return ErrArguments
	}

	dbg.printf("verbose: %v\n", log.GetLevel())
	return nil
}

func cmdQuit(dbg *Debugger, args []string) error {
	if len(args) != 0 {
		return ErrArguments
	}
	dbg.quit = true
	return nil
}
