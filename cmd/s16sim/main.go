// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/s16/debugger"
	"github.com/ezrec/s16/internal"
	"github.com/ezrec/s16/machine"
	"github.com/ezrec/s16/translate"
)

var f = translate.From

var ErrProgramRequired = errors.New(f("a program is required to run"))

// CYCLES_DEFAULT bounds a non-interactive run.
const CYCLES_DEFAULT = 1_000_000

// options of the simulator command line.
type options struct {
	base    uint16
	run     bool
	cycles  int
	verbose int
	lang    string
}

// run loads path, and runs it from reset until it halts.
// The final register state is written to the debugger output.
func run(dbg *debugger.Debugger, opts *options, path string) (err error) {
	if len(path) == 0 {
		err = ErrProgramRequired
		return
	}

	_, err = dbg.LoadFile(path, opts.base)
	if err != nil {
		return
	}

	dbg.Limit = opts.cycles
	dbg.AssertReset()
	dbg.DeassertReset()

	// No breakpoints are set, so only a halt or an error stops the run.
	ticks, _, _, err := dbg.Continue()
	if !errors.Is(err, machine.ErrHalted) {
		return
	}

	internal.Logger(dbg.Log).Infof("halted after %d cycles", ticks)
	_, err = io.WriteString(dbg.Output, dbg.Processor.String())
	return
}

// repl runs the interactive command loop. A terminal on standard input
// gets line editing and history; anything else is read line by line.
func repl(dbg *debugger.Debugger, log *logrus.Logger) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return dbg.Run(debugger.NewLineReader(os.Stdin))
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer func() { _ = term.Restore(fd, state) }()

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	terminal := term.NewTerminal(screen, "(s16) ")

	dbg.Output = terminal
	log.SetOutput(terminal)
	defer log.SetOutput(os.Stderr)

	return dbg.Run(terminal)
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "s16sim [flags] [program]",
		Short: f("Simulate an S16 processor"),
		Long: f(`S16sim loads a program into a simulated S16 processor, and either
runs it to completion (-r) or starts the interactive debugger.
A program ending in '.s' is assembled first, otherwise it is
loaded as a flat binary image.
`),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(opts.lang) != 0 {
				translate.SetLanguage(opts.lang)
			}

			log := logrus.StandardLogger()
			log.SetLevel(internal.Verbosity(opts.verbose))

			var path string
			if len(args) > 0 {
				path = args[0]
			}

			dbg := debugger.NewDebugger(os.Stdout)
			dbg.Log = log
			dbg.Limit = opts.cycles // Bounds each 'continue' in the REPL.

			if opts.run {
				err = run(dbg, opts, path)
			} else {
				if len(path) != 0 {
					_, err = dbg.LoadFile(path, opts.base)
				}
				if err == nil {
					err = repl(dbg, log)
				}
			}

			if err != nil {
				log.Errorf("%v", err)
			}
			return
		},
	}

	flags := cmd.Flags()
	flags.Uint16VarP(&opts.base, "base", "b", machine.RESET_VECTOR, f("address to load the program at"))
	flags.BoolVarP(&opts.run, "run", "r", false, f("run the program to completion, and print the registers"))
	flags.IntVarP(&opts.cycles, "cycles", "c", CYCLES_DEFAULT, f("maximum cycles per run or 'continue', unlimited if 0"))
	flags.StringVar(&opts.lang, "lang", "", f("language of messages, instead of the user locale"))
	flags.CountVarP(&opts.verbose, "verbose", "v", f("verbosity of log messages, may be repeated"))

	cmd.SilenceErrors = true
	if cmd.Execute() != nil {
		os.Exit(1)
	}
}
