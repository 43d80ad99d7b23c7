// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/s16/asm"
	"github.com/ezrec/s16/internal"
	"github.com/ezrec/s16/machine"
	"github.com/ezrec/s16/translate"
)

var f = translate.From

// ErrDefine is a malformed '-D' predefine.
type ErrDefine string

func (err ErrDefine) Error() string {
	return f("expected NAME=VALUE, not '%v'", string(err))
}

// options of the assembler command line.
type options struct {
	base    uint16
	output  string
	define  []string
	listing bool
	dump    bool
	verbose int
	lang    string
}

// parseDefine splits a 'NAME=VALUE' predefine.
func parseDefine(text string) (name string, value int64, err error) {
	name, num, ok := strings.Cut(text, "=")
	if !ok || len(name) == 0 {
		err = ErrDefine(text)
		return
	}
	value, err = strconv.ParseInt(num, 0, 64)
	if err != nil {
		err = errors.Join(ErrDefine(text), err)
	}
	return
}

// assemble builds the program at path. The object file is only written
// if every stage succeeds.
func assemble(opts *options, path string, log *logrus.Logger) (err error) {
	as := &asm.Assembler{Base: opts.base, Log: log}
	for name, value := range machine.Defines() {
		as.Predefine(name, value)
	}
	for _, text := range opts.define {
		name, value, def_err := parseDefine(text)
		if def_err != nil {
			err = def_err
			return
		}
		as.Predefine(name, value)
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err := as.Parse(inf)
	if err != nil {
		return
	}

	if opts.dump {
		pp.Fprintln(os.Stderr, prog.Groups)
	}

	if opts.listing {
		err = prog.Listing(os.Stdout)
		if err != nil {
			return
		}
	}

	var image bytes.Buffer
	_, err = prog.WriteTo(&image)
	if err != nil {
		return
	}

	err = os.WriteFile(opts.output, image.Bytes(), 0o644)
	if err != nil {
		return
	}

	log.Infof("%v: wrote %d bytes at 0x%04x", opts.output, image.Len(), prog.Base)
	return
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "s16asm [flags] path",
		Short: f("Assemble S16 source into a flat binary image"),
		Long: f(`S16asm translates one assembly source file into a flat binary
image, ready to load at the base address. The memory map constants
(ARENA_GUARD, ARENA_VECTORS, ARENA_CODE, ARENA_ALLOCABLE) are
predefined as equates.
`),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.lang) != 0 {
				translate.SetLanguage(opts.lang)
			}

			log := logrus.StandardLogger()
			log.SetLevel(internal.Verbosity(opts.verbose))

			err := assemble(opts, args[0], log)
			if err != nil {
				log.Errorf("%v: %v", args[0], err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.Uint16VarP(&opts.base, "base", "b", asm.BASE_DEFAULT, f("base address to place code"))
	flags.StringVarP(&opts.output, "output", "o", "a.out", f("output path for the binary image"))
	flags.StringArrayVarP(&opts.define, "define", "D", nil, f("predefine an equate, as NAME=VALUE"))
	flags.BoolVarP(&opts.listing, "listing", "l", false, f("write a listing to standard output"))
	flags.BoolVar(&opts.dump, "dump", false, f("dump the encoded groups to standard error"))
	flags.StringVar(&opts.lang, "lang", "", f("language of messages, instead of the user locale"))
	flags.CountVarP(&opts.verbose, "verbose", "v", f("verbosity of log messages, may be repeated"))

	cmd.SilenceErrors = true
	if cmd.Execute() != nil {
		os.Exit(1)
	}
}
