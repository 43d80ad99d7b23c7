// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/s16/internal"
)

// BASE_DEFAULT is the conventional load address, the processor reset vector.
const BASE_DEFAULT = 0x0100

// Assembler is a two pass assembler for S16 programs.
type Assembler struct {
	Base uint16         // Address of the first group.
	Log  *logrus.Logger // Log of the assembler stages; standard logger if nil.

	predefine map[string]int64 // Predefines
}

// Predefine defines a new equate or redefines an existing equate,
// visible to every program assembled afterwards.
func (asm *Assembler) Predefine(equ string, value int64) {
	if asm.predefine == nil {
		asm.predefine = map[string]int64{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Parse assembles the source text from input.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	log := internal.Logger(asm.Log)

	tokens, err := LexAll(input, log)
	if err != nil {
		return
	}
	log.Infof("asm: %d tokens", len(tokens))

	ps := NewParser(tokens, asm.Base)
	ps.Log = log
	for equ, value := range asm.predefine {
		ps.Equate[equ] = value
	}
	groups, err := ps.All()
	if err != nil {
		return
	}
	log.Infof("asm: %d groups, %d bytes", len(groups), ps.Pc-int(asm.Base))

	enc := &Encoder{Log: log}
	image, err := enc.Encode(groups)
	if err != nil {
		return
	}

	prog = &Program{
		Base:   asm.Base,
		Groups: image,
		Labels: enc.Label,
	}
	return
}
