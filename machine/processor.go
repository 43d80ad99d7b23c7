// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/s16/internal"
	"github.com/ezrec/s16/isa"
)

// Processor is the simulation context of a single S16 processor.
type Processor struct {
	Log *logrus.Logger // Log of ticks and execution; standard logger if nil.

	Register RegisterFile // Architectural registers.
	Memory   Memory       // Attached memory.
}

// NewProcessor creates a processor, held in reset at the reset vector.
func NewProcessor() (proc *Processor) {
	proc = &Processor{}
	proc.AssertReset()

	return
}

// AssertReset moves the program counter to the reset vector, and halts.
func (proc *Processor) AssertReset() {
	proc.Register.Pc = RESET_VECTOR
	proc.Register.Reset = 1
	internal.Logger(proc.Log).Debugf("processor: reset asserted")
}

// DeassertReset lets the processor run from the current program counter.
func (proc *Processor) DeassertReset() {
	proc.Register.Reset = 0
	internal.Logger(proc.Log).Debugf("processor: reset deasserted, pc = %#04x", proc.Register.Pc)
}

// Halted is true if the processor is not running.
func (proc *Processor) Halted() bool {
	return proc.Register.Reset != 0
}

// Tick executes a single instruction cycle.
// A halted processor returns ErrHalted, and is unchanged.
func (proc *Processor) Tick() (err error) {
	if proc.Halted() {
		err = ErrHalted
		return
	}

	log := internal.Logger(proc.Log)
	rf := &proc.Register

	log.Infof("clock tick: pc = %#04x", rf.Pc)
	word := proc.Memory.LoadWord(rf.Pc)
	log.Debugf("fetch: %#08x", word)

	taken, err := proc.Execute(word)
	if errors.Is(err, ErrHalted) {
		log.Infof("processor halted at pc = %#04x", rf.Pc)
		return
	}
	if err != nil {
		err = &ErrExecute{Pc: rf.Pc, Word: word, Err: err}
		log.Warnf("processor: %v", err)
		return
	}

	if !taken {
		rf.Pc += 4
	}
	rf.Ccount++

	return
}

// Execute performs the effect of one instruction word at the current
// program counter. It reports whether a jump was taken. The program
// counter is only changed by a taken jump.
func (proc *Processor) Execute(word uint32) (taken bool, err error) {
	in, err := isa.Decode(word)
	if err != nil {
		err = errors.Join(ErrInvalidInstruction, err)
		return
	}

	internal.Logger(proc.Log).Debugf("execute: %v", in)

	rf := &proc.Register
	mem := &proc.Memory

	dest := in.Dest
	src1 := rf.Read(in.Source1)
	src2 := rf.Read(in.Source2)
	imm := in.Immediate

	// jump to target if the condition register matches.
	jump := func(cond uint16, target uint16) {
		if src1 != cond {
			return
		}
		rf.Write(dest, rf.Pc+4)
		rf.Pc = target
		taken = true
	}

	switch in.Opcode {
	case isa.OP_HALT:
		rf.Reset = 1
		err = ErrHalted
	case isa.OP_ADDI:
		rf.Write(dest, src1+imm)
	case isa.OP_SUBI:
		rf.Write(dest, src1-imm)
	case isa.OP_ANDI:
		rf.Write(dest, src1&imm)
	case isa.OP_ORI:
		rf.Write(dest, src1|imm)
	case isa.OP_XORI:
		rf.Write(dest, src1^imm)
	case isa.OP_SLLI:
		rf.Write(dest, src1<<imm)
	case isa.OP_SRLI:
		rf.Write(dest, src1>>imm)
	case isa.OP_SRAI:
		rf.Write(dest, uint16(int16(src1)>>imm))
	case isa.OP_LD:
		rf.Write(dest, mem.LoadHalfword(src1+imm))
	case isa.OP_ST:
		mem.StoreHalfword(src1+imm, rf.Read(dest))
	case isa.OP_JL0:
		jump(0, imm)
	case isa.OP_JL1:
		jump(1, imm)
	case isa.OP_ADD:
		rf.Write(dest, src1+src2)
	case isa.OP_SUB:
		rf.Write(dest, src1-src2)
	case isa.OP_AND:
		rf.Write(dest, src1&src2)
	case isa.OP_OR:
		rf.Write(dest, src1|src2)
	case isa.OP_XOR:
		rf.Write(dest, src1^src2)
	case isa.OP_SLL:
		rf.Write(dest, src1<<src2)
	case isa.OP_SRL:
		rf.Write(dest, src1>>src2)
	case isa.OP_SRA:
		rf.Write(dest, uint16(int16(src1)>>src2))
	case isa.OP_EQ:
		rf.Write(dest, flag(src1 == src2))
	case isa.OP_GT:
		rf.Write(dest, flag(src1 > src2))
	case isa.OP_LT:
		rf.Write(dest, flag(src1 < src2))
	case isa.OP_NE:
		rf.Write(dest, flag(src1 != src2))
	case isa.OP_JLR0:
		jump(0, src2)
	case isa.OP_JLR1:
		jump(1, src2)
	default:
		err = errors.Join(ErrInvalidInstruction, isa.ErrOpcodeUnknown(in.Opcode))
	}

	return
}

func flag(cond bool) uint16 {
	if cond {
		return 1
	}
	return 0
}

// Registers iterates over the register names and values:
// pc, reset, ccount, then the general purpose registers by ABI name.
func (proc *Processor) Registers() iter.Seq2[string, uint16] {
	special := func(yield func(string, uint16) bool) {
		rf := &proc.Register
		_ = yield("pc", rf.Pc) &&
			yield("reset", rf.Reset) &&
			yield("ccount", rf.Ccount)
	}
	general := func(yield func(string, uint16) bool) {
		for n := range isa.REGISTER_COUNT {
			reg := isa.Register(n)
			if !yield(reg.String(), proc.Register.Read(reg)) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(special, general)
}

// RegisterValue returns the value of a register by name.
// Names are those of Registers(), or raw names r0 to r31.
func (proc *Processor) RegisterValue(name string) (value uint16, ok bool) {
	if reg, found := isa.RegisterFromSymbol(name); found {
		return proc.Register.Read(reg), true
	}
	for key, val := range proc.Registers() {
		if key == name {
			return val, true
		}
	}
	return
}

// String returns the current processor state as a string.
func (proc *Processor) String() (text string) {
	var sb strings.Builder
	for name, value := range proc.Registers() {
		fmt.Fprintf(&sb, "% 6s: 0x%04x\n", name, value)
	}
	text = sb.String()
	return
}
