// Package isa describes the S16 instruction set.
//
// The S16 has 32 general-purpose 16-bit registers, where register zero
// always reads as zero, and executes 32-bit instruction words. Every word
// carries a 2-bit format field in its low bits selecting one of three
// layouts:
//
//	I:   format(2) | funct(4) | reserved(10) | immediate(16)
//	DSI: format(2) | funct(4) | dest(5) | source1(5) | immediate(16)
//	DSS: format(2) | funct(4) | dest(5) | source1(5) | source2(5) | reserved(11)
//
// The opcode of an instruction is (funct << 2) | format. The tables in this
// package are the single source of truth for the encoding, used by both the
// assembler and the simulator.
package isa
