// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm is a two pass assembler for the S16 instruction set.
//
// Source text flows through three stages:
//
//	Lexer   - characters into tokens, with line and column positions.
//	Parser  - tokens into groups (labels, instructions, data), assigning addresses.
//	Encoder - resolves label references and packs instructions into words.
//
// The Assembler ties the stages together and produces a Program.
package asm
