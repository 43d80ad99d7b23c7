// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package machine simulates a single cycle S16 processor.
//
// A Processor owns a RegisterFile and a 64KiB Memory. Each Tick fetches,
// decodes, and executes one instruction.
package machine
