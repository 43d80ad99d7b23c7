package machine

import (
	"iter"
	"maps"
)

// Default memory map.
const (
	ARENA_GUARD     = 0x0000 // Unmapped guard page.
	ARENA_VECTORS   = 0x0100 // Reset and trap vectors.
	ARENA_CODE      = 0x0200 // Program text.
	ARENA_ALLOCABLE = 0x6000 // Heap and stack.
)

// RESET_VECTOR is the program counter after reset.
const RESET_VECTOR = ARENA_VECTORS

var _arena_defines = map[string]int64{
	"ARENA_GUARD":     ARENA_GUARD,
	"ARENA_VECTORS":   ARENA_VECTORS,
	"ARENA_CODE":      ARENA_CODE,
	"ARENA_ALLOCABLE": ARENA_ALLOCABLE,
	"RESET_VECTOR":    RESET_VECTOR,
}

// Defines returns the memory map as assembler equates.
func Defines() iter.Seq2[string, int64] {
	return maps.All(_arena_defines)
}
