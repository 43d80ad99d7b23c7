package machine

import (
	"github.com/ezrec/s16/isa"
)

// RegisterFile is the architectural register state.
type RegisterFile struct {
	Pc     uint16                     // Program counter, a byte address.
	Reset  uint16                     // 1 while halted, 0 while running.
	Ccount uint16                     // Cycle counter; wraps.
	Gp     [isa.REGISTER_COUNT]uint16 // General purpose registers.
}

// Read returns the value of a general purpose register.
// Registers outside the file read as zero.
func (rf *RegisterFile) Read(reg isa.Register) uint16 {
	if !reg.Valid() {
		return 0
	}
	return rf.Gp[reg]
}

// Write sets a general purpose register. Writes to the zero register,
// or outside the file, are ignored.
func (rf *RegisterFile) Write(reg isa.Register, value uint16) {
	if reg == isa.REG_ZERO || !reg.Valid() {
		return
	}
	rf.Gp[reg] = value
}
