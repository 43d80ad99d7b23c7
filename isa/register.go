package isa

import (
	"slices"
)

// Register is a general-purpose register index, 0 through 31.
type Register uint8

const (
	REGISTER_COUNT = 32 // Number of general-purpose registers.
)

// ABI register names. Each aliases the raw rN register of the same index.
const (
	REG_ZERO = Register(0)
	REG_RA   = Register(1)
	REG_SP   = Register(2)
	REG_A0   = Register(3)
	REG_A1   = Register(4)
	REG_A2   = Register(5)
	REG_A3   = Register(6)
	REG_A4   = Register(7)
	REG_A5   = Register(8)
	REG_A6   = Register(9)
	REG_A7   = Register(10)
	REG_T0   = Register(11)
	REG_T1   = Register(12)
	REG_T2   = Register(13)
	REG_T3   = Register(14)
	REG_T4   = Register(15)
	REG_T5   = Register(16)
	REG_T6   = Register(17)
	REG_T7   = Register(18)
	REG_S0   = Register(19)
	REG_S1   = Register(20)
	REG_S2   = Register(21)
	REG_S3   = Register(22)
	REG_S4   = Register(23)
	REG_S5   = Register(24)
	REG_S6   = Register(25)
	REG_S7   = Register(26)
	REG_S8   = Register(27)
	REG_S9   = Register(28)
	REG_S10  = Register(29)
	REG_S11  = Register(30)
	REG_S12  = Register(31)
)

// RegisterMap is a register symbol and the register it names.
type RegisterMap struct {
	Symbol   string
	Register Register
}

// registerTable lists the ABI name of each register before its raw name,
// so reverse lookups find the ABI name first.
var registerTable = []RegisterMap{
	{"zero", REG_ZERO}, {"r0", REG_ZERO},
	{"ra", REG_RA}, {"r1", REG_RA},
	{"sp", REG_SP}, {"r2", REG_SP},
	{"a0", REG_A0}, {"r3", REG_A0},
	{"a1", REG_A1}, {"r4", REG_A1},
	{"a2", REG_A2}, {"r5", REG_A2},
	{"a3", REG_A3}, {"r6", REG_A3},
	{"a4", REG_A4}, {"r7", REG_A4},
	{"a5", REG_A5}, {"r8", REG_A5},
	{"a6", REG_A6}, {"r9", REG_A6},
	{"a7", REG_A7}, {"r10", REG_A7},
	{"t0", REG_T0}, {"r11", REG_T0},
	{"t1", REG_T1}, {"r12", REG_T1},
	{"t2", REG_T2}, {"r13", REG_T2},
	{"t3", REG_T3}, {"r14", REG_T3},
	{"t4", REG_T4}, {"r15", REG_T4},
	{"t5", REG_T5}, {"r16", REG_T5},
	{"t6", REG_T6}, {"r17", REG_T6},
	{"t7", REG_T7}, {"r18", REG_T7},
	{"s0", REG_S0}, {"r19", REG_S0},
	{"s1", REG_S1}, {"r20", REG_S1},
	{"s2", REG_S2}, {"r21", REG_S2},
	{"s3", REG_S3}, {"r22", REG_S3},
	{"s4", REG_S4}, {"r23", REG_S4},
	{"s5", REG_S5}, {"r24", REG_S5},
	{"s6", REG_S6}, {"r25", REG_S6},
	{"s7", REG_S7}, {"r26", REG_S7},
	{"s8", REG_S8}, {"r27", REG_S8},
	{"s9", REG_S9}, {"r28", REG_S9},
	{"s10", REG_S10}, {"r29", REG_S10},
	{"s11", REG_S11}, {"r30", REG_S11},
	{"s12", REG_S12}, {"r31", REG_S12},
}

var registerSymbol map[string]Register

func init() {
	registerSymbol = make(map[string]Register, len(registerTable))
	for _, rm := range registerTable {
		registerSymbol[rm.Symbol] = rm.Register
	}
}

// RegisterFromSymbol returns the register named by an ABI or raw symbol.
func RegisterFromSymbol(symbol string) (reg Register, ok bool) {
	reg, ok = registerSymbol[symbol]
	return
}

// RegisterSymbol returns the preferred (ABI) symbol for a register.
func RegisterSymbol(reg Register) (symbol string, ok bool) {
	for _, rm := range registerTable {
		if rm.Register == reg {
			return rm.Symbol, true
		}
	}

	return
}

// Registers returns the register table, in index order, ABI names first.
func Registers() []RegisterMap {
	return slices.Clone(registerTable)
}

// Valid returns true if the register index is encodable.
func (reg Register) Valid() bool {
	return reg < REGISTER_COUNT
}

// String returns the ABI name of the register.
func (reg Register) String() string {
	symbol, ok := RegisterSymbol(reg)
	if !ok {
		return f("r?%d", uint8(reg))
	}
	return symbol
}
