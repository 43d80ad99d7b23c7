package isa

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFromSymbol(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		symbol string
		reg    Register
	}){
		{"zero", REG_ZERO},
		{"r0", REG_ZERO},
		{"ra", REG_RA},
		{"sp", REG_SP},
		{"a0", REG_A0},
		{"a7", REG_A7},
		{"t0", REG_T0},
		{"t7", REG_T7},
		{"s0", REG_S0},
		{"s12", REG_S12},
		{"r31", REG_S12},
	}

	for _, entry := range table {
		reg, ok := RegisterFromSymbol(entry.symbol)
		assert.True(ok, entry.symbol)
		assert.Equal(entry.reg, reg, entry.symbol)
	}

	for _, bad := range []string{"", "r32", "x0", "Zero", "s13", "a8"} {
		_, ok := RegisterFromSymbol(bad)
		assert.False(ok, bad)
	}
}

func TestRegisterRawNames(t *testing.T) {
	assert := assert.New(t)

	for n := range REGISTER_COUNT {
		reg, ok := RegisterFromSymbol(fmt.Sprintf("r%d", n))
		assert.True(ok)
		assert.Equal(Register(n), reg)
	}
}

func TestRegisterSymbol(t *testing.T) {
	assert := assert.New(t)

	symbol, ok := RegisterSymbol(REG_ZERO)
	assert.True(ok)
	assert.Equal("zero", symbol)

	assert.Equal("ra", REG_RA.String())
	assert.Equal("t1", REG_T1.String())
	assert.Equal("s12", Register(31).String())

	_, ok = RegisterSymbol(Register(32))
	assert.False(ok)
	assert.False(Register(32).Valid())
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	regs := Registers()
	assert.Equal(2*REGISTER_COUNT, len(regs))

	// Modifying the copy leaves the table alone.
	regs[0].Symbol = "nope"
	assert.Equal("zero", REG_ZERO.String())
}
