package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisters_Pairs(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	r.SetPair(RegBC, 0x1234)
	assert.Equal(byte(0x12), r.B)
	assert.Equal(byte(0x34), r.C)
	assert.Equal(uint16(0x1234), r.Pair(RegBC))

	r.D, r.E = 0xAB, 0xCD
	assert.Equal(uint16(0xABCD), r.Pair(RegDE))

	r.SetPair(RegHL, 0xFFFF)
	assert.Equal(byte(0xFF), r.Reg(RegH))
	assert.Equal(byte(0xFF), r.Reg(RegL))
}

func TestRegisters_Reg8(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	for i, reg := range []Reg8{RegA, RegB, RegC, RegD, RegE, RegH, RegL} {
		r.SetReg(reg, byte(i+1))
	}
	assert.Equal(byte(1), r.A)
	assert.Equal(byte(7), r.L)
	assert.Equal(byte(4), r.Reg(RegD))

	assert.Panics(func() { r.Reg(Reg8(9)) })
	assert.Panics(func() { r.Pair(Reg16(5)) })
}

func TestRegisters_AFMasksLowNibble(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	r.SetAF(0x12FF)
	assert.Equal(byte(0x12), r.A)
	assert.Equal(byte(0xF0), r.F())
	assert.Equal(uint16(0x12F0), r.AF())

	r.SetF(0x0F)
	assert.Equal(byte(0x00), r.F())
}

func TestRegisters_Flags(t *testing.T) {
	assert := assert.New(t)

	var r Registers
	r.SetFlag(FlagZ, true)
	r.SetFlag(FlagC, true)
	assert.Equal(byte(0x90), r.F())
	assert.True(r.Flag(FlagZ))
	assert.False(r.Flag(FlagN))
	assert.Equal(byte(1), r.carry())

	r.SetFlag(FlagZ, false)
	assert.Equal(byte(0x10), r.F())

	r.setFlags(false, true, true, false)
	assert.Equal(byte(0x60), r.F())
	assert.Equal(byte(0), r.carry())
}

func TestRegisters_ResetPostBoot(t *testing.T) {
	assert := assert.New(t)

	r := Registers{PC: 0x0150}
	r.ResetPostBoot()
	assert.Equal(uint16(0x01B0), r.AF())
	assert.Equal(uint16(0x0013), r.Pair(RegBC))
	assert.Equal(uint16(0x00D8), r.Pair(RegDE))
	assert.Equal(uint16(0x014D), r.Pair(RegHL))
	assert.Equal(uint16(0xFFFE), r.SP)
	assert.Equal(uint16(0x0150), r.PC)
}

func TestRegisters_String(t *testing.T) {
	r := Registers{SP: 0xFFFE, PC: 0x0100}
	r.SetAF(0x01B0)
	assert.Equal(t, "AF=01B0 BC=0000 DE=0000 HL=0000 SP=FFFE PC=0100 [Z-HC]", r.String())
}

func TestRegNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("A", RegA.String())
	assert.Equal("L", RegL.String())
	assert.Equal("HL", RegHL.String())
	assert.Equal("Z", FlagZ.String())
	assert.Equal("C", FlagC.String())
	assert.Equal("Reg8(9)", Reg8(9).String())
}
