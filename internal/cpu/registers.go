package cpu

import "fmt"

//go:generate go tool stringer -type=Reg8,Reg16 -trimprefix=Reg -output=reg_string.go
//go:generate go tool stringer -type=Flag -trimprefix=Flag -output=flag_string.go

// Reg8 names the 8-bit registers addressable by the 8-bit accessors.
type Reg8 uint8

const (
	RegA Reg8 = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
)

// Reg16 names the register pairs formed from two 8-bit registers. SP and
// PC have no 8-bit halves and are deliberately not members.
type Reg16 uint8

const (
	RegBC Reg16 = iota
	RegDE
	RegHL
)

// Flag is the bit position of a condition flag in F.
type Flag uint8

const (
	FlagC Flag = 4 // carry
	FlagH Flag = 5 // half-carry
	FlagN Flag = 6 // subtract
	FlagZ Flag = 7 // zero
)

// flagMask covers the bits of F that exist; the low nibble always reads 0.
const flagMask byte = 0xF0

// Registers is the LR35902 register file.
type Registers struct {
	A, B, C, D, E, H, L byte

	SP uint16
	PC uint16

	f byte
}

// ResetPostBoot loads the DMG register values left behind by the boot ROM.
// PC is left alone so the caller can choose the entry point.
func (r *Registers) ResetPostBoot() {
	r.A, r.f = 0x01, 0xB0
	r.B, r.C = 0x00, 0x13
	r.D, r.E = 0x00, 0xD8
	r.H, r.L = 0x01, 0x4D
	r.SP = 0xFFFE
}

func (r *Registers) Reg(reg Reg8) byte {
	return *r.ptr(reg)
}

func (r *Registers) SetReg(reg Reg8, v byte) {
	*r.ptr(reg) = v
}

func (r *Registers) ptr(reg Reg8) *byte {
	switch reg {
	case RegA:
		return &r.A
	case RegB:
		return &r.B
	case RegC:
		return &r.C
	case RegD:
		return &r.D
	case RegE:
		return &r.E
	case RegH:
		return &r.H
	case RegL:
		return &r.L
	}
	panic(fmt.Sprintf("cpu: no 8-bit register %d", uint8(reg)))
}

// Pair returns the 16-bit value of a register pair, high register first.
func (r *Registers) Pair(p Reg16) uint16 {
	hi, lo := r.halves(p)
	return joinWord(*hi, *lo)
}

// SetPair splits v across the two registers of the pair.
func (r *Registers) SetPair(p Reg16, v uint16) {
	hi, lo := r.halves(p)
	*hi, *lo = splitWord(v)
}

func (r *Registers) halves(p Reg16) (hi, lo *byte) {
	switch p {
	case RegBC:
		return &r.B, &r.C
	case RegDE:
		return &r.D, &r.E
	case RegHL:
		return &r.H, &r.L
	}
	panic(fmt.Sprintf("cpu: no register pair %d", uint8(p)))
}

func (r *Registers) AF() uint16 { return joinWord(r.A, r.f) }

// SetAF loads A and F. The low nibble of F is discarded.
func (r *Registers) SetAF(v uint16) {
	var lo byte
	r.A, lo = splitWord(v)
	r.f = lo & flagMask
}

func (r *Registers) F() byte { return r.f }

func (r *Registers) SetF(v byte) { r.f = v & flagMask }

func (r *Registers) Flag(flag Flag) bool {
	return r.f&(1<<flag) != 0
}

func (r *Registers) SetFlag(flag Flag, on bool) {
	if on {
		r.f |= 1 << flag
	} else {
		r.f &^= 1 << flag
	}
}

// setFlags replaces all four flags at once.
func (r *Registers) setFlags(z, n, h, c bool) {
	var bits byte
	if z {
		bits |= 1 << FlagZ
	}
	if n {
		bits |= 1 << FlagN
	}
	if h {
		bits |= 1 << FlagH
	}
	if c {
		bits |= 1 << FlagC
	}
	r.f = bits
}

// carry returns the carry flag as an addend.
func (r *Registers) carry() byte {
	return (r.f >> FlagC) & 1
}

func (r *Registers) String() string {
	flags := []byte("----")
	for i, fl := range []Flag{FlagZ, FlagN, FlagH, FlagC} {
		if r.Flag(fl) {
			flags[i] = fl.String()[0]
		}
	}
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X [%s]",
		r.AF(), r.Pair(RegBC), r.Pair(RegDE), r.Pair(RegHL), r.SP, r.PC, flags)
}
