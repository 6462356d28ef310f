package cpu

import "fmt"

// aluOp is one of the eight accumulator operations in rows 0x80-0xBF.
type aluOp struct {
	name string
	fn   func(r *Registers, v byte)
}

var aluOps = [8]aluOp{
	{"ADD A,", func(r *Registers, v byte) {
		res, z, n, h, cy := add8(r.A, v, 0)
		r.A = res
		r.setFlags(z, n, h, cy)
	}},
	{"ADC A,", func(r *Registers, v byte) {
		res, z, n, h, cy := add8(r.A, v, r.carry())
		r.A = res
		r.setFlags(z, n, h, cy)
	}},
	{"SUB", func(r *Registers, v byte) {
		res, z, n, h, cy := sub8(r.A, v, 0)
		r.A = res
		r.setFlags(z, n, h, cy)
	}},
	{"SBC A,", func(r *Registers, v byte) {
		res, z, n, h, cy := sub8(r.A, v, r.carry())
		r.A = res
		r.setFlags(z, n, h, cy)
	}},
	{"AND", func(r *Registers, v byte) {
		res, z, n, h, cy := and8(r.A, v)
		r.A = res
		r.setFlags(z, n, h, cy)
	}},
	{"XOR", func(r *Registers, v byte) {
		res, z, n, h, cy := xor8(r.A, v)
		r.A = res
		r.setFlags(z, n, h, cy)
	}},
	{"OR", func(r *Registers, v byte) {
		res, z, n, h, cy := or8(r.A, v)
		r.A = res
		r.setFlags(z, n, h, cy)
	}},
	{"CP", func(r *Registers, v byte) {
		_, z, n, h, cy := sub8(r.A, v, 0)
		r.setFlags(z, n, h, cy)
	}},
}

func init() {
	define(0x00, "NOP", 1, func(r *Registers, mem Memory) int { return 4 })

	generateALUInstructions()
	generateIncrementInstructions()
	generateWideArithmeticInstructions()

	define(0xE8, "ADD SP, e8", 2, func(r *Registers, mem Memory) int {
		res, h, cy := addSigned(r.SP, r.fetch8(mem))
		r.SP = res
		r.setFlags(false, false, h, cy)
		return 16
	})

	// accumulator rotates always clear Z, unlike their CB-page forms
	define(0x07, "RLCA", 1, func(r *Registers, mem Memory) int {
		out := r.A >> 7
		r.A = r.A<<1 | out
		r.setFlags(false, false, false, out == 1)
		return 4
	})
	define(0x0F, "RRCA", 1, func(r *Registers, mem Memory) int {
		out := r.A & 1
		r.A = r.A>>1 | out<<7
		r.setFlags(false, false, false, out == 1)
		return 4
	})
	define(0x17, "RLA", 1, func(r *Registers, mem Memory) int {
		out := r.A >> 7
		r.A = r.A<<1 | r.carry()
		r.setFlags(false, false, false, out == 1)
		return 4
	})
	define(0x1F, "RRA", 1, func(r *Registers, mem Memory) int {
		out := r.A & 1
		r.A = r.A>>1 | r.carry()<<7
		r.setFlags(false, false, false, out == 1)
		return 4
	})

	define(0x27, "DAA", 1, func(r *Registers, mem Memory) int {
		n := r.Flag(FlagN)
		res, cy := daa(r.A, n, r.Flag(FlagH), r.Flag(FlagC))
		r.A = res
		r.setFlags(res == 0, n, false, cy)
		return 4
	})
	define(0x2F, "CPL", 1, func(r *Registers, mem Memory) int {
		r.A = ^r.A
		r.SetFlag(FlagN, true)
		r.SetFlag(FlagH, true)
		return 4
	})
	define(0x37, "SCF", 1, func(r *Registers, mem Memory) int {
		r.setFlags(r.Flag(FlagZ), false, false, true)
		return 4
	})
	define(0x3F, "CCF", 1, func(r *Registers, mem Memory) int {
		r.setFlags(r.Flag(FlagZ), false, false, !r.Flag(FlagC))
		return 4
	})
}

// generateALUInstructions fills 0x80-0xBF and the n8 forms in column 6
// and E of rows C-F.
//
//	0x80 ADD A, B
//	0x86 ADD A, (HL)
//	0x8F ADC A, A
//	....
//	0xBF CP A
func generateALUInstructions() {
	for i, alu := range aluOps {
		alu := alu // per-iteration copy (pre-Go 1.22 loop semantics)
		for src := operand(0); src < 8; src++ {
			src := src // per-iteration copy (pre-Go 1.22 loop semantics)
			cycles := 4
			if src == operandHL {
				cycles = 8
			}
			define(0x80|byte(i)<<3|byte(src), fmt.Sprintf("%s %s", alu.name, src), 1,
				func(r *Registers, mem Memory) int {
					alu.fn(r, src.read(r, mem))
					return cycles
				})
		}

		define(0xC6|byte(i)<<3, alu.name+" n8", 2, func(r *Registers, mem Memory) int {
			alu.fn(r, r.fetch8(mem))
			return 8
		})
	}
}

// generateIncrementInstructions fills INC r / DEC r, including (HL).
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset for INC, set for DEC.
//	H - Set on carry from / borrow into bit 4.
//	C - Not affected.
func generateIncrementInstructions() {
	for dst := operand(0); dst < 8; dst++ {
		dst := dst // per-iteration copy (pre-Go 1.22 loop semantics)
		cycles := 4
		if dst == operandHL {
			cycles = 12
		}
		define(0x04|byte(dst)<<3, fmt.Sprintf("INC %s", dst), 1, func(r *Registers, mem Memory) int {
			old := dst.read(r, mem)
			v := old + 1
			dst.write(r, mem, v)
			r.setFlags(v == 0, false, old&0x0F == 0x0F, r.Flag(FlagC))
			return cycles
		})
		define(0x05|byte(dst)<<3, fmt.Sprintf("DEC %s", dst), 1, func(r *Registers, mem Memory) int {
			old := dst.read(r, mem)
			v := old - 1
			dst.write(r, mem, v)
			r.setFlags(v == 0, true, old&0x0F == 0x00, r.Flag(FlagC))
			return cycles
		})
	}
}

// generateWideArithmeticInstructions fills INC rr, DEC rr and ADD HL, rr.
// None of them touch Z, and INC/DEC rr touch no flags at all.
func generateWideArithmeticInstructions() {
	for i, w := range widesSP {
		w := w // per-iteration copy (pre-Go 1.22 loop semantics)
		define(0x03|byte(i)<<4, "INC "+w.name, 1, func(r *Registers, mem Memory) int {
			w.set(r, w.get(r)+1)
			return 8
		})
		define(0x0B|byte(i)<<4, "DEC "+w.name, 1, func(r *Registers, mem Memory) int {
			w.set(r, w.get(r)-1)
			return 8
		})
		define(0x09|byte(i)<<4, "ADD HL, "+w.name, 1, func(r *Registers, mem Memory) int {
			res, h, cy := add16(r.Pair(RegHL), w.get(r))
			r.SetPair(RegHL, res)
			r.setFlags(r.Flag(FlagZ), false, h, cy)
			return 8
		})
	}
}
