package cpu

import "fmt"

// highPage is the base of the I/O window reached by LDH.
const highPage uint16 = 0xFF00

func init() {
	generateLoadRegisterToRegisterInstructions()
	generateLoadImmediateInstructions()
	generateLoadIndirectInstructions()
	generateStackInstructions()

	define(0x08, "LD (a16), SP", 3, func(r *Registers, mem Memory) int {
		mem.WriteWord(r.fetch16(mem), r.SP)
		return 20
	})
	define(0xEA, "LD (a16), A", 3, func(r *Registers, mem Memory) int {
		mem.Write(r.fetch16(mem), r.A)
		return 16
	})
	define(0xFA, "LD A, (a16)", 3, func(r *Registers, mem Memory) int {
		r.A = mem.Read(r.fetch16(mem))
		return 16
	})

	define(0xE0, "LDH (a8), A", 2, func(r *Registers, mem Memory) int {
		mem.Write(highPage+uint16(r.fetch8(mem)), r.A)
		return 12
	})
	define(0xF0, "LDH A, (a8)", 2, func(r *Registers, mem Memory) int {
		r.A = mem.Read(highPage + uint16(r.fetch8(mem)))
		return 12
	})
	define(0xE2, "LDH (C), A", 1, func(r *Registers, mem Memory) int {
		mem.Write(highPage+uint16(r.C), r.A)
		return 8
	})
	define(0xF2, "LDH A, (C)", 1, func(r *Registers, mem Memory) int {
		r.A = mem.Read(highPage + uint16(r.C))
		return 8
	})

	define(0xF8, "LD HL, SP+e8", 2, func(r *Registers, mem Memory) int {
		res, h, cy := addSigned(r.SP, r.fetch8(mem))
		r.SetPair(RegHL, res)
		r.setFlags(false, false, h, cy)
		return 12
	})
	define(0xF9, "LD SP, HL", 1, func(r *Registers, mem Memory) int {
		r.SP = r.Pair(RegHL)
		return 8
	})
}

// generateLoadRegisterToRegisterInstructions fills 0x40-0x7F:
//
//	0x40 LD B, B
//	0x46 LD B, (HL)
//	0x70 LD (HL), B
//	....
//	0x7F LD A, A
//
// 0x76 would be LD (HL), (HL) and is HALT instead.
func generateLoadRegisterToRegisterInstructions() {
	for dst := operand(0); dst < 8; dst++ {
		dst := dst // per-iteration copy (pre-Go 1.22 loop semantics)
		for src := operand(0); src < 8; src++ {
			src := src // per-iteration copy (pre-Go 1.22 loop semantics)
			if dst == operandHL && src == operandHL {
				continue
			}
			cycles := 4
			if dst == operandHL || src == operandHL {
				cycles = 8
			}
			define(0x40|byte(dst)<<3|byte(src), fmt.Sprintf("LD %s, %s", dst, src), 1,
				func(r *Registers, mem Memory) int {
					dst.write(r, mem, src.read(r, mem))
					return cycles
				})
		}
	}
}

// generateLoadImmediateInstructions fills LD r, n8 / LD (HL), n8 and
// LD rr, n16.
func generateLoadImmediateInstructions() {
	for dst := operand(0); dst < 8; dst++ {
		dst := dst // per-iteration copy (pre-Go 1.22 loop semantics)
		cycles := 8
		if dst == operandHL {
			cycles = 12
		}
		define(0x06|byte(dst)<<3, fmt.Sprintf("LD %s, n8", dst), 2, func(r *Registers, mem Memory) int {
			dst.write(r, mem, r.fetch8(mem))
			return cycles
		})
	}

	for i, w := range widesSP {
		w := w // per-iteration copy (pre-Go 1.22 loop semantics)
		define(0x01|byte(i)<<4, fmt.Sprintf("LD %s, n16", w.name), 3, func(r *Registers, mem Memory) int {
			w.set(r, r.fetch16(mem))
			return 12
		})
	}
}

// generateLoadIndirectInstructions fills the A <-> (BC), (DE), (HL+) and
// (HL-) transfers in column 2 and column A of rows 0-3.
func generateLoadIndirectInstructions() {
	pointers := []struct {
		name string
		reg  Reg16
		step uint16 // added to the pointer after the transfer
	}{
		{"BC", RegBC, 0},
		{"DE", RegDE, 0},
		{"HL+", RegHL, 1},
		{"HL-", RegHL, 0xFFFF},
	}

	for i, p := range pointers {
		p := p // per-iteration copy (pre-Go 1.22 loop semantics)
		define(0x02|byte(i)<<4, fmt.Sprintf("LD (%s), A", p.name), 1, func(r *Registers, mem Memory) int {
			addr := r.Pair(p.reg)
			mem.Write(addr, r.A)
			r.SetPair(p.reg, addr+p.step)
			return 8
		})
		define(0x0A|byte(i)<<4, fmt.Sprintf("LD A, (%s)", p.name), 1, func(r *Registers, mem Memory) int {
			addr := r.Pair(p.reg)
			r.A = mem.Read(addr)
			r.SetPair(p.reg, addr+p.step)
			return 8
		})
	}
}

// generateStackInstructions fills PUSH rr and POP rr.
func generateStackInstructions() {
	for i, w := range widesAF {
		w := w // per-iteration copy (pre-Go 1.22 loop semantics)
		define(0xC1|byte(i)<<4, "POP "+w.name, 1, func(r *Registers, mem Memory) int {
			w.set(r, r.pop16(mem))
			return 12
		})
		define(0xC5|byte(i)<<4, "PUSH "+w.name, 1, func(r *Registers, mem Memory) int {
			r.push16(mem, w.get(r))
			return 16
		})
	}
}
