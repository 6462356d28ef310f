package cpu

import "fmt"

func init() {
	defineBranch(0x18, "JR e8", 2, func(r *Registers, mem Memory) int {
		r.jumpRelative(r.fetch8(mem))
		return 12
	})
	defineBranch(0xC3, "JP a16", 3, func(r *Registers, mem Memory) int {
		r.PC = r.fetch16(mem)
		return 16
	})
	defineBranch(0xE9, "JP HL", 1, func(r *Registers, mem Memory) int {
		r.PC = r.Pair(RegHL)
		return 4
	})
	defineBranch(0xCD, "CALL a16", 3, func(r *Registers, mem Memory) int {
		addr := r.fetch16(mem)
		r.push16(mem, r.PC)
		r.PC = addr
		return 24
	})
	defineBranch(0xC9, "RET", 1, func(r *Registers, mem Memory) int {
		r.PC = r.pop16(mem)
		return 16
	})

	generateConditionalInstructions()
	generateRestartInstructions()
}

// generateConditionalInstructions fills JR cc, JP cc, CALL cc and RET cc.
// Operands are always fetched, so a branch not taken still moves PC past
// the whole instruction.
func generateConditionalInstructions() {
	for cc := condition(0); cc < 4; cc++ {
		cc := cc // per-iteration copy (pre-Go 1.22 loop semantics)
		defineBranch(0x20|byte(cc)<<3, fmt.Sprintf("JR %s, e8", cc), 2, func(r *Registers, mem Memory) int {
			e := r.fetch8(mem)
			if !cc.holds(r) {
				return 8
			}
			r.jumpRelative(e)
			return 12
		})
		defineBranch(0xC2|byte(cc)<<3, fmt.Sprintf("JP %s, a16", cc), 3, func(r *Registers, mem Memory) int {
			addr := r.fetch16(mem)
			if !cc.holds(r) {
				return 12
			}
			r.PC = addr
			return 16
		})
		defineBranch(0xC4|byte(cc)<<3, fmt.Sprintf("CALL %s, a16", cc), 3, func(r *Registers, mem Memory) int {
			addr := r.fetch16(mem)
			if !cc.holds(r) {
				return 12
			}
			r.push16(mem, r.PC)
			r.PC = addr
			return 24
		})
		defineBranch(0xC0|byte(cc)<<3, fmt.Sprintf("RET %s", cc), 1, func(r *Registers, mem Memory) int {
			if !cc.holds(r) {
				return 8
			}
			r.PC = r.pop16(mem)
			return 20
		})
	}
}

// generateRestartInstructions fills RST 00h-38h.
func generateRestartInstructions() {
	for n := byte(0); n < 8; n++ {
		target := uint16(n) * 8
		defineBranch(0xC7|n<<3, fmt.Sprintf("RST $%02X", target), 1, func(r *Registers, mem Memory) int {
			r.push16(mem, r.PC)
			r.PC = target
			return 16
		})
	}
}

// jumpRelative adds a signed displacement to PC. PC already points past
// the displacement byte.
func (r *Registers) jumpRelative(e byte) {
	r.PC = uint16(int32(r.PC) + int32(int8(e)))
}
