package cpu

import (
	"errors"
	"testing"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/memory"
)

func newCPUWithProgram(t *testing.T, code []byte) (*CPU, *memory.Memory) {
	t.Helper()
	mem := memory.New()
	if err := mem.Load(0, code); err != nil {
		t.Fatalf("load program: %v", err)
	}
	return New(), mem
}

func step(t *testing.T, c *CPU, mem *memory.Memory) int {
	t.Helper()
	cycles, err := c.Step(mem)
	if err != nil {
		t.Fatalf("step at %04X: %v", c.PC, err)
	}
	return cycles
}

func TestCPU_NopAndPC(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0x00}) // NOP
	if cycles := step(t, c, mem); cycles != 4 {
		t.Fatalf("NOP cycles got %d want 4", cycles)
	}
	if c.PC != 1 {
		t.Fatalf("PC after NOP got %#04x want 0x0001", c.PC)
	}
}

func TestCPU_LD_A_n8_And_XOR_A(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0x3E, 0x12, 0xAF}) // LD A,0x12; XOR A
	step(t, c, mem)
	if c.A != 0x12 {
		t.Fatalf("A after LD got %02x want 12", c.A)
	}
	step(t, c, mem)
	if c.A != 0x00 {
		t.Fatalf("A after XOR got %02x want 00", c.A)
	}
	if c.F() != 0x80 {
		t.Fatalf("F after XOR A got %02X want 80", c.F())
	}
}

func TestCPU_LD_a16_A_and_LD_A_a16(t *testing.T) {
	// LD A,0x77; LD (0xC000),A; LD A,0x00; LD A,(0xC000)
	c, mem := newCPUWithProgram(t, []byte{0x3E, 0x77, 0xEA, 0x00, 0xC0, 0x3E, 0x00, 0xFA, 0x00, 0xC0})
	step(t, c, mem)
	if cyc := step(t, c, mem); cyc != 16 {
		t.Fatalf("LD (a16),A cycles got %d want 16", cyc)
	}
	if a := mem.Read(0xC000); a != 0x77 {
		t.Fatalf("C000 got %02x want 77", a)
	}
	step(t, c, mem)
	step(t, c, mem)
	if c.A != 0x77 {
		t.Fatalf("A after LD A,(C000) got %02x want 77", c.A)
	}
}

func TestCPU_JP_and_JR(t *testing.T) {
	prog := make([]byte, 0x12)
	copy(prog, []byte{0xC3, 0x10, 0x00}) // JP 0x0010
	prog[0x10], prog[0x11] = 0x18, 0xFE  // JR -2, back onto itself
	c, mem := newCPUWithProgram(t, prog)

	cycles := step(t, c, mem)
	if cycles != 16 || c.PC != 0x0010 {
		t.Fatalf("JP cycles=%d PC=%#04x want cycles=16 PC=0x0010", cycles, c.PC)
	}
	cycles = step(t, c, mem)
	if cycles != 12 || c.PC != 0x0010 {
		t.Fatalf("JR -2 cycles=%d PC=%#04x want cycles=12 PC=0x0010", cycles, c.PC)
	}
}

func TestCPU_JR_WrapsPC(t *testing.T) {
	c, mem := newCPUWithProgram(t, nil)
	mem.Write(0xFFFE, 0x18)
	mem.Write(0xFFFF, 0x05)
	c.PC = 0xFFFE
	step(t, c, mem)
	if c.PC != 0x0005 {
		t.Fatalf("JR across FFFF got PC=%04X want 0005", c.PC)
	}
}

func TestCPU_INC_B_Flags(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0x04, 0x04}) // INC B twice
	c.B = 0x0F
	c.SetF(0x10) // carry set initially
	step(t, c, mem)
	if c.B != 0x10 {
		t.Fatalf("INC B got %02X want 10", c.B)
	}
	if !c.Flag(FlagH) {
		t.Fatalf("INC B from 0F should set H")
	}
	if !c.Flag(FlagC) {
		t.Fatalf("INC B should preserve C")
	}
	c.B = 0xFF
	step(t, c, mem)
	if c.B != 0x00 || !c.Flag(FlagZ) || c.Flag(FlagN) {
		t.Fatalf("INC B from FF got B=%02X F=%02X", c.B, c.F())
	}
}

func TestCPU_DEC_HLIndirect(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0x35}) // DEC (HL)
	c.SetPair(RegHL, 0xC000)
	mem.Write(0xC000, 0x10)
	if cyc := step(t, c, mem); cyc != 12 {
		t.Fatalf("DEC (HL) cycles got %d want 12", cyc)
	}
	if v := mem.Read(0xC000); v != 0x0F {
		t.Fatalf("DEC (HL) got %02X want 0F", v)
	}
	if !c.Flag(FlagN) || !c.Flag(FlagH) || c.Flag(FlagZ) {
		t.Fatalf("DEC (HL) flags got %02X", c.F())
	}
}

func TestCPU_LD_16bit_and_LDH(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{
		0x21, 0x00, 0xC0, // LD HL, C000
		0x36, 0x5A, // LD (HL), 5A
		0x3E, 0x00, // LD A, 00
		0xF0, 0x80, // LDH A, (FF80)
		0xE0, 0x81, // LDH (FF81), A
	})
	mem.Write(0xFF80, 0xA7)

	wantCycles := []int{12, 12, 8, 12, 12}
	for i, want := range wantCycles {
		if got := step(t, c, mem); got != want {
			t.Fatalf("instruction %d cycles got %d want %d", i, got, want)
		}
	}
	if v := mem.Read(0xC000); v != 0x5A {
		t.Fatalf("(HL) got %02X want 5A", v)
	}
	if v := mem.Read(0xFF81); v != 0xA7 || c.A != 0xA7 {
		t.Fatalf("LDH round trip got A=%02X FF81=%02X want A7", c.A, v)
	}
}

func TestCPU_LDH_C(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0xF2, 0xE2}) // LDH A,(C); LDH (C),A
	c.C = 0x10
	mem.Write(0xFF10, 0x3C)
	if cyc := step(t, c, mem); cyc != 8 || c.A != 0x3C {
		t.Fatalf("LDH A,(C) cyc=%d A=%02X", cyc, c.A)
	}
	c.C = 0x11
	step(t, c, mem)
	if v := mem.Read(0xFF11); v != 0x3C {
		t.Fatalf("LDH (C),A wrote %02X want 3C", v)
	}
}

func TestCPU_LD_HLIncrementWraps(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0x22, 0x3A}) // LD (HL+),A; LD A,(HL-)
	c.A = 0x99
	c.SetPair(RegHL, 0xFFFF)
	step(t, c, mem)
	if v := mem.Read(0xFFFF); v != 0x99 {
		t.Fatalf("LD (HL+),A wrote %02X want 99", v)
	}
	if hl := c.Pair(RegHL); hl != 0x0000 {
		t.Fatalf("HL after LD (HL+),A got %04X want 0000", hl)
	}
	// HL is now 0000 and points at the program itself
	step(t, c, mem)
	if c.A != 0x22 {
		t.Fatalf("LD A,(HL-) got %02X want 22", c.A)
	}
	if hl := c.Pair(RegHL); hl != 0xFFFF {
		t.Fatalf("HL after LD A,(HL-) got %04X want FFFF", hl)
	}
}

func TestCPU_CALL_RET(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0xCD, 0x05, 0x00, 0x00, 0x00, 0xC9}) // CALL 0005; ...; RET
	c.SP = 0xFFFE
	if cyc := step(t, c, mem); cyc != 24 || c.PC != 0x0005 {
		t.Fatalf("CALL cyc=%d PC=%04X", cyc, c.PC)
	}
	if c.SP != 0xFFFC || mem.ReadWord(0xFFFC) != 0x0003 {
		t.Fatalf("CALL pushed SP=%04X top=%04X", c.SP, mem.ReadWord(0xFFFC))
	}
	retCycles := step(t, c, mem)
	if c.PC != 0x0003 || retCycles != 16 || c.SP != 0xFFFE {
		t.Fatalf("RET PC=%04X cycles=%d SP=%04X", c.PC, retCycles, c.SP)
	}
}

func TestCPU_RST(t *testing.T) {
	c, mem := newCPUWithProgram(t, nil)
	mem.Write(0x0200, 0xEF) // RST $28
	c.PC = 0x0200
	c.SP = 0xD000
	if cyc := step(t, c, mem); cyc != 16 || c.PC != 0x0028 {
		t.Fatalf("RST cyc=%d PC=%04X", cyc, c.PC)
	}
	if got := mem.ReadWord(c.SP); got != 0x0201 {
		t.Fatalf("RST return address got %04X want 0201", got)
	}
}

func TestCPU_PushPopRoundTrip(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0xC5, 0xD1}) // PUSH BC; POP DE
	c.SP = 0xFFFE
	c.SetPair(RegBC, 0xBEEF)
	if cyc := step(t, c, mem); cyc != 16 {
		t.Fatalf("PUSH cycles got %d want 16", cyc)
	}
	if mem.Read(0xFFFD) != 0xBE || mem.Read(0xFFFC) != 0xEF {
		t.Fatalf("PUSH stored %02X %02X", mem.Read(0xFFFD), mem.Read(0xFFFC))
	}
	if cyc := step(t, c, mem); cyc != 12 {
		t.Fatalf("POP cycles got %d want 12", cyc)
	}
	if c.Pair(RegDE) != 0xBEEF || c.SP != 0xFFFE {
		t.Fatalf("POP DE got %04X SP=%04X", c.Pair(RegDE), c.SP)
	}
}

func TestCPU_DAA_AddAndSub(t *testing.T) {
	// LD A,0x45; ADD A,0x38; DAA -> 0x83 with no flags
	c, mem := newCPUWithProgram(t, []byte{0x3E, 0x45, 0xC6, 0x38, 0x27})
	step(t, c, mem)
	step(t, c, mem)
	step(t, c, mem)
	if c.A != 0x83 {
		t.Fatalf("DAA after ADD got %02X want 83", c.A)
	}
	if c.F() != 0x00 {
		t.Fatalf("DAA after ADD flags got %02X want 00", c.F())
	}

	// 0x45 - 0x06 = 0x3F; DAA subtracts 6 because of H
	mem.Load(0x10, []byte{0x3E, 0x45, 0xD6, 0x06, 0x27})
	c.PC = 0x0010
	step(t, c, mem)
	step(t, c, mem)
	step(t, c, mem)
	if c.A != 0x39 || !c.Flag(FlagN) {
		t.Fatalf("DAA after SUB got A=%02X F=%02X", c.A, c.F())
	}
}

func TestCPU_ADD_HL_FlagsAndCarry(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{
		0x21, 0xFF, 0x0F, // LD HL,0x0FFF
		0x01, 0x01, 0x00, // LD BC,0x0001
		0x09,             // ADD HL,BC
		0x21, 0xFF, 0xFF, // LD HL,0xFFFF
		0x09, // ADD HL,BC
	})
	step(t, c, mem)
	step(t, c, mem)
	c.SetF(0x80)
	step(t, c, mem) // 0x0FFF + 1 = 0x1000, H=1, C=0, Z preserved
	if c.Pair(RegHL) != 0x1000 || c.F() != 0xA0 {
		t.Fatalf("ADD HL,BC got HL=%04X F=%02X", c.Pair(RegHL), c.F())
	}
	step(t, c, mem)
	c.SetF(0x00)
	step(t, c, mem) // 0xFFFF + 1 = 0x0000, H=1, C=1, Z stays clear
	if c.Pair(RegHL) != 0x0000 || c.F() != 0x30 {
		t.Fatalf("ADD HL,BC wrap got HL=%04X F=%02X", c.Pair(RegHL), c.F())
	}
}

func TestCPU_16bit_INC_DEC_DoNotAffectFlags(t *testing.T) {
	prog := []byte{
		0x03, // INC BC
		0x0B, // DEC BC
		0x13, // INC DE
		0x1B, // DEC DE
		0x23, // INC HL
		0x2B, // DEC HL
		0x33, // INC SP
		0x3B, // DEC SP
	}
	c, mem := newCPUWithProgram(t, prog)
	c.SetF(0xF0)
	for range prog {
		if cyc := step(t, c, mem); cyc != 8 {
			t.Fatalf("16-bit INC/DEC cycles got %d want 8", cyc)
		}
		if c.F() != 0xF0 {
			t.Fatalf("16-bit INC/DEC should not change flags; F=%02X", c.F())
		}
	}
}

func TestCPU_Conditional_Cycles(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0x20, 0x02, 0x00, 0x00}) // JR NZ,+2; NOP; NOP

	c.SetF(0x00)
	if cyc := step(t, c, mem); cyc != 12 || c.PC != 0x0004 {
		t.Fatalf("JR NZ taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}
	c.PC = 0x0000
	c.SetF(0x80)
	if cyc := step(t, c, mem); cyc != 8 || c.PC != 0x0002 {
		t.Fatalf("JR NZ not-taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}

	mem.Load(0x0010, []byte{0xD2, 0x34, 0x12}) // JP NC,1234
	c.PC = 0x0010
	c.SetF(0x00)
	if cyc := step(t, c, mem); cyc != 16 || c.PC != 0x1234 {
		t.Fatalf("JP NC taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}
	c.PC = 0x0010
	c.SetF(0x10)
	if cyc := step(t, c, mem); cyc != 12 || c.PC != 0x0013 {
		t.Fatalf("JP NC not-taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}

	mem.Load(0x0020, []byte{0xC4, 0x00, 0x40}) // CALL NZ,4000
	mem.Write(0x4000, 0xD8)                    // RET C
	c.SP = 0xFFFE
	c.PC = 0x0020
	c.SetF(0x80)
	if cyc := step(t, c, mem); cyc != 12 || c.PC != 0x0023 || c.SP != 0xFFFE {
		t.Fatalf("CALL NZ not-taken cyc=%d PC=%04X SP=%04X", cyc, c.PC, c.SP)
	}
	c.PC = 0x0020
	c.SetF(0x00)
	if cyc := step(t, c, mem); cyc != 24 || c.PC != 0x4000 {
		t.Fatalf("CALL NZ taken cycles/PC: cyc=%d PC=%04X", cyc, c.PC)
	}
	c.SetF(0x00)
	if cyc := step(t, c, mem); cyc != 8 || c.PC != 0x4001 {
		t.Fatalf("RET C not-taken cyc=%d PC=%04X", cyc, c.PC)
	}
	c.PC = 0x4000
	c.SetF(0x10)
	if cyc := step(t, c, mem); cyc != 20 || c.PC != 0x0023 {
		t.Fatalf("RET C taken cyc=%d PC=%04X", cyc, c.PC)
	}
}

func TestCPU_ADC_SBC_HalfCarry(t *testing.T) {
	// A=0x0F + 0x00 + C=1 => 0x10, H=1, C=0
	c, mem := newCPUWithProgram(t, []byte{0x3E, 0x0F, 0xCE, 0x00})
	c.SetF(0x10)
	step(t, c, mem)
	step(t, c, mem)
	if c.A != 0x10 || c.F() != 0x20 {
		t.Fatalf("ADC half-carry failed: A=%02X F=%02X", c.A, c.F())
	}

	// A=0x10 - 0x01 - C=0 => 0x0F, H=1, C=0
	c, mem = newCPUWithProgram(t, []byte{0x3E, 0x10, 0xDE, 0x01})
	step(t, c, mem)
	step(t, c, mem)
	if c.A != 0x0F || c.F() != 0x60 {
		t.Fatalf("SBC half-borrow failed: A=%02X F=%02X", c.A, c.F())
	}

	// A=0x00 - 0x01 => 0xFF, H=1, C=1
	c, mem = newCPUWithProgram(t, []byte{0x3E, 0x00, 0xDE, 0x01})
	step(t, c, mem)
	step(t, c, mem)
	if c.A != 0xFF || c.F() != 0x70 {
		t.Fatalf("SBC borrow flags failed: A=%02X F=%02X", c.A, c.F())
	}
}

func TestCPU_LD_HL_SP_plus_e8_and_ADD_SP_e8_Flags(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{
		0x31, 0x0F, 0xFF, // LD SP,FF0F
		0xF8, 0xFF, // LD HL,SP-1 => FF0E, H=1,C=1
		0xE8, 0x01, // ADD SP,+1 => FF10, H=1,C=0
		0xE8, 0xFE, // ADD SP,-2 => FF0E, H=0,C=1
	})
	step(t, c, mem)
	if cyc := step(t, c, mem); cyc != 12 {
		t.Fatalf("LD HL,SP+e8 cycles got %d want 12", cyc)
	}
	if c.Pair(RegHL) != 0xFF0E || c.F() != 0x30 {
		t.Fatalf("LD HL,SP-1 flags/HL wrong: HL=%04X F=%02X", c.Pair(RegHL), c.F())
	}
	if cyc := step(t, c, mem); cyc != 16 {
		t.Fatalf("ADD SP,e8 cycles got %d want 16", cyc)
	}
	if c.SP != 0xFF10 || c.F() != 0x20 {
		t.Fatalf("ADD SP,+1 flags/SP wrong: SP=%04X F=%02X", c.SP, c.F())
	}
	step(t, c, mem)
	if c.SP != 0xFF0E || c.F() != 0x10 {
		t.Fatalf("ADD SP,-2 flags/SP wrong: SP=%04X F=%02X", c.SP, c.F())
	}
}

func TestCPU_POP_AF_MasksFlagsLowNibble(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0xF1}) // POP AF
	c.SP = 0xC000
	mem.Write(0xC000, 0x3F) // F
	mem.Write(0xC001, 0x12) // A
	step(t, c, mem)
	if c.A != 0x12 {
		t.Fatalf("POP AF A got %02X want 12", c.A)
	}
	if c.F() != 0x30 {
		t.Fatalf("POP AF should clear low nibble of F, got F=%02X", c.F())
	}
}

func TestCPU_UnprefixedRotates_ClearZ(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{
		0x07, // RLCA
		0x0F, // RRCA
		0x17, // RLA
		0x1F, // RRA
	})
	c.A = 0x00
	c.SetF(0x80)
	step(t, c, mem)
	if c.Flag(FlagZ) {
		t.Fatalf("RLCA should clear Z, F=%02X", c.F())
	}
	c.SetF(0x80)
	step(t, c, mem)
	if c.Flag(FlagZ) {
		t.Fatalf("RRCA should clear Z, F=%02X", c.F())
	}
	c.SetF(0x90)
	step(t, c, mem)
	if c.Flag(FlagZ) || c.A != 0x01 {
		t.Fatalf("RLA should rotate carry in and clear Z, A=%02X F=%02X", c.A, c.F())
	}
	c.SetF(0x10)
	step(t, c, mem)
	if c.Flag(FlagZ) || c.A != 0x80 || !c.Flag(FlagC) {
		t.Fatalf("RRA A=%02X F=%02X", c.A, c.F())
	}
}

func TestCPU_CCF_SCF_CPL_Flags(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{
		0x3E, 0x00, // LD A,00
		0x37, // SCF
		0x3F, // CCF
		0x2F, // CPL
	})
	c.SetF(0x80)
	step(t, c, mem)
	step(t, c, mem)
	if c.F() != 0x90 {
		t.Fatalf("SCF flags unexpected F=%02X", c.F())
	}
	step(t, c, mem)
	if c.F() != 0x80 {
		t.Fatalf("CCF flags unexpected F=%02X", c.F())
	}
	step(t, c, mem)
	if c.A != 0xFF {
		t.Fatalf("CPL A got %02X want FF", c.A)
	}
	if c.F() != 0xE0 {
		t.Fatalf("CPL flags unexpected F=%02X", c.F())
	}
}

func TestCPU_LD_r_from_HL_CyclesAndBehavior(t *testing.T) {
	dests := []struct {
		opcode byte
		reg    Reg8
	}{
		{0x46, RegB}, {0x4E, RegC}, {0x56, RegD}, {0x5E, RegE},
		{0x66, RegH}, {0x6E, RegL}, {0x7E, RegA},
	}
	var prog []byte
	for _, d := range dests {
		prog = append(prog, 0x21, 0x00, 0xC0, d.opcode) // LD HL,C000; LD r,(HL)
	}
	c, mem := newCPUWithProgram(t, prog)
	mem.Write(0xC000, 0x5A)

	for _, d := range dests {
		if cyc := step(t, c, mem); cyc != 12 || c.Pair(RegHL) != 0xC000 {
			t.Fatalf("LD HL,n16 failed: cyc=%d HL=%04X", cyc, c.Pair(RegHL))
		}
		if cyc := step(t, c, mem); cyc != 8 || c.Reg(d.reg) != 0x5A {
			t.Fatalf("LD %s,(HL) cyc=%d got %02X", d.reg, cyc, c.Reg(d.reg))
		}
	}
}

func TestCPU_UnassignedOpcode(t *testing.T) {
	for _, op := range []byte{0x10, 0x76, 0xCB, 0xD3, 0xFD} {
		c, mem := newCPUWithProgram(t, []byte{0x00, op})
		step(t, c, mem)
		before := c.Registers

		cycles, err := c.Step(mem)
		if cycles != 0 {
			t.Fatalf("opcode %02X charged %d cycles", op, cycles)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("opcode %02X: got %v, want *DecodeError", op, err)
		}
		if de.Opcode != op || de.Addr != 0x0001 {
			t.Fatalf("decode error got opcode=%02X addr=%04X", de.Opcode, de.Addr)
		}
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("decode error should match ErrDecode")
		}
		if c.PC != 0x0002 {
			t.Fatalf("PC after bad opcode got %04X want 0002", c.PC)
		}
		before.PC = c.PC
		if c.Registers != before {
			t.Fatalf("registers changed on bad opcode: %s", c.Registers.String())
		}
		if c.Cycles() != 4 {
			t.Fatalf("cycle total got %d want 4", c.Cycles())
		}
	}
}

func TestCPU_CyclesAccumulate(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0x01, 0x34, 0x12, 0x41}) // LD BC,1234; LD B,C
	step(t, c, mem)
	step(t, c, mem)
	if c.Cycles() != 16 {
		t.Fatalf("Cycles got %d want 16", c.Cycles())
	}
	if c.B != 0x34 || c.C != 0x34 {
		t.Fatalf("LD B,C got B=%02X C=%02X", c.B, c.C)
	}
	c.Reset()
	if c.Cycles() != 0 || c.PC != 0 {
		t.Fatalf("Reset left cycles=%d PC=%04X", c.Cycles(), c.PC)
	}
}

func TestCPU_Peek(t *testing.T) {
	c, mem := newCPUWithProgram(t, []byte{0xC3, 0x00, 0x01})
	op, ok := c.Peek(mem)
	if !ok || op.Mnemonic != "JP a16" || !op.Branch {
		t.Fatalf("Peek got %+v ok=%v", op, ok)
	}
	if c.PC != 0 || c.Cycles() != 0 {
		t.Fatalf("Peek moved the CPU")
	}
}
