package ui

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/lr35902/internal/machine"
)

// disasmLines is how many upcoming instructions the panel lists.
const disasmLines = 8

// RenderMemory draws one RGBA pixel per byte, row-major by address.
// Cell values map to grey levels; PC is red and SP is blue.
func RenderMemory(dst, mem []byte, pc, sp uint16) {
	for addr, v := range mem {
		i := addr * 4
		dst[i], dst[i+1], dst[i+2], dst[i+3] = v, v, v, 0xFF
	}
	mark := func(addr uint16, r, g, b byte) {
		i := int(addr) * 4
		dst[i], dst[i+1], dst[i+2] = r, g, b
	}
	mark(sp, 0x30, 0x60, 0xFF)
	mark(pc, 0xFF, 0x20, 0x20)
}

// panelLines is the text shown beside the memory map.
func panelLines(m *machine.Machine, status string) []string {
	c := m.CPU()
	flags := []byte("----")
	for i, fl := range []cpu.Flag{cpu.FlagZ, cpu.FlagN, cpu.FlagH, cpu.FlagC} {
		if c.Flag(fl) {
			flags[i] = fl.String()[0]
		}
	}

	lines := []string{
		m.Name(),
		fmt.Sprintf("A=%02X F=%02X %s", c.A, c.F(), flags),
		fmt.Sprintf("B=%02X C=%02X  D=%02X E=%02X", c.B, c.C, c.D, c.E),
		fmt.Sprintf("H=%02X L=%02X", c.H, c.L),
		fmt.Sprintf("SP=%04X PC=%04X", c.SP, c.PC),
		fmt.Sprintf("steps=%d cycles=%d", m.Steps(), c.Cycles()),
		"",
	}

	addr := c.PC
	for i := 0; i < disasmLines; i++ {
		text, n := cpu.Disassemble(m.Memory(), addr)
		prefix := "  "
		if i == 0 {
			prefix = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%04X %s", prefix, addr, text))
		addr += uint16(n)
	}

	return append(lines, "", status)
}
