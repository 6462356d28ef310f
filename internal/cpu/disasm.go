package cpu

import (
	"fmt"
	"strings"
)

// Disassemble renders the instruction at addr and returns it with its
// length in bytes. Unassigned opcodes render as a data byte of length 1.
func Disassemble(mem Memory, addr uint16) (string, int) {
	opcode := mem.Read(addr)
	op := table[opcode]
	if op == nil {
		return fmt.Sprintf("DB $%02X", opcode), 1
	}

	text := op.Mnemonic
	switch op.Length {
	case 2:
		n := mem.Read(addr + 1)
		text = expand8(text, n, addr)
	case 3:
		nn := joinWord(mem.Read(addr+2), mem.Read(addr+1))
		text = strings.Replace(text, "n16", fmt.Sprintf("$%04X", nn), 1)
		text = strings.Replace(text, "a16", fmt.Sprintf("$%04X", nn), 1)
	}
	return text, op.Length
}

func expand8(text string, n byte, addr uint16) string {
	switch {
	case strings.Contains(text, "n8"):
		return strings.Replace(text, "n8", fmt.Sprintf("$%02X", n), 1)
	case strings.Contains(text, "a8"):
		return strings.Replace(text, "a8", fmt.Sprintf("$FF%02X", n), 1)
	case strings.HasPrefix(text, "JR"):
		target := uint16(int32(addr) + 2 + int32(int8(n)))
		return strings.Replace(text, "e8", fmt.Sprintf("$%04X", target), 1)
	case strings.Contains(text, "+e8"):
		return strings.Replace(text, "+e8", fmt.Sprintf("%+d", int8(n)), 1)
	}
	return strings.Replace(text, "e8", fmt.Sprintf("%+d", int8(n)), 1)
}
