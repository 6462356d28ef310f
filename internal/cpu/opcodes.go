package cpu

import "fmt"

// Memory is the bus an instruction reads and writes through.
// *memory.Memory satisfies it.
type Memory interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, value uint16)
}

// handler performs one instruction after its opcode byte has been fetched.
// It fetches its own operands and returns the elapsed cycles.
type handler func(r *Registers, mem Memory) int

// Operation describes one assigned opcode.
type Operation struct {
	Opcode   byte
	Mnemonic string
	// Length is the encoded size in bytes, opcode included.
	Length int
	// Branch is set for operations that may leave PC somewhere other than
	// the next instruction.
	Branch bool

	exec handler
}

// table is filled once by the init functions of this package and never
// written again.
var table [256]*Operation

func define(opcode byte, mnemonic string, length int, exec handler) *Operation {
	if prev := table[opcode]; prev != nil {
		panic(fmt.Sprintf("cpu: opcode %02X defined as %q and %q", opcode, prev.Mnemonic, mnemonic))
	}
	op := &Operation{Opcode: opcode, Mnemonic: mnemonic, Length: length, exec: exec}
	table[opcode] = op
	return op
}

func defineBranch(opcode byte, mnemonic string, length int, exec handler) {
	define(opcode, mnemonic, length, exec).Branch = true
}

// Lookup returns the operation assigned to opcode, if any.
func Lookup(opcode byte) (Operation, bool) {
	op := table[opcode]
	if op == nil {
		return Operation{}, false
	}
	return *op, true
}

// Operations lists every assigned operation in opcode order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(table))
	for _, op := range table {
		if op != nil {
			ops = append(ops, *op)
		}
	}
	return ops
}

// operand is the 3-bit register field used across the opcode map:
// B C D E H L (HL) A.
type operand uint8

const operandHL operand = 6

// Slot 6 is (HL) and is never looked up.
var operandRegs = [8]Reg8{RegB, RegC, RegD, RegE, RegH, RegL, RegA, RegA}

func (o operand) String() string {
	if o == operandHL {
		return "(HL)"
	}
	return operandRegs[o].String()
}

func (o operand) read(r *Registers, mem Memory) byte {
	if o == operandHL {
		return mem.Read(r.Pair(RegHL))
	}
	return r.Reg(operandRegs[o])
}

func (o operand) write(r *Registers, mem Memory, v byte) {
	if o == operandHL {
		mem.Write(r.Pair(RegHL), v)
		return
	}
	r.SetReg(operandRegs[o], v)
}

// wide is a 16-bit operand from the 2-bit pair field.
type wide struct {
	name string
	get  func(*Registers) uint16
	set  func(*Registers, uint16)
}

func pairOperand(p Reg16) wide {
	return wide{
		name: p.String(),
		get:  func(r *Registers) uint16 { return r.Pair(p) },
		set:  func(r *Registers, v uint16) { r.SetPair(p, v) },
	}
}

var spOperand = wide{
	name: "SP",
	get:  func(r *Registers) uint16 { return r.SP },
	set:  func(r *Registers, v uint16) { r.SP = v },
}

var afOperand = wide{name: "AF", get: (*Registers).AF, set: (*Registers).SetAF}

// widesSP is the pair field for loads and 16-bit arithmetic, widesAF the
// pair field for PUSH and POP.
var (
	widesSP = [4]wide{pairOperand(RegBC), pairOperand(RegDE), pairOperand(RegHL), spOperand}
	widesAF = [4]wide{pairOperand(RegBC), pairOperand(RegDE), pairOperand(RegHL), afOperand}
)

// condition is the 2-bit branch condition field: NZ Z NC C.
type condition uint8

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

func (cc condition) String() string { return conditionNames[cc&3] }

func (cc condition) holds(r *Registers) bool {
	switch cc & 3 {
	case 0:
		return !r.Flag(FlagZ)
	case 1:
		return r.Flag(FlagZ)
	case 2:
		return !r.Flag(FlagC)
	default:
		return r.Flag(FlagC)
	}
}
