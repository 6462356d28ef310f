package cpu

// CPU is the fetch-decode-execute engine. It owns its register file and a
// running cycle count; memory is supplied on every step.
type CPU struct {
	Registers

	cycles uint64
}

// New creates a CPU with every register and flag zeroed.
func New() *CPU {
	return &CPU{}
}

// Cycles returns the cycles accumulated by all completed steps.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Reset zeroes the registers and the cycle count.
func (c *CPU) Reset() {
	*c = CPU{}
}

// Peek returns the operation at PC without executing it.
func (c *CPU) Peek(mem Memory) (Operation, bool) {
	return Lookup(mem.Read(c.PC))
}

// Step executes exactly one instruction and returns its cycle cost.
//
// An unassigned opcode yields a *DecodeError. PC is then one past the
// offending byte and nothing else has changed.
func (c *CPU) Step(mem Memory) (int, error) {
	addr := c.PC
	opcode := c.fetch8(mem)

	op := table[opcode]
	if op == nil {
		return 0, &DecodeError{Opcode: opcode, Addr: addr}
	}

	cycles := op.exec(&c.Registers, mem)
	c.cycles += uint64(cycles)
	return cycles, nil
}

func (r *Registers) fetch8(mem Memory) byte {
	b := mem.Read(r.PC)
	r.PC++
	return b
}

func (r *Registers) fetch16(mem Memory) uint16 {
	lo := r.fetch8(mem)
	hi := r.fetch8(mem)
	return joinWord(hi, lo)
}

func (r *Registers) push16(mem Memory, v uint16) {
	r.SP -= 2
	mem.WriteWord(r.SP, v)
}

func (r *Registers) pop16(mem Memory) uint16 {
	v := mem.ReadWord(r.SP)
	r.SP += 2
	return v
}
