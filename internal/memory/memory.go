package memory

import (
	"errors"

	"github.com/cespare/xxhash"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/translate"
)

// Size is the number of addressable cells.
const Size = 0x10000

var ErrImageTooLarge = errors.New(translate.From("image does not fit in address space"))

// Memory is a flat, unbanked 64 KiB address space. Bank switching and
// memory-mapped peripherals are layered above it by other components.
type Memory struct {
	cells [Size]byte
}

func New() *Memory {
	return &Memory{}
}

func (m *Memory) Read(addr uint16) byte {
	return m.cells[addr]
}

func (m *Memory) Write(addr uint16, value byte) {
	m.cells[addr] = value
}

// ReadWord reads a little-endian word. The high byte of a read at 0xFFFF
// comes from 0x0000.
func (m *Memory) ReadWord(addr uint16) uint16 {
	lo := uint16(m.cells[addr])
	hi := uint16(m.cells[addr+1])
	return lo | (hi << 8)
}

func (m *Memory) WriteWord(addr uint16, value uint16) {
	m.cells[addr] = byte(value & 0x00FF)
	m.cells[addr+1] = byte(value >> 8)
}

// Load copies image into memory starting at addr. Images that would run
// past 0xFFFF are rejected and memory is left unchanged.
func (m *Memory) Load(addr uint16, image []byte) error {
	if int(addr)+len(image) > Size {
		return ErrImageTooLarge
	}
	copy(m.cells[addr:], image)
	return nil
}

// Bytes exposes the backing array for viewers. Callers must not write to it.
func (m *Memory) Bytes() []byte { return m.cells[:] }

// Checksum fingerprints the whole address space.
func (m *Memory) Checksum() uint64 {
	return xxhash.Sum64(m.cells[:])
}

// Clear zeroes every cell.
func (m *Memory) Clear() {
	m.cells = [Size]byte{}
}
