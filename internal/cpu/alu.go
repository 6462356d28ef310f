package cpu

func splitWord(v uint16) (hi, lo byte) {
	return byte(v >> 8), byte(v)
}

func joinWord(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

// halfCarry reports a carry out of bit 3 when adding a, b and carry-in.
func halfCarry(a, b, cin byte) bool {
	return (a&0x0F)+(b&0x0F)+cin > 0x0F
}

// halfBorrow reports a borrow from bit 4 when subtracting b and carry-in from a.
func halfBorrow(a, b, cin byte) bool {
	return a&0x0F < (b&0x0F)+cin
}

// add8 adds b and the carry-in to a. Arithmetic is widened to 16 bits so
// the carry-out survives a carry-in on top of 0xFF.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func add8(a, b, cin byte) (res byte, z, n, h, cy bool) {
	r := uint16(a) + uint16(b) + uint16(cin)
	res = byte(r)
	z = res == 0
	n = false
	h = halfCarry(a, b, cin)
	cy = r > 0xFF
	return
}

// sub8 subtracts b and the borrow-in from a.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func sub8(a, b, cin byte) (res byte, z, n, h, cy bool) {
	r := int16(a) - int16(b) - int16(cin)
	res = byte(r)
	z = res == 0
	n = true
	h = halfBorrow(a, b, cin)
	cy = r < 0
	return
}

func and8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a & b
	return res, res == 0, false, true, false
}

func xor8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a ^ b
	return res, res == 0, false, false, false
}

func or8(a, b byte) (res byte, z, n, h, cy bool) {
	res = a | b
	return res, res == 0, false, false, false
}

// addSigned adds a signed 8-bit offset to a 16-bit value. H and C come
// from the unsigned addition of the low byte, as on hardware.
func addSigned(v uint16, e byte) (res uint16, h, cy bool) {
	res = uint16(int32(v) + int32(int8(e)))
	lo := byte(v)
	h = halfCarry(lo, e, 0)
	cy = uint16(lo)+uint16(e) > 0xFF
	return
}

// add16 adds two words with the carry out of bit 11 as the half-carry.
func add16(a, b uint16) (res uint16, h, cy bool) {
	r := uint32(a) + uint32(b)
	return uint16(r), (a&0x0FFF)+(b&0x0FFF) > 0x0FFF, r > 0xFFFF
}

// daa adjusts A to packed BCD after an addition or subtraction.
func daa(a byte, n, h, cy bool) (res byte, carry bool) {
	carry = cy
	if !n {
		if cy || a > 0x99 {
			a += 0x60
			carry = true
		}
		if h || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if cy {
			a -= 0x60
		}
		if h {
			a -= 0x06
		}
	}
	return a, carry
}
