package cpu

// setNZ8 updates N and Z from an 8-bit result, leaving H, V, C untouched.
func (e *Emulator) setNZ8(r Optional[byte]) {
	e.State.CC.N = Combine1(r, func(v byte) bool { return v&0x80 != 0 })
	e.State.CC.Z = Combine1(r, func(v byte) bool { return v == 0 })
}

// setNZ16 updates N and Z from a 16-bit result.
func (e *Emulator) setNZ16(r Optional[uint16]) {
	e.State.CC.N = Combine1(r, func(v uint16) bool { return v&0x8000 != 0 })
	e.State.CC.Z = Combine1(r, func(v uint16) bool { return v == 0 })
}

// add8 computes a+b+cin, reporting the 8-bit sum plus half-carry,
// overflow, and carry out, all tri-state.
func add8(a, b Optional[byte], cin Optional[bool]) (sum Optional[byte], half, ovf, carry Optional[bool]) {
	full := Combine2(a, b, func(x, y byte) uint16 { return uint16(x) + uint16(y) })
	full = Combine2(full, cin, func(f uint16, c bool) uint16 {
		if c {
			return f + 1
		}
		return f
	})
	sum = Combine1(full, func(f uint16) byte { return byte(f) })
	carry = Combine1(full, func(f uint16) bool { return f > 0xff })
	half = Combine2(a, b, func(x, y byte) bool { return (x&0x0f)+(y&0x0f) > 0x0f })
	ovf = Combine2(a, b, func(x, y byte) bool {
		r := x + y
		return (x^r)&(y^r)&0x80 != 0
	})
	return
}

// sub8 computes a-b-bin (borrow in), reporting the 8-bit difference plus
// overflow and borrow out.
func sub8(a, b Optional[byte], bin Optional[bool]) (diff Optional[byte], ovf, borrow Optional[bool]) {
	full := Combine2(a, b, func(x, y byte) int16 { return int16(x) - int16(y) })
	full = Combine2(full, bin, func(f int16, c bool) int16 {
		if c {
			return f - 1
		}
		return f
	})
	diff = Combine1(full, func(f int16) byte { return byte(f) })
	borrow = Combine1(full, func(f int16) bool { return f < 0 })
	ovf = Combine2(a, b, func(x, y byte) bool {
		r := x - y
		return (x^y)&(x^r)&0x80 != 0
	})
	return
}

// add16 computes a+b as a 16-bit sum, reporting overflow and carry.
func add16(a, b Optional[uint16]) (sum Optional[uint16], ovf, carry Optional[bool]) {
	full := Combine2(a, b, func(x, y uint16) uint32 { return uint32(x) + uint32(y) })
	sum = Combine1(full, func(f uint32) uint16 { return uint16(f) })
	carry = Combine1(full, func(f uint32) bool { return f > 0xffff })
	ovf = Combine2(a, b, func(x, y uint16) bool {
		r := x + y
		return (x^r)&(y^r)&0x8000 != 0
	})
	return
}

// sub16 computes a-b as a 16-bit difference, reporting overflow.
func sub16(a, b Optional[uint16]) (diff Optional[uint16], ovf Optional[bool]) {
	full := Combine2(a, b, func(x, y uint16) int32 { return int32(x) - int32(y) })
	diff = Combine1(full, func(f int32) uint16 { return uint16(f) })
	ovf = Combine2(a, b, func(x, y uint16) bool {
		r := x - y
		return (x^y)&(x^r)&0x8000 != 0
	})
	return
}
