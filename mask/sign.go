package mask

// SignExtend5 sign-extends the low 5 bits of b (the 6809 indexed-addressing
// short offset) to an int16.
func SignExtend5(b byte) int16 {
	v := int16(b & 0x1f)
	if v&0x10 != 0 {
		v -= 0x20
	}
	return v
}

// SignExtend8 sign-extends a byte to an int16.
func SignExtend8(b byte) int16 {
	return int16(int8(b))
}

// SignExtend16 reinterprets a word as a signed offset; provided for symmetry
// with SignExtend8 so callers need not care which width they hold.
func SignExtend16(w uint16) int16 {
	return int16(w)
}
