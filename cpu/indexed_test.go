package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDecodeIndexedExhaustive walks every post-byte value under both a
// 6809 and a 6309 variant and checks the invariants buildIndexedEntry and
// DecodeIndexed must hold, rather than spot-checking a handful of values.
func TestDecodeIndexedExhaustive(t *testing.T) {
	for _, v := range []CPUVariant{CPU6809, CPU6809E, CPU6309, CPU6309E} {
		for pb := 0; pb < 256; pb++ {
			io := DecodeIndexed(byte(pb), v)

			assert.True(t, io.ExtraBytes <= 2, "pb=%#02x variant=%v: ExtraBytes out of range: %d", pb, v, io.ExtraBytes)

			if !v.Is6309() {
				switch io.Formula {
				case FormAccumE, FormAccumF, FormAccumW, FormW, FormW16, FormWIncr2, FormWDecr2:
					assert.False(t, io.Legal, "pb=%#02x: 6309-only sub-mode must be illegal on %v", pb, v)
				}
			}

			// the extended-indirect sub-mode (case 15) is only legal when
			// the indirect bit is set; every other non-illegal formula is
			// reachable both directly and indirectly.
			if io.Formula == FormExtIndirect {
				assert.Equal(t, io.Indirect, io.Legal, "pb=%#02x: extended indirect legality must track the indirect bit", pb)
			}

			// 5-bit offset mode (high bit clear) is never indirect and
			// never carries extra bytes.
			if pb&0x80 == 0 {
				assert.False(t, io.Indirect, "pb=%#02x: 5-bit offset form cannot be indirect", pb)
				assert.Equal(t, uint8(0), io.ExtraBytes, "pb=%#02x: 5-bit offset form carries no extra bytes", pb)
			}
		}
	}
}

func TestDecodeIndexed6309WOverlay(t *testing.T) {
	cases := []struct {
		pb   byte
		want string
	}{
		{0x8F, ",W"},
		{0xAF, "n15,W"},
		{0xCF, ",W++"},
		{0xEF, ",--W"},
	}
	for _, c := range cases {
		io := DecodeIndexed(c.pb, CPU6309)
		assert.Equal(t, c.want, io.Operand, "pb=%#02x", c.pb)
		assert.True(t, io.Legal)
	}
}

func TestDecodeIndexed6309WOverlayIndirect(t *testing.T) {
	cases := []struct {
		pb   byte
		want string
	}{
		{0x90, "[,W]"},
		{0xB0, "[n15,W]"},
		{0xD0, "[,W++]"},
		{0xF0, "[,--W]"},
	}
	for _, c := range cases {
		io := DecodeIndexed(c.pb, CPU6309)
		assert.Equal(t, c.want, io.Operand, "pb=%#02x", c.pb)
		assert.True(t, io.Indirect, "pb=%#02x: must be indirect", c.pb)
		assert.True(t, io.Legal, "pb=%#02x", c.pb)
	}
}

func TestSignExtend5Symmetry(t *testing.T) {
	for pb := 0; pb < 32; pb++ {
		got := sign5(byte(pb))
		if pb&0x10 != 0 {
			assert.Equal(t, int16(pb)-0x20, got)
		} else {
			assert.Equal(t, int16(pb), got)
		}
	}
}
