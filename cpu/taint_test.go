package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"decoder6809/memory"
)

func TestCombine1PropagatesUnknown(t *testing.T) {
	got := Combine1(Unk[byte](), func(v byte) byte { return v + 1 })
	assert.False(t, got.Known)
}

func TestCombine1PassesThroughKnown(t *testing.T) {
	got := Combine1(Known(byte(4)), func(v byte) byte { return v + 1 })
	assert.Equal(t, Known(byte(5)), got)
}

func TestCombine2UnknownIfEitherOperandUnknown(t *testing.T) {
	f := func(a, b byte) byte { return a + b }
	assert.False(t, Combine2(Unk[byte](), Known(byte(1)), f).Known)
	assert.False(t, Combine2(Known(byte(1)), Unk[byte](), f).Known)
	assert.False(t, Combine2(Unk[byte](), Unk[byte](), f).Known)
}

func TestCombine2KnownWhenBothOperandsKnown(t *testing.T) {
	got := Combine2(Known(byte(2)), Known(byte(3)), func(a, b byte) byte { return a + b })
	assert.Equal(t, Known(byte(5)), got)
}

// TestADDBTaintsOnlyWhenOperandUnknown exercises the taint rule end to end
// through an actual instruction: a direct-page ADDB whose memory operand was
// never written must leave B unknown, while one whose operand is known
// must produce a known, correct sum.
func TestADDBTaintsOnlyWhenOperandUnknown(t *testing.T) {
	st := NewState()
	st.DP = Known(byte(0))
	st.B = Known(byte(5))

	mem := memory.NewRAM() // nothing loaded: every address reads back unknown
	e := NewEmulator(st, CPU6809, mem)
	ins := Instruction{Bytes: [8]byte{0xDB, 0x20}, Length: 2, Opcode: 0xDB}
	e.Step(&ins)
	assert.False(t, st.B.Known)

	st2 := NewState()
	st2.DP = Known(byte(0))
	st2.B = Known(byte(5))
	mem2 := memory.NewRAM()
	mem2.Load(0x20, []byte{10})
	e2 := NewEmulator(st2, CPU6809, mem2)
	ins2 := Instruction{Bytes: [8]byte{0xDB, 0x20}, Length: 2, Opcode: 0xDB}
	e2.Step(&ins2)
	assert.Equal(t, Known(byte(15)), st2.B)
}
