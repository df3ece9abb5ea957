package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"decoder6809/memory"
	"decoder6809/sample"
)

func TestLoadProgramIntoRAM(t *testing.T) {
	program := []byte{0x86, 0x0A, 0x97, 0x20, 0xC6, 0x03, 0xDB, 0x20} // LDA #$0A; STA $20; LDB #$03; ADDB $20
	ram := memory.NewRAM()
	ram.Load(0x8000, program)

	v, ok := ram.ReadRaw(0x8000)
	assert.True(t, ok)
	assert.Equal(t, byte(0x86), v)
	v, ok = ram.ReadRaw(0x8007)
	assert.True(t, ok)
	assert.Equal(t, byte(0x20), v)
	_, ok = ram.ReadRaw(0x8008)
	assert.False(t, ok)
}

// step builds an Instruction from program at pc, runs it through an
// Emulator, and leaves the result in st (and, for stores, in mem).
func step(t *testing.T, st *State, mem *memory.RAM, pc uint16) {
	t.Helper()
	entry := Lookup(0, mustReadByte(mem, pc), CPU6809)
	ins := Instruction{PC: Known(pc)}
	n := instructionLength(t, mem, pc, entry)
	for i := 0; i < n; i++ {
		ins.Bytes[i] = mustReadByte(mem, pc+uint16(i))
	}
	ins.Length = uint8(n)
	ins.Opcode = ins.Bytes[0]

	e := NewEmulator(st, CPU6809, mem)
	e.Step(&ins)
}

func mustReadByte(mem *memory.RAM, addr uint16) byte {
	v, _ := mem.ReadRaw(addr)
	return v
}

func instructionLength(t *testing.T, mem *memory.RAM, pc uint16, entry OpcodeEntry) int {
	t.Helper()
	switch entry.Mode.BaseMode() {
	case Inherent:
		return 1
	case Immediate8, Direct, Relative8:
		return 2
	case Immediate16, Extended, Relative16:
		return 3
	case Register:
		return 2
	}
	return 2
}

func TestEmulatorRunsLoadStoreAddSequence(t *testing.T) {
	program := []byte{
		0x86, 0x0A, // LDA #$0A
		0x97, 0x20, // STA $20
		0xC6, 0x03, // LDB #$03
		0xDB, 0x20, // ADDB $20
	}
	mem := memory.NewRAM()
	mem.Load(0x8000, program)

	st := NewState()
	st.DP = Known(byte(0))
	pc := uint16(0x8000)

	step(t, st, mem, pc) // LDA #$0A
	assert.Equal(t, Known(byte(0x0A)), st.A)
	pc = st.PC.Value

	step(t, st, mem, pc) // STA $20
	stored, ok := mem.ReadRaw(0x20)
	assert.True(t, ok)
	assert.Equal(t, byte(0x0A), stored)
	pc = st.PC.Value

	step(t, st, mem, pc) // LDB #$03
	assert.Equal(t, Known(byte(0x03)), st.B)
	pc = st.PC.Value

	step(t, st, mem, pc) // ADDB $20
	assert.Equal(t, Known(byte(0x0D)), st.B)
	assert.False(t, st.CC.Z.Value)
}

func TestEmulatorTaintsResultWhenOperandUnknown(t *testing.T) {
	mem := memory.NewRAM()
	program := []byte{0xDB, 0x20} // ADDB $20, direct page byte never loaded
	mem.Load(0x9000, program)

	st := NewState()
	st.DP = Known(byte(0))
	st.B = Known(byte(5))

	step(t, st, mem, 0x9000)
	assert.False(t, st.B.Known, "ADDB against an unread direct-page byte must taint B")
}

func TestCrossCheckFlagsDataMismatch(t *testing.T) {
	mem := memory.NewRAM()
	mem.Load(0x20, []byte{0x0A})
	st := NewState()
	st.DP = Known(byte(0))
	st.B = Known(byte(3))

	e := NewEmulator(st, CPU6809, mem)
	ins := Instruction{Bytes: [8]byte{0xDB, 0x20}, Length: 2, Opcode: 0xDB}
	e.Step(&ins)

	window := []sample.Sample{{Rnw: sample.Set(true), Data: 0xFF}}
	div := e.CrossCheck(window)
	assert.True(t, div.Mismatch)
	assert.False(t, st.B.Known, "a cross-check mismatch must taint the register the instruction wrote")
}

// TestCrossCheckLeavesUntouchedRegistersAlone checks that a cross-check
// mismatch only reverts the register(s) the instruction actually wrote,
// not the whole bank.
func TestCrossCheckLeavesUntouchedRegistersAlone(t *testing.T) {
	mem := memory.NewRAM()
	mem.Load(0x20, []byte{0x0A})
	st := NewState()
	st.DP = Known(byte(0))
	st.B = Known(byte(3))
	st.A = Known(byte(0x42))

	e := NewEmulator(st, CPU6809, mem)
	ins := Instruction{Bytes: [8]byte{0xDB, 0x20}, Length: 2, Opcode: 0xDB} // ADDB $20
	e.Step(&ins)

	window := []sample.Sample{{Rnw: sample.Set(true), Data: 0xFF}}
	div := e.CrossCheck(window)
	assert.True(t, div.Mismatch)
	assert.False(t, st.B.Known)
	assert.Equal(t, Known(byte(0x42)), st.A, "A was never touched by this instruction and must stay known")
}
