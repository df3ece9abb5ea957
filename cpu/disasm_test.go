package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"decoder6809/memory"
)

// buildInstruction packs bytes into an Instruction the way a Driver would,
// inferring Prefix/Opcode/Length from the raw stream.
func buildInstruction(t *testing.T, pc uint16, bytes []byte) Instruction {
	t.Helper()
	var ins Instruction
	ins.PC = Known(pc)
	i := 0
	if bytes[0] == 0x10 || bytes[0] == 0x11 {
		ins.Prefix = bytes[0]
		i = 1
	}
	ins.Opcode = bytes[i]
	n := copy(ins.Bytes[:], bytes)
	ins.Length = uint8(n)
	return ins
}

func TestDisassembleScenarios(t *testing.T) {
	Init(CPU6309)

	cases := []struct {
		name string
		pc   uint16
		in   []byte
		want string
	}{
		{"lda-immediate", 0x1000, []byte{0x86, 0x42}, "LDA   #$42"},
		{"ldy-immediate", 0x1000, []byte{0x10, 0x8E, 0x12, 0x34}, "LDY   #$1234"},
		{"lda-indexed", 0x1000, []byte{0xA6, 0x84}, "LDA   ,X"},
		{"ldd-pcr16", 0x1000, []byte{0xEC, 0x8D, 0x00, 0x04}, "LDD   $0004,PCR"},
		{"pshs", 0x1000, []byte{0x34, 0x06}, "PSHS  B,A"},
		{"ldq-alternate-encoding", 0x1000, []byte{0x11, 0x8E, 0x00, 0x10, 0x20, 0x30}, "LDQ   #$00102030"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ins := buildInstruction(t, c.pc, c.in)
			got := Disassemble(&ins)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestScenarioPostStateLDA(t *testing.T) {
	Init(CPU6809)
	mem := memory.NewRAM()
	st := NewState()
	ins := buildInstruction(t, 0x1000, []byte{0x86, 0x42})

	e := NewEmulator(st, CPU6809, mem)
	e.Step(&ins)

	assert.Equal(t, Known(byte(0x42)), st.A)
	assert.Equal(t, Known(false), st.CC.N)
	assert.Equal(t, Known(false), st.CC.Z)
	assert.Equal(t, Known(false), st.CC.V)
}

func TestScenarioPostStateLDY(t *testing.T) {
	Init(CPU6809)
	mem := memory.NewRAM()
	st := NewState()
	ins := buildInstruction(t, 0x1000, []byte{0x10, 0x8E, 0x12, 0x34})

	e := NewEmulator(st, CPU6809, mem)
	e.Step(&ins)

	assert.Equal(t, Known(uint16(0x1234)), st.Y)
}

func TestScenarioPostStateLDAIndexed(t *testing.T) {
	Init(CPU6809)
	mem := memory.NewRAM()
	mem.Load(0x2000, []byte{0x7F})
	st := NewState()
	st.X = Known(uint16(0x2000))
	ins := buildInstruction(t, 0x1000, []byte{0xA6, 0x84})

	e := NewEmulator(st, CPU6809, mem)
	e.Step(&ins)

	assert.Equal(t, Known(byte(0x7F)), st.A)
	assert.Equal(t, Known(false), st.CC.N)
	assert.Equal(t, Known(false), st.CC.Z)
}

func TestScenarioPostStateLDDPCR(t *testing.T) {
	Init(CPU6809)
	mem := memory.NewRAM()
	mem.Load(0x1008, []byte{0xAB, 0xCD})
	st := NewState()
	ins := buildInstruction(t, 0x1000, []byte{0xEC, 0x8D, 0x00, 0x04})

	e := NewEmulator(st, CPU6809, mem)
	e.Step(&ins)

	assert.Equal(t, Known(byte(0xAB)), st.A)
	assert.Equal(t, Known(byte(0xCD)), st.B)
}

func TestScenarioPostStateLDQAlternateEncoding(t *testing.T) {
	Init(CPU6309)
	mem := memory.NewRAM()
	st := NewState()
	ins := buildInstruction(t, 0x1000, []byte{0x11, 0x8E, 0x00, 0x10, 0x20, 0x30})

	e := NewEmulator(st, CPU6309, mem)
	e.Step(&ins)

	assert.Equal(t, Known(byte(0x00)), st.A)
	assert.Equal(t, Known(byte(0x10)), st.B)
}
