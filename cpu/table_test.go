package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLookupEveryEntryHasExecAndMnemonic walks both tables and checks every
// populated entry carries a non-empty mnemonic and a non-nil Exec, so a
// table typo (an entry with a mnemonic but no function wired, or vice
// versa) shows up here rather than as a nil-pointer panic mid-trace.
func TestLookupEveryEntryHasExecAndMnemonic(t *testing.T) {
	for k, entry := range table6809 {
		assert.NotEmpty(t, entry.Mnemonic, "table6809 key %#04x has empty mnemonic", k)
		assert.NotNil(t, entry.Exec, "table6809 %s (key %#04x) has nil Exec", entry.Mnemonic, k)
	}
	for k, entry := range table6309 {
		assert.NotEmpty(t, entry.Mnemonic, "table6309 key %#04x has empty mnemonic", k)
		assert.NotNil(t, entry.Exec, "table6309 %s (key %#04x) has nil Exec", entry.Mnemonic, k)
	}
}

// TestLookupUnknownOpcodeIsIllegal confirms an opcode byte wired into
// neither table degrades to the synthetic illegal record rather than a
// zero-value OpcodeEntry with a nil Exec.
func TestLookupUnknownOpcodeIsIllegal(t *testing.T) {
	entry := Lookup(0, 0x15, CPU6809) // 0x15 is unused on both variants
	assert.Equal(t, "???", entry.Mnemonic)
	assert.Nil(t, entry.Exec)
}

// TestLookupPrefers6309OverlayOnly6309Variants checks that an opcode the
// 6309 table overlays (e.g. LDBT under prefix 0x10) does not resolve to
// the 6309 entry on a plain 6809 (the base table has no 0x1036, so it
// comes back as the illegal record), and resolves to the 6309 one only
// when the configured variant actually is a 6309/6309E.
func TestLookupPrefers6309OverlayOnly6309Variants(t *testing.T) {
	entry6309 := Lookup(0x10, 0x36, CPU6309)
	assert.Equal(t, "LDBT", entry6309.Mnemonic)

	entry6809 := Lookup(0x10, 0x36, CPU6809)
	assert.NotEqual(t, "LDBT", entry6809.Mnemonic)
}

// TestDisassembleRoundTripsKnownMnemonics picks a representative opcode
// from each addressing mode family and checks Disassemble's mnemonic
// column always names the table's own mnemonic.
func TestDisassembleRoundTripsKnownMnemonics(t *testing.T) {
	Init(CPU6309)
	cases := []struct {
		bytes []byte
		want  string // mnemonic only; operand text is covered by disasm_test.go
	}{
		{[]byte{0x86, 0x00}, "LDA"},
		{[]byte{0x96, 0x00}, "LDA"},
		{[]byte{0xB6, 0x00, 0x00}, "LDA"},
		{[]byte{0x12}, "NOP"},
		{[]byte{0x1F, 0x89}, "TFR"},
	}
	for _, c := range cases {
		ins := buildInstruction(t, 0x1000, c.bytes)
		got := Disassemble(&ins)
		assert.Contains(t, got, c.want)
	}
}
