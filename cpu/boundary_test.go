package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decoder6809/sample"
)

// lda86Samples builds a 2-cycle LDA #$0A trace with every Lic bit known,
// true only on the final cycle.
func lda86Samples() []sample.Sample {
	return []sample.Sample{
		{Data: 0x86, Lic: sample.Set(false)},
		{Data: 0x0A, Lic: sample.Set(true)},
	}
}

func TestLicBoundaryExact(t *testing.T) {
	n, ok := licBoundary(lda86Samples())
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

// TestComputedBoundaryAgreesWithLic checks that, for an instruction whose
// cycle count needs no runtime state (no branch, no divide, no indexed
// extras), the computed fallback lands on the same boundary the LIC bit
// would have given directly, confirming the two paths describe the same
// instruction stream when LIC happens to be unavailable.
func TestComputedBoundaryAgreesWithLic(t *testing.T) {
	st := NewState()
	head := []sample.Sample{
		{Data: 0x86}, // LDA #imm, 2 base cycles
		{Data: 0x0A},
	}
	licN, licOK := licBoundary(lda86Samples())
	require.True(t, licOK)

	computedN, err := computedBoundary(head, st, CPU6809)
	require.NoError(t, err)
	assert.Equal(t, licN, computedN)
}

func TestComputedBoundaryIndexedExtras(t *testing.T) {
	st := NewState()
	// LDA ,X++ : opcode 0xA6, postbyte 0x81 (,R++ on X, 3 extra cycles)
	head := []sample.Sample{
		{Data: 0xA6},
		{Data: 0x81},
	}
	n, err := computedBoundary(head, st, CPU6809)
	require.NoError(t, err)
	assert.Equal(t, 7, n) // base 4 cycles + 3 extra from the ,R++ sub-mode
}

func TestComputedBoundaryUnpredictableLongBranch(t *testing.T) {
	st := NewState()
	// LBEQ rel16, prefix 0x10 opcode 0x27, Z flag unknown
	head := []sample.Sample{
		{Data: 0x10},
		{Data: 0x27},
		{Data: 0x00},
		{Data: 0x10},
	}
	_, err := computedBoundary(head, st, CPU6809)
	assert.ErrorIs(t, err, errUnpredictable)
}

func TestComputedBoundaryLongBranchResolvesWhenFlagKnown(t *testing.T) {
	st := NewState()
	st.CC.Z = Known(true)
	head := []sample.Sample{
		{Data: 0x10},
		{Data: 0x27},
		{Data: 0x00},
		{Data: 0x10},
	}
	n, err := computedBoundary(head, st, CPU6809)
	require.NoError(t, err)
	assert.True(t, n > 0)
}

func TestComputedBoundaryTruncated(t *testing.T) {
	st := NewState()
	head := []sample.Sample{{Data: 0x86}} // LDA #imm needs one more byte
	_, err := computedBoundary(head, st, CPU6809)
	assert.ErrorIs(t, err, errTruncated)
}
