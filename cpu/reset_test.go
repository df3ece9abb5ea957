package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"decoder6809/sample"
)

func vectorCycle(data byte) sample.Sample {
	return sample.Sample{Data: data, Rnw: sample.Set(true), Bs: sample.Set(true)}
}

// TestMatchResetRecognizesVectorFetchRegardlessOfPriorState checks that the
// reset-vector matcher transitions to the captured PC purely from the two
// vector-fetch cycles, independent of anything else in the head window.
func TestMatchResetRecognizesVectorFetchRegardlessOfPriorState(t *testing.T) {
	head := []sample.Sample{vectorCycle(0x12), vectorCycle(0x34)}
	pc, ok := MatchReset(head)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x1234), pc)
}

func TestMatchResetRejectsKnownWriteCycle(t *testing.T) {
	head := []sample.Sample{
		{Data: 0x12, Rnw: sample.Set(false), Bs: sample.Set(true)},
		vectorCycle(0x34),
	}
	_, ok := MatchReset(head)
	assert.False(t, ok)
}

func TestMatchResetToleratesUnknownControlLines(t *testing.T) {
	head := []sample.Sample{{Data: 0x12}, {Data: 0x34}}
	pc, ok := MatchReset(head)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x1234), pc)
}

func writeCycle() sample.Sample {
	return sample.Sample{Rnw: sample.Set(false)}
}

func TestMatchInterruptFIRQFastStack(t *testing.T) {
	head := append([]sample.Sample{writeCycle(), writeCycle()}, vectorCycle(0xF0), vectorCycle(0x00))
	kind, pc, consumed, ok := MatchInterrupt(head)
	assert.True(t, ok)
	assert.Equal(t, FIRQVector, kind)
	assert.Equal(t, uint16(0xF000), pc)
	assert.Equal(t, 4, consumed)
}

func TestMatchInterruptFullStackDefaultsToIRQ(t *testing.T) {
	var head []sample.Sample
	for i := 0; i < 12; i++ {
		head = append(head, writeCycle())
	}
	head = append(head, vectorCycle(0x90), vectorCycle(0x12))
	kind, pc, consumed, ok := MatchInterrupt(head)
	assert.True(t, ok)
	assert.Equal(t, IRQVector, kind)
	assert.Equal(t, uint16(0x9012), pc)
	assert.Equal(t, 14, consumed)
}

func TestMatchInterruptRejectsShortWindow(t *testing.T) {
	head := []sample.Sample{writeCycle(), writeCycle()}
	_, _, _, ok := MatchInterrupt(head)
	assert.False(t, ok)
}

func TestApplyInterruptEntrySetsMaskAndStack(t *testing.T) {
	st := NewState()
	st.S = Known(uint16(0x8000))
	ApplyInterruptEntry(st, FIRQVector, 0xF000, 2)
	assert.Equal(t, Known(uint16(0xF000)), st.PC)
	assert.Equal(t, Known(true), st.CC.I)
	assert.Equal(t, Known(true), st.CC.F)
	assert.Equal(t, Known(false), st.CC.E)
	assert.Equal(t, Known(uint16(0x7FFE)), st.S)
}

func TestApplyInterruptEntryIRQLeavesFAlone(t *testing.T) {
	st := NewState()
	st.S = Known(uint16(0x8000))
	st.CC.F = Known(false)
	ApplyInterruptEntry(st, IRQVector, 0x9000, 12)
	assert.Equal(t, Known(false), st.CC.F)
	assert.Equal(t, Known(true), st.CC.E)
	assert.Equal(t, Known(uint16(0x7FF4)), st.S)
}
