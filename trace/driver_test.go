package trace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decoder6809/cpu"
	"decoder6809/memory"
	"decoder6809/sample"
)

func rs(data byte, lic bool, rnw, bs bool) sample.Sample {
	return sample.Sample{Data: data, Lic: sample.Set(lic), Rnw: sample.Set(rnw), Bs: sample.Set(bs)}
}

// TestDriverRunsResetThenOneInstruction builds a trace whose first two
// cycles are the reset vector ($8000), followed by a single LDA #$2A, and
// checks the driver lands PC at the vector and then advances it past the
// two-byte LDA (to $8002), and emits the RESET and instruction lines.
func TestDriverRunsResetThenOneInstruction(t *testing.T) {
	samples := []sample.Sample{
		rs(0x80, false, true, true), // reset vector hi
		rs(0x00, false, true, true), // reset vector lo
		rs(0x86, false, true, false),
		rs(0x2A, true, true, false),
	}
	src := sample.NewSliceSource(samples)
	var out bytes.Buffer
	cfg := DefaultConfig(cpu.CPU6809)
	drv := NewDriver(cfg, src, &out, memory.NewRAM())

	require.NoError(t, drv.Run())
	assert.Equal(t, uint16(0x8002), drv.State().PC.Value)

	output := out.String()
	assert.Contains(t, output, "RESET")
	assert.Contains(t, output, "LDA")
	assert.Contains(t, output, "#$2a")
}

// TestDriverTriggerWindowSuppressesOutsideOutput checks that with an armed
// trigger window, instructions executed before the start trigger fires
// produce no output line, even though they still update emulator state.
func TestDriverTriggerWindowSuppressesOutsideOutput(t *testing.T) {
	samples := []sample.Sample{
		rs(0x80, false, true, true),
		rs(0x00, false, true, true),
		rs(0x86, false, true, false), // LDA #$2A at $8000, before the trigger
		rs(0x2A, true, true, false),
		rs(0xC6, false, true, false), // LDB #$01 at $8002, at the trigger
		rs(0x01, true, true, false),
	}
	src := sample.NewSliceSource(samples)
	var out bytes.Buffer
	cfg := DefaultConfig(cpu.CPU6809)
	cfg.TriggerStart = cpu.Known(uint16(0x8002))
	drv := NewDriver(cfg, src, &out, memory.NewRAM())

	require.NoError(t, drv.Run())

	output := out.String()
	assert.NotContains(t, output, "RESET")
	assert.NotContains(t, output, "LDA")
	assert.Contains(t, output, "LDB")
}

func TestDriverPhaseReachesEnd(t *testing.T) {
	src := sample.NewSliceSource(nil)
	var out bytes.Buffer
	drv := NewDriver(DefaultConfig(cpu.CPU6809), src, &out, memory.NewRAM())
	require.NoError(t, drv.Run())
	assert.Equal(t, End, drv.Phase())
}
