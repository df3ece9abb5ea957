// Package trace drives a decoded cycle trace end to end: pulling samples
// from a source, recognizing reset and interrupt entry at the queue head,
// and dispatching to the cpu package's disassembler and emulator for
// everything in between.
package trace

import (
	"decoder6809/cpu"
)

// Context carries the per-trace mutable state that the original decoder
// kept as file-scope C globals (failflag, triggered in em_6809.c/main.c).
// Here it's an explicit value threaded through Driver.Run instead, owned
// exclusively by the caller's goroutine.
type Context struct {
	FailFlag  bool
	Triggered bool
}

// Clear resets the per-instruction failure indicator. The driver calls
// this at every instruction boundary, per spec.md §7.
func (c *Context) Clear() {
	c.FailFlag = false
}

// Phase names the top-level state machine's position, per spec.md §4.F.
type Phase int

const (
	Start Phase = iota
	ResetMatched
	Running
	InterruptMatched
	End
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case ResetMatched:
		return "reset"
	case Running:
		return "running"
	case InterruptMatched:
		return "interrupt"
	case End:
		return "end"
	}
	return "?"
}

// Config carries the driver's tunables, mirroring defs.h's arguments_t:
// trigger_start/trigger_stop/trigger_skipint plus the output column
// toggles.
type Config struct {
	Variant cpu.CPUVariant

	TriggerStart   cpu.Optional[uint16]
	TriggerStop    cpu.Optional[uint16]
	TriggerSkipInt bool

	ShowSampleNum bool
	ShowCycles    bool
	ShowAddress   bool
	ShowHex       bool
	ShowState     bool
	ShowFlag      bool
}

// DefaultConfig returns a Config with every output column enabled and no
// triggers armed (output starts immediately).
func DefaultConfig(variant cpu.CPUVariant) Config {
	return Config{
		Variant:       variant,
		ShowSampleNum: true,
		ShowCycles:    true,
		ShowAddress:   true,
		ShowHex:       true,
		ShowState:     true,
		ShowFlag:      true,
	}
}
