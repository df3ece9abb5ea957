package trace

import (
	"fmt"
	"io"

	"decoder6809/cpu"
	"decoder6809/memory"
	"decoder6809/sample"
)

// Driver pulls samples from a Source, recognizes reset/interrupt entry at
// the queue head, and dispatches everything else to cpu.Disassemble and
// cpu.Emulator.Step, writing one formatted line per instruction to Sink.
type Driver struct {
	Config Config
	Sink   io.Writer
	Mem    memory.Oracle

	queue *sample.Queue
	state *cpu.State
	ctx   Context
	phase Phase
}

// NewDriver constructs a Driver reading from src and writing formatted
// lines to sink, using mem as the emulator's memory oracle.
func NewDriver(cfg Config, src sample.Source, sink io.Writer, mem memory.Oracle) *Driver {
	cpu.Init(cfg.Variant)
	return &Driver{
		Config: cfg,
		Sink:   sink,
		Mem:    mem,
		queue:  sample.NewQueue(src),
		state:  cpu.NewState(),
		phase:  Start,
	}
}

// Run drains the queue to end-of-stream, emitting one line per recognized
// instruction or entry pattern. It returns the first terminal error
// encountered (a truncated trace, or any other error from cpu.Boundary
// besides an unpredictable cycle count); per-instruction divergence is
// non-fatal and is folded into the emitted line instead. An unpredictable
// cycle count is never terminal: the driver prints a "???" line (when
// triggered), drops one sample and continues, however often it recurs and whether or not the
// trace carries LIC.
func (d *Driver) Run() error {
	for {
		done, err := d.StepOnce()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Phase reports the driver's current position in the top-level state
// machine, for callers (the debugger TUI) that want to display it.
func (d *Driver) Phase() Phase { return d.phase }

// State exposes the live processor state, for callers that want to dump
// or inspect it between steps (the debugger TUI).
func (d *Driver) State() *cpu.State { return d.state }

// StepOnce advances the driver by exactly one recognized unit: a reset
// match, an interrupt match, or one emulated instruction. done is true
// once the queue is exhausted and there is nothing left to do.
func (d *Driver) StepOnce() (done bool, err error) {
	d.queue.Fill()
	if d.queue.Len() == 0 {
		d.phase = End
		return true, nil
	}

	if d.phase == Start {
		if pc, ok := cpu.MatchReset(d.queue.Head(2)); ok {
			d.state.Reset(d.Config.Variant, pc)
			d.phase = ResetMatched
			d.ctx.Triggered = d.ctx.Triggered || !d.Config.TriggerStart.Known
			d.emitVector("RESET", pc)
			d.queue.Pop(2)
			d.phase = Running
			return false, nil
		}
		// Not yet reset: drop one sample and keep looking. A mid-stream
		// capture may never show a reset at all; Start then persists
		// until an interrupt-entry pattern is matched, or the queue runs
		// out, and samples before that are dropped undecoded.
		if kind, pc, consumed, ok := cpu.MatchInterrupt(d.queue.Head(14)); ok {
			d.handleInterrupt(kind, pc, consumed)
			return false, nil
		}
		d.queue.Pop(1)
		return false, nil
	}

	if kind, pc, consumed, ok := cpu.MatchInterrupt(d.queue.Head(14)); ok {
		d.handleInterrupt(kind, pc, consumed)
		return false, nil
	}

	return false, d.step()
}

func (d *Driver) handleInterrupt(kind cpu.VectorKind, pc uint16, consumed int) {
	d.phase = InterruptMatched
	cpu.ApplyInterruptEntry(d.state, kind, pc, consumed-2)
	if !d.Config.TriggerSkipInt {
		d.emitVector(kind.String(), pc)
	}
	d.queue.Pop(consumed)
	d.phase = Running
}

func (d *Driver) emitVector(name string, pc uint16) {
	if !d.ctx.Triggered {
		return
	}
	fmt.Fprintf(d.Sink, "-- %s vector, PC=$%04x --\n", name, pc)
}

// step decodes, emulates, disassembles, and emits exactly one instruction
// from the queue head, then pops it.
func (d *Driver) step() error {
	d.ctx.Clear()
	head := d.queue.Head(sample.Depth)

	n, err := cpu.Boundary(d.queue, d.state, d.Config.Variant)
	if err != nil {
		d.emitFatal(err)
		d.queue.Pop(1)
		return classifyFatal(err)
	}
	if n > len(head) {
		d.emitFatal(cpu.ErrTruncated)
		return cpu.ErrTruncated
	}

	ins := decodeInstruction(head[:n], d.state.PC)
	emu := cpu.NewEmulator(d.state, d.Config.Variant, d.Mem)
	div := emu.Step(&ins)
	if cross := emu.CrossCheck(head[:n]); cross.Mismatch { // CrossCheck itself taints d.state's written fields back to unknown
		d.ctx.FailFlag = true
		div.Mismatch = true
		if div.Detail == "" {
			div.Detail = cross.Detail
		}
	}
	if div.Mismatch {
		d.ctx.FailFlag = true
	}

	d.updateTriggers(ins)
	d.emit(ins, div)
	d.queue.Pop(n)
	return nil
}

func (d *Driver) updateTriggers(ins cpu.Instruction) {
	if !ins.PC.Known {
		return
	}
	if d.Config.TriggerStart.Known && ins.PC.Value == d.Config.TriggerStart.Value {
		d.ctx.Triggered = true
	}
	if d.Config.TriggerStop.Known && ins.PC.Value == d.Config.TriggerStop.Value {
		d.ctx.Triggered = false
	}
}

// decodeInstruction packs n raw samples into an Instruction, with PC
// carried forward from the emulator's last known value (reads advance it
// afterward; the decoder only needs it for display and PCR addressing).
func decodeInstruction(head []sample.Sample, pc cpu.Optional[uint16]) cpu.Instruction {
	ins := cpu.Instruction{PC: pc, Length: uint8(len(head))}
	for i, s := range head {
		if i >= len(ins.Bytes) {
			break
		}
		ins.Bytes[i] = s.Data
	}
	ins.Opcode = ins.Bytes[0]
	if ins.Opcode == 0x10 || ins.Opcode == 0x11 {
		ins.Prefix = ins.Opcode
		ins.Opcode = ins.Bytes[1]
	}
	return ins
}

func classifyFatal(err error) error {
	if err == cpu.ErrUnpredictable {
		return nil // degraded, always non-fatal; recurrence is not tracked
	}
	return err
}

func (d *Driver) emitFatal(err error) {
	if !d.ctx.Triggered {
		return
	}
	fmt.Fprintf(d.Sink, "??? (%v)\n", err)
}

// emit writes one formatted output line: [address] [hex] mnemonic operand
// [flag?], each bracketed column controlled by its Show* toggle. The
// sample-number, cycle-count and state columns are not rendered;
// ShowSampleNum, ShowCycles and ShowState have no effect on the line.
func (d *Driver) emit(ins cpu.Instruction, div cpu.Divergence) {
	if !d.ctx.Triggered {
		return
	}
	line := ""
	if d.Config.ShowAddress {
		if ins.PC.Known {
			line += fmt.Sprintf("%04x ", ins.PC.Value)
		} else {
			line += "???? "
		}
	}
	if d.Config.ShowHex {
		for i := 0; i < int(ins.Length); i++ {
			line += fmt.Sprintf("%02x", ins.Bytes[i])
		}
		line += " "
	}
	line += cpu.Disassemble(&ins)
	if d.Config.ShowFlag && div.Mismatch {
		line += " *" + div.Detail
	}
	fmt.Fprintln(d.Sink, line)
}
