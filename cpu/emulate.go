package cpu

import (
	"decoder6809/memory"
	"decoder6809/sample"
)

// MemAccess records one bus transaction the emulator predicted while
// executing an instruction, in source order, for later cross-checking
// against the captured samples.
type MemAccess struct {
	Addr  uint16
	Data  Optional[byte]
	Write bool
}

// Divergence reports where the emulator's prediction disagreed with the
// trace. A zero-value Divergence (Mismatch == false) means the instruction
// executed cleanly.
type Divergence struct {
	Mismatch bool
	Detail   string
}

// Emulator holds the live processor State plus the scratch fields an
// in-flight Step uses to resolve an operand and record the accesses it
// predicts, mirroring the teacher's Cpu.M/Cpu.AbsAddress scratch fields.
type Emulator struct {
	State   *State
	Variant CPUVariant
	Mem     memory.Oracle

	// Scratch, valid only during Step/Exec.
	EA       Optional[uint16]
	Op8      Optional[byte]
	Op16     Optional[uint16]
	Imm8     Optional[byte] // the extra immediate byte AIM/OIM/EIM/TIM carry
	Accesses []MemAccess
	mode     AddressingMode
	branched bool             // set by a taken branch/jump Exec so Step skips the fallthrough PC advance
	nextPC   Optional[uint16] // PC as it will read once this instruction retires; PCR addressing is relative to this, not the pre-fetch PC
	before   stateSnapshot    // register/flag bank as Step found it, for CrossCheck's taint-on-divergence
}

// stateSnapshot holds every tri-state register and flag field State
// carries, except PC: PC is established by boundary recognition rather
// than by the instruction's own result, so it is never a candidate for
// taint-on-divergence.
type stateSnapshot struct {
	A, B       Optional[byte]
	X, Y, U, S Optional[uint16]
	DP         Optional[byte]
	RegE, RegF Optional[byte]
	RegV       Optional[uint16]
	CC         CCFlags
	MD         MDFlags
}

func snapshot(st *State) stateSnapshot {
	return stateSnapshot{
		A: st.A, B: st.B,
		X: st.X, Y: st.Y, U: st.U, S: st.S,
		DP:   st.DP,
		RegE: st.RegE, RegF: st.RegF, RegV: st.RegV,
		CC: st.CC, MD: st.MD,
	}
}

// revertWrites sets back to unknown every field that differs from the
// snapshot taken at the start of the current Step, i.e. exactly the
// registers/flags this instruction wrote. Called when CrossCheck finds the
// predicted bus access didn't match the trace, per spec.md §4.F step 3:
// a disagreement taints everything the instruction touched, not just the
// mismatched access itself.
func (e *Emulator) revertWrites() {
	b, st := e.before, e.State
	if st.A != b.A {
		st.A = Unk[byte]()
	}
	if st.B != b.B {
		st.B = Unk[byte]()
	}
	if st.X != b.X {
		st.X = Unk[uint16]()
	}
	if st.Y != b.Y {
		st.Y = Unk[uint16]()
	}
	if st.U != b.U {
		st.U = Unk[uint16]()
	}
	if st.S != b.S {
		st.S = Unk[uint16]()
	}
	if st.DP != b.DP {
		st.DP = Unk[byte]()
	}
	if st.RegE != b.RegE {
		st.RegE = Unk[byte]()
	}
	if st.RegF != b.RegF {
		st.RegF = Unk[byte]()
	}
	if st.RegV != b.RegV {
		st.RegV = Unk[uint16]()
	}
	if st.CC.E != b.CC.E {
		st.CC.E = Unk[bool]()
	}
	if st.CC.F != b.CC.F {
		st.CC.F = Unk[bool]()
	}
	if st.CC.H != b.CC.H {
		st.CC.H = Unk[bool]()
	}
	if st.CC.I != b.CC.I {
		st.CC.I = Unk[bool]()
	}
	if st.CC.N != b.CC.N {
		st.CC.N = Unk[bool]()
	}
	if st.CC.Z != b.CC.Z {
		st.CC.Z = Unk[bool]()
	}
	if st.CC.V != b.CC.V {
		st.CC.V = Unk[bool]()
	}
	if st.CC.C != b.CC.C {
		st.CC.C = Unk[bool]()
	}
	if st.MD.Native != b.MD.Native {
		st.MD.Native = Unk[bool]()
	}
	if st.MD.FIRQNative != b.MD.FIRQNative {
		st.MD.FIRQNative = Unk[bool]()
	}
	if st.MD.IllegalInstr != b.MD.IllegalInstr {
		st.MD.IllegalInstr = Unk[bool]()
	}
	if st.MD.DivZero != b.MD.DivZero {
		st.MD.DivZero = Unk[bool]()
	}
}

// NewEmulator returns an Emulator over state, configured for variant and
// backed by mem for dead-cycle reads.
func NewEmulator(state *State, variant CPUVariant, mem memory.Oracle) *Emulator {
	return &Emulator{State: state, Variant: variant, Mem: mem}
}

// recordRead notes a predicted read of addr, consulting the memory oracle
// when no bus cycle has already supplied the value.
func (e *Emulator) recordRead(addr uint16) Optional[byte] {
	if v, ok := e.Mem.ReadRaw(addr); ok {
		e.Accesses = append(e.Accesses, MemAccess{Addr: addr, Data: Known(v)})
		return Known(v)
	}
	e.Accesses = append(e.Accesses, MemAccess{Addr: addr, Data: Unk[byte]()})
	return Unk[byte]()
}

// recordWrite notes a predicted write of data to addr.
func (e *Emulator) recordWrite(addr uint16, data Optional[byte]) {
	e.Accesses = append(e.Accesses, MemAccess{Addr: addr, Data: data, Write: true})
}

// read16 predicts a big-endian 16-bit read at addr.
func (e *Emulator) read16(addr uint16) Optional[uint16] {
	hi := e.recordRead(addr)
	lo := e.recordRead(addr + 1)
	return Combine2(hi, lo, func(h, l byte) uint16 { return uint16(h)<<8 | uint16(l) })
}

// write16 predicts a big-endian 16-bit write at addr.
func (e *Emulator) write16(addr uint16, v Optional[uint16]) {
	hi := Combine1(v, func(x uint16) byte { return byte(x >> 8) })
	lo := Combine1(v, func(x uint16) byte { return byte(x) })
	e.recordWrite(addr, hi)
	e.recordWrite(addr+1, lo)
}

// regByIndex resolves one of the four indexable registers (X,Y,U,S).
func (e *Emulator) regByIndex(i byte) *Optional[uint16] {
	switch i & 0x03 {
	case 0:
		return &e.State.X
	case 1:
		return &e.State.Y
	case 2:
		return &e.State.U
	default:
		return &e.State.S
	}
}

// effectiveAddress computes the indexed-mode EA per §4.B's formula set,
// applying any auto increment/decrement to the base register as a side
// effect (exactly as real hardware would, and as the boundary finder's
// cycle accounting assumes).
func (e *Emulator) effectiveAddress(pb byte, op8 Optional[byte], op16 Optional[uint16]) Optional[uint16] {
	io := DecodeIndexed(pb, e.Variant)
	reg := e.regByIndex((pb >> 5) & 0x03)

	switch io.Formula {
	case FormOffset5:
		off := sign5(pb)
		return Combine1(*reg, func(r uint16) uint16 { return uint16(int32(r) + int32(off)) })
	case FormIncr1:
		ea := *reg
		*reg = Combine1(*reg, func(r uint16) uint16 { return r + 1 })
		return ea
	case FormIncr2:
		ea := *reg
		*reg = Combine1(*reg, func(r uint16) uint16 { return r + 2 })
		return ea
	case FormDecr1:
		*reg = Combine1(*reg, func(r uint16) uint16 { return r - 1 })
		return *reg
	case FormDecr2:
		*reg = Combine1(*reg, func(r uint16) uint16 { return r - 2 })
		return *reg
	case FormZero:
		return *reg
	case FormAccumB:
		return Combine2(*reg, e.State.B, func(r uint16, b byte) uint16 { return uint16(int32(r) + int32(int8(b))) })
	case FormAccumA:
		return Combine2(*reg, e.State.A, func(r uint16, a byte) uint16 { return uint16(int32(r) + int32(int8(a))) })
	case FormAccumE:
		return Combine2(*reg, e.State.RegE, func(r uint16, x byte) uint16 { return uint16(int32(r) + int32(int8(x))) })
	case FormAccumF:
		return Combine2(*reg, e.State.RegF, func(r uint16, x byte) uint16 { return uint16(int32(r) + int32(int8(x))) })
	case FormAccumD:
		d := e.State.D()
		return Combine2(*reg, d, func(r, dd uint16) uint16 { return r + dd })
	case FormAccumW:
		w := e.State.W()
		return Combine2(*reg, w, func(r, ww uint16) uint16 { return r + ww })
	case FormOffset8:
		off := Combine1(op8, func(b byte) int16 { return int16(int8(b)) })
		return Combine2(*reg, off, func(r uint16, o int16) uint16 { return uint16(int32(r) + int32(o)) })
	case FormOffset16:
		off := Combine1(op16, func(w uint16) int16 { return int16(w) })
		return Combine2(*reg, off, func(r uint16, o int16) uint16 { return uint16(int32(r) + int32(o)) })
	case FormPCR8:
		off := Combine1(op8, func(b byte) int16 { return int16(int8(b)) })
		return Combine2(e.nextPC, off, func(pc uint16, o int16) uint16 { return uint16(int32(pc) + int32(o)) })
	case FormPCR16:
		off := Combine1(op16, func(w uint16) int16 { return int16(w) })
		return Combine2(e.nextPC, off, func(pc uint16, o int16) uint16 { return uint16(int32(pc) + int32(o)) })
	case FormExtIndirect:
		return op16
	case FormW:
		return e.State.W()
	case FormW16:
		off := Combine1(op16, func(w uint16) int16 { return int16(w) })
		return Combine2(e.State.W(), off, func(w uint16, o int16) uint16 { return uint16(int32(w) + int32(o)) })
	case FormWIncr2:
		ea := e.State.W()
		e.State.SetW(Combine1(e.State.W(), func(w uint16) uint16 { return w + 2 }))
		return ea
	case FormWDecr2:
		e.State.SetW(Combine1(e.State.W(), func(w uint16) uint16 { return w - 2 }))
		return e.State.W()
	}
	return Unk[uint16]()
}

// resolveOperand fetches the operand for ins per its addressing mode,
// exactly as spec.md §4.F step 1 describes: from the instruction's own
// bytes (immediate), from captured bus-data (handled by the trace driver
// feeding window samples in, not here), or by computing an EA and
// consulting the memory oracle for a dead cycle.
func (e *Emulator) resolveOperand(ins *Instruction, mode AddressingMode) {
	e.EA = Unk[uint16]()
	e.Op8 = Unk[byte]()
	e.Op16 = Unk[uint16]()

	oi := 1
	if ins.Prefix != 0 {
		oi = 2
	}
	if mode == DirectImmediate || mode == ExtendedImmediate || mode == IndexedImmediate {
		e.Imm8 = Known(ins.Bytes[oi])
		oi++
		mode = mode.BaseMode()
	}

	switch mode {
	case Inherent, Register:
		// no memory operand
	case Immediate8:
		e.Op8 = Known(ins.Bytes[oi])
	case Immediate16:
		e.Op16 = Known(uint16(ins.Bytes[oi])<<8 | uint16(ins.Bytes[oi+1]))
	case Immediate32:
		// handled specially by LDQ's Exec, which reads ins.Bytes directly
	case Direct:
		addr := Combine1(e.State.DP, func(dp byte) uint16 { return uint16(dp)<<8 | uint16(ins.Bytes[oi]) })
		e.EA = addr
	case DirectBit:
		addr := Combine1(e.State.DP, func(dp byte) uint16 { return uint16(dp)<<8 | uint16(ins.Bytes[oi]) })
		e.EA = addr
	case Extended:
		addr := uint16(ins.Bytes[oi])<<8 | uint16(ins.Bytes[oi+1])
		e.EA = Known(addr)
	case Indexed:
		pb := ins.Bytes[oi]
		io := DecodeIndexed(pb, e.Variant)
		var op8 Optional[byte]
		var op16 Optional[uint16]
		switch io.ExtraBytes {
		case 1:
			op8 = Known(ins.Bytes[oi+1])
		case 2:
			op16 = Known(uint16(ins.Bytes[oi+1])<<8 | uint16(ins.Bytes[oi+2]))
		}
		ea := e.effectiveAddress(pb, op8, op16)
		if io.Indirect {
			ea = e.read16(mustU16Optional(ea))
		}
		e.EA = ea
	case Relative8, Relative16:
		// resolved by branch Exec functions directly from ins.Bytes
	}
}

// operand8 returns the instruction's 8-bit operand: the immediate byte for
// Immediate8, or a fresh read at EA for every memory mode. Called at most
// once per Step by the Exec function, so each call records exactly one bus
// access, matching the real hardware's single data cycle.
func (e *Emulator) operand8() Optional[byte] {
	if e.mode.BaseMode() == Immediate8 {
		return e.Op8
	}
	if !e.EA.Known {
		return Unk[byte]()
	}
	return e.recordRead(e.EA.Value)
}

// operand16 returns the instruction's 16-bit operand: the immediate word
// for Immediate16, or a fresh big-endian read at EA otherwise.
func (e *Emulator) operand16() Optional[uint16] {
	if e.mode.BaseMode() == Immediate16 {
		return e.Op16
	}
	if !e.EA.Known {
		return Unk[uint16]()
	}
	return e.read16(e.EA.Value)
}

// store8 writes v to the operand's EA (Direct/Extended/Indexed). When EA
// is unknown the write is still recorded, at address 0, so the cross-check
// sees a write cycle. Register targets are written back by the Exec
// functions directly and never reach here.
func (e *Emulator) store8(v Optional[byte]) {
	if !e.EA.Known {
		e.recordWrite(0, v)
		return
	}
	e.recordWrite(e.EA.Value, v)
	e.writeThrough(e.EA.Value, v)
}

// store16 writes a 16-bit v to the operand's EA, big-endian.
func (e *Emulator) store16(v Optional[uint16]) {
	if !e.EA.Known {
		e.write16(0, v)
		return
	}
	e.write16(e.EA.Value, v)
	e.writeThrough(e.EA.Value, Combine1(v, func(x uint16) byte { return byte(x >> 8) }))
	e.writeThrough(e.EA.Value+1, Combine1(v, func(x uint16) byte { return byte(x) }))
}

// writeThrough copies a known stored byte into Mem when the oracle
// accepts raw writes (memory.RAM does), so later reads see it.
func (e *Emulator) writeThrough(addr uint16, v Optional[byte]) {
	if w, ok := e.Mem.(interface{ WriteRaw(uint16, byte) }); ok && v.Known {
		w.WriteRaw(addr, v.Value)
	}
}

// mustByte and mustU16Optional are narrow helpers used only where the
// taint has already been checked by the caller (Combine1's callback is
// only invoked when its input is Known).
func mustByte(o Optional[byte]) byte { return o.Value }
func mustU16Optional(o Optional[uint16]) uint16 {
	if !o.Known {
		return 0
	}
	return o.Value
}

// Step decodes and executes ins, recording the bus accesses it predicts
// in Accesses. The next PC is taken from ins.PC, or from State.PC when
// ins.PC is unknown. Step itself always returns an empty Divergence;
// comparing the recorded accesses against the captured samples is done
// by CrossCheck.
func (e *Emulator) Step(ins *Instruction) Divergence {
	entry := Lookup(ins.Prefix, ins.Opcode, e.Variant)
	e.Accesses = e.Accesses[:0]
	e.before = snapshot(e.State)
	e.mode = entry.Mode
	e.branched = false
	length := ins.Length
	basePC := ins.PC
	if !basePC.Known {
		basePC = e.State.PC
	}
	e.nextPC = Combine1(basePC, func(pc uint16) uint16 { return pc + uint16(length) })

	ins.Postbyte = 0
	if entry.Mode.BaseMode() == Indexed || entry.Mode.BaseMode() == DirectBit || entry.Mode == Register {
		oi := 1
		if ins.Prefix != 0 {
			oi = 2
		}
		if entry.Mode == DirectImmediate || entry.Mode == ExtendedImmediate || entry.Mode == IndexedImmediate {
			oi++
		}
		if int(oi) < len(ins.Bytes) {
			ins.Postbyte = ins.Bytes[oi]
		}
	}

	e.resolveOperand(ins, entry.Mode)
	if entry.Exec != nil {
		entry.Exec(e, ins)
	}
	if !e.branched {
		e.State.PC = e.nextPC
	}
	return Divergence{}
}

// CrossCheck compares the Accesses recorded by the most recent Step
// against the data-cycle samples in window (those with a known Rnw),
// returning a Divergence and tainting relevant state when they disagree.
// Samples and accesses are paired positionally, in source order, which is
// sufficient for the single-access-per-cycle shape every 6809/6309
// instruction has.
func (e *Emulator) CrossCheck(window []sample.Sample) Divergence {
	ai := 0
	for _, s := range window {
		if !s.Rnw.Known {
			continue
		}
		if ai >= len(e.Accesses) {
			break
		}
		acc := e.Accesses[ai]
		ai++
		wantRead := !acc.Write
		gotRead := s.Rnw.Value
		if wantRead != gotRead {
			e.revertWrites()
			return Divergence{Mismatch: true, Detail: "read/write direction mismatch"}
		}
		if acc.Data.Known && acc.Data.Value != s.Data {
			e.revertWrites()
			return Divergence{Mismatch: true, Detail: "data mismatch"}
		}
	}
	return Divergence{}
}
