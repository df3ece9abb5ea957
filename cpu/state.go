package cpu

// CCFlags is the condition-code register, one tri-state bit per flag.
// Field names follow the mnemonics printed on the 6809 data sheet (E..C,
// MSB to LSB): Entire, FIRQ-mask, Half-carry, IRQ-mask, Negative, Zero,
// Overflow, Carry.
type CCFlags struct {
	E Optional[bool]
	F Optional[bool]
	H Optional[bool]
	I Optional[bool]
	N Optional[bool]
	Z Optional[bool]
	V Optional[bool]
	C Optional[bool]
}

// MDFlags is the 6309-only MD (mode) register: native-mode flag, FIRQ
// native-mode flag, illegal-instruction trap, and divide-by-zero trap.
type MDFlags struct {
	Native       Optional[bool]
	FIRQNative   Optional[bool]
	IllegalInstr Optional[bool]
	DivZero      Optional[bool]
}

// State is the processor's register/flag bank. Every field is tri-state:
// unknown until something in the trace establishes it.
type State struct {
	A, B   Optional[byte]
	X, Y   Optional[uint16]
	U, S   Optional[uint16]
	DP     Optional[byte]
	PC     Optional[uint16]
	CC     CCFlags

	// 6309-only extension registers.
	RegE, RegF Optional[byte]
	RegV       Optional[uint16]
	MD         MDFlags
}

// NewState returns a State born entirely unknown, per spec.md §3's
// lifecycle: "Processor state is born entirely unknown."
func NewState() *State {
	return &State{}
}

// D returns the combined 16-bit accumulator A:B.
func (s *State) D() Optional[uint16] {
	return Combine2(s.A, s.B, func(a, b byte) uint16 { return uint16(a)<<8 | uint16(b) })
}

// SetD splits a known/unknown 16-bit value back into A and B.
func (s *State) SetD(d Optional[uint16]) {
	if !d.Known {
		s.A = Unk[byte]()
		s.B = Unk[byte]()
		return
	}
	s.A = Known(byte(d.Value >> 8))
	s.B = Known(byte(d.Value))
}

// W returns the combined 6309 extension register E:F.
func (s *State) W() Optional[uint16] {
	return Combine2(s.RegE, s.RegF, func(e, f byte) uint16 { return uint16(e)<<8 | uint16(f) })
}

// SetW splits a known/unknown 16-bit value back into RegE and RegF.
func (s *State) SetW(w Optional[uint16]) {
	if !w.Known {
		s.RegE = Unk[byte]()
		s.RegF = Unk[byte]()
		return
	}
	s.RegE = Known(byte(w.Value >> 8))
	s.RegF = Known(byte(w.Value))
}

// Q returns the combined 32-bit D:W register (6309 LDQ/STQ).
func (s *State) Q() Optional[uint32] {
	return Combine2(s.D(), s.W(), func(d, w uint16) uint32 { return uint32(d)<<16 | uint32(w) })
}

// SetQ splits a known/unknown 32-bit value into D and W.
func (s *State) SetQ(q Optional[uint32]) {
	if !q.Known {
		s.SetD(Unk[uint16]())
		s.SetW(Unk[uint16]())
		return
	}
	s.SetD(Known(uint16(q.Value >> 16)))
	s.SetW(Known(uint16(q.Value)))
}

// Reset applies the documented 6809/6309 reset behaviour: S/X/Y/U/A/B/DP
// (and, on 6309, E/F/V) become unknown, I and F are set (interrupts
// masked), and PC is supplied by the caller once the reset-vector fetch
// has been observed. DP is only documented as cleared on 6309; on 6809 it
// remains unknown, exactly as spec.md §3's lifecycle states.
func (s *State) Reset(v CPUVariant, pc uint16) {
	*s = State{}
	s.PC = Known(pc)
	s.CC.I = Known(true)
	s.CC.F = Known(true)
	if v.Is6309() {
		s.DP = Known(byte(0))
		s.MD = MDFlags{
			Native:     Known(false),
			FIRQNative: Known(false),
		}
	}
}
