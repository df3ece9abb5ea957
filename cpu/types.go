// Package cpu implements the Motorola 6809/6809E instruction set, with the
// optional Hitachi 6309/6309E extensions: the opcode tables, the indexed
// post-byte decoder, the disassembler, and the reference emulator.
package cpu

// Optional is the tri-state ("known or unknown") value the spec's data
// model requires for every piece of processor state. Arithmetic helpers
// take these directly and propagate unknown without branching in the hot
// path (see Combine1/Combine2 below).
type Optional[T any] struct {
	Known bool
	Value T
}

// Known wraps v as a known Optional.
func Known[T any](v T) Optional[T] {
	return Optional[T]{Known: true, Value: v}
}

// Unk is the unknown Optional of T. It is also the zero value, but named
// for readability at call sites.
func Unk[T any]() Optional[T] {
	return Optional[T]{}
}

// Combine1 applies f to a single Optional, propagating unknown.
func Combine1[A, R any](a Optional[A], f func(A) R) Optional[R] {
	if !a.Known {
		return Unk[R]()
	}
	return Known(f(a.Value))
}

// Combine2 applies f to two Optionals, propagating unknown if either input
// is unknown. This is the taint rule spec.md §3 describes: "any operand
// unknown → result unknown".
func Combine2[A, B, R any](a Optional[A], b Optional[B], f func(A, B) R) Optional[R] {
	if !a.Known || !b.Known {
		return Unk[R]()
	}
	return Known(f(a.Value, b.Value))
}

// CPUVariant is the configured processor family.
type CPUVariant int

const (
	CPU6809 CPUVariant = iota
	CPU6809E
	CPU6309
	CPU6309E
)

// Is6309 reports whether v is either 6309 variant.
func (v CPUVariant) Is6309() bool {
	return v == CPU6309 || v == CPU6309E
}

// AddressingMode is the closed set of 6809/6309 operand-addressing forms.
type AddressingMode int

const (
	Inherent AddressingMode = iota
	Immediate8
	Immediate16
	Immediate32
	Direct
	DirectBit
	Extended
	Indexed
	Relative8
	Relative16
	Register
	DirectImmediate
	ExtendedImmediate
	IndexedImmediate
)

// BaseMode strips the 6309 bit-manipulation immediate prefix off a mode,
// collapsing DirectImmediate/ExtendedImmediate/IndexedImmediate to their
// underlying Direct/Extended/Indexed form. Every other mode maps to
// itself.
func (m AddressingMode) BaseMode() AddressingMode {
	switch m {
	case DirectImmediate:
		return Direct
	case ExtendedImmediate:
		return Extended
	case IndexedImmediate:
		return Indexed
	default:
		return m
	}
}

// OpcodeEntry is a static description of one (prefix, opcode) byte pair,
// populated for every legal instruction of the configured CPU.
type OpcodeEntry struct {
	Mnemonic      string
	Mode          AddressingMode
	BaseCycles    uint8
	Undocumented  bool
	Exec          func(e *Emulator, ins *Instruction) // nil for the synthetic illegal record
}

// illegalEntry is returned for any (prefix, opcode) absent from both
// tables: Inherent mode, 1 cycle, so emulation advances without stalling.
var illegalEntry = OpcodeEntry{
	Mnemonic:     "???",
	Mode:         Inherent,
	BaseCycles:   1,
	Undocumented: true,
}

// Instruction is one decoded instruction: its raw bytes plus the
// structural breakdown the disassembler and emulator both need.
type Instruction struct {
	PC       Optional[uint16]
	Bytes    [8]byte
	Length   uint8 // 1..=8, number of bytes actually populated
	Prefix   uint8 // 0, 0x10, or 0x11
	Opcode   uint8
	Postbyte uint8 // valid only when Mode requires one
}

// key returns the table lookup key for (prefix, opcode): the 16-bit
// concatenation dis_6809.c's disassembler itself forms when prefix is
// present ("opcode = (b0 << 8) | b1").
func key(prefix, opcode uint8) uint16 {
	if prefix == 0 {
		return uint16(opcode)
	}
	return uint16(prefix)<<8 | uint16(opcode)
}

// IndexedOperand is the resolved shape of one indexed-addressing
// post-byte, per spec.md §4.B.
type IndexedOperand struct {
	Formula     IndexFormula
	ExtraBytes  uint8 // 0, 1, or 2
	ExtraCycles uint8
	Indirect    bool
	Legal       bool
	Operand     string // disassembly text fragment, e.g. "B,X" or "$10,PCR"
}

// IndexFormula names how the effective address is computed for one
// indexed sub-mode; the emulator switches on this to resolve an EA.
type IndexFormula int

const (
	FormOffset5 IndexFormula = iota // n5,R
	FormIncr1                       // ,R+
	FormIncr2                       // ,R++
	FormDecr1                       // ,-R
	FormDecr2                       // ,--R
	FormZero                        // ,R
	FormAccumB                       // B,R
	FormAccumA                       // A,R
	FormAccumE                       // E,R (6309)
	FormOffset8                     // n7,R
	FormOffset16                    // n15,R
	FormAccumF                       // F,R (6309)
	FormAccumD                       // D,R
	FormPCR8                        // n7,PCR
	FormPCR16                       // n15,PCR
	FormAccumW                      // W,R (6309)
	FormExtIndirect                 // [n]
	FormW                           // ,W (6309)
	FormW16                         // n15,W (6309)
	FormWIncr2                      // ,W++ (6309)
	FormWDecr2                      // ,--W (6309)
	FormIllegal
)
