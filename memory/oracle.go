// Package memory models the memory oracle the emulator consults when a
// captured bus cycle did not witness a read (a "dead cycle"), plus the
// advisory audit hooks machine-specific overlays can use to log or shadow
// an address space.
//
// This package is deliberately small: the teacher's own mem.Bus is a flat
// 64kB array with no mirroring and no locking, and the oracle here keeps
// that shape. Machine-specific overlays (e.g. a Dragon32 ROM image) are
// external collaborators that can wrap an Oracle; this package only
// defines the contract and the plain-RAM default.
package memory

import "decoder6809/sample"

// AccessKind distinguishes why the emulator is touching a given address,
// so an audit hook can tell an instruction fetch from a stack push.
type AccessKind int

const (
	Instr AccessKind = iota
	Pointer
	Data
	Stack
)

// Oracle answers what the bus would return at an address, independent of
// the capture, and offers advisory hooks for logging or modelling a
// machine-specific address space.
type Oracle interface {
	// ReadRaw reports the byte at addr, or ok=false if the oracle has no
	// opinion (e.g. unmapped, or genuinely unknown).
	ReadRaw(addr uint16) (value byte, ok bool)

	// Read and Write are audit hooks that are part of the contract, but
	// the cpu package's emulator does not call them: it consults only
	// ReadRaw, and mirrors known stores through WriteRaw when the oracle
	// has that method.
	Read(s sample.Sample, ea uint16, kind AccessKind)
	Write(s sample.Sample, ea uint16, kind AccessKind)
}

// RAM is the default Oracle: a flat 64kB array, mirroring the teacher's
// mem.Bus shape (a single backing array, zero-valued on construction,
// pointer-receiver Read/Write).
type RAM struct {
	data [65536]byte
	init [65536]bool
}

// NewRAM returns a RAM with every location unknown (as a freshly attached
// memory oracle would be, before any image is loaded into it).
func NewRAM() *RAM {
	return &RAM{}
}

// Load copies program into the RAM starting at addr, marking each loaded
// byte as known.
func (r *RAM) Load(addr uint16, program []byte) {
	for i, b := range program {
		a := addr + uint16(i)
		r.data[a] = b
		r.init[a] = true
	}
}

func (r *RAM) ReadRaw(addr uint16) (byte, bool) {
	return r.data[addr], r.init[addr]
}

func (r *RAM) WriteRaw(addr uint16, value byte) {
	r.data[addr] = value
	r.init[addr] = true
}

func (r *RAM) Read(_ sample.Sample, _ uint16, _ AccessKind)  {}
func (r *RAM) Write(_ sample.Sample, _ uint16, _ AccessKind) {}
