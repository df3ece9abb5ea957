// Package sample models a single captured bus cycle and the sliding window
// of cycles the decoder consumes them through.
//
// A Sample's control-line fields (Rnw, Lic, Bs, Ba, AddrLsb) are optional:
// a logic-analyser capture may not have wired up every pin, in which case
// the corresponding field is reported as unknown rather than as a 0 or 1.
package sample

// Kind distinguishes an ordinary cycle from the final cycle of the trace.
type Kind int

const (
	Normal Kind = iota
	Last
)

// Bit is a tri-state control-line value: known-0, known-1, or unknown.
type Bit struct {
	Known bool
	Value bool
}

// Set returns a known Bit holding v.
func Set(v bool) Bit { return Bit{Known: true, Value: v} }

// Unknown is the zero value, but named for readability at call sites.
var Unknown = Bit{}

// Sample is a single bus cycle.
type Sample struct {
	Kind    Kind
	Seq     uint32
	Data    byte
	Rnw     Bit // read (true) / not-write (false)
	Lic     Bit // last-instruction-cycle
	Bs      Bit // bus status
	Ba      Bit // bus available
	AddrLsb Bit // low bit of the address bus, when only that much is captured
}

// Source is the pull interface a sample producer implements. It mirrors a
// logic-analyser style capture: Next returns false once the stream is
// exhausted.
type Source interface {
	Next() (Sample, bool)
}

// SliceSource is a Source backed by a pre-built slice, used by tests and by
// any caller that has already materialized a trace in memory.
type SliceSource struct {
	samples []Sample
	pos     int
}

// NewSliceSource wraps samples, stamping sequence numbers and marking the
// final sample as Kind Last if the caller did not already do so.
func NewSliceSource(samples []Sample) *SliceSource {
	cp := make([]Sample, len(samples))
	copy(cp, samples)
	for i := range cp {
		if cp[i].Seq == 0 {
			cp[i].Seq = uint32(i)
		}
	}
	if n := len(cp); n > 0 {
		cp[n-1].Kind = Last
	}
	return &SliceSource{samples: cp}
}

func (s *SliceSource) Next() (Sample, bool) {
	if s.pos >= len(s.samples) {
		return Sample{}, false
	}
	sm := s.samples[s.pos]
	s.pos++
	return sm, true
}
