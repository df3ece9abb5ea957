// Package capture turns a text cycle trace into a sample.Source, the same
// "small struct + plain methods, no locking" shape the teacher's mem.Bus
// uses for its own I/O-adjacent concern.
package capture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"decoder6809/sample"
)

// Reader implements sample.Source by scanning whitespace-delimited cycle
// records from r. Each line is: "seq data rnw lic bs ba addr_lsb", where
// seq and data are given in hex (data is one byte) and the remaining
// fields are each "0", "1", or "-" for unknown — the same sentinel
// convention defs.h's packed int8_t rnw field uses (-1 means unknown),
// spelled out as a text token since this format is line-oriented.
type Reader struct {
	scan *bufio.Scanner
	err  error
}

// NewReader wraps r, ready to be pulled from as a sample.Source.
func NewReader(r io.Reader) *Reader {
	return &Reader{scan: bufio.NewScanner(r)}
}

// Err returns the first parse error encountered, if any. Once non-nil,
// Next always returns (Sample{}, false).
func (r *Reader) Err() error { return r.err }

func (r *Reader) Next() (sample.Sample, bool) {
	if r.err != nil {
		return sample.Sample{}, false
	}
	for r.scan.Scan() {
		line := strings.TrimSpace(r.scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sm, err := parseLine(line)
		if err != nil {
			r.err = err
			return sample.Sample{}, false
		}
		return sm, true
	}
	if err := r.scan.Err(); err != nil {
		r.err = err
	}
	return sample.Sample{}, false
}

func parseLine(line string) (sample.Sample, error) {
	fields := strings.Fields(line)
	if len(fields) < 7 {
		return sample.Sample{}, fmt.Errorf("capture: malformed record %q: want 7 fields, got %d", line, len(fields))
	}

	seq, err := strconv.ParseUint(fields[0], 16, 32)
	if err != nil {
		return sample.Sample{}, fmt.Errorf("capture: bad seq %q: %w", fields[0], err)
	}
	data, err := strconv.ParseUint(fields[1], 16, 8)
	if err != nil {
		return sample.Sample{}, fmt.Errorf("capture: bad data %q: %w", fields[1], err)
	}

	rnw, err := parseBit(fields[2])
	if err != nil {
		return sample.Sample{}, fmt.Errorf("capture: bad rnw %q: %w", fields[2], err)
	}
	lic, err := parseBit(fields[3])
	if err != nil {
		return sample.Sample{}, fmt.Errorf("capture: bad lic %q: %w", fields[3], err)
	}
	bs, err := parseBit(fields[4])
	if err != nil {
		return sample.Sample{}, fmt.Errorf("capture: bad bs %q: %w", fields[4], err)
	}
	ba, err := parseBit(fields[5])
	if err != nil {
		return sample.Sample{}, fmt.Errorf("capture: bad ba %q: %w", fields[5], err)
	}
	addrLsb, err := parseBit(fields[6])
	if err != nil {
		return sample.Sample{}, fmt.Errorf("capture: bad addr_lsb %q: %w", fields[6], err)
	}

	return sample.Sample{
		Seq:     uint32(seq),
		Data:    byte(data),
		Rnw:     rnw,
		Lic:     lic,
		Bs:      bs,
		Ba:      ba,
		AddrLsb: addrLsb,
	}, nil
}

// parseBit parses a single tri-state column: "-" is unknown, "0"/"1" known.
func parseBit(tok string) (sample.Bit, error) {
	switch tok {
	case "-":
		return sample.Unknown, nil
	case "0":
		return sample.Set(false), nil
	case "1":
		return sample.Set(true), nil
	}
	return sample.Bit{}, fmt.Errorf("want 0, 1, or -, got %q", tok)
}
