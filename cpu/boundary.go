package cpu

import "decoder6809/sample"

// Boundary returns how many samples from the head of q form the next
// instruction. It prefers the LIC-driven mode (exact) and falls back to
// the computed mode when any sample in the window lacks a known Lic bit.
func Boundary(q *sample.Queue, st *State, variant CPUVariant) (cycles int, err error) {
	head := q.Head(sample.Depth)
	if n, ok := licBoundary(head); ok {
		return n, nil
	}
	return computedBoundary(head, st, variant)
}

// licBoundary looks for the first sample with a known, true Lic bit. If
// any sample before that point has an unknown Lic, the mode can't be
// trusted and the caller should fall back to computed mode.
func licBoundary(head []sample.Sample) (int, bool) {
	for i, s := range head {
		if !s.Lic.Known {
			return 0, false
		}
		if s.Lic.Value {
			return i + 1, true
		}
	}
	return 0, false
}

// computedBoundary derives the instruction length from the opcode table,
// working forward from the opcode fetch: base cycles, plus indexed-mode
// extras, plus taken-branch extras when the predicate is known, plus a
// fixed per-mnemonic DIVD/DIVQ extra (see divideExtra). Per the Open
// Question's normative answer,
// this always works forward from the start of the instruction rather than
// backward from a guessed last cycle, since the required operand bytes
// are not all observable until they've actually been fetched.
func computedBoundary(head []sample.Sample, st *State, variant CPUVariant) (int, error) {
	if len(head) == 0 {
		return 0, errTruncated
	}
	i := 0
	prefix := uint8(0)
	opcode := head[i].Data
	i++
	if opcode == 0x10 || opcode == 0x11 {
		if i >= len(head) {
			return 0, errTruncated
		}
		prefix = opcode
		opcode = head[i].Data
		i++
	}
	entry := Lookup(prefix, opcode, variant)
	cycles := int(entry.BaseCycles)

	extraBytes, extraCycles, opErr := operandExtras(head, i, entry, variant)
	if opErr != nil {
		return 0, opErr
	}
	i += extraBytes
	cycles += extraCycles

	if branchExtra, known := takenBranchExtra(entry, st); known {
		cycles += branchExtra
	} else if isLongCondBranch(entry.Mnemonic) {
		return 0, errUnpredictable
	}

	if isDivide(entry.Mnemonic) {
		extra, ok := divideExtra(entry.Mnemonic, head, i)
		if !ok {
			return 0, errUnpredictable
		}
		cycles += extra
	}

	if i > len(head) {
		return 0, errTruncated
	}
	if i > cycles {
		return i, nil
	}
	return cycles, nil
}

// operandExtras reports how many additional instruction bytes and cycles
// entry's addressing mode consumes beyond the opcode byte(s), starting at
// offset i into head.
func operandExtras(head []sample.Sample, i int, entry OpcodeEntry, variant CPUVariant) (bytes int, extraCycles int, err error) {
	mode := entry.Mode
	if mode == DirectImmediate || mode == ExtendedImmediate || mode == IndexedImmediate {
		bytes++ // the extra immediate byte these three modes carry
		mode = mode.BaseMode()
	}

	switch mode {
	case Immediate8, Direct, Relative8, DirectBit:
		bytes++
	case Immediate16, Extended, Relative16:
		bytes += 2
	case Immediate32:
		bytes += 4
	case Register:
		bytes++
	case Indexed:
		if i >= len(head) {
			return bytes, extraCycles, errTruncated
		}
		pb := head[i].Data
		io := DecodeIndexed(pb, variant)
		bytes += 1 + int(io.ExtraBytes)
		extraCycles += int(io.ExtraCycles)
	}
	return bytes, extraCycles, nil
}

// takenBranchExtra reports the extra cycles a taken long conditional
// branch costs (1 extra over the not-taken base), when the branch
// predicate can be evaluated against st's current flags. ok is false when
// a needed flag is unknown.
func takenBranchExtra(entry OpcodeEntry, st *State) (extra int, ok bool) {
	if !isLongCondBranch(entry.Mnemonic) {
		return 0, true
	}
	taken, known := evalBranchPredicate(entry.Mnemonic, st)
	if !known {
		return 0, false
	}
	if taken {
		return 1, true
	}
	return 0, true
}

// condTable mirrors the predicate table makeCondBranch builds in
// instructions.go, keyed by the short-branch mnemonic (BHI, BEQ, ...) so
// the boundary finder can evaluate a long branch's condition without
// re-running Exec.
var condTable = map[string]func(cc *CCFlags) Optional[bool]{
	"BHI": func(cc *CCFlags) Optional[bool] { return Combine2(cc.C, cc.Z, func(c, z bool) bool { return !c && !z }) },
	"BLS": func(cc *CCFlags) Optional[bool] { return Combine2(cc.C, cc.Z, func(c, z bool) bool { return c || z }) },
	"BCC": func(cc *CCFlags) Optional[bool] { return Combine1(cc.C, func(c bool) bool { return !c }) },
	"BCS": func(cc *CCFlags) Optional[bool] { return cc.C },
	"BNE": func(cc *CCFlags) Optional[bool] { return Combine1(cc.Z, func(z bool) bool { return !z }) },
	"BEQ": func(cc *CCFlags) Optional[bool] { return cc.Z },
	"BVC": func(cc *CCFlags) Optional[bool] { return Combine1(cc.V, func(v bool) bool { return !v }) },
	"BVS": func(cc *CCFlags) Optional[bool] { return cc.V },
	"BPL": func(cc *CCFlags) Optional[bool] { return Combine1(cc.N, func(n bool) bool { return !n }) },
	"BMI": func(cc *CCFlags) Optional[bool] { return cc.N },
	"BGE": func(cc *CCFlags) Optional[bool] { return Combine2(cc.N, cc.V, func(n, v bool) bool { return n == v }) },
	"BLT": func(cc *CCFlags) Optional[bool] { return Combine2(cc.N, cc.V, func(n, v bool) bool { return n != v }) },
	"BGT": func(cc *CCFlags) Optional[bool] {
		return Combine2(Combine2(cc.N, cc.V, func(n, v bool) bool { return n == v }), cc.Z, func(nv, z bool) bool { return nv && !z })
	},
	"BLE": func(cc *CCFlags) Optional[bool] {
		return Combine2(Combine2(cc.N, cc.V, func(n, v bool) bool { return n != v }), cc.Z, func(nv, z bool) bool { return nv || z })
	},
}

func isLongCondBranch(mnemonic string) bool {
	if len(mnemonic) < 3 || mnemonic[0] != 'L' {
		return false
	}
	_, found := condTable[mnemonic[1:]]
	return found
}

// evalBranchPredicate evaluates the named long-branch mnemonic's
// condition against st.CC, mirroring branchIf's table in instructions.go.
func evalBranchPredicate(mnemonic string, st *State) (taken bool, known bool) {
	cond, found := condTable[mnemonic[1:]] // strip the leading L
	if !found {
		return false, false
	}
	result := cond(&st.CC)
	return result.Value, result.Known
}

func isDivide(mnemonic string) bool {
	return mnemonic == "DIVD" || mnemonic == "DIVQ"
}

// divideExtra computes the DIVD/DIVQ cycle addend from the divisor byte,
// once it has actually been fetched (forward-counting, per the Open
// Question). DIVD takes a byte divisor; DIVQ's divisor is the low 16 bits
// of Q addressed the same way. The addend is fixed: 2 cycles for DIVD and
// 4 for DIVQ, or 0 when the byte read is zero; it does not vary with the
// divisor's magnitude or the quotient's size. It returns not-ok when the
// byte hasn't been captured yet.
func divideExtra(mnemonic string, head []sample.Sample, i int) (int, bool) {
	if i >= len(head) {
		return 0, false
	}
	divisor := head[i].Data
	if divisor == 0 {
		return 0, true // trap path: no extra operand cycles
	}
	if mnemonic == "DIVD" {
		return 2, true
	}
	return 4, true
}

