package cpu

import (
	"decoder6809/mask"
	"fmt"
)

// indexedTable is the 256-entry post-byte decode table, built once at
// package init per REDESIGN FLAGS "Indexed-mode table": data, not nested
// conditionals. It holds the 6809 decode of every post-byte; the 6309
// W-mode overlays (indexedTableW, indexedTableWIndirect) are consulted
// separately for the 8 post-bytes that mean something different on 6309.
var indexedTable [256]IndexedOperand

// indexedTableW covers the four 6309-only direct W-based sub-modes,
// selected when bit 7 is set, (pb & 0x1f) == 0x0f and the configured CPU
// is 6309/6309E;
// keyed by bits 6:5 of the post-byte (0..3).
var indexedTableW [4]IndexedOperand

// indexedTableWIndirect covers the same four W-based sub-modes in their
// indirect form ([,W], [n15,W], [,W++], [,--W]), selected when bit 7 is
// set and (pb & 0x1f) == 0x10.
var indexedTableWIndirect [4]IndexedOperand

func init() {
	for pb := 0; pb < 256; pb++ {
		indexedTable[pb] = buildIndexedEntry(byte(pb))
	}
	indexedTableW[0] = IndexedOperand{Formula: FormW, ExtraCycles: 4, Legal: true, Operand: ",W"}
	indexedTableW[1] = IndexedOperand{Formula: FormW16, ExtraBytes: 2, ExtraCycles: 7, Legal: true, Operand: "n15,W"}
	indexedTableW[2] = IndexedOperand{Formula: FormWIncr2, ExtraCycles: 7, Legal: true, Operand: ",W++"}
	indexedTableW[3] = IndexedOperand{Formula: FormWDecr2, ExtraCycles: 7, Legal: true, Operand: ",--W"}

	const indirectCycles = 3
	indexedTableWIndirect[0] = IndexedOperand{Formula: FormW, ExtraCycles: 4 + indirectCycles, Indirect: true, Legal: true, Operand: "[,W]"}
	indexedTableWIndirect[1] = IndexedOperand{Formula: FormW16, ExtraBytes: 2, ExtraCycles: 7 + indirectCycles, Indirect: true, Legal: true, Operand: "[n15,W]"}
	indexedTableWIndirect[2] = IndexedOperand{Formula: FormWIncr2, ExtraCycles: 7 + indirectCycles, Indirect: true, Legal: true, Operand: "[,W++]"}
	indexedTableWIndirect[3] = IndexedOperand{Formula: FormWDecr2, ExtraCycles: 7 + indirectCycles, Indirect: true, Legal: true, Operand: "[,--W]"}
}

func buildIndexedEntry(pb byte) IndexedOperand {
	reg := regi2[mask.Range(pb, mask.I2, mask.I3)]

	if pb&0x80 == 0 {
		// 5-bit signed offset from R; never indirect.
		return IndexedOperand{
			Formula:     FormOffset5,
			ExtraCycles: 1,
			Legal:       true,
			Operand:     fmt.Sprintf("offset5,%s", reg),
		}
	}

	indirect := pb&0x10 != 0
	indirectCycles := uint8(0)
	if indirect {
		indirectCycles = 3
	}

	switch mask.Range(pb, mask.I5, mask.I8) {
	case 0: // ,R+
		return IndexedOperand{Formula: FormIncr1, ExtraCycles: 2 + indirectCycles, Indirect: indirect, Legal: !indirect, Operand: fmt.Sprintf(",%s+", reg)}
	case 1: // ,R++
		return IndexedOperand{Formula: FormIncr2, ExtraCycles: 3 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf(",%s++", reg)}
	case 2: // ,-R
		return IndexedOperand{Formula: FormDecr1, ExtraCycles: 2 + indirectCycles, Indirect: indirect, Legal: !indirect, Operand: fmt.Sprintf(",-%s", reg)}
	case 3: // ,--R
		return IndexedOperand{Formula: FormDecr2, ExtraCycles: 3 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf(",--%s", reg)}
	case 4: // ,R
		return IndexedOperand{Formula: FormZero, ExtraCycles: 0 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf(",%s", reg)}
	case 5: // B,R
		return IndexedOperand{Formula: FormAccumB, ExtraCycles: 1 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf("B,%s", reg)}
	case 6: // A,R
		return IndexedOperand{Formula: FormAccumA, ExtraCycles: 1 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf("A,%s", reg)}
	case 7: // E,R (6309)
		return IndexedOperand{Formula: FormAccumE, ExtraCycles: 1 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf("E,%s", reg)}
	case 8: // n7,R
		return IndexedOperand{Formula: FormOffset8, ExtraBytes: 1, ExtraCycles: 1 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf("$nn,%s", reg)}
	case 9: // n15,R
		return IndexedOperand{Formula: FormOffset16, ExtraBytes: 2, ExtraCycles: 4 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf("$nnnn,%s", reg)}
	case 10: // F,R (6309)
		return IndexedOperand{Formula: FormAccumF, ExtraCycles: 1 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf("F,%s", reg)}
	case 11: // D,R
		return IndexedOperand{Formula: FormAccumD, ExtraCycles: 4 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf("D,%s", reg)}
	case 12: // n7,PCR
		return IndexedOperand{Formula: FormPCR8, ExtraBytes: 1, ExtraCycles: 1 + indirectCycles, Indirect: indirect, Legal: true, Operand: "$nn,PCR"}
	case 13: // n15,PCR
		return IndexedOperand{Formula: FormPCR16, ExtraBytes: 2, ExtraCycles: 5 + indirectCycles, Indirect: indirect, Legal: true, Operand: "$nnnn,PCR"}
	case 14: // W,R (6309)
		return IndexedOperand{Formula: FormAccumW, ExtraCycles: 4 + indirectCycles, Indirect: indirect, Legal: true, Operand: fmt.Sprintf("W,%s", reg)}
	case 15: // [n] extended indirect, only legal when the indirect bit is also set
		return IndexedOperand{Formula: FormExtIndirect, ExtraBytes: 2, ExtraCycles: 5, Indirect: indirect, Legal: indirect, Operand: "[$nnnn]"}
	}
	return IndexedOperand{Formula: FormIllegal, Legal: false}
}

// DecodeIndexed resolves a post-byte into its addressing shape. On a 6809
// (not 6309), the E,R/F,R/W,R and W-based sub-modes are illegal: the entry
// comes back with Legal=false but ExtraBytes still correct, so cycle
// counting stays consistent (spec.md §4.B).
func DecodeIndexed(pb byte, v CPUVariant) IndexedOperand {
	if v.Is6309() && pb&0x80 != 0 && pb&0x1f == 0x0f {
		return indexedTableW[mask.Range(pb, mask.I2, mask.I3)]
	}
	if v.Is6309() && pb&0x80 != 0 && pb&0x1f == 0x10 {
		return indexedTableWIndirect[mask.Range(pb, mask.I2, mask.I3)]
	}
	e := indexedTable[pb]
	if !v.Is6309() {
		switch e.Formula {
		case FormAccumE, FormAccumF, FormAccumW:
			e.Legal = false
		}
	}
	return e
}

// sign5 exposes the shared 5-bit sign extension used by both the decoder
// and the emulator's effective-address computation for FormOffset5.
func sign5(pb byte) int16 {
	return mask.SignExtend5(pb)
}
