package cpu

import (
	"fmt"
	"strings"

	"decoder6809/mask"
)

// Disassemble renders ins as text, in the traditional 6809 assembler
// column layout: mnemonic, then operand, padded the way dis_6809.c pads
// its output (mnemonic field six characters wide).
func Disassemble(ins *Instruction) string {
	entry := Lookup(ins.Prefix, ins.Opcode, variant)
	mnemonic := entry.Mnemonic
	operand := operandText(ins, entry)
	if operand == "" {
		return mnemonic
	}
	return fmt.Sprintf("%-6s%s", mnemonic, operand)
}

func operandText(ins *Instruction, entry OpcodeEntry) string {
	oi := 1
	if ins.Prefix != 0 {
		oi = 2
	}

	mode := entry.Mode
	var immText string
	if mode == DirectImmediate || mode == ExtendedImmediate || mode == IndexedImmediate {
		immText = fmt.Sprintf("#$%02x,", ins.Bytes[oi])
		oi++
		mode = mode.BaseMode()
	}

	switch mode {
	case Inherent:
		return ""
	case Immediate8:
		if isPushPull(entry.Mnemonic) {
			return pushPullText(entry.Mnemonic, ins.Bytes[oi])
		}
		return fmt.Sprintf("#$%02x", ins.Bytes[oi])
	case Immediate16:
		return fmt.Sprintf("#$%04x", uint16(ins.Bytes[oi])<<8|uint16(ins.Bytes[oi+1]))
	case Immediate32:
		return fmt.Sprintf("#$%08x", uint32(ins.Bytes[oi])<<24|uint32(ins.Bytes[oi+1])<<16|uint32(ins.Bytes[oi+2])<<8|uint32(ins.Bytes[oi+3]))
	case Direct:
		return immText + fmt.Sprintf("$%02x", ins.Bytes[oi])
	case DirectBit:
		return directBitText(ins.Bytes[oi], ins.Bytes[oi+1])
	case Extended:
		return immText + fmt.Sprintf("$%04x", uint16(ins.Bytes[oi])<<8|uint16(ins.Bytes[oi+1]))
	case Indexed:
		return immText + indexedText(ins.Bytes[oi:])
	case Relative8:
		return fmt.Sprintf("$%02x", ins.Bytes[oi])
	case Relative16:
		return fmt.Sprintf("$%04x", uint16(ins.Bytes[oi])<<8|uint16(ins.Bytes[oi+1]))
	case Register:
		if entry.Mnemonic == "TFM" {
			return tfmText(ins.Opcode, ins.Bytes[oi])
		}
		return regPairText(ins.Bytes[oi])
	}
	return ""
}

// isPushPull reports whether mnemonic is one of the four stack ops whose
// Immediate8 byte is actually a register-selection bitmask, not a value.
func isPushPull(mnemonic string) bool {
	switch mnemonic {
	case "PSHS", "PULS", "PSHU", "PULU":
		return true
	}
	return false
}

// pushPullText renders a PSHS/PULS/PSHU/PULU bitmask as a comma-separated
// register list, MSB (PC) to LSB (CC), using pshuregi in place of
// pshsregi for the U-stack variants (which push/pull S instead of U).
func pushPullText(mnemonic string, mask byte) string {
	table := pshsregi
	if mnemonic == "PSHU" || mnemonic == "PULU" {
		table = pshuregi
	}
	var regs []string
	for bit := 7; bit >= 0; bit-- {
		if mask&(1<<uint(bit)) != 0 {
			regs = append(regs, table[7-bit])
		}
	}
	return strings.Join(regs, ",")
}

// regPairText formats a TFR/EXG/ADDR-family postbyte as "SRC,DST".
func regPairText(pb byte) string {
	return fmt.Sprintf("%s,%s", regi4[pb>>4], regi4[pb&0x0f])
}

// tfmText names the register pair plus the increment/decrement glyphs for
// each side of a TFM instruction. The four TFM opcodes (0x38-0x3B under
// prefix 0x10) select which glyph table row applies.
func tfmText(opcode byte, pb byte) string {
	idx := int(opcode) - 0x38
	if idx < 0 || idx > 3 {
		idx = 0
	}
	r0, r1 := tfmreg[pb>>4], tfmreg[pb&0x0f]
	return fmt.Sprintf("%c%s,%c%s", r0, string(tfmr0inc[idx]), r1, string(tfmr1inc[idx]))
}

// directBitText formats the {CC|A|B},sbit,dbit,$hh operand shared by
// LDBT/STBT/BAND/BOR/BEOR and their inverted forms.
func directBitText(pb, addr byte) string {
	src := []string{"CC", "A", "B", "??"}[mask.Range(pb, mask.I1, mask.I2)]
	sbit := mask.Range(pb, mask.I3, mask.I5)
	dbit := mask.Range(pb, mask.I6, mask.I8)
	return fmt.Sprintf("%s,%d,%d,$%02x", src, sbit, dbit, addr)
}

// indexedText formats an indexed post-byte and its extra bytes (if any)
// into assembler syntax, substituting the actual offset/address into the
// IndexedOperand's placeholder text.
func indexedText(b []byte) string {
	pb := b[0]
	io := DecodeIndexed(pb, variant)
	text := io.Operand

	switch io.ExtraBytes {
	case 1:
		text = strings.Replace(text, "$nn", fmt.Sprintf("$%02x", b[1]), 1)
		text = strings.Replace(text, "offset5", fmt.Sprintf("$%02x", b[1]), 1)
	case 2:
		word := uint16(b[1])<<8 | uint16(b[2])
		text = strings.Replace(text, "$nnnn", fmt.Sprintf("$%04x", word), 1)
		text = strings.Replace(text, "n15", fmt.Sprintf("$%04x", word), 1)
	}
	if pb&0x80 == 0 {
		text = strings.Replace(text, "offset5", fmt.Sprintf("$%02x", sign5(pb)&0x1f), 1)
	}
	if io.Indirect && !strings.HasPrefix(text, "[") {
		text = "[" + text + "]"
	}
	return text
}
