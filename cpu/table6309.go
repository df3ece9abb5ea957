package cpu

// table6309 overlays the Hitachi 6309 extensions on top of table6809:
// the register-register ALU family, TFM block moves, the direct-bit
// family, the AIM/OIM/EIM/TIM bit-manipulation immediates, SEXW, and
// DIVD/DIVQ/MULD. Looked up before table6809 by Lookup.
var table6309 = map[uint16]OpcodeEntry{}

func init() {
	add := func(prefix, opcode uint8, entry OpcodeEntry) {
		table6309[key(prefix, opcode)] = entry
	}

	// Bit-manipulation immediates: mnemonic DP,#imm / ,X etc (base mode
	// Direct/Extended/Indexed, with an extra leading immediate byte).
	add(0, 0x01, e("OIM", DirectImmediate, 6, execOIM))
	add(0, 0x02, e("AIM", DirectImmediate, 6, execAIM))
	add(0, 0x05, e("EIM", DirectImmediate, 6, execEIM))
	add(0, 0x0B, e("TIM", DirectImmediate, 6, execTIM))
	add(0, 0x61, e("OIM", IndexedImmediate, 6, execOIM))
	add(0, 0x62, e("AIM", IndexedImmediate, 6, execAIM))
	add(0, 0x65, e("EIM", IndexedImmediate, 6, execEIM))
	add(0, 0x6B, e("TIM", IndexedImmediate, 6, execTIM))
	add(0, 0x71, e("OIM", ExtendedImmediate, 7, execOIM))
	add(0, 0x72, e("AIM", ExtendedImmediate, 7, execAIM))
	add(0, 0x75, e("EIM", ExtendedImmediate, 7, execEIM))
	add(0, 0x7B, e("TIM", ExtendedImmediate, 7, execTIM))

	add(0, 0x14, e("SEXW", Inherent, 4, execSEXW))
	add(0, 0xCD, e("LDQ", Immediate32, 5, execLDQ))
	add(0x11, 0x8E, e("LDQ", Immediate32, 5, execLDQ)) // alternate encoding some assemblers emit

	// Prefix 0x10: DIVQ, direct-bit family, TFM. LDQ memory forms and
	// PSHSW/PULSW/PSHUW/PULUW have no entries.
	add(0x10, 0x8D, e("DIVQ", Immediate16, 15, execDIVQ))
	add(0x10, 0x9D, e("DIVQ", Direct, 18, execDIVQ))
	add(0x10, 0xAD, e("DIVQ", Indexed, 18, execDIVQ))
	add(0x10, 0xBD, e("DIVQ", Extended, 19, execDIVQ))

	add(0x10, 0x30, e("BAND", DirectBit, 7, execBAND))
	add(0x10, 0x31, e("BIAND", DirectBit, 7, execBIAND))
	add(0x10, 0x32, e("BOR", DirectBit, 7, execBOR))
	add(0x10, 0x33, e("BIOR", DirectBit, 7, execBIOR))
	add(0x10, 0x34, e("BEOR", DirectBit, 7, execBEOR))
	add(0x10, 0x35, e("BIEOR", DirectBit, 7, execBIEOR))
	add(0x10, 0x36, e("LDBT", DirectBit, 7, execLDBT))
	add(0x10, 0x37, e("STBT", DirectBit, 7, execSTBT))

	add(0x10, 0x38, e("TFM", Register, 6, execTFMPP)) // R0+,R1+
	add(0x10, 0x39, e("TFM", Register, 6, execTFMMM)) // R0-,R1-
	add(0x10, 0x3A, e("TFM", Register, 6, execTFMPC)) // R0+,R1
	add(0x10, 0x3B, e("TFM", Register, 6, execTFMCP)) // R0,R1+

	// Prefix 0x11: register-register ALU (ADDR..CMPR), DIVD, MULD.
	add(0x11, 0x30, e("ADDR", Register, 4, execADDR))
	add(0x11, 0x31, e("ADCR", Register, 4, execADCR))
	add(0x11, 0x32, e("SUBR", Register, 4, execSUBR))
	add(0x11, 0x33, e("SBCR", Register, 4, execSBCR))
	add(0x11, 0x34, e("ANDR", Register, 4, execANDR))
	add(0x11, 0x35, e("ORR", Register, 4, execORR))
	add(0x11, 0x36, e("EORR", Register, 4, execEORR))
	add(0x11, 0x37, e("CMPR", Register, 4, execCMPR))

	add(0x11, 0x8D, e("DIVD", Immediate8, 25, execDIVD))
	add(0x11, 0x9D, e("DIVD", Direct, 27, execDIVD))
	add(0x11, 0xAD, e("DIVD", Indexed, 27, execDIVD))
	add(0x11, 0xBD, e("DIVD", Extended, 28, execDIVD))
	add(0x11, 0x8F, e("MULD", Immediate16, 28, execMULD))
	add(0x11, 0x9F, e("MULD", Direct, 30, execMULD))
	add(0x11, 0xAF, e("MULD", Indexed, 30, execMULD))
	add(0x11, 0xBF, e("MULD", Extended, 31, execMULD))
}
