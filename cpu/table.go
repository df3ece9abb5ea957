package cpu

// table6809 is the documented MC6809/6809E instruction set, keyed by
// key(prefix, opcode). table6309 (table6309.go) is consulted first when
// the configured variant is 6309/6309E and overlays additional entries on
// top of this one; table6809 itself never changes with variant.
var table6809 = map[uint16]OpcodeEntry{}

func e(mnemonic string, mode AddressingMode, cycles uint8, fn func(*Emulator, *Instruction)) OpcodeEntry {
	return OpcodeEntry{Mnemonic: mnemonic, Mode: mode, BaseCycles: cycles, Exec: fn}
}

func init() {
	add := func(prefix, opcode uint8, entry OpcodeEntry) {
		table6809[key(prefix, opcode)] = entry
	}

	// Direct-mode read-modify-write, page 0.
	add(0, 0x00, e("NEG", Direct, 6, execNEG))
	add(0, 0x03, e("COM", Direct, 6, execCOM))
	add(0, 0x04, e("LSR", Direct, 6, execLSR))
	add(0, 0x06, e("ROR", Direct, 6, execROR))
	add(0, 0x07, e("ASR", Direct, 6, execASR))
	add(0, 0x08, e("ASL", Direct, 6, execASL))
	add(0, 0x09, e("ROL", Direct, 6, execROL))
	add(0, 0x0A, e("DEC", Direct, 6, execDEC))
	add(0, 0x0C, e("INC", Direct, 6, execINC))
	add(0, 0x0D, e("TST", Direct, 6, execTST))
	add(0, 0x0E, e("JMP", Direct, 3, execJMP))
	add(0, 0x0F, e("CLR", Direct, 6, execCLR))

	add(0, 0x12, e("NOP", Inherent, 2, execNOP))
	add(0, 0x13, e("SYNC", Inherent, 2, execSYNC))
	add(0, 0x16, e("LBRA", Relative16, 5, execLBRA))
	add(0, 0x17, e("LBSR", Relative16, 9, execLBSR))
	add(0, 0x19, e("DAA", Inherent, 2, execDAA))
	add(0, 0x1A, e("ORCC", Immediate8, 3, execORCC))
	add(0, 0x1C, e("ANDCC", Immediate8, 3, execANDCC))
	add(0, 0x1D, e("SEX", Inherent, 2, execSEX))
	add(0, 0x1E, e("EXG", Register, 8, execEXG))
	add(0, 0x1F, e("TFR", Register, 6, execTFR))

	add(0, 0x20, e("BRA", Relative8, 3, execBRA))
	add(0, 0x21, e("BRN", Relative8, 3, execBRN))
	add(0, 0x22, e("BHI", Relative8, 3, execBHI))
	add(0, 0x23, e("BLS", Relative8, 3, execBLS))
	add(0, 0x24, e("BCC", Relative8, 3, execBCC))
	add(0, 0x25, e("BCS", Relative8, 3, execBCS))
	add(0, 0x26, e("BNE", Relative8, 3, execBNE))
	add(0, 0x27, e("BEQ", Relative8, 3, execBEQ))
	add(0, 0x28, e("BVC", Relative8, 3, execBVC))
	add(0, 0x29, e("BVS", Relative8, 3, execBVS))
	add(0, 0x2A, e("BPL", Relative8, 3, execBPL))
	add(0, 0x2B, e("BMI", Relative8, 3, execBMI))
	add(0, 0x2C, e("BGE", Relative8, 3, execBGE))
	add(0, 0x2D, e("BLT", Relative8, 3, execBLT))
	add(0, 0x2E, e("BGT", Relative8, 3, execBGT))
	add(0, 0x2F, e("BLE", Relative8, 3, execBLE))

	add(0, 0x30, e("LEAX", Indexed, 4, execLEAX))
	add(0, 0x31, e("LEAY", Indexed, 4, execLEAY))
	add(0, 0x32, e("LEAS", Indexed, 4, execLEAS))
	add(0, 0x33, e("LEAU", Indexed, 4, execLEAU))
	add(0, 0x34, e("PSHS", Immediate8, 5, execPSHS))
	add(0, 0x35, e("PULS", Immediate8, 5, execPULS))
	add(0, 0x36, e("PSHU", Immediate8, 5, execPSHU))
	add(0, 0x37, e("PULU", Immediate8, 5, execPULU))
	add(0, 0x39, e("RTS", Inherent, 5, execRTS))
	add(0, 0x3A, e("ABX", Inherent, 3, execABX))
	add(0, 0x3B, e("RTI", Inherent, 6, execRTI))
	add(0, 0x3C, e("CWAI", Immediate8, 20, execCWAI))
	add(0, 0x3D, e("MUL", Inherent, 11, execMUL))
	add(0, 0x3F, e("SWI", Inherent, 19, execSWI))

	add(0, 0x40, e("NEGA", Inherent, 2, execNEGA))
	add(0, 0x43, e("COMA", Inherent, 2, execCOMA))
	add(0, 0x44, e("LSRA", Inherent, 2, execLSRA))
	add(0, 0x46, e("RORA", Inherent, 2, execRORA))
	add(0, 0x47, e("ASRA", Inherent, 2, execASRA))
	add(0, 0x48, e("ASLA", Inherent, 2, execASLA))
	add(0, 0x49, e("ROLA", Inherent, 2, execROLA))
	add(0, 0x4A, e("DECA", Inherent, 2, execDECA))
	add(0, 0x4C, e("INCA", Inherent, 2, execINCA))
	add(0, 0x4D, e("TSTA", Inherent, 2, execTSTA))
	add(0, 0x4F, e("CLRA", Inherent, 2, execCLRA))

	add(0, 0x50, e("NEGB", Inherent, 2, execNEGB))
	add(0, 0x53, e("COMB", Inherent, 2, execCOMB))
	add(0, 0x54, e("LSRB", Inherent, 2, execLSRB))
	add(0, 0x56, e("RORB", Inherent, 2, execRORB))
	add(0, 0x57, e("ASRB", Inherent, 2, execASRB))
	add(0, 0x58, e("ASLB", Inherent, 2, execASLB))
	add(0, 0x59, e("ROLB", Inherent, 2, execROLB))
	add(0, 0x5A, e("DECB", Inherent, 2, execDECB))
	add(0, 0x5C, e("INCB", Inherent, 2, execINCB))
	add(0, 0x5D, e("TSTB", Inherent, 2, execTSTB))
	add(0, 0x5F, e("CLRB", Inherent, 2, execCLRB))

	add(0, 0x60, e("NEG", Indexed, 6, execNEG))
	add(0, 0x63, e("COM", Indexed, 6, execCOM))
	add(0, 0x64, e("LSR", Indexed, 6, execLSR))
	add(0, 0x66, e("ROR", Indexed, 6, execROR))
	add(0, 0x67, e("ASR", Indexed, 6, execASR))
	add(0, 0x68, e("ASL", Indexed, 6, execASL))
	add(0, 0x69, e("ROL", Indexed, 6, execROL))
	add(0, 0x6A, e("DEC", Indexed, 6, execDEC))
	add(0, 0x6C, e("INC", Indexed, 6, execINC))
	add(0, 0x6D, e("TST", Indexed, 6, execTST))
	add(0, 0x6E, e("JMP", Indexed, 3, execJMP))
	add(0, 0x6F, e("CLR", Indexed, 6, execCLR))

	add(0, 0x70, e("NEG", Extended, 7, execNEG))
	add(0, 0x73, e("COM", Extended, 7, execCOM))
	add(0, 0x74, e("LSR", Extended, 7, execLSR))
	add(0, 0x76, e("ROR", Extended, 7, execROR))
	add(0, 0x77, e("ASR", Extended, 7, execASR))
	add(0, 0x78, e("ASL", Extended, 7, execASL))
	add(0, 0x79, e("ROL", Extended, 7, execROL))
	add(0, 0x7A, e("DEC", Extended, 7, execDEC))
	add(0, 0x7C, e("INC", Extended, 7, execINC))
	add(0, 0x7D, e("TST", Extended, 7, execTST))
	add(0, 0x7E, e("JMP", Extended, 4, execJMP))
	add(0, 0x7F, e("CLR", Extended, 7, execCLR))

	add(0, 0x80, e("SUBA", Immediate8, 2, execSUBA))
	add(0, 0x81, e("CMPA", Immediate8, 2, execCMPA))
	add(0, 0x82, e("SBCA", Immediate8, 2, execSBCA))
	add(0, 0x83, e("SUBD", Immediate16, 4, execSUBD))
	add(0, 0x84, e("ANDA", Immediate8, 2, execANDA))
	add(0, 0x85, e("BITA", Immediate8, 2, execBITA))
	add(0, 0x86, e("LDA", Immediate8, 2, execLDA))
	add(0, 0x88, e("EORA", Immediate8, 2, execEORA))
	add(0, 0x89, e("ADCA", Immediate8, 2, execADCA))
	add(0, 0x8A, e("ORA", Immediate8, 2, execORA))
	add(0, 0x8B, e("ADDA", Immediate8, 2, execADDA))
	add(0, 0x8C, e("CMPX", Immediate16, 4, execCMPX))
	add(0, 0x8D, e("BSR", Relative8, 7, execBSR))
	add(0, 0x8E, e("LDX", Immediate16, 3, execLDX))

	add(0, 0x90, e("SUBA", Direct, 4, execSUBA))
	add(0, 0x91, e("CMPA", Direct, 4, execCMPA))
	add(0, 0x92, e("SBCA", Direct, 4, execSBCA))
	add(0, 0x93, e("SUBD", Direct, 6, execSUBD))
	add(0, 0x94, e("ANDA", Direct, 4, execANDA))
	add(0, 0x95, e("BITA", Direct, 4, execBITA))
	add(0, 0x96, e("LDA", Direct, 4, execLDA))
	add(0, 0x97, e("STA", Direct, 4, execSTA))
	add(0, 0x98, e("EORA", Direct, 4, execEORA))
	add(0, 0x99, e("ADCA", Direct, 4, execADCA))
	add(0, 0x9A, e("ORA", Direct, 4, execORA))
	add(0, 0x9B, e("ADDA", Direct, 4, execADDA))
	add(0, 0x9C, e("CMPX", Direct, 6, execCMPX))
	add(0, 0x9D, e("JSR", Direct, 7, execJSR))
	add(0, 0x9E, e("LDX", Direct, 5, execLDX))
	add(0, 0x9F, e("STX", Direct, 5, execSTX))

	add(0, 0xA0, e("SUBA", Indexed, 4, execSUBA))
	add(0, 0xA1, e("CMPA", Indexed, 4, execCMPA))
	add(0, 0xA2, e("SBCA", Indexed, 4, execSBCA))
	add(0, 0xA3, e("SUBD", Indexed, 6, execSUBD))
	add(0, 0xA4, e("ANDA", Indexed, 4, execANDA))
	add(0, 0xA5, e("BITA", Indexed, 4, execBITA))
	add(0, 0xA6, e("LDA", Indexed, 4, execLDA))
	add(0, 0xA7, e("STA", Indexed, 4, execSTA))
	add(0, 0xA8, e("EORA", Indexed, 4, execEORA))
	add(0, 0xA9, e("ADCA", Indexed, 4, execADCA))
	add(0, 0xAA, e("ORA", Indexed, 4, execORA))
	add(0, 0xAB, e("ADDA", Indexed, 4, execADDA))
	add(0, 0xAC, e("CMPX", Indexed, 6, execCMPX))
	add(0, 0xAD, e("JSR", Indexed, 7, execJSR))
	add(0, 0xAE, e("LDX", Indexed, 5, execLDX))
	add(0, 0xAF, e("STX", Indexed, 5, execSTX))

	add(0, 0xB0, e("SUBA", Extended, 5, execSUBA))
	add(0, 0xB1, e("CMPA", Extended, 5, execCMPA))
	add(0, 0xB2, e("SBCA", Extended, 5, execSBCA))
	add(0, 0xB3, e("SUBD", Extended, 7, execSUBD))
	add(0, 0xB4, e("ANDA", Extended, 5, execANDA))
	add(0, 0xB5, e("BITA", Extended, 5, execBITA))
	add(0, 0xB6, e("LDA", Extended, 5, execLDA))
	add(0, 0xB7, e("STA", Extended, 5, execSTA))
	add(0, 0xB8, e("EORA", Extended, 5, execEORA))
	add(0, 0xB9, e("ADCA", Extended, 5, execADCA))
	add(0, 0xBA, e("ORA", Extended, 5, execORA))
	add(0, 0xBB, e("ADDA", Extended, 5, execADDA))
	add(0, 0xBC, e("CMPX", Extended, 7, execCMPX))
	add(0, 0xBD, e("JSR", Extended, 8, execJSR))
	add(0, 0xBE, e("LDX", Extended, 6, execLDX))
	add(0, 0xBF, e("STX", Extended, 6, execSTX))

	add(0, 0xC0, e("SUBB", Immediate8, 2, execSUBB))
	add(0, 0xC1, e("CMPB", Immediate8, 2, execCMPB))
	add(0, 0xC2, e("SBCB", Immediate8, 2, execSBCB))
	add(0, 0xC3, e("ADDD", Immediate16, 4, execADDD))
	add(0, 0xC4, e("ANDB", Immediate8, 2, execANDB))
	add(0, 0xC5, e("BITB", Immediate8, 2, execBITB))
	add(0, 0xC6, e("LDB", Immediate8, 2, execLDB))
	add(0, 0xC8, e("EORB", Immediate8, 2, execEORB))
	add(0, 0xC9, e("ADCB", Immediate8, 2, execADCB))
	add(0, 0xCA, e("ORB", Immediate8, 2, execORB))
	add(0, 0xCB, e("ADDB", Immediate8, 2, execADDB))
	add(0, 0xCC, e("LDD", Immediate16, 3, execLDD))
	add(0, 0xCE, e("LDU", Immediate16, 3, execLDU))

	add(0, 0xD0, e("SUBB", Direct, 4, execSUBB))
	add(0, 0xD1, e("CMPB", Direct, 4, execCMPB))
	add(0, 0xD2, e("SBCB", Direct, 4, execSBCB))
	add(0, 0xD3, e("ADDD", Direct, 6, execADDD))
	add(0, 0xD4, e("ANDB", Direct, 4, execANDB))
	add(0, 0xD5, e("BITB", Direct, 4, execBITB))
	add(0, 0xD6, e("LDB", Direct, 4, execLDB))
	add(0, 0xD7, e("STB", Direct, 4, execSTB))
	add(0, 0xD8, e("EORB", Direct, 4, execEORB))
	add(0, 0xD9, e("ADCB", Direct, 4, execADCB))
	add(0, 0xDA, e("ORB", Direct, 4, execORB))
	add(0, 0xDB, e("ADDB", Direct, 4, execADDB))
	add(0, 0xDC, e("LDD", Direct, 5, execLDD))
	add(0, 0xDD, e("STD", Direct, 5, execSTD))
	add(0, 0xDE, e("LDU", Direct, 5, execLDU))
	add(0, 0xDF, e("STU", Direct, 5, execSTU))

	add(0, 0xE0, e("SUBB", Indexed, 4, execSUBB))
	add(0, 0xE1, e("CMPB", Indexed, 4, execCMPB))
	add(0, 0xE2, e("SBCB", Indexed, 4, execSBCB))
	add(0, 0xE3, e("ADDD", Indexed, 6, execADDD))
	add(0, 0xE4, e("ANDB", Indexed, 4, execANDB))
	add(0, 0xE5, e("BITB", Indexed, 4, execBITB))
	add(0, 0xE6, e("LDB", Indexed, 4, execLDB))
	add(0, 0xE7, e("STB", Indexed, 4, execSTB))
	add(0, 0xE8, e("EORB", Indexed, 4, execEORB))
	add(0, 0xE9, e("ADCB", Indexed, 4, execADCB))
	add(0, 0xEA, e("ORB", Indexed, 4, execORB))
	add(0, 0xEB, e("ADDB", Indexed, 4, execADDB))
	add(0, 0xEC, e("LDD", Indexed, 5, execLDD))
	add(0, 0xED, e("STD", Indexed, 5, execSTD))
	add(0, 0xEE, e("LDU", Indexed, 5, execLDU))
	add(0, 0xEF, e("STU", Indexed, 5, execSTU))

	add(0, 0xF0, e("SUBB", Extended, 5, execSUBB))
	add(0, 0xF1, e("CMPB", Extended, 5, execCMPB))
	add(0, 0xF2, e("SBCB", Extended, 5, execSBCB))
	add(0, 0xF3, e("ADDD", Extended, 7, execADDD))
	add(0, 0xF4, e("ANDB", Extended, 5, execANDB))
	add(0, 0xF5, e("BITB", Extended, 5, execBITB))
	add(0, 0xF6, e("LDB", Extended, 5, execLDB))
	add(0, 0xF7, e("STB", Extended, 5, execSTB))
	add(0, 0xF8, e("EORB", Extended, 5, execEORB))
	add(0, 0xF9, e("ADCB", Extended, 5, execADCB))
	add(0, 0xFA, e("ORB", Extended, 5, execORB))
	add(0, 0xFB, e("ADDB", Extended, 5, execADDB))
	add(0, 0xFC, e("LDD", Extended, 6, execLDD))
	add(0, 0xFD, e("STD", Extended, 6, execSTD))
	add(0, 0xFE, e("LDU", Extended, 6, execLDU))
	add(0, 0xFF, e("STU", Extended, 6, execSTU))

	// Prefix 0x10.
	add(0x10, 0x21, e("LBRN", Relative16, 5, execLBRN))
	add(0x10, 0x22, e("LBHI", Relative16, 5, execLBHI))
	add(0x10, 0x23, e("LBLS", Relative16, 5, execLBLS))
	add(0x10, 0x24, e("LBCC", Relative16, 5, execLBCC))
	add(0x10, 0x25, e("LBCS", Relative16, 5, execLBCS))
	add(0x10, 0x26, e("LBNE", Relative16, 5, execLBNE))
	add(0x10, 0x27, e("LBEQ", Relative16, 5, execLBEQ))
	add(0x10, 0x28, e("LBVC", Relative16, 5, execLBVC))
	add(0x10, 0x29, e("LBVS", Relative16, 5, execLBVS))
	add(0x10, 0x2A, e("LBPL", Relative16, 5, execLBPL))
	add(0x10, 0x2B, e("LBMI", Relative16, 5, execLBMI))
	add(0x10, 0x2C, e("LBGE", Relative16, 5, execLBGE))
	add(0x10, 0x2D, e("LBLT", Relative16, 5, execLBLT))
	add(0x10, 0x2E, e("LBGT", Relative16, 5, execLBGT))
	add(0x10, 0x2F, e("LBLE", Relative16, 5, execLBLE))
	add(0x10, 0x3F, e("SWI2", Inherent, 20, execSWI2))
	add(0x10, 0x83, e("CMPD", Immediate16, 5, execCMPD))
	add(0x10, 0x8C, e("CMPY", Immediate16, 5, execCMPY))
	add(0x10, 0x8E, e("LDY", Immediate16, 4, execLDY))
	add(0x10, 0x93, e("CMPD", Direct, 7, execCMPD))
	add(0x10, 0x9C, e("CMPY", Direct, 7, execCMPY))
	add(0x10, 0x9E, e("LDY", Direct, 6, execLDY))
	add(0x10, 0x9F, e("STY", Direct, 6, execSTY))
	add(0x10, 0xA3, e("CMPD", Indexed, 7, execCMPD))
	add(0x10, 0xAC, e("CMPY", Indexed, 7, execCMPY))
	add(0x10, 0xAE, e("LDY", Indexed, 6, execLDY))
	add(0x10, 0xAF, e("STY", Indexed, 6, execSTY))
	add(0x10, 0xB3, e("CMPD", Extended, 8, execCMPD))
	add(0x10, 0xBC, e("CMPY", Extended, 8, execCMPY))
	add(0x10, 0xBE, e("LDY", Extended, 7, execLDY))
	add(0x10, 0xBF, e("STY", Extended, 7, execSTY))
	add(0x10, 0xCE, e("LDS", Immediate16, 4, execLDS))
	add(0x10, 0xDE, e("LDS", Direct, 6, execLDS))
	add(0x10, 0xDF, e("STS", Direct, 6, execSTS))
	add(0x10, 0xEE, e("LDS", Indexed, 6, execLDS))
	add(0x10, 0xEF, e("STS", Indexed, 6, execSTS))
	add(0x10, 0xFE, e("LDS", Extended, 7, execLDS))
	add(0x10, 0xFF, e("STS", Extended, 7, execSTS))

	// Prefix 0x11.
	add(0x11, 0x3F, e("SWI3", Inherent, 20, execSWI3))
	add(0x11, 0x83, e("CMPU", Immediate16, 5, execCMPU))
	add(0x11, 0x8C, e("CMPS", Immediate16, 5, execCMPS))
	add(0x11, 0x93, e("CMPU", Direct, 7, execCMPU))
	add(0x11, 0x9C, e("CMPS", Direct, 7, execCMPS))
	add(0x11, 0xA3, e("CMPU", Indexed, 7, execCMPU))
	add(0x11, 0xAC, e("CMPS", Indexed, 7, execCMPS))
	add(0x11, 0xB3, e("CMPU", Extended, 8, execCMPU))
	add(0x11, 0xBC, e("CMPS", Extended, 8, execCMPS))
}

// Lookup returns the opcode table entry for (prefix, opcode), consulting
// the 6309 overlay first when variant is a 6309/6309E, then falling back
// to the 6809 base table, then to the synthetic illegal record.
func Lookup(prefix, opcode uint8, variant CPUVariant) OpcodeEntry {
	k := key(prefix, opcode)
	if variant.Is6309() {
		if entry, ok := table6309[k]; ok {
			return entry
		}
	}
	if entry, ok := table6809[k]; ok {
		return entry
	}
	return illegalEntry
}
