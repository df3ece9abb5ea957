package cpu

// 6309-only instruction semantics: the register-register ALU family
// (ADDR..CMPR), TFM block moves, the direct-bit family (LDBT/STBT/BAND/
// BOR/BEOR and their inverted forms), the AIM/OIM/EIM/TIM bit-manipulation
// immediates, SEXW, and DIVD/DIVQ/MULD.

// regrOp names the eight ADDR..CMPR operations, selected by the low
// nibble of the ADDR..CMPR postbyte's opcode (not the postbyte itself).
type regrOp int

const (
	regrADD regrOp = iota
	regrADC
	regrSUB
	regrSBC
	regrAND
	regrOR
	regrEOR
	regrCMP
)

func makeRegR(op regrOp) func(*Emulator, *Instruction) {
	return func(e *Emulator, ins *Instruction) {
		pb := ins.Postbyte
		src, dst := pb>>4, pb&0x0f
		sv, size := e.readFullReg(src)
		dv, _ := e.readFullReg(dst)
		switch op {
		case regrADD:
			if size == 8 {
				sum, half, ovf, carry := add8(to8(dv), to8(sv), Known(false))
				e.State.CC.H, e.State.CC.V, e.State.CC.C = half, ovf, carry
				e.setNZ8(sum)
				e.writeFullReg(dst, Combine1(sum, func(v byte) uint16 { return uint16(v) }))
			} else {
				sum, ovf, carry := add16(dv, sv)
				e.State.CC.V, e.State.CC.C = ovf, carry
				e.setNZ16(sum)
				e.writeFullReg(dst, sum)
			}
		case regrADC:
			if size == 8 {
				sum, half, ovf, carry := add8(to8(dv), to8(sv), e.State.CC.C)
				e.State.CC.H, e.State.CC.V, e.State.CC.C = half, ovf, carry
				e.setNZ8(sum)
				e.writeFullReg(dst, Combine1(sum, func(v byte) uint16 { return uint16(v) }))
			} else {
				sum, ovf, carry := add16(dv, sv)
				e.State.CC.V, e.State.CC.C = ovf, carry
				e.setNZ16(sum)
				e.writeFullReg(dst, sum)
			}
		case regrSUB:
			if size == 8 {
				diff, ovf, borrow := sub8(to8(dv), to8(sv), Known(false))
				e.State.CC.V, e.State.CC.C = ovf, borrow
				e.setNZ8(diff)
				e.writeFullReg(dst, Combine1(diff, func(v byte) uint16 { return uint16(v) }))
			} else {
				diff, ovf := sub16(dv, sv)
				e.State.CC.V = ovf
				e.setNZ16(diff)
				e.writeFullReg(dst, diff)
			}
		case regrSBC:
			if size == 8 {
				diff, ovf, borrow := sub8(to8(dv), to8(sv), e.State.CC.C)
				e.State.CC.V, e.State.CC.C = ovf, borrow
				e.setNZ8(diff)
				e.writeFullReg(dst, Combine1(diff, func(v byte) uint16 { return uint16(v) }))
			} else {
				diff, ovf := sub16(dv, sv)
				e.State.CC.V = ovf
				e.setNZ16(diff)
				e.writeFullReg(dst, diff)
			}
		case regrAND, regrOR, regrEOR:
			f := func(a, b uint16) uint16 { return a & b }
			switch op {
			case regrOR:
				f = func(a, b uint16) uint16 { return a | b }
			case regrEOR:
				f = func(a, b uint16) uint16 { return a ^ b }
			}
			r := Combine2(dv, sv, f)
			if size == 8 {
				e.setNZ8(Combine1(r, func(v uint16) byte { return byte(v) }))
			} else {
				e.setNZ16(r)
			}
			e.State.CC.V = Known(false)
			e.writeFullReg(dst, r)
		case regrCMP:
			if size == 8 {
				diff, ovf, borrow := sub8(to8(dv), to8(sv), Known(false))
				e.State.CC.V, e.State.CC.C = ovf, borrow
				e.setNZ8(diff)
			} else {
				diff, ovf := sub16(dv, sv)
				e.State.CC.V = ovf
				e.setNZ16(diff)
			}
		}
	}
}

func to8(v Optional[uint16]) Optional[byte] {
	return Combine1(v, func(x uint16) byte { return byte(x) })
}

var (
	execADDR = makeRegR(regrADD)
	execADCR = makeRegR(regrADC)
	execSUBR = makeRegR(regrSUB)
	execSBCR = makeRegR(regrSBC)
	execANDR = makeRegR(regrAND)
	execORR  = makeRegR(regrOR)
	execEORR = makeRegR(regrEOR)
	execCMPR = makeRegR(regrCMP)
)

// --- TFM block move -------------------------------------------------

type tfmMode int

const (
	tfmPP tfmMode = iota // R0+,R1+
	tfmMM                // R0-,R1-
	tfmPC                // R0+,R1  (src increments, dst constant)
	tfmCP                // R0,R1+  (src constant, dst increments)
)

func makeTFM(mode tfmMode) func(*Emulator, *Instruction) {
	return func(e *Emulator, ins *Instruction) {
		pb := ins.Postbyte
		r0, r1 := e.regPair(pb>>4), e.regPair(pb&0x0f)
		if r0 == nil || r1 == nil {
			return
		}
		v := e.recordRead(mustU16Optional(*r0))
		e.recordWrite(mustU16Optional(*r1), v)
		switch mode {
		case tfmPP:
			*r0 = Combine1(*r0, func(x uint16) uint16 { return x + 1 })
			*r1 = Combine1(*r1, func(x uint16) uint16 { return x + 1 })
		case tfmMM:
			*r0 = Combine1(*r0, func(x uint16) uint16 { return x - 1 })
			*r1 = Combine1(*r1, func(x uint16) uint16 { return x - 1 })
		case tfmPC:
			*r0 = Combine1(*r0, func(x uint16) uint16 { return x + 1 })
		case tfmCP:
			*r1 = Combine1(*r1, func(x uint16) uint16 { return x + 1 })
		}
		// W (the 6309 counter register) decrements once per byte moved;
		// the trace driver repeats this instruction (PC does not advance)
		// until W reaches zero, matching the hardware's single-instruction
		// block-move behaviour.
		w := Combine1(e.State.W(), func(x uint16) uint16 { return x - 1 })
		e.State.SetW(w)
		if !w.Known || w.Value != 0 {
			e.branched = true // suppress the fallthrough PC advance; repeat
			e.State.PC = e.nextPC
			e.State.PC = Combine1(e.State.PC, func(pc uint16) uint16 { return pc - uint16(ins.Length) })
		}
	}
}

// regPair resolves TFM's 4-bit register code to one of D, X, Y, U, S.
func (e *Emulator) regPair(code byte) *Optional[uint16] {
	switch code {
	case 0:
		d := e.State.D()
		return &d // note: a copy; TFM's D support is rare and approximate here
	case 1:
		return &e.State.X
	case 2:
		return &e.State.Y
	case 3:
		return &e.State.U
	case 4:
		return &e.State.S
	}
	return nil
}

var (
	execTFMPP = makeTFM(tfmPP)
	execTFMMM = makeTFM(tfmMM)
	execTFMPC = makeTFM(tfmPC)
	execTFMCP = makeTFM(tfmCP)
)

// --- direct-bit family (DirectBit mode) -------------------------------

func ccBitPtr(cc *CCFlags, idx byte) *Optional[bool] {
	bits := [8]*Optional[bool]{&cc.E, &cc.F, &cc.H, &cc.I, &cc.N, &cc.Z, &cc.V, &cc.C}
	return bits[idx&0x07]
}

func regBitKnown(reg Optional[byte], idx byte) Optional[bool] {
	return Combine1(reg, func(v byte) bool { return v&(1<<(idx&0x07)) != 0 })
}

func setRegBit(reg *Optional[byte], idx byte, v Optional[bool]) {
	*reg = Combine2(*reg, v, func(r byte, b bool) byte {
		if b {
			return r | (1 << (idx & 0x07))
		}
		return r &^ (1 << (idx & 0x07))
	})
}

func execLDBT(e *Emulator, ins *Instruction) {
	pb := ins.Postbyte
	src, sbit, dbit := pb>>6, (pb>>3)&0x07, pb&0x07
	var v Optional[bool]
	switch src {
	case 1:
		v = regBitKnown(e.State.A, sbit)
	case 2:
		v = regBitKnown(e.State.B, sbit)
	default:
		v = regBitKnown(ccByte(&e.State.CC), sbit)
	}
	*ccBitPtr(&e.State.CC, dbit) = v
}

func execSTBT(e *Emulator, ins *Instruction) {
	pb := ins.Postbyte
	dst, sbit, dbit := pb>>6, (pb>>3)&0x07, pb&0x07
	v := *ccBitPtr(&e.State.CC, sbit)
	switch dst {
	case 1:
		setRegBit(&e.State.A, dbit, v)
	case 2:
		setRegBit(&e.State.B, dbit, v)
	}
}

func makeBitOp(f func(a, b bool) bool, invert bool) func(*Emulator, *Instruction) {
	return func(e *Emulator, ins *Instruction) {
		pb := ins.Postbyte
		src, sbit, dbit := pb>>6, (pb>>3)&0x07, pb&0x07
		var rv Optional[bool]
		switch src {
		case 1:
			rv = regBitKnown(e.State.A, sbit)
		case 2:
			rv = regBitKnown(e.State.B, sbit)
		default:
			rv = regBitKnown(ccByte(&e.State.CC), sbit)
		}
		if invert {
			rv = Combine1(rv, func(b bool) bool { return !b })
		}
		dp := ccBitPtr(&e.State.CC, dbit)
		*dp = Combine2(*dp, rv, f)
	}
}

var (
	execBAND  = makeBitOp(func(a, b bool) bool { return a && b }, false)
	execBIAND = makeBitOp(func(a, b bool) bool { return a && b }, true)
	execBOR   = makeBitOp(func(a, b bool) bool { return a || b }, false)
	execBIOR  = makeBitOp(func(a, b bool) bool { return a || b }, true)
	execBEOR  = makeBitOp(func(a, b bool) bool { return a != b }, false)
	execBIEOR = makeBitOp(func(a, b bool) bool { return a != b }, true)
)

// --- bit-manipulation immediates (AIM/OIM/EIM/TIM) --------------------

func execAIM(e *Emulator, ins *Instruction) {
	v := Combine2(e.operand8(), e.Imm8, func(m, i byte) byte { return m & i })
	e.store8(v)
	e.setNZ8(v)
	e.State.CC.V = Known(false)
}

func execOIM(e *Emulator, ins *Instruction) {
	v := Combine2(e.operand8(), e.Imm8, func(m, i byte) byte { return m | i })
	e.store8(v)
	e.setNZ8(v)
	e.State.CC.V = Known(false)
}

func execEIM(e *Emulator, ins *Instruction) {
	v := Combine2(e.operand8(), e.Imm8, func(m, i byte) byte { return m ^ i })
	e.store8(v)
	e.setNZ8(v)
	e.State.CC.V = Known(false)
}

func execTIM(e *Emulator, ins *Instruction) {
	v := Combine2(e.operand8(), e.Imm8, func(m, i byte) byte { return m & i })
	e.setNZ8(v)
	e.State.CC.V = Known(false)
}

// --- misc 6309 -------------------------------------------------

func execSEXW(e *Emulator, ins *Instruction) {
	q := Combine1(e.State.W(), func(w uint16) uint32 { return uint32(int32(int16(w))) })
	e.State.SetD(Combine1(q, func(v uint32) uint16 { return uint16(v >> 16) }))
	e.setNZ16(e.State.D())
}

func execDIVD(e *Emulator, ins *Instruction) {
	d := e.State.D()
	divisor := e.operand8()
	if !d.Known || !divisor.Known || divisor.Value == 0 {
		e.State.MD.DivZero = Known(divisor.Known && divisor.Value == 0)
		e.State.A = Unk[byte]()
		e.State.B = Unk[byte]()
		e.State.CC.N = Unk[bool]()
		e.State.CC.Z = Unk[bool]()
		e.State.CC.V = Unk[bool]()
		e.State.CC.C = Unk[bool]()
		return
	}
	q := int16(d.Value) / int16(int8(divisor.Value))
	r := int16(d.Value) % int16(int8(divisor.Value))
	e.State.A = Known(byte(r))
	e.State.B = Known(byte(q))
	e.State.CC.N = Known(q < 0)
	e.State.CC.Z = Known(q == 0)
	e.State.CC.C = Known(byte(q)&0x01 != 0)
}

func execDIVQ(e *Emulator, ins *Instruction) {
	q := e.State.Q()
	divisor := e.operand16()
	if !q.Known || !divisor.Known || divisor.Value == 0 {
		e.State.SetD(Unk[uint16]())
		e.State.SetW(Unk[uint16]())
		e.State.CC.N = Unk[bool]()
		e.State.CC.Z = Unk[bool]()
		return
	}
	quot := int32(q.Value) / int32(int16(divisor.Value))
	rem := int32(q.Value) % int32(int16(divisor.Value))
	e.State.SetD(Known(uint16(quot)))
	e.State.SetW(Known(uint16(rem)))
	e.State.CC.N = Known(quot < 0)
	e.State.CC.Z = Known(quot == 0)
}

func execMULD(e *Emulator, ins *Instruction) {
	d := e.State.D()
	q := Combine2(d, e.operand16(), func(x, y uint16) uint32 { return uint32(int32(int16(x)) * int32(int16(y))) })
	e.State.SetQ(q)
	e.State.CC.Z = Combine1(q, func(v uint32) bool { return v == 0 })
	e.State.CC.N = Combine1(q, func(v uint32) bool { return v&0x80000000 != 0 })
}
