package cpu

// This file holds one Exec function per mnemonic (shared across every
// addressing mode that mnemonic supports); the opcode table supplies the
// mode, cycle count, and mnemonic text, and resolveOperand has already
// filled in e.EA/e.Op8/e.Op16 by the time Exec runs. Register-direct and
// memory forms of the read-modify-write group (NEG, COM, LSR, ...) share
// their core via rmwApply, parameterized by an rmwOp.

// --- loads / stores -------------------------------------------------

func (e *Emulator) ld8(dst *Optional[byte]) {
	v := e.operand8()
	*dst = v
	e.setNZ8(v)
	e.State.CC.V = Known(false)
}

func (e *Emulator) ld16(dst *Optional[uint16]) {
	v := e.operand16()
	*dst = v
	e.setNZ16(v)
	e.State.CC.V = Known(false)
}

func (e *Emulator) st8(src Optional[byte]) {
	e.store8(src)
	e.setNZ8(src)
	e.State.CC.V = Known(false)
}

func (e *Emulator) st16(src Optional[uint16]) {
	e.store16(src)
	e.setNZ16(src)
	e.State.CC.V = Known(false)
}

func execLDA(e *Emulator, ins *Instruction) { e.ld8(&e.State.A) }
func execLDB(e *Emulator, ins *Instruction) { e.ld8(&e.State.B) }
func execSTA(e *Emulator, ins *Instruction) { e.st8(e.State.A) }
func execSTB(e *Emulator, ins *Instruction) { e.st8(e.State.B) }

func execLDD(e *Emulator, ins *Instruction) { e.ld16ViaD() }
func execSTD(e *Emulator, ins *Instruction) { e.st16(e.State.D()) }
func execLDX(e *Emulator, ins *Instruction) { e.ld16(&e.State.X) }
func execSTX(e *Emulator, ins *Instruction) { e.st16(e.State.X) }
func execLDY(e *Emulator, ins *Instruction) { e.ld16(&e.State.Y) }
func execSTY(e *Emulator, ins *Instruction) { e.st16(e.State.Y) }
func execLDU(e *Emulator, ins *Instruction) { e.ld16(&e.State.U) }
func execSTU(e *Emulator, ins *Instruction) { e.st16(e.State.U) }
func execLDS(e *Emulator, ins *Instruction) { e.ld16(&e.State.S) }
func execSTS(e *Emulator, ins *Instruction) { e.st16(e.State.S) }

// ld16ViaD loads D (A:B) from the operand and splits it back out, since D
// has no single Optional field of its own.
func (e *Emulator) ld16ViaD() {
	v := e.operand16()
	e.State.SetD(v)
	e.setNZ16(v)
	e.State.CC.V = Known(false)
}

func execLDQ(e *Emulator, ins *Instruction) {
	oi := 1
	if ins.Prefix != 0 {
		oi = 2
	}
	v := uint32(ins.Bytes[oi])<<24 | uint32(ins.Bytes[oi+1])<<16 | uint32(ins.Bytes[oi+2])<<8 | uint32(ins.Bytes[oi+3])
	q := Known(v)
	e.State.SetQ(q)
	e.State.CC.N = Known(v&0x80000000 != 0)
	e.State.CC.Z = Known(v == 0)
	e.State.CC.V = Known(false)
}

func execSTQ(e *Emulator, ins *Instruction) {
	q := e.State.Q()
	hi := Combine1(q, func(v uint32) uint16 { return uint16(v >> 16) })
	lo := Combine1(q, func(v uint32) uint16 { return uint16(v) })
	if e.EA.Known {
		e.write16(e.EA.Value, hi)
		e.write16(e.EA.Value+2, lo)
	}
	e.State.CC.N = Combine1(q, func(v uint32) bool { return v&0x80000000 != 0 })
	e.State.CC.Z = Combine1(q, func(v uint32) bool { return v == 0 })
	e.State.CC.V = Known(false)
}

// --- 8-bit arithmetic -------------------------------------------------

func (e *Emulator) addTo(dst *Optional[byte], withCarry bool) {
	cin := Known(false)
	if withCarry {
		cin = e.State.CC.C
	}
	sum, half, ovf, carry := add8(*dst, e.operand8(), cin)
	*dst = sum
	e.State.CC.H = half
	e.State.CC.V = ovf
	e.State.CC.C = carry
	e.setNZ8(sum)
}

func (e *Emulator) subFrom(dst *Optional[byte], withBorrow bool) {
	bin := Known(false)
	if withBorrow {
		bin = e.State.CC.C
	}
	diff, ovf, borrow := sub8(*dst, e.operand8(), bin)
	*dst = diff
	e.State.CC.V = ovf
	e.State.CC.C = borrow
	e.setNZ8(diff)
}

func (e *Emulator) cmp8(a Optional[byte]) {
	diff, ovf, borrow := sub8(a, e.operand8(), Known(false))
	e.State.CC.V = ovf
	e.State.CC.C = borrow
	e.setNZ8(diff)
}

func execADDA(e *Emulator, ins *Instruction) { e.addTo(&e.State.A, false) }
func execADDB(e *Emulator, ins *Instruction) { e.addTo(&e.State.B, false) }
func execADCA(e *Emulator, ins *Instruction) { e.addTo(&e.State.A, true) }
func execADCB(e *Emulator, ins *Instruction) { e.addTo(&e.State.B, true) }
func execSUBA(e *Emulator, ins *Instruction) { e.subFrom(&e.State.A, false) }
func execSUBB(e *Emulator, ins *Instruction) { e.subFrom(&e.State.B, false) }
func execSBCA(e *Emulator, ins *Instruction) { e.subFrom(&e.State.A, true) }
func execSBCB(e *Emulator, ins *Instruction) { e.subFrom(&e.State.B, true) }
func execCMPA(e *Emulator, ins *Instruction) { e.cmp8(e.State.A) }
func execCMPB(e *Emulator, ins *Instruction) { e.cmp8(e.State.B) }

func (e *Emulator) logic8(dst *Optional[byte], f func(a, b byte) byte) {
	r := Combine2(*dst, e.operand8(), f)
	*dst = r
	e.setNZ8(r)
	e.State.CC.V = Known(false)
}

func execANDA(e *Emulator, ins *Instruction) { e.logic8(&e.State.A, func(a, b byte) byte { return a & b }) }
func execANDB(e *Emulator, ins *Instruction) { e.logic8(&e.State.B, func(a, b byte) byte { return a & b }) }
func execORA(e *Emulator, ins *Instruction)  { e.logic8(&e.State.A, func(a, b byte) byte { return a | b }) }
func execORB(e *Emulator, ins *Instruction)  { e.logic8(&e.State.B, func(a, b byte) byte { return a | b }) }
func execEORA(e *Emulator, ins *Instruction) { e.logic8(&e.State.A, func(a, b byte) byte { return a ^ b }) }
func execEORB(e *Emulator, ins *Instruction) { e.logic8(&e.State.B, func(a, b byte) byte { return a ^ b }) }

func (e *Emulator) bit8(a Optional[byte]) {
	r := Combine2(a, e.operand8(), func(x, y byte) byte { return x & y })
	e.setNZ8(r)
	e.State.CC.V = Known(false)
}

func execBITA(e *Emulator, ins *Instruction) { e.bit8(e.State.A) }
func execBITB(e *Emulator, ins *Instruction) { e.bit8(e.State.B) }

// --- 16-bit arithmetic -------------------------------------------------

func execADDD(e *Emulator, ins *Instruction) {
	d := e.State.D()
	sum, ovf, carry := add16(d, e.operand16())
	e.State.SetD(sum)
	e.State.CC.V = ovf
	e.State.CC.C = carry
	e.setNZ16(sum)
}

func execSUBD(e *Emulator, ins *Instruction) {
	d := e.State.D()
	diff, ovf := sub16(d, e.operand16())
	e.State.SetD(diff)
	e.State.CC.V = ovf
	e.setNZ16(diff)
}

func (e *Emulator) cmp16(a Optional[uint16]) {
	diff, ovf := sub16(a, e.operand16())
	e.State.CC.V = ovf
	e.setNZ16(diff)
}

func execCMPD(e *Emulator, ins *Instruction) { e.cmp16(e.State.D()) }
func execCMPX(e *Emulator, ins *Instruction) { e.cmp16(e.State.X) }
func execCMPY(e *Emulator, ins *Instruction) { e.cmp16(e.State.Y) }
func execCMPU(e *Emulator, ins *Instruction) { e.cmp16(e.State.U) }
func execCMPS(e *Emulator, ins *Instruction) { e.cmp16(e.State.S) }

// --- single-operand read-modify-write -------------------------------

func execNEGA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwNEG) }
func execNEGB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwNEG) }
func execCOMA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwCOM) }
func execCOMB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwCOM) }
func execLSRA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwLSR) }
func execLSRB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwLSR) }
func execRORA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwROR) }
func execRORB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwROR) }
func execASRA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwASR) }
func execASRB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwASR) }
func execASLA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwASL) }
func execASLB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwASL) }
func execROLA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwROL) }
func execROLB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwROL) }
func execDECA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwDEC) }
func execDECB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwDEC) }
func execINCA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwINC) }
func execINCB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwINC) }
func execTSTA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwTST) }
func execTSTB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwTST) }
func execCLRA(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.A, rmwCLR) }
func execCLRB(e *Emulator, ins *Instruction) { e.rmwReg8(&e.State.B, rmwCLR) }

// memory forms: operate on the operand at EA, writing the result back.
func execNEG(e *Emulator, ins *Instruction) { e.rmwMem8(rmwNEG) }
func execCOM(e *Emulator, ins *Instruction) { e.rmwMem8(rmwCOM) }
func execLSR(e *Emulator, ins *Instruction) { e.rmwMem8(rmwLSR) }
func execROR(e *Emulator, ins *Instruction) { e.rmwMem8(rmwROR) }
func execASR(e *Emulator, ins *Instruction) { e.rmwMem8(rmwASR) }
func execASL(e *Emulator, ins *Instruction) { e.rmwMem8(rmwASL) }
func execROL(e *Emulator, ins *Instruction) { e.rmwMem8(rmwROL) }
func execDEC(e *Emulator, ins *Instruction) { e.rmwMem8(rmwDEC) }
func execINC(e *Emulator, ins *Instruction) { e.rmwMem8(rmwINC) }
func execTST(e *Emulator, ins *Instruction) { e.rmwMem8(rmwTST) }
func execCLR(e *Emulator, ins *Instruction) { e.rmwMem8(rmwCLR) }

type rmwOp int

const (
	rmwNEG rmwOp = iota
	rmwCOM
	rmwLSR
	rmwROR
	rmwASR
	rmwASL
	rmwROL
	rmwDEC
	rmwINC
	rmwTST
	rmwCLR
)

// rmwApply computes one read-modify-write result and its flags, carry-in
// taken from CC.C for the rotate-through-carry forms.
func (e *Emulator) rmwApply(op rmwOp, v Optional[byte]) Optional[byte] {
	switch op {
	case rmwNEG:
		r, ovf, carry := sub8(Known(byte(0)), v, Known(false))
		e.State.CC.V = ovf
		e.State.CC.C = carry
		e.setNZ8(r)
		return r
	case rmwCOM:
		r := Combine1(v, func(x byte) byte { return ^x })
		e.setNZ8(r)
		e.State.CC.V = Known(false)
		e.State.CC.C = Known(true)
		return r
	case rmwLSR:
		carry := Combine1(v, func(x byte) bool { return x&0x01 != 0 })
		r := Combine1(v, func(x byte) byte { return x >> 1 })
		e.State.CC.C = carry
		e.setNZ8(r)
		e.State.CC.N = Known(false)
		return r
	case rmwROR:
		carryIn := e.State.CC.C
		carryOut := Combine1(v, func(x byte) bool { return x&0x01 != 0 })
		r := Combine2(v, carryIn, func(x byte, c bool) byte {
			x >>= 1
			if c {
				x |= 0x80
			}
			return x
		})
		e.State.CC.C = carryOut
		e.setNZ8(r)
		return r
	case rmwASR:
		carry := Combine1(v, func(x byte) bool { return x&0x01 != 0 })
		r := Combine1(v, func(x byte) byte { return byte(int8(x) >> 1) })
		e.State.CC.C = carry
		e.setNZ8(r)
		return r
	case rmwASL:
		carry := Combine1(v, func(x byte) bool { return x&0x80 != 0 })
		r := Combine1(v, func(x byte) byte { return x << 1 })
		ovf := Combine1(v, func(x byte) bool { return (x^(x<<1))&0x80 != 0 })
		e.State.CC.C = carry
		e.State.CC.V = ovf
		e.setNZ8(r)
		return r
	case rmwROL:
		carryIn := e.State.CC.C
		carryOut := Combine1(v, func(x byte) bool { return x&0x80 != 0 })
		ovf := Combine1(v, func(x byte) bool { return (x^(x<<1))&0x80 != 0 })
		r := Combine2(v, carryIn, func(x byte, c bool) byte {
			x <<= 1
			if c {
				x |= 0x01
			}
			return x
		})
		e.State.CC.C = carryOut
		e.State.CC.V = ovf
		e.setNZ8(r)
		return r
	case rmwDEC:
		r := Combine1(v, func(x byte) byte { return x - 1 })
		ovf := Combine1(v, func(x byte) bool { return x == 0x80 })
		e.State.CC.V = ovf
		e.setNZ8(r)
		return r
	case rmwINC:
		r := Combine1(v, func(x byte) byte { return x + 1 })
		ovf := Combine1(v, func(x byte) bool { return x == 0x7f })
		e.State.CC.V = ovf
		e.setNZ8(r)
		return r
	case rmwTST:
		e.setNZ8(v)
		e.State.CC.V = Known(false)
		return v
	case rmwCLR:
		e.State.CC.N = Known(false)
		e.State.CC.Z = Known(true)
		e.State.CC.V = Known(false)
		e.State.CC.C = Known(false)
		return Known(byte(0))
	}
	return v
}

func (e *Emulator) rmwReg8(dst *Optional[byte], op rmwOp) {
	*dst = e.rmwApply(op, *dst)
}

func (e *Emulator) rmwMem8(op rmwOp) {
	v := e.operand8()
	r := e.rmwApply(op, v)
	if op != rmwTST {
		e.store8(r)
	}
}

// --- CC / register transfer -------------------------------------------

func execANDCC(e *Emulator, ins *Instruction) {
	applyCC(&e.State.CC, e.Op8, func(a, b bool) bool { return a && b })
}

func execORCC(e *Emulator, ins *Instruction) {
	applyCC(&e.State.CC, e.Op8, func(a, b bool) bool { return a || b })
}

// applyCC combines every CC bit with the corresponding bit of mask under
// f, used by ANDCC/ORCC.
func applyCC(cc *CCFlags, mask Optional[byte], f func(a, b bool) bool) {
	bits := []*Optional[bool]{&cc.E, &cc.F, &cc.H, &cc.I, &cc.N, &cc.Z, &cc.V, &cc.C}
	for i, b := range bits {
		shift := uint(7 - i)
		mbit := Combine1(mask, func(m byte) bool { return m&(1<<shift) != 0 })
		*b = Combine2(*b, mbit, f)
	}
}

func execEXG(e *Emulator, ins *Instruction) {
	pb := ins.Postbyte
	a, b := pb>>4, pb&0x0f
	av, aSize := e.readFullReg(a)
	bv, bSize := e.readFullReg(b)
	if aSize != bSize {
		return // mismatched sizes: undefined on real hardware, leave registers untouched
	}
	e.writeFullReg(a, bv)
	e.writeFullReg(b, av)
}

func execTFR(e *Emulator, ins *Instruction) {
	pb := ins.Postbyte
	src, dst := pb>>4, pb&0x0f
	v, _ := e.readFullReg(src)
	e.writeFullReg(dst, v)
}

// readFullReg/writeFullReg resolve the 16-entry TFR/EXG register code,
// returning the value widened to 16 bits plus the register's true size in
// bits (8 or 16), mirroring regi4's indexing.
func (e *Emulator) readFullReg(code byte) (Optional[uint16], int) {
	switch code & 0x0f {
	case 0:
		return e.State.D(), 16
	case 1:
		return e.State.X, 16
	case 2:
		return e.State.Y, 16
	case 3:
		return e.State.U, 16
	case 4:
		return e.State.S, 16
	case 5:
		return e.State.PC, 16
	case 6:
		return e.State.W(), 16
	case 8:
		return Combine1(e.State.A, func(v byte) uint16 { return uint16(v) }), 8
	case 9:
		return Combine1(e.State.B, func(v byte) uint16 { return uint16(v) }), 8
	case 10:
		return Combine1(ccByte(&e.State.CC), func(v byte) uint16 { return uint16(v) }), 8
	case 11:
		return Combine1(e.State.DP, func(v byte) uint16 { return uint16(v) }), 8
	case 14:
		return Combine1(e.State.RegE, func(v byte) uint16 { return uint16(v) }), 8
	case 15:
		return Combine1(e.State.RegF, func(v byte) uint16 { return uint16(v) }), 8
	}
	return Unk[uint16](), 8
}

func (e *Emulator) writeFullReg(code byte, v Optional[uint16]) {
	switch code & 0x0f {
	case 0:
		e.State.SetD(v)
	case 1:
		e.State.X = v
	case 2:
		e.State.Y = v
	case 3:
		e.State.U = v
	case 4:
		e.State.S = v
	case 5:
		e.State.PC = v
	case 6:
		e.State.SetW(v)
	case 8:
		e.State.A = Combine1(v, func(x uint16) byte { return byte(x) })
	case 9:
		e.State.B = Combine1(v, func(x uint16) byte { return byte(x) })
	case 10:
		setCCByte(&e.State.CC, Combine1(v, func(x uint16) byte { return byte(x) }))
	case 11:
		e.State.DP = Combine1(v, func(x uint16) byte { return byte(x) })
	case 14:
		e.State.RegE = Combine1(v, func(x uint16) byte { return byte(x) })
	case 15:
		e.State.RegF = Combine1(v, func(x uint16) byte { return byte(x) })
	}
}

// ccByte/setCCByte pack and unpack CCFlags to/from the CC register's wire
// byte, E..C from bit 7 down to bit 0.
func ccByte(cc *CCFlags) Optional[byte] {
	bits := []Optional[bool]{cc.E, cc.F, cc.H, cc.I, cc.N, cc.Z, cc.V, cc.C}
	var v byte
	for _, b := range bits {
		v <<= 1
		if !b.Known {
			return Unk[byte]()
		}
		if b.Value {
			v |= 1
		}
	}
	return Known(v)
}

func setCCByte(cc *CCFlags, v Optional[byte]) {
	bits := []*Optional[bool]{&cc.E, &cc.F, &cc.H, &cc.I, &cc.N, &cc.Z, &cc.V, &cc.C}
	for i, b := range bits {
		shift := uint(7 - i)
		*b = Combine1(v, func(x byte) bool { return x&(1<<shift) != 0 })
	}
}

// --- branches / jumps --------------------------------------------------

func (e *Emulator) takeBranch(rel Optional[int32]) {
	target := Combine2(e.nextPC, rel, func(pc uint16, o int32) uint16 { return uint16(int32(pc) + o) })
	e.State.PC = target
	e.branched = true
}

func (e *Emulator) branchIf(cond Optional[bool], long bool) {
	var rel Optional[int32]
	if long {
		rel = Combine1(e.Op16, func(w uint16) int32 { return int32(int16(w)) })
	} else {
		rel = Combine1(e.Op8, func(b byte) int32 { return int32(int8(b)) })
	}
	if !cond.Known {
		e.State.PC = Unk[uint16]()
		e.branched = true
		return
	}
	if cond.Value {
		e.takeBranch(rel)
	}
}

func execBRA(e *Emulator, ins *Instruction)  { e.branchIf(Known(true), false) }
func execLBRA(e *Emulator, ins *Instruction) { e.branchIf(Known(true), true) }
func execBRN(e *Emulator, ins *Instruction)  { e.branchIf(Known(false), false) }
func execLBRN(e *Emulator, ins *Instruction) { e.branchIf(Known(false), true) }

func execBSR(e *Emulator, ins *Instruction)  { e.callSub(false) }
func execLBSR(e *Emulator, ins *Instruction) { e.callSub(true) }

func (e *Emulator) callSub(long bool) {
	e.State.S = Combine1(e.State.S, func(s uint16) uint16 { return s - 2 })
	e.write16(mustU16Optional(e.State.S), e.nextPC)
	e.branchIf(Known(true), long)
}

func makeCondBranch(pred func(cc *CCFlags) Optional[bool], long bool) func(*Emulator, *Instruction) {
	return func(e *Emulator, ins *Instruction) {
		e.branchIf(pred(&e.State.CC), long)
	}
}

var (
	execBHI = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine2(cc.C, cc.Z, func(c, z bool) bool { return !c && !z }) }, false)
	execBLS = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine2(cc.C, cc.Z, func(c, z bool) bool { return c || z }) }, false)
	execBCC = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine1(cc.C, func(c bool) bool { return !c }) }, false)
	execBCS = makeCondBranch(func(cc *CCFlags) Optional[bool] { return cc.C }, false)
	execBNE = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine1(cc.Z, func(z bool) bool { return !z }) }, false)
	execBEQ = makeCondBranch(func(cc *CCFlags) Optional[bool] { return cc.Z }, false)
	execBVC = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine1(cc.V, func(v bool) bool { return !v }) }, false)
	execBVS = makeCondBranch(func(cc *CCFlags) Optional[bool] { return cc.V }, false)
	execBPL = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine1(cc.N, func(n bool) bool { return !n }) }, false)
	execBMI = makeCondBranch(func(cc *CCFlags) Optional[bool] { return cc.N }, false)
	execBGE  = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine2(cc.N, cc.V, func(n, v bool) bool { return n == v }) }, false)
	execBLT  = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine2(cc.N, cc.V, func(n, v bool) bool { return n != v }) }, false)
	execBGT = makeCondBranch(func(cc *CCFlags) Optional[bool] {
		return Combine2(Combine2(cc.N, cc.V, func(n, v bool) bool { return n == v }), cc.Z, func(nv, z bool) bool { return nv && !z })
	}, false)
	execBLE = makeCondBranch(func(cc *CCFlags) Optional[bool] {
		return Combine2(Combine2(cc.N, cc.V, func(n, v bool) bool { return n != v }), cc.Z, func(nv, z bool) bool { return nv || z })
	}, false)

	execLBHI = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine2(cc.C, cc.Z, func(c, z bool) bool { return !c && !z }) }, true)
	execLBLS = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine2(cc.C, cc.Z, func(c, z bool) bool { return c || z }) }, true)
	execLBCC = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine1(cc.C, func(c bool) bool { return !c }) }, true)
	execLBCS = makeCondBranch(func(cc *CCFlags) Optional[bool] { return cc.C }, true)
	execLBNE = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine1(cc.Z, func(z bool) bool { return !z }) }, true)
	execLBEQ = makeCondBranch(func(cc *CCFlags) Optional[bool] { return cc.Z }, true)
	execLBVC = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine1(cc.V, func(v bool) bool { return !v }) }, true)
	execLBVS = makeCondBranch(func(cc *CCFlags) Optional[bool] { return cc.V }, true)
	execLBPL = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine1(cc.N, func(n bool) bool { return !n }) }, true)
	execLBMI = makeCondBranch(func(cc *CCFlags) Optional[bool] { return cc.N }, true)
	execLBGE = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine2(cc.N, cc.V, func(n, v bool) bool { return n == v }) }, true)
	execLBLT = makeCondBranch(func(cc *CCFlags) Optional[bool] { return Combine2(cc.N, cc.V, func(n, v bool) bool { return n != v }) }, true)
	execLBGT = makeCondBranch(func(cc *CCFlags) Optional[bool] {
		return Combine2(Combine2(cc.N, cc.V, func(n, v bool) bool { return n == v }), cc.Z, func(nv, z bool) bool { return nv && !z })
	}, true)
	execLBLE = makeCondBranch(func(cc *CCFlags) Optional[bool] {
		return Combine2(Combine2(cc.N, cc.V, func(n, v bool) bool { return n != v }), cc.Z, func(nv, z bool) bool { return nv || z })
	}, true)
)

func execJMP(e *Emulator, ins *Instruction) {
	e.State.PC = e.EA
	e.branched = true
}

func execJSR(e *Emulator, ins *Instruction) {
	target := e.EA
	e.State.S = Combine1(e.State.S, func(s uint16) uint16 { return s - 2 })
	e.write16(mustU16Optional(e.State.S), e.nextPC)
	e.State.PC = target
	e.branched = true
}

func execRTS(e *Emulator, ins *Instruction) {
	pc := e.read16(mustU16Optional(e.State.S))
	e.State.S = Combine1(e.State.S, func(s uint16) uint16 { return s + 2 })
	e.State.PC = pc
	e.branched = true
}

// --- misc inherent -------------------------------------------------

func execNOP(e *Emulator, ins *Instruction)  {}
func execSYNC(e *Emulator, ins *Instruction) {}

func execSEX(e *Emulator, ins *Instruction) {
	d := Combine1(e.State.B, func(b byte) uint16 { return uint16(int16(int8(b))) })
	e.State.SetD(d)
	e.setNZ16(d)
}

func execABX(e *Emulator, ins *Instruction) {
	e.State.X = Combine2(e.State.X, e.State.B, func(x uint16, b byte) uint16 { return x + uint16(b) })
}

func execDAA(e *Emulator, ins *Instruction) {
	// decimal adjust depends on A, H and C from the preceding ADD/ADC;
	// once any of those is unknown the result is unknown.
	a, half, carry := e.State.A, e.State.CC.H, e.State.CC.C
	if !a.Known || !half.Known || !carry.Known {
		e.State.A = Unk[byte]()
		e.State.CC.N = Unk[bool]()
		e.State.CC.Z = Unk[bool]()
		e.State.CC.C = Unk[bool]()
		return
	}
	v := a.Value
	var correction byte
	carryOut := carry.Value
	lo := v & 0x0f
	hi := v >> 4
	if half.Value || lo > 9 {
		correction |= 0x06
	}
	if carry.Value || hi > 9 || (hi >= 9 && lo > 9) {
		correction |= 0x60
		carryOut = true
	}
	r := v + correction
	e.State.A = Known(r)
	e.State.CC.N = Known(r&0x80 != 0)
	e.State.CC.Z = Known(r == 0)
	e.State.CC.C = Known(carryOut)
}

func execMUL(e *Emulator, ins *Instruction) {
	d := Combine2(e.State.A, e.State.B, func(a, b byte) uint16 { return uint16(a) * uint16(b) })
	e.State.SetD(d)
	e.State.CC.Z = Combine1(d, func(v uint16) bool { return v == 0 })
	e.State.CC.C = Combine1(d, func(v uint16) bool { return v&0x80 != 0 })
}

// --- stack ops -------------------------------------------------

func (e *Emulator) push(sp *Optional[uint16], other *Optional[uint16], mask byte) {
	if mask&0x80 != 0 {
		*sp = Combine1(*sp, func(s uint16) uint16 { return s - 2 })
		e.write16(mustU16Optional(*sp), e.State.PC)
	}
	if mask&0x40 != 0 {
		*sp = Combine1(*sp, func(s uint16) uint16 { return s - 2 })
		e.write16(mustU16Optional(*sp), *other)
	}
	if mask&0x20 != 0 {
		*sp = Combine1(*sp, func(s uint16) uint16 { return s - 2 })
		e.write16(mustU16Optional(*sp), e.State.Y)
	}
	if mask&0x10 != 0 {
		*sp = Combine1(*sp, func(s uint16) uint16 { return s - 2 })
		e.write16(mustU16Optional(*sp), e.State.X)
	}
	if mask&0x08 != 0 {
		*sp = Combine1(*sp, func(s uint16) uint16 { return s - 1 })
		e.recordWrite(mustU16Optional(*sp), e.State.DP)
	}
	if mask&0x04 != 0 {
		*sp = Combine1(*sp, func(s uint16) uint16 { return s - 1 })
		e.recordWrite(mustU16Optional(*sp), e.State.B)
	}
	if mask&0x02 != 0 {
		*sp = Combine1(*sp, func(s uint16) uint16 { return s - 1 })
		e.recordWrite(mustU16Optional(*sp), e.State.A)
	}
	if mask&0x01 != 0 {
		*sp = Combine1(*sp, func(s uint16) uint16 { return s - 1 })
		e.recordWrite(mustU16Optional(*sp), ccByte(&e.State.CC))
	}
}

func (e *Emulator) pull(sp *Optional[uint16], isU bool, mask byte) {
	if mask&0x01 != 0 {
		v := e.recordRead(mustU16Optional(*sp))
		setCCByte(&e.State.CC, v)
		*sp = Combine1(*sp, func(s uint16) uint16 { return s + 1 })
	}
	if mask&0x02 != 0 {
		e.State.A = e.recordRead(mustU16Optional(*sp))
		*sp = Combine1(*sp, func(s uint16) uint16 { return s + 1 })
	}
	if mask&0x04 != 0 {
		e.State.B = e.recordRead(mustU16Optional(*sp))
		*sp = Combine1(*sp, func(s uint16) uint16 { return s + 1 })
	}
	if mask&0x08 != 0 {
		e.State.DP = e.recordRead(mustU16Optional(*sp))
		*sp = Combine1(*sp, func(s uint16) uint16 { return s + 1 })
	}
	if mask&0x10 != 0 {
		e.State.X = e.read16(mustU16Optional(*sp))
		*sp = Combine1(*sp, func(s uint16) uint16 { return s + 2 })
	}
	if mask&0x20 != 0 {
		e.State.Y = e.read16(mustU16Optional(*sp))
		*sp = Combine1(*sp, func(s uint16) uint16 { return s + 2 })
	}
	if mask&0x40 != 0 {
		v := e.read16(mustU16Optional(*sp))
		if isU {
			e.State.S = v
		} else {
			e.State.U = v
		}
		*sp = Combine1(*sp, func(s uint16) uint16 { return s + 2 })
	}
	if mask&0x80 != 0 {
		e.State.PC = e.read16(mustU16Optional(*sp))
		*sp = Combine1(*sp, func(s uint16) uint16 { return s + 2 })
		e.branched = true
	}
}

func execPSHS(e *Emulator, ins *Instruction) { e.push(&e.State.S, &e.State.U, ins.Postbyte) }
func execPSHU(e *Emulator, ins *Instruction) { e.push(&e.State.U, &e.State.S, ins.Postbyte) }
func execPULS(e *Emulator, ins *Instruction) { e.pull(&e.State.S, false, ins.Postbyte) }
func execPULU(e *Emulator, ins *Instruction) { e.pull(&e.State.U, true, ins.Postbyte) }

func execLEAX(e *Emulator, ins *Instruction) { e.State.X = e.EA; e.setZOnly(e.State.X) }
func execLEAY(e *Emulator, ins *Instruction) { e.State.Y = e.EA; e.setZOnly(e.State.Y) }
func execLEAU(e *Emulator, ins *Instruction) { e.State.U = e.EA }
func execLEAS(e *Emulator, ins *Instruction) { e.State.S = e.EA }

// setZOnly updates just Z: LEAX/LEAY set Z from the result, leaving N, V,
// C unaffected, as real hardware does.
func (e *Emulator) setZOnly(v Optional[uint16]) {
	e.State.CC.Z = Combine1(v, func(x uint16) bool { return x == 0 })
}

// --- interrupt-related, simplified -------------------------------------

func execSWI(e *Emulator, ins *Instruction)  { e.enterInterrupt(true) }
func execSWI2(e *Emulator, ins *Instruction) { e.enterInterrupt(false) }
func execSWI3(e *Emulator, ins *Instruction) { e.enterInterrupt(false) }

// enterInterrupt pushes the entire machine state, exactly as a hardware
// SWI/NMI/IRQ/FIRQ entry would with E=1, leaving PC unknown: the vector
// fetch that follows is what the trace driver's reset/interrupt matcher
// resolves, not this emulator.
func (e *Emulator) enterInterrupt(setMask bool) {
	e.State.CC.E = Known(true)
	e.push(&e.State.S, &e.State.U, 0xff)
	if setMask {
		e.State.CC.I = Known(true)
	}
	e.State.CC.F = Known(true)
	e.State.PC = Unk[uint16]()
	e.branched = true
}

func execRTI(e *Emulator, ins *Instruction) {
	cc := e.recordRead(mustU16Optional(e.State.S))
	setCCByte(&e.State.CC, cc)
	e.State.S = Combine1(e.State.S, func(s uint16) uint16 { return s + 1 })
	entire := e.State.CC.E
	mask := byte(0x80) // PC always restored
	if !entire.Known || entire.Value {
		mask = 0xfe // everything but CC, already pulled
	}
	e.pull(&e.State.S, false, mask)
}

func execCWAI(e *Emulator, ins *Instruction) {
	applyCC(&e.State.CC, e.Op8, func(a, b bool) bool { return a && b })
	e.State.CC.E = Known(true)
	e.push(&e.State.S, &e.State.U, 0xff)
	e.State.PC = Unk[uint16]()
	e.branched = true
}
