// This file is part of Gopherchips.
//
// Gopherchips is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherchips is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherchips.  If not, see <https://www.gnu.org/licenses/>.

package z80

// functions attached to the steps queued by the decoder. the opcode fields
// needed by each function are taken from the opcode register

func opY(mc *CPU) uint8 { return (mc.opcode >> 3) & 0x07 }
func opZ(mc *CPU) uint8 { return mc.opcode & 0x07 }
func opP(mc *CPU) uint8 { return (mc.opcode >> 4) & 0x03 }

func loadTmp(mc *CPU) {
	mc.tmp = mc.dlatch
}

func displacement(mc *CPU) {
	mc.WZ = mc.idx() + uint16(int8(mc.dlatch))
}

func jr(mc *CPU) {
	mc.PC += uint16(int8(mc.dlatch))
	mc.WZ = mc.PC
	mc.internal(5, nil)
}

func jrCond(mc *CPU) {
	if mc.condition(opY(mc) - 4) {
		jr(mc)
	}
}

func djnz(mc *CPU) {
	mc.B--
	if mc.B != 0 {
		jr(mc)
	}
}

func ldRpImm(mc *CPU) {
	mc.setRp(opP(mc), uint16(mc.dlatch)<<8|uint16(mc.tmp))
}

func addIdxRp(mc *CPU) {
	mc.setIdx(mc.add16(mc.idx(), mc.rp(opP(mc))))
}

func incDecRp(mc *CPU) {
	p := opP(mc)
	if mc.opcode&0x08 == 0 {
		mc.setRp(p, mc.rp(p)+1)
	} else {
		mc.setRp(p, mc.rp(p)-1)
	}
}

func ldBCA(mc *CPU) {
	mc.addr = mc.BC()
	mc.dlatch = mc.A
	mc.WZ = uint16(mc.A)<<8 | (mc.addr+1)&0x00ff
}

func ldDEA(mc *CPU) {
	mc.addr = mc.DE()
	mc.dlatch = mc.A
	mc.WZ = uint16(mc.A)<<8 | (mc.addr+1)&0x00ff
}

func ldABC(mc *CPU) {
	mc.A = mc.dlatch
	mc.WZ = mc.BC() + 1
}

func ldADE(mc *CPU) {
	mc.A = mc.dlatch
	mc.WZ = mc.DE() + 1
}

func storeIdxLo(mc *CPU) {
	mc.addr = mc.WZ
	mc.WZ++
	mc.dlatch = uint8(mc.idx())
}

func storeIdxHi(mc *CPU) {
	mc.addr = mc.WZ
	mc.dlatch = uint8(mc.idx() >> 8)
}

func ldIdxTmp(mc *CPU) {
	mc.setIdx(uint16(mc.dlatch)<<8 | uint16(mc.tmp))
}

func ldNNA(mc *CPU) {
	mc.addr = mc.WZ
	mc.dlatch = mc.A
	mc.WZ = uint16(mc.A)<<8 | (mc.WZ+1)&0x00ff
}

func ldANN(mc *CPU) {
	mc.A = mc.dlatch
	mc.WZ++
}

func incMem(mc *CPU) {
	mc.dlatch = mc.inc8(mc.dlatch)
}

func decMem(mc *CPU) {
	mc.dlatch = mc.dec8(mc.dlatch)
}

func ldRegImm(mc *CPU) {
	mc.setReg(opY(mc), mc.dlatch)
}

func ldMemReg(mc *CPU) {
	mc.dlatch = mc.regHL(opZ(mc))
}

func ldRegMem(mc *CPU) {
	mc.setRegHL(opY(mc), mc.dlatch)
}

func aluLatch(mc *CPU) {
	mc.alu(opY(mc), mc.dlatch)
}

func retCond(mc *CPU) {
	if mc.condition(opY(mc)) {
		mc.read(srcSP, popZ)
		mc.read(srcSP, popWRet)
	}
}

func popTmp(mc *CPU) {
	mc.tmp = mc.dlatch
	mc.SP++
}

func popRp2(mc *CPU) {
	mc.setRp2(opP(mc), uint16(mc.dlatch)<<8|uint16(mc.tmp))
	mc.SP++
}

func pushRp2Hi(mc *CPU) {
	mc.SP--
	mc.addr = mc.SP
	mc.dlatch = uint8(mc.rp2(opP(mc)) >> 8)
}

func pushRp2Lo(mc *CPU) {
	mc.SP--
	mc.addr = mc.SP
	mc.dlatch = uint8(mc.rp2(opP(mc)))
}

func ldSPIdx(mc *CPU) {
	mc.SP = mc.idx()
}

func jpCond(mc *CPU) {
	loadW(mc)
	if mc.condition(opY(mc)) {
		mc.PC = mc.WZ
	}
}

func callCond(mc *CPU) {
	loadW(mc)
	if mc.condition(opY(mc)) {
		mc.internal(1, nil)
		mc.write(srcAddr, pushPCH)
		mc.write(srcAddr, pushPCLJump)
	}
}

func outImm(mc *CPU) {
	mc.addr = uint16(mc.A)<<8 | uint16(mc.dlatch)
	mc.WZ = uint16(mc.A)<<8 | uint16(mc.dlatch+1)
}

func outA(mc *CPU) {
	mc.dlatch = mc.A
}

func inImm(mc *CPU) {
	mc.addr = uint16(mc.A)<<8 | uint16(mc.dlatch)
	mc.WZ = mc.addr + 1
}

func inA(mc *CPU) {
	mc.A = mc.dlatch
}

func exSPLo(mc *CPU) {
	mc.tmp = mc.dlatch
	mc.addr = mc.SP + 1
}

func exSPHi(mc *CPU) {
	mc.WZ = uint16(mc.dlatch)<<8 | uint16(mc.tmp)
}

func exSPWriteHi(mc *CPU) {
	mc.addr = mc.SP + 1
	mc.dlatch = uint8(mc.idx() >> 8)
}

func exSPWriteLo(mc *CPU) {
	mc.addr = mc.SP
	mc.dlatch = uint8(mc.idx())
	mc.setIdx(mc.WZ)
}

// the CB page

func bitMem(mc *CPU) {
	mc.bit(opY(mc), mc.dlatch, uint8(mc.WZ>>8))
}

func cbMem(mc *CPU) {
	mc.dlatch = cbOp(mc, mc.dlatch)
}

// indexedCB is called with the fourth byte of a DDCB or FDCB instruction.
// the address of the operand is already in WZ
func indexedCB(mc *CPU) {
	mc.opcode = mc.dlatch
	mc.internal(2, nil)
	mc.read(srcWZ, nil)
	if mc.opcode>>6 == 1 {
		mc.internal(1, bitMem)
		return
	}
	mc.internal(1, nil)
	mc.write(srcAddr, ddcbWrite)
}

// the result of an indexed CB operation is also copied to a register
// unless the register field is 6
func ddcbWrite(mc *CPU) {
	mc.dlatch = cbOp(mc, mc.dlatch)
	if z := opZ(mc); z != 6 {
		mc.setRegHL(z, mc.dlatch)
	}
}

// the ED page

func edIn(mc *CPU) {
	mc.F = (mc.F & FlagC) | szpFlags(mc.dlatch)
	if y := opY(mc); y != 6 {
		mc.setRegHL(y, mc.dlatch)
	}
	mc.WZ = mc.BC() + 1
}

// OUT (C),0 is encoded in the place of OUT (C),(HL)
func edOut(mc *CPU) {
	if y := opY(mc); y != 6 {
		mc.dlatch = mc.regHL(y)
	} else {
		mc.dlatch = 0
	}
	mc.WZ = mc.BC() + 1
}

func sbcHL(mc *CPU) {
	mc.SetHL(mc.sbc16(mc.HL(), mc.rp(opP(mc))))
}

func adcHL(mc *CPU) {
	mc.SetHL(mc.adc16(mc.HL(), mc.rp(opP(mc))))
}

func edStoreRpLo(mc *CPU) {
	mc.addr = mc.WZ
	mc.WZ++
	mc.dlatch = uint8(mc.rp(opP(mc)))
}

func edStoreRpHi(mc *CPU) {
	mc.addr = mc.WZ
	mc.dlatch = uint8(mc.rp(opP(mc)) >> 8)
}

func edLoadRp(mc *CPU) {
	mc.setRp(opP(mc), uint16(mc.dlatch)<<8|uint16(mc.tmp))
}

func ldIA(mc *CPU) {
	mc.I = mc.A
}

func ldRA(mc *CPU) {
	mc.R = mc.A
}

func ldAI(mc *CPU) {
	mc.A = mc.I
	mc.irFlags()
}

func ldAR(mc *CPU) {
	mc.A = mc.R
	mc.irFlags()
}

// flags for LD A,I and LD A,R. the parity flag is a copy of IFF2
func (mc *CPU) irFlags() {
	f := (mc.F & FlagC) | szFlags(mc.A)
	if mc.IFF2 {
		f |= FlagPV
	}
	mc.F = f
}

func rrd(mc *CPU) {
	v := mc.dlatch
	mc.dlatch = mc.A<<4 | v>>4
	mc.A = (mc.A & 0xf0) | (v & 0x0f)
	mc.F = (mc.F & FlagC) | szpFlags(mc.A)
	mc.WZ = mc.HL() + 1
}

func rld(mc *CPU) {
	v := mc.dlatch
	mc.dlatch = v<<4 | mc.A&0x0f
	mc.A = (mc.A & 0xf0) | (v >> 4)
	mc.F = (mc.F & FlagC) | szpFlags(mc.A)
	mc.WZ = mc.HL() + 1
}

// block instructions. bit 3 of the opcode selects decrement and bit 4
// selects the repeating form

func blockDelta(mc *CPU) uint16 {
	if mc.opcode&0x08 != 0 {
		return 0xffff
	}
	return 1
}

func blockRepeats(mc *CPU) bool {
	return mc.opcode&0x10 != 0
}

// the repeating forms rewind the PC so that the instruction is fetched
// again
func blockRepeat(mc *CPU) {
	mc.PC -= 2
	mc.WZ = mc.PC + 1
}

func ldiPost(mc *CPU) {
	d := blockDelta(mc)
	mc.SetHL(mc.HL() + d)
	mc.SetDE(mc.DE() + d)
	mc.SetBC(mc.BC() - 1)

	n := mc.dlatch + mc.A
	f := mc.F & (FlagS | FlagZ | FlagC)
	f |= n & FlagX
	f |= (n << 4) & FlagY
	if mc.BC() != 0 {
		f |= FlagPV
	}
	mc.F = f

	if blockRepeats(mc) && mc.BC() != 0 {
		mc.internal(5, blockRepeat)
	}
}

func cpiPost(mc *CPU) {
	d := blockDelta(mc)
	mc.SetHL(mc.HL() + d)
	mc.WZ += d
	mc.SetBC(mc.BC() - 1)

	r := mc.A - mc.dlatch
	f := FlagN | (mc.F & FlagC) | (szFlags(r) &^ (FlagX | FlagY))
	if r&0x0f > mc.A&0x0f {
		f |= FlagH
		r--
	}
	if r&0x02 != 0 {
		f |= FlagY
	}
	if r&0x08 != 0 {
		f |= FlagX
	}
	if mc.BC() != 0 {
		f |= FlagPV
	}
	mc.F = f

	if blockRepeats(mc) && mc.BC() != 0 && f&FlagZ == 0 {
		mc.internal(5, blockRepeat)
	}
}

func iniRead(mc *CPU) {
	mc.WZ = mc.BC() + blockDelta(mc)
	mc.B--
}

func iniWrite(mc *CPU) {
	d := blockDelta(mc)
	mc.addr = mc.HL()
	mc.SetHL(mc.HL() + d)
	c := mc.C + uint8(d)
	mc.blockIOFlags(mc.dlatch, uint16(mc.dlatch)+uint16(c))
	if blockRepeats(mc) && mc.B != 0 {
		mc.internal(5, blockRepeat)
	}
}

func outiRead(mc *CPU) {
	mc.B--
}

func outiWrite(mc *CPU) {
	d := blockDelta(mc)
	mc.SetHL(mc.HL() + d)
	mc.WZ = mc.BC() + d
	mc.blockIOFlags(mc.dlatch, uint16(mc.dlatch)+uint16(mc.L))
	if blockRepeats(mc) && mc.B != 0 {
		mc.internal(5, blockRepeat)
	}
}
