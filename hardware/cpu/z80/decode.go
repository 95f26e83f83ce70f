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

// decode is called at the end of an opcode fetch with the opcode in the data
// latch. simple instructions are executed immediately. everything else
// queues the machine cycles required to complete the instruction.
//
// opcodes are decoded by splitting them into fields:
//
//	x = bits 6-7, y = bits 3-5, z = bits 0-2
//	p = bits 4-5, q = bit 3
func decode(mc *CPU) {
	mc.opcode = mc.dlatch
	switch mc.page {
	case pageCB:
		decodeCB(mc)
	case pageED:
		decodeED(mc)
	default:
		decodeMain(mc)
	}
}

func decodeMain(mc *CPU) {
	op := mc.opcode
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0:
				// NOP
			case 1:
				af := mc.AF()
				mc.SetAF(mc.AF2)
				mc.AF2 = af
			case 2:
				mc.internal(1, nil)
				mc.read(srcPC, djnz)
			case 3:
				mc.read(srcPC, jr)
			default:
				mc.read(srcPC, jrCond)
			}

		case 1:
			if q == 0 {
				mc.read(srcPC, loadTmp)
				mc.read(srcPC, ldRpImm)
			} else {
				mc.internal(7, addIdxRp)
			}

		case 2:
			switch y {
			case 0:
				mc.write(srcAddr, ldBCA)
			case 1:
				mc.read(srcBC, ldABC)
			case 2:
				mc.write(srcAddr, ldDEA)
			case 3:
				mc.read(srcDE, ldADE)
			case 4:
				mc.read(srcPC, loadZ)
				mc.read(srcPC, loadW)
				mc.write(srcAddr, storeIdxLo)
				mc.write(srcAddr, storeIdxHi)
			case 5:
				mc.read(srcPC, loadZ)
				mc.read(srcPC, loadW)
				mc.read(srcWZ, loadTmpIncWZ)
				mc.read(srcWZ, ldIdxTmp)
			case 6:
				mc.read(srcPC, loadZ)
				mc.read(srcPC, loadW)
				mc.write(srcAddr, ldNNA)
			case 7:
				mc.read(srcPC, loadZ)
				mc.read(srcPC, loadW)
				mc.read(srcWZ, ldANN)
			}

		case 3:
			mc.internal(2, incDecRp)

		case 4:
			if y == 6 {
				src := mc.memOperand()
				mc.read(src, nil)
				mc.internal(1, nil)
				mc.write(srcAddr, incMem)
			} else {
				mc.setReg(y, mc.inc8(mc.reg(y)))
			}

		case 5:
			if y == 6 {
				src := mc.memOperand()
				mc.read(src, nil)
				mc.internal(1, nil)
				mc.write(srcAddr, decMem)
			} else {
				mc.setReg(y, mc.dec8(mc.reg(y)))
			}

		case 6:
			if y == 6 {
				if mc.index == indexHL {
					mc.read(srcPC, nil)
					mc.write(srcHL, nil)
				} else {
					mc.read(srcPC, displacement)
					mc.read(srcPC, nil)
					mc.internal(2, nil)
					mc.write(srcWZ, nil)
				}
			} else {
				mc.read(srcPC, ldRegImm)
			}

		case 7:
			switch y {
			case 0, 1, 2, 3:
				mc.rotA(y)
			case 4:
				mc.daa()
			case 5:
				mc.cpl()
			case 6:
				mc.scf()
			case 7:
				mc.ccf()
			}
		}

	case 1:
		if y == 6 && z == 6 {
			mc.halted = true
		} else if y == 6 {
			mc.write(mc.memOperand(), ldMemReg)
		} else if z == 6 {
			mc.read(mc.memOperand(), ldRegMem)
		} else {
			mc.setReg(y, mc.reg(z))
		}

	case 2:
		if z == 6 {
			mc.read(mc.memOperand(), aluLatch)
		} else {
			mc.alu(y, mc.reg(z))
		}

	case 3:
		switch z {
		case 0:
			mc.internal(1, retCond)

		case 1:
			if q == 0 {
				mc.read(srcSP, popTmp)
				mc.read(srcSP, popRp2)
			} else {
				switch p {
				case 0:
					mc.read(srcSP, popZ)
					mc.read(srcSP, popWRet)
				case 1:
					bc, de, hl := mc.BC(), mc.DE(), mc.HL()
					mc.SetBC(mc.BC2)
					mc.SetDE(mc.DE2)
					mc.SetHL(mc.HL2)
					mc.BC2, mc.DE2, mc.HL2 = bc, de, hl
				case 2:
					mc.PC = mc.idx()
				case 3:
					mc.internal(2, ldSPIdx)
				}
			}

		case 2:
			mc.read(srcPC, loadZ)
			mc.read(srcPC, jpCond)

		case 3:
			switch y {
			case 0:
				mc.read(srcPC, loadZ)
				mc.read(srcPC, jumpWZ)
			case 1:
				if mc.index == indexHL {
					mc.page = pageCB
					mc.fetch()
				} else {
					mc.read(srcPC, displacement)
					mc.read(srcPC, indexedCB)
				}
			case 2:
				mc.read(srcPC, outImm)
				mc.ioWrite(srcAddr, outA)
			case 3:
				mc.read(srcPC, inImm)
				mc.ioRead(srcAddr, inA)
			case 4:
				mc.read(srcSP, exSPLo)
				mc.read(srcAddr, exSPHi)
				mc.internal(1, nil)
				mc.write(srcAddr, exSPWriteHi)
				mc.write(srcAddr, exSPWriteLo)
				mc.internal(2, nil)
			case 5:
				de := mc.DE()
				mc.SetDE(mc.HL())
				mc.SetHL(de)
			case 6:
				mc.IFF1 = false
				mc.IFF2 = false
			case 7:
				mc.IFF1 = true
				mc.IFF2 = true
				mc.eiDelay = true
			}

		case 4:
			mc.read(srcPC, loadZ)
			mc.read(srcPC, callCond)

		case 5:
			if q == 0 {
				mc.internal(1, nil)
				mc.write(srcAddr, pushRp2Hi)
				mc.write(srcAddr, pushRp2Lo)
			} else {
				switch p {
				case 0:
					mc.read(srcPC, loadZ)
					mc.read(srcPC, loadW)
					mc.internal(1, nil)
					mc.write(srcAddr, pushPCH)
					mc.write(srcAddr, pushPCLJump)
				case 1:
					mc.index = indexIX
					mc.fetch()
				case 2:
					mc.page = pageED
					mc.index = indexHL
					mc.fetch()
				case 3:
					mc.index = indexIY
					mc.fetch()
				}
			}

		case 6:
			mc.read(srcPC, aluLatch)

		case 7:
			mc.internal(1, nil)
			mc.write(srcAddr, pushPCH)
			mc.write(srcAddr, pushPCLRst)
		}
	}
}

// memOperand queues the cycles needed to form the address of a (HL),
// (IX+d) or (IY+d) operand and returns the source of the address
func (mc *CPU) memOperand() addrSource {
	if mc.index == indexHL {
		return srcHL
	}
	mc.read(srcPC, displacement)
	mc.internal(5, nil)
	return srcWZ
}

func decodeCB(mc *CPU) {
	op := mc.opcode
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07

	if z == 6 {
		mc.read(srcHL, nil)
		if x == 1 {
			mc.internal(1, bitMem)
		} else {
			mc.internal(1, nil)
			mc.write(srcAddr, cbMem)
		}
		return
	}

	v := mc.reg(z)
	if x == 1 {
		mc.bit(y, v, v)
		return
	}
	mc.setReg(z, cbOp(mc, v))
}

// cbOp performs the rotate, shift, RES or SET operation encoded in the
// current opcode. BIT is not handled here
func cbOp(mc *CPU, v uint8) uint8 {
	op := mc.opcode
	y := (op >> 3) & 0x07
	switch op >> 6 {
	case 0:
		return mc.rot(y, v)
	case 2:
		return v &^ (1 << y)
	case 3:
		return v | (1 << y)
	}
	return v
}

func decodeED(mc *CPU) {
	op := mc.opcode
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	q := y & 0x01

	switch x {
	case 1:
		switch z {
		case 0:
			mc.ioRead(srcBC, edIn)
		case 1:
			mc.ioWrite(srcBC, edOut)
		case 2:
			if q == 0 {
				mc.internal(7, sbcHL)
			} else {
				mc.internal(7, adcHL)
			}
		case 3:
			mc.read(srcPC, loadZ)
			mc.read(srcPC, loadW)
			if q == 0 {
				mc.write(srcAddr, edStoreRpLo)
				mc.write(srcAddr, edStoreRpHi)
			} else {
				mc.read(srcWZ, loadTmpIncWZ)
				mc.read(srcWZ, edLoadRp)
			}
		case 4:
			mc.neg()
		case 5:
			mc.read(srcSP, popZ)
			mc.read(srcSP, popWRetI)
		case 6:
			mc.IM = [4]uint8{0, 0, 1, 2}[y&0x03]
		case 7:
			switch y {
			case 0:
				mc.internal(1, ldIA)
			case 1:
				mc.internal(1, ldRA)
			case 2:
				mc.internal(1, ldAI)
			case 3:
				mc.internal(1, ldAR)
			case 4:
				mc.read(srcHL, nil)
				mc.internal(4, rrd)
				mc.write(srcAddr, nil)
			case 5:
				mc.read(srcHL, nil)
				mc.internal(4, rld)
				mc.write(srcAddr, nil)
			default:
				// NOP
			}
		}

	case 2:
		if y < 4 || z > 3 {
			// NOP
			return
		}
		switch z {
		case 0:
			mc.read(srcHL, nil)
			mc.write(srcDE, nil)
			mc.internal(2, ldiPost)
		case 1:
			mc.read(srcHL, nil)
			mc.internal(5, cpiPost)
		case 2:
			mc.internal(1, nil)
			mc.ioRead(srcBC, iniRead)
			mc.write(srcAddr, iniWrite)
		case 3:
			mc.internal(1, nil)
			mc.read(srcHL, outiRead)
			mc.ioWrite(srcBC, outiWrite)
		}

	default:
		// all other opcodes on the ED page are two byte NOPs
	}
}
