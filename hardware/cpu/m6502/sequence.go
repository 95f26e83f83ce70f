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

package m6502

// execute one cycle of the current instruction. d is the data read by the
// previous bus cycle.
func (mc *CPU) execute(d uint8) {
	switch mc.ins.seq {
	case seqAddressed:
		if mc.tail >= 0 {
			mc.effect(d)
			mc.tail++
		} else {
			mc.address(d)
		}
	case seqBranch:
		mc.branch(d)
	case seqBRK:
		mc.interrupt(d)
	case seqRTI:
		mc.rti(d)
	case seqRTS:
		mc.rts(d)
	case seqJSR:
		mc.jsr(d)
	case seqJMP:
		mc.jmp(d)
	case seqJMPIndirect:
		mc.jmpIndirect(d)
	case seqPush:
		mc.pushOp()
	case seqPull:
		mc.pullOp(d)
	case seqJAM:
		mc.jam()
	}
}

// access places the effective address on the bus. the remaining cycles of the
// instruction are handled by effect()
func (mc *CPU) access(addr uint16) {
	mc.ad = addr
	mc.tail = 0

	if mc.ins.defn.Effect == Write {
		v := mc.ins.op.write(mc)
		if mc.ins.unstable && mc.crossed {
			addr = uint16(v)<<8 | addr&0x00ff
			mc.ad = addr
		}
		mc.sad(addr, v)
		return
	}

	mc.sa(addr)
}

// resolve the effective address of the operand according to the addressing
// mode
func (mc *CPU) address(d uint8) {
	switch mc.ins.defn.AddressingMode {
	case Implied:
		switch mc.cycle {
		case 0:
			mc.sa(mc.PC)
		case 1:
			if mc.ins.op.modify != nil {
				mc.A = mc.ins.op.modify(mc, mc.A)
			} else {
				mc.ins.op.implied(mc)
			}
			mc.fetch()
		}

	case Immediate:
		mc.access(mc.PC)
		mc.PC++

	case ZeroPage:
		switch mc.cycle {
		case 0:
			mc.sa(mc.PC)
			mc.PC++
		case 1:
			mc.access(uint16(d))
		}

	case IndexedZeroPageX, IndexedZeroPageY:
		switch mc.cycle {
		case 0:
			mc.sa(mc.PC)
			mc.PC++
		case 1:
			// dummy read of the unindexed address
			mc.ad = uint16(d)
			mc.sa(mc.ad)
		case 2:
			mc.access((mc.ad + uint16(mc.index())) & 0x00ff)
		}

	case Absolute:
		switch mc.cycle {
		case 0:
			mc.sa(mc.PC)
			mc.PC++
		case 1:
			mc.ad = uint16(d)
			mc.sa(mc.PC)
			mc.PC++
		case 2:
			mc.access(uint16(d)<<8 | mc.ad)
		}

	case AbsoluteIndexedX, AbsoluteIndexedY:
		switch mc.cycle {
		case 0:
			mc.sa(mc.PC)
			mc.PC++
		case 1:
			mc.ad = uint16(d)
			mc.sa(mc.PC)
			mc.PC++
		case 2:
			mc.ad |= uint16(d) << 8
			mc.indexed()
		case 3:
			mc.access(mc.ad)
		}

	case PreIndexedIndirect:
		switch mc.cycle {
		case 0:
			mc.sa(mc.PC)
			mc.PC++
		case 1:
			mc.ad = uint16(d)
			mc.sa(mc.ad)
		case 2:
			mc.ad = (mc.ad + uint16(mc.X)) & 0x00ff
			mc.sa(mc.ad)
		case 3:
			mc.sa((mc.ad + 1) & 0x00ff)
			mc.ad = uint16(d)
		case 4:
			mc.access(uint16(d)<<8 | mc.ad)
		}

	case PostIndexedIndirect:
		switch mc.cycle {
		case 0:
			mc.sa(mc.PC)
			mc.PC++
		case 1:
			mc.ad = uint16(d)
			mc.sa(mc.ad)
		case 2:
			mc.sa((mc.ad + 1) & 0x00ff)
			mc.ad = uint16(d)
		case 3:
			mc.ad |= uint16(d) << 8
			mc.indexed()
		case 4:
			mc.access(mc.ad)
		}
	}
}

func (mc *CPU) index() uint8 {
	switch mc.ins.defn.AddressingMode {
	case AbsoluteIndexedY, PostIndexedIndirect, IndexedZeroPageY:
		return mc.Y
	}
	return mc.X
}

// index the base address in mc.ad. read instructions that do not cross a page
// access the effective address immediately. every other case reads the
// effective address without the carry into the high byte first
func (mc *CPU) indexed() {
	mc.base = uint8(mc.ad >> 8)
	ea := mc.ad + uint16(mc.index())
	mc.crossed = ea&0xff00 != mc.ad&0xff00
	mc.ad = ea

	if mc.ins.defn.Effect == Read && !mc.crossed {
		mc.access(ea)
		return
	}

	mc.sa(uint16(mc.base)<<8 | ea&0x00ff)
}

// the cycles after the effective address has been placed on the bus
func (mc *CPU) effect(d uint8) {
	switch mc.ins.defn.Effect {
	case Write:
		mc.fetch()

	case RMW:
		switch mc.tail {
		case 0:
			// the unmodified value is written back before the modified value
			mc.tmp = d
			mc.sad(mc.ad, d)
		case 1:
			mc.sad(mc.ad, mc.ins.op.modify(mc, mc.tmp))
		case 2:
			mc.fetch()
		}

	default:
		mc.ins.op.read(mc, d)
		mc.fetch()
	}
}

func (mc *CPU) branch(d uint8) {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
		mc.PC++
	case 1:
		mc.sa(mc.PC)
		if !mc.ins.op.branch(mc) {
			mc.fetch()
			return
		}
		mc.ad = mc.PC + uint16(int8(d))
	case 2:
		// a taken branch that does not cross a page delays interrupts by one
		// cycle
		if mc.ad&0xff00 == mc.PC&0xff00 {
			mc.PC = mc.ad
			mc.irqPip >>= 1
			mc.nmiPip >>= 1
			mc.fetch()
			return
		}
		mc.sa(mc.PC&0xff00 | mc.ad&0x00ff)
	case 3:
		mc.PC = mc.ad
		mc.fetch()
	}
}

// the BRK instruction and the interrupt and reset sequences
func (mc *CPU) interrupt(d uint8) {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
	case 1:
		// BRK skips the byte following the opcode
		if mc.brk&(brkIRQ|brkNMI) == 0 {
			mc.PC++
		}
		mc.push(uint8(mc.PC >> 8))
	case 2:
		mc.push(uint8(mc.PC))
	case 3:
		// the break bit is only set in the pushed value for the BRK
		// instruction
		if mc.brk == 0 {
			mc.push(mc.P.Value() | 0x10)
		} else {
			mc.push(mc.P.Value() &^ 0x10)
		}
		switch {
		case mc.brk&brkReset == brkReset:
			mc.ad = ResetVector
		case mc.brk&brkNMI == brkNMI:
			mc.ad = NMIVector
		default:
			mc.ad = IRQVector
		}
	case 4:
		mc.sa(mc.ad)
		mc.ad++
		mc.P.InterruptDisable = true
		mc.P.Break = true
		mc.brk = 0
	case 5:
		mc.sa(mc.ad)
		mc.ad = uint16(d)
	case 6:
		mc.PC = uint16(d)<<8 | mc.ad
		mc.fetch()
	}
}

func (mc *CPU) rti(d uint8) {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
	case 1:
		mc.sa(mc.stack())
		mc.S++
	case 2:
		mc.sa(mc.stack())
		mc.S++
	case 3:
		mc.sa(mc.stack())
		mc.S++
		mc.P.FromValue(d)
		mc.P.Break = true
	case 4:
		mc.ad = uint16(d)
		mc.sa(mc.stack())
	case 5:
		mc.PC = uint16(d)<<8 | mc.ad
		mc.fetch()
	}
}

func (mc *CPU) rts(d uint8) {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
	case 1:
		mc.sa(mc.stack())
		mc.S++
	case 2:
		mc.sa(mc.stack())
		mc.S++
	case 3:
		mc.ad = uint16(d)
		mc.sa(mc.stack())
	case 4:
		mc.PC = uint16(d)<<8 | mc.ad
		mc.sa(mc.PC)
		mc.PC++
	case 5:
		mc.fetch()
	}
}

func (mc *CPU) jsr(d uint8) {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
		mc.PC++
	case 1:
		mc.ad = uint16(d)
		mc.sa(mc.stack())
	case 2:
		mc.push(uint8(mc.PC >> 8))
	case 3:
		mc.push(uint8(mc.PC))
	case 4:
		mc.sa(mc.PC)
	case 5:
		mc.PC = uint16(d)<<8 | mc.ad
		mc.fetch()
	}
}

func (mc *CPU) jmp(d uint8) {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
		mc.PC++
	case 1:
		mc.ad = uint16(d)
		mc.sa(mc.PC)
		mc.PC++
	case 2:
		mc.PC = uint16(d)<<8 | mc.ad
		mc.fetch()
	}
}

// the high byte of the target is read from the start of the same page if the
// pointer is at the end of a page
func (mc *CPU) jmpIndirect(d uint8) {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
		mc.PC++
	case 1:
		mc.ad = uint16(d)
		mc.sa(mc.PC)
		mc.PC++
	case 2:
		mc.ad |= uint16(d) << 8
		mc.sa(mc.ad)
	case 3:
		mc.sa(mc.ad&0xff00 | (mc.ad+1)&0x00ff)
		mc.ad = uint16(d)
	case 4:
		mc.PC = uint16(d)<<8 | mc.ad
		mc.fetch()
	}
}

func (mc *CPU) pushOp() {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
	case 1:
		mc.push(mc.ins.op.write(mc))
	case 2:
		mc.fetch()
	}
}

func (mc *CPU) pullOp(d uint8) {
	switch mc.cycle {
	case 0:
		mc.sa(mc.PC)
	case 1:
		mc.sa(mc.stack())
		mc.S++
	case 2:
		mc.sa(mc.stack())
	case 3:
		mc.ins.op.read(mc, d)
		mc.fetch()
	}
}

// JAM places 0xffff on the address bus until the CPU is reset
func (mc *CPU) jam() {
	if mc.cycle == 0 {
		mc.sa(mc.PC)
		return
	}
	mc.sa(0xffff)
	mc.out = mc.out.SetData(0xff)
	mc.jammed = true
}
