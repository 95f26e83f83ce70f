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

// the value of HL, IX or IY depending on the active prefix
func (mc *CPU) idx() uint16 {
	switch mc.index {
	case indexIX:
		return mc.IX
	case indexIY:
		return mc.IY
	}
	return mc.HL()
}

func (mc *CPU) setIdx(v uint16) {
	switch mc.index {
	case indexIX:
		mc.IX = v
	case indexIY:
		mc.IY = v
	default:
		mc.SetHL(v)
	}
}

// reg returns the 8bit register selected by bits of the opcode. H and L are
// replaced by the high and low bytes of IX or IY when an index prefix is
// active. there is no register 6, that encoding always means a memory
// operand
func (mc *CPU) reg(r uint8) uint8 {
	switch r & 0x07 {
	case 0:
		return mc.B
	case 1:
		return mc.C
	case 2:
		return mc.D
	case 3:
		return mc.E
	case 4:
		return uint8(mc.idx() >> 8)
	case 5:
		return uint8(mc.idx())
	case 7:
		return mc.A
	}
	return 0
}

func (mc *CPU) setReg(r uint8, v uint8) {
	switch r & 0x07 {
	case 0:
		mc.B = v
	case 1:
		mc.C = v
	case 2:
		mc.D = v
	case 3:
		mc.E = v
	case 4:
		mc.setIdx(mc.idx()&0x00ff | uint16(v)<<8)
	case 5:
		mc.setIdx(mc.idx()&0xff00 | uint16(v))
	case 7:
		mc.A = v
	}
}

// regHL is like reg() but H and L are never replaced. used when the other
// operand of an instruction is (IX+d) or (IY+d)
func (mc *CPU) regHL(r uint8) uint8 {
	switch r & 0x07 {
	case 4:
		return mc.H
	case 5:
		return mc.L
	}
	return mc.reg(r)
}

func (mc *CPU) setRegHL(r uint8, v uint8) {
	switch r & 0x07 {
	case 4:
		mc.H = v
	case 5:
		mc.L = v
	default:
		mc.setReg(r, v)
	}
}

// register pairs BC, DE, HL (or IX/IY) and SP
func (mc *CPU) rp(p uint8) uint16 {
	switch p & 0x03 {
	case 0:
		return mc.BC()
	case 1:
		return mc.DE()
	case 2:
		return mc.idx()
	}
	return mc.SP
}

func (mc *CPU) setRp(p uint8, v uint16) {
	switch p & 0x03 {
	case 0:
		mc.SetBC(v)
	case 1:
		mc.SetDE(v)
	case 2:
		mc.setIdx(v)
	default:
		mc.SP = v
	}
}

// register pairs for PUSH and POP. AF takes the place of SP
func (mc *CPU) rp2(p uint8) uint16 {
	if p&0x03 == 3 {
		return mc.AF()
	}
	return mc.rp(p)
}

func (mc *CPU) setRp2(p uint8, v uint16) {
	if p&0x03 == 3 {
		mc.SetAF(v)
		return
	}
	mc.setRp(p, v)
}
