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

import "math/bits"

// sign, zero and the undocumented X and Y flags for a result
func szFlags(v uint8) uint8 {
	f := v & (FlagS | FlagY | FlagX)
	if v == 0 {
		f |= FlagZ
	}
	return f
}

// as szFlags() with the parity flag set for even parity
func szpFlags(v uint8) uint8 {
	f := szFlags(v)
	if bits.OnesCount8(v)&1 == 0 {
		f |= FlagPV
	}
	return f
}

func (mc *CPU) add8(v uint8, carry uint8) {
	a := mc.A
	r := uint16(a) + uint16(v) + uint16(carry)
	f := szFlags(uint8(r)) | ((a ^ v ^ uint8(r)) & FlagH)
	if (a^v)&0x80 == 0 && (a^uint8(r))&0x80 != 0 {
		f |= FlagPV
	}
	if r > 0xff {
		f |= FlagC
	}
	mc.A = uint8(r)
	mc.F = f
}

// sub8 returns the result of the subtraction and sets the flags. the result
// is not stored so that it can be used by the compare instructions
func (mc *CPU) sub8(v uint8, carry uint8) uint8 {
	a := mc.A
	r := uint16(a) - uint16(v) - uint16(carry)
	f := FlagN | szFlags(uint8(r)) | ((a ^ v ^ uint8(r)) & FlagH)
	if (a^v)&0x80 != 0 && (a^uint8(r))&0x80 != 0 {
		f |= FlagPV
	}
	if r > 0xff {
		f |= FlagC
	}
	mc.F = f
	return uint8(r)
}

func (mc *CPU) cp8(v uint8) {
	mc.sub8(v, 0)

	// undocumented flags come from the operand and not the result
	mc.F = (mc.F &^ (FlagX | FlagY)) | (v & (FlagX | FlagY))
}

// alu performs one of the eight accumulator operations. the operation is
// selected by bits 3 to 5 of an opcode
func (mc *CPU) alu(op uint8, v uint8) {
	switch op & 0x07 {
	case 0: // ADD
		mc.add8(v, 0)
	case 1: // ADC
		mc.add8(v, mc.F&FlagC)
	case 2: // SUB
		mc.A = mc.sub8(v, 0)
	case 3: // SBC
		mc.A = mc.sub8(v, mc.F&FlagC)
	case 4: // AND
		mc.A &= v
		mc.F = szpFlags(mc.A) | FlagH
	case 5: // XOR
		mc.A ^= v
		mc.F = szpFlags(mc.A)
	case 6: // OR
		mc.A |= v
		mc.F = szpFlags(mc.A)
	case 7: // CP
		mc.cp8(v)
	}
}

func (mc *CPU) inc8(v uint8) uint8 {
	r := v + 1
	f := (mc.F & FlagC) | szFlags(r)
	if v&0x0f == 0x0f {
		f |= FlagH
	}
	if v == 0x7f {
		f |= FlagPV
	}
	mc.F = f
	return r
}

func (mc *CPU) dec8(v uint8) uint8 {
	r := v - 1
	f := (mc.F & FlagC) | FlagN | szFlags(r)
	if v&0x0f == 0x00 {
		f |= FlagH
	}
	if v == 0x80 {
		f |= FlagPV
	}
	mc.F = f
	return r
}

func (mc *CPU) add16(a uint16, v uint16) uint16 {
	mc.WZ = a + 1
	r := uint32(a) + uint32(v)
	f := mc.F & (FlagS | FlagZ | FlagPV)
	f |= uint8(r>>8) & (FlagX | FlagY)
	f |= uint8((uint32(a)^uint32(v)^r)>>8) & FlagH
	if r > 0xffff {
		f |= FlagC
	}
	mc.F = f
	return uint16(r)
}

func (mc *CPU) adc16(a uint16, v uint16) uint16 {
	mc.WZ = a + 1
	r := uint32(a) + uint32(v) + uint32(mc.F&FlagC)
	f := uint8(r>>8) & (FlagS | FlagX | FlagY)
	if uint16(r) == 0 {
		f |= FlagZ
	}
	f |= uint8((uint32(a)^uint32(v)^r)>>8) & FlagH
	if (a^v)&0x8000 == 0 && (a^uint16(r))&0x8000 != 0 {
		f |= FlagPV
	}
	if r > 0xffff {
		f |= FlagC
	}
	mc.F = f
	return uint16(r)
}

func (mc *CPU) sbc16(a uint16, v uint16) uint16 {
	mc.WZ = a + 1
	r := uint32(a) - uint32(v) - uint32(mc.F&FlagC)
	f := FlagN | uint8(r>>8)&(FlagS|FlagX|FlagY)
	if uint16(r) == 0 {
		f |= FlagZ
	}
	f |= uint8((uint32(a)^uint32(v)^r)>>8) & FlagH
	if (a^v)&0x8000 != 0 && (a^uint16(r))&0x8000 != 0 {
		f |= FlagPV
	}
	if r > 0xffff {
		f |= FlagC
	}
	mc.F = f
	return uint16(r)
}

// rot performs one of the eight rotate/shift operations of the CB page.
// the operation is selected by bits 3 to 5 of the opcode
func (mc *CPU) rot(op uint8, v uint8) uint8 {
	var r, c uint8
	switch op & 0x07 {
	case 0: // RLC
		r = v<<1 | v>>7
		c = v >> 7
	case 1: // RRC
		r = v>>1 | v<<7
		c = v & 0x01
	case 2: // RL
		r = v<<1 | (mc.F & FlagC)
		c = v >> 7
	case 3: // RR
		r = v>>1 | (mc.F&FlagC)<<7
		c = v & 0x01
	case 4: // SLA
		r = v << 1
		c = v >> 7
	case 5: // SRA
		r = v>>1 | v&0x80
		c = v & 0x01
	case 6: // SLL (undocumented)
		r = v<<1 | 0x01
		c = v >> 7
	case 7: // SRL
		r = v >> 1
		c = v & 0x01
	}
	mc.F = szpFlags(r) | c
	return r
}

// rotations of the accumulator only affect the carry, H, N and the
// undocumented flags
func (mc *CPU) rotA(op uint8) {
	f := mc.F & (FlagS | FlagZ | FlagPV)
	a := mc.A
	switch op & 0x03 {
	case 0: // RLCA
		a = a<<1 | a>>7
		f |= a & FlagC
	case 1: // RRCA
		f |= a & FlagC
		a = a>>1 | a<<7
	case 2: // RLA
		c := a >> 7
		a = a<<1 | (mc.F & FlagC)
		f |= c
	case 3: // RRA
		c := a & 0x01
		a = a>>1 | (mc.F&FlagC)<<7
		f |= c
	}
	mc.A = a
	mc.F = f | (a & (FlagX | FlagY))
}

// bit tests bit n of v. the X and Y flags are taken from xy, which is the
// operand itself for register tests and the high byte of memptr for memory
// tests
func (mc *CPU) bit(n uint8, v uint8, xy uint8) {
	r := v & (1 << (n & 0x07))
	f := (mc.F & FlagC) | FlagH | (xy & (FlagX | FlagY))
	if r == 0 {
		f |= FlagZ | FlagPV
	}
	if r&0x80 != 0 {
		f |= FlagS
	}
	mc.F = f
}

func (mc *CPU) daa() {
	a := mc.A
	v := a
	if mc.F&FlagN != 0 {
		if a&0x0f > 0x09 || mc.F&FlagH != 0 {
			v -= 0x06
		}
		if a > 0x99 || mc.F&FlagC != 0 {
			v -= 0x60
		}
	} else {
		if a&0x0f > 0x09 || mc.F&FlagH != 0 {
			v += 0x06
		}
		if a > 0x99 || mc.F&FlagC != 0 {
			v += 0x60
		}
	}
	f := mc.F & (FlagC | FlagN)
	if a > 0x99 {
		f |= FlagC
	}
	f |= (a ^ v) & FlagH
	f |= szpFlags(v)
	mc.A = v
	mc.F = f
}

func (mc *CPU) cpl() {
	mc.A = ^mc.A
	mc.F = (mc.F & (FlagS | FlagZ | FlagPV | FlagC)) | FlagH | FlagN | (mc.A & (FlagX | FlagY))
}

func (mc *CPU) scf() {
	mc.F = (mc.F & (FlagS | FlagZ | FlagPV)) | FlagC | (mc.A & (FlagX | FlagY))
}

func (mc *CPU) ccf() {
	f := mc.F & (FlagS | FlagZ | FlagPV | FlagC)
	f |= (mc.F & FlagC) << 4
	f |= mc.A & (FlagX | FlagY)
	mc.F = f ^ FlagC
}

func (mc *CPU) neg() {
	v := mc.A
	mc.A = 0
	mc.A = mc.sub8(v, 0)
}

// condition returns true if the condition selected by bits 3 to 5 of an
// opcode is true
func (mc *CPU) condition(y uint8) bool {
	switch y & 0x07 {
	case 0:
		return mc.F&FlagZ == 0
	case 1:
		return mc.F&FlagZ != 0
	case 2:
		return mc.F&FlagC == 0
	case 3:
		return mc.F&FlagC != 0
	case 4:
		return mc.F&FlagPV == 0
	case 5:
		return mc.F&FlagPV != 0
	case 6:
		return mc.F&FlagS == 0
	}
	return mc.F&FlagS != 0
}

// flags for the INI/IND/OUTI/OUTD family. k is the sum of the transferred
// value and the low byte of the other address involved
func (mc *CPU) blockIOFlags(v uint8, k uint16) {
	f := szFlags(mc.B)
	if v&0x80 != 0 {
		f |= FlagN
	}
	if k > 0xff {
		f |= FlagH | FlagC
	}
	if bits.OnesCount8((uint8(k)&0x07)^mc.B)&1 == 0 {
		f |= FlagPV
	}
	mc.F = f
}
