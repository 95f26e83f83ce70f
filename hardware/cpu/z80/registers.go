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

import (
	"fmt"
	"strings"
)

// Flag bits of the F register.
const (
	FlagC  uint8 = 0x01 // carry
	FlagN  uint8 = 0x02 // add/subtract
	FlagPV uint8 = 0x04 // parity/overflow
	FlagX  uint8 = 0x08 // undocumented, copy of bit 3
	FlagH  uint8 = 0x10 // half carry
	FlagY  uint8 = 0x20 // undocumented, copy of bit 5
	FlagZ  uint8 = 0x40 // zero
	FlagS  uint8 = 0x80 // sign
)

// Registers is the register file of the Z80.
type Registers struct {
	A, F, B, C, D, E, H, L uint8

	// alternate register set. swapped with EX AF,AF' and EXX
	AF2, BC2, DE2, HL2 uint16

	IX, IY uint16
	SP, PC uint16

	// the internal MEMPTR register. not visible to the programmer except
	// through the undocumented X and Y flags of BIT n,(HL)
	WZ uint16

	I uint8

	// memory refresh register. bit 7 is only ever changed with LD R,A
	R uint8

	IFF1, IFF2 bool
	IM         uint8
}

func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

func (r *Registers) SetAF(v uint16) { r.A, r.F = uint8(v>>8), uint8(v) }
func (r *Registers) SetBC(v uint16) { r.B, r.C = uint8(v>>8), uint8(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = uint8(v>>8), uint8(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = uint8(v>>8), uint8(v) }

// reset registers to their power-on values.
func (r *Registers) reset() {
	r.SetAF(0xffff)
	r.SetBC(0xffff)
	r.SetDE(0xffff)
	r.SetHL(0xffff)
	r.AF2 = 0xffff
	r.BC2 = 0xffff
	r.DE2 = 0xffff
	r.HL2 = 0xffff
	r.IX = 0xffff
	r.IY = 0xffff
	r.SP = 0xffff
	r.PC = 0x0000
	r.WZ = 0x0000
	r.I = 0x00
	r.R = 0x00
	r.IFF1 = false
	r.IFF2 = false
	r.IM = 0
}

// FlagString returns the F register in the form "SZYHXPNC", with unset flags
// in lower case.
func (r *Registers) FlagString() string {
	const names = "szyhxpnc"
	s := strings.Builder{}
	for i := 0; i < 8; i++ {
		if r.F&(0x80>>i) != 0 {
			s.WriteByte(names[i] - 'a' + 'A')
		} else {
			s.WriteByte(names[i])
		}
	}
	return s.String()
}

func (r *Registers) String() string {
	return fmt.Sprintf("AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x SP=%04x PC=%04x I=%02x R=%02x IM=%d IFF=%d%d %s",
		r.AF(), r.BC(), r.DE(), r.HL(), r.IX, r.IY, r.SP, r.PC, r.I, r.R, r.IM,
		b2i(r.IFF1), b2i(r.IFF2), r.FlagString())
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
