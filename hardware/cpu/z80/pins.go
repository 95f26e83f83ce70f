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

import "github.com/jetsetilly/gopherchips/hardware/pins"

// Control lines of the Z80 pin word. All lines are active high in the word,
// regardless of the polarity of the real pin.
var (
	M1   = pins.Bit(24) // machine cycle one
	MREQ = pins.Bit(25) // memory request
	IORQ = pins.Bit(26) // input/output request
	RD   = pins.Bit(27) // read
	WR   = pins.Bit(28) // write
	HALT = pins.Bit(29) // halt state
	INT  = pins.Bit(30) // maskable interrupt request
	RES  = pins.Bit(31) // reset
	NMI  = pins.Bit(32) // non-maskable interrupt
	WAIT = pins.Bit(33) // wait
	RFSH = pins.Bit(34) // refresh

	// lines for the interrupt daisy chain. not present on the CPU itself
	// but the CPU drives RETI when it has decoded a RETI or RETN
	// instruction
	IEIO = pins.Bit(37) // interrupt enable in/out
	RETI = pins.Bit(38) // return from interrupt
)

// the lines driven by the CPU. cleared at the start of every tick
var outputs = M1 | MREQ | IORQ | RD | WR | HALT | RFSH | RETI

// Names of the control lines. Suitable for the pins.Word.Format() function.
var Names = pins.Names{
	{M1, "M1"},
	{MREQ, "MREQ"},
	{IORQ, "IORQ"},
	{RD, "RD"},
	{WR, "WR"},
	{RFSH, "RFSH"},
	{HALT, "HALT"},
	{WAIT, "WAIT"},
	{INT, "INT"},
	{NMI, "NMI"},
	{RETI, "RETI"},
}
