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

import "github.com/jetsetilly/gopherchips/hardware/pins"

// Control lines of the 6502 pin word.
var (
	RW   = pins.Bit(24) // set for a read cycle, clear for a write cycle
	SYNC = pins.Bit(25) // opcode fetch
	IRQ  = pins.Bit(26) // maskable interrupt request
	NMI  = pins.Bit(27) // non-maskable interrupt
	RDY  = pins.Bit(28) // ready. read cycles are repeated while set
	RES  = pins.Bit(30) // reset
)

// Names of the control lines. Suitable for the pins.Word.Format() function.
var Names = pins.Names{
	{RW, "RW"},
	{SYNC, "SYNC"},
	{IRQ, "IRQ"},
	{NMI, "NMI"},
	{RDY, "RDY"},
	{RES, "RES"},
}
