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

package z80ctc

import "github.com/jetsetilly/gopherchips/hardware/pins"

// Lines of the CTC in the pin word. The CTC otherwise shares the lines of the
// Z80 (M1, IORQ, RD, WR, RETI and IEIO).
var (
	CLKTRG0 = pins.Bit(40)
	CLKTRG1 = pins.Bit(41)
	CLKTRG2 = pins.Bit(42)
	CLKTRG3 = pins.Bit(43)

	// channel 3 has no zero count output
	ZCTO0 = pins.Bit(44)
	ZCTO1 = pins.Bit(45)
	ZCTO2 = pins.Bit(46)
)

var clktrg = [NumChannels]pins.Line{CLKTRG0, CLKTRG1, CLKTRG2, CLKTRG3}
var zcto = [NumChannels]pins.Line{ZCTO0, ZCTO1, ZCTO2, 0}

// Names of the CTC lines. Suitable for the pins.Word.Format() function.
var Names = pins.Names{
	{CLKTRG0, "TRG0"},
	{CLKTRG1, "TRG1"},
	{CLKTRG2, "TRG2"},
	{CLKTRG3, "TRG3"},
	{ZCTO0, "ZC0"},
	{ZCTO1, "ZC1"},
	{ZCTO2, "ZC2"},
}
