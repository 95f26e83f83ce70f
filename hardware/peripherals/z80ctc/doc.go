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

// Package z80ctc implements the Z80 CTC counter/timer circuit. The CTC has
// four channels, each of which can count edges on its CLK/TRG input (counter
// mode) or count system clocks through a prescaler of 16 or 256 (timer mode).
//
// A channel is programmed by writing a control word to its IO port, followed
// by the time constant if the control word asks for it. The interrupt vector
// is written to the port of channel 0 and is shared by all channels, with
// bits 1 and 2 replaced by the channel number.
//
// The CTC is wired into a system in three places. Respond() is attached to the
// IO decoder, Tick() is called once per clock and Interrupt() takes part in
// the daisy chain:
//
//	p = cpu.Tick(p)
//	p = mem.Respond(p)
//	p = io.Respond(p)
//	p = ctc.Tick(p)
//	p = chain.Resolve(p)
package z80ctc
