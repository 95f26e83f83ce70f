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

// Package perfect6502 drives the transistor netlist of the NMOS 6502 as a
// complete chip. It is the reference against which the m6502 tick engine is
// measured.
//
// The chip is stepped in half cycles. Memory is serviced on the half cycle
// where the clock goes high, through a pins.Responder that sees a pin word
// laid out as it would be for the m6502 package.
//
// The netlist data itself (transdefs.js, segdefs.js and nodenames.js from the
// visual6502 project) is not part of this repository and must be loaded with
// netlist.Load().
package perfect6502
