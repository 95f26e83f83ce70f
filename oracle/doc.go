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

// Package oracle runs the m6502 tick engine and the transistor level
// perfect6502 chip side by side over identical memory images.
//
// After every tick the address bus, data bus, RW and SYNC outputs of the two
// are compared. At every instruction boundary the registers are compared. The
// first difference stops the run and is returned as a Diverged error. The most
// recent ticks are kept and can be printed with Log() to show how the two
// processors arrived at the difference.
//
// The netlist runs half a cycle ahead of the engine so that the results of an
// instruction, which the real chip completes during the opcode fetch of the
// next instruction, are visible in its registers when the comparison is made.
package oracle
