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

// Package z80 implements a tick accurate Zilog Z80.
//
// The CPU is driven one clock cycle at a time with the Tick() function. The
// argument to Tick() is the pins.Word returned by the previous call, after it
// has been serviced by memory and peripherals. Tick() returns the new state
// of the pins. The lines driven by the CPU (M1, MREQ, IORQ, RD, WR, RFSH,
// HALT and RETI) are cleared and set on every tick. Input lines (INT, NMI,
// WAIT and RES) are owned by the host and are passed through untouched.
//
// A typical host loop looks like this:
//
//	mc := z80.NewCPU()
//	var p pins.Word
//	for {
//		p = mc.Tick(p)
//		p = memory.Respond(p)
//	}
//
// Memory read requests must be answered in the same tick that the request
// is made. The data is captured by the CPU on the following tick. The WAIT
// line is sampled on the tick following the request. While it is asserted
// that tick is repeated with no request lines and the address bus held.
//
// Instructions are decoded into a queue of machine cycles (fetch, memory
// read and write, io read and write, internal cycles and interrupt
// acknowledge). The Definitions table describes the length and timing of
// every instruction, including the undocumented ones.
//
// Interrupts are checked at the end of every instruction. NMI is edge
// triggered. INT is level triggered and is acknowledged in interrupt mode 0,
// 1 or 2. For mode 0 and mode 2 the byte placed on the data bus by the
// interrupting device during the acknowledge cycle (M1 and IORQ together)
// is used as an opcode or as the low byte of the vector address.
package z80
