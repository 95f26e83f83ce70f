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

// Package daisychain resolves the interrupt priority of Z80 family
// peripherals that share the CPU's INT line.
//
// Resolution is a fold over the ordered list of devices. The IEIO line of
// the pin word carries the "interrupt enable" signal from one device to the
// next. A device that is requesting an interrupt, or whose interrupt is being
// serviced, clears the line and so prevents devices of lower priority from
// interrupting.
//
// The state is recomputed on every tick and is never cached:
//
//	for {
//		p = cpu.Tick(p)
//		p = mem.Respond(p)
//		p = io.Respond(p)
//		p = chain.Resolve(p)
//	}
//
// A device's interrupt is acknowledged when the CPU asserts M1 and IORQ
// together. The device places its vector on the data bus and enters the "in
// service" state. It leaves that state when the CPU executes RETI, which the
// CPU signals on the RETI line.
//
// The Request type implements the state of a single interrupt source and is
// intended to be embedded in peripheral implementations.
package daisychain
