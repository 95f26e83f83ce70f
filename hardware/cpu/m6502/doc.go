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

// Package m6502 emulates the NMOS 6502 microprocessor one clock cycle at a
// time.
//
// The CPU communicates with the outside world through the pin word defined in
// the pins package. Each call to Tick() is one clock cycle. The host services
// the bus cycle described by the returned word (placing data on the word for
// read cycles, storing the data for write cycles) and passes the word to the
// next call to Tick():
//
//	mc := m6502.NewCPU()
//	var p pins.Word
//	for {
//		p = mc.Tick(p)
//		if p.Has(m6502.RW) {
//			p = p.SetData(mem[p.Address()])
//		} else {
//			mem[p.Address()] = p.Data()
//		}
//	}
//
// A new CPU begins with the seven cycle reset sequence. The SYNC line is set
// on opcode fetches. RDY stalls the CPU on read cycles.
//
// Interrupt requests are sampled every cycle and pass through a short
// pipeline. An IRQ or NMI that arrives late in an instruction is taken after
// the following instruction, as with the real chip. Taken branches that do not
// cross a page delay interrupts by one further cycle.
//
// The table of instruction definitions is parsed from an embedded CSV file.
// All 256 opcodes are implemented, including the undocumented instructions
// and the NMOS decimal mode flag behaviour.
package m6502
