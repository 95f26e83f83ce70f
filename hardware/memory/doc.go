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

// Package memory implements a paged 64K address space suitable for attaching
// to either CPU family.
//
// The address space is divided into 1K pages. Each page can be mapped as RAM,
// as ROM or as separate read and write banks (for example, a ROM that is
// shadowed by RAM for writing). There are four mapping layers. A page
// mapped in layer 0 hides any mapping of the same page in layers 1 to 3. This
// makes bank switching a matter of mapping and unmapping a layer:
//
//	mem := memory.NewMemory(memory.Z80Bus)
//	mem.MapRAM(1, 0x0000, 0x10000, ram)
//	mem.MapROM(0, 0x0000, 0x4000, rom)
//	...
//	mem.Unmap(0)
//
// Memory implements the pins.Responder interface. The Bus field decides how
// the pin word is interpreted.
package memory
