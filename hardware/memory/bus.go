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

package memory

import (
	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/pins"
)

// Bus selects the protocol used to interpret the pin word.
type Bus int

// List of supported buses.
const (
	// memory responds to MREQ with RD or WR. refresh cycles are ignored
	Z80Bus Bus = iota

	// memory responds to every cycle. RW set is a read
	M6502Bus
)

func (b Bus) String() string {
	switch b {
	case Z80Bus:
		return "Z80"
	case M6502Bus:
		return "6502"
	}
	return "unknown bus"
}

// Respond implements the pins.Responder interface.
func (mem *Memory) Respond(p pins.Word) pins.Word {
	switch mem.Bus {
	case Z80Bus:
		if !p.Has(z80.MREQ) {
			return p
		}
		if p.Has(z80.RD) {
			return p.OrData(mem.Read(p.Address()))
		}
		if p.Has(z80.WR) {
			mem.Write(p.Address(), p.Data())
		}
	case M6502Bus:
		if p.Has(m6502.RW) {
			return p.OrData(mem.Read(p.Address()))
		}
		mem.Write(p.Address(), p.Data())
	}
	return p
}
