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

package z80_test

import (
	"testing"

	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/pins"
)

// mockBus is a flat 64K memory and 256 io ports. it responds to the CPU's
// memory and io requests in the same tick.
type mockBus struct {
	mem   [0x10000]uint8
	ports [256]uint8

	// byte placed on the bus during an interrupt acknowledge
	vector uint8

	// number of interrupt acknowledge cycles seen
	acks int
}

func (b *mockBus) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, v := range bytes {
		b.mem[origin+uint16(i)] = v
	}
	return origin + uint16(len(bytes))
}

func (b *mockBus) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	if b.mem[address] != value {
		t.Errorf("memory assertion failed (%#02x  - wanted %#02x at address %04x)", b.mem[address], value, address)
	}
}

func (b *mockBus) Respond(p pins.Word) pins.Word {
	switch {
	case p.Has(z80.M1 | z80.IORQ):
		b.acks++
		return p.SetData(b.vector)
	case p.Has(z80.MREQ | z80.RD):
		return p.SetData(b.mem[p.Address()])
	case p.Has(z80.MREQ | z80.WR):
		b.mem[p.Address()] = p.Data()
	case p.Has(z80.IORQ | z80.RD):
		return p.SetData(b.ports[p.Address()&0xff])
	case p.Has(z80.IORQ | z80.WR):
		b.ports[p.Address()&0xff] = p.Data()
	}
	return p
}

// harness ties a CPU to a bus and keeps the pin word between ticks.
type harness struct {
	mc  *z80.CPU
	bus *mockBus
	p   pins.Word

	// input lines driven by the host for the next tick
	hold pins.Line
}

func newHarness() *harness {
	return &harness{
		mc:  z80.NewCPU(),
		bus: &mockBus{},
	}
}

func (h *harness) tick() pins.Word {
	out := h.mc.Tick(h.p.Clear(z80.WAIT | z80.INT | z80.NMI | z80.RES).Set(h.hold))
	h.p = h.bus.Respond(out)
	return out
}

// step runs the CPU until the end of the current instruction and returns
// the number of ticks taken.
func (h *harness) step(t *testing.T) int {
	t.Helper()
	for n := 1; n < 1000; n++ {
		h.tick()
		if h.mc.Boundary() {
			return n
		}
	}
	t.Fatalf("instruction did not complete")
	return 0
}
