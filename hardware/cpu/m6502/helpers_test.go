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

package m6502_test

import (
	"testing"

	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/pins"
)

type harness struct {
	t   *testing.T
	mc  *m6502.CPU
	mem []uint8
	p   pins.Word

	// input lines held by the host
	hold pins.Line
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		t:   t,
		mc:  m6502.NewCPU(),
		mem: make([]uint8, 0x10000),
	}
}

// put bytes into memory starting at addr
func (h *harness) put(addr uint16, b ...uint8) {
	for i := range b {
		h.mem[addr+uint16(i)] = b[i]
	}
}

// start execution at addr
func (h *harness) start(addr uint16) {
	h.p = h.mc.Prefetch(addr)
	h.service()
}

func (h *harness) service() {
	if h.p.Has(m6502.RW) {
		h.p = h.p.SetData(h.mem[h.p.Address()])
	} else {
		h.mem[h.p.Address()] = h.p.Data()
	}
}

func (h *harness) tick() {
	h.p = h.p.Clear(m6502.IRQ | m6502.NMI | m6502.RDY | m6502.RES)
	h.p = h.p.Set(h.hold)
	h.p = h.mc.Tick(h.p)
	h.service()
}

// skip n ticks
func (h *harness) skip(n int) {
	for i := 0; i < n; i++ {
		h.tick()
	}
}

// step ticks the CPU to the end of the current instruction and returns the
// number of ticks taken
func (h *harness) step() int {
	h.t.Helper()
	for n := 1; n < 100; n++ {
		h.tick()
		if h.mc.Boundary() {
			return n
		}
	}
	h.t.Fatalf("instruction did not complete")
	return 0
}

func (h *harness) isSync(addr uint16) bool {
	return h.p.Has(m6502.SYNC) && h.p.Has(m6502.RW) && h.p.Address() == addr
}

func (h *harness) isRead(addr uint16) bool {
	return !h.p.Has(m6502.SYNC) && h.p.Has(m6502.RW) && h.p.Address() == addr
}

func (h *harness) isWrite(addr uint16) bool {
	return !h.p.Has(m6502.SYNC) && !h.p.Has(m6502.RW) && h.p.Address() == addr
}

// tick and check the bus cycle that results
func (h *harness) expectSync(addr uint16) {
	h.t.Helper()
	h.tick()
	if !h.isSync(addr) {
		h.t.Errorf("expected sync at %04x: %s", addr, h.p.Format(m6502.Names))
	}
}

func (h *harness) expectRead(addr uint16) {
	h.t.Helper()
	h.tick()
	if !h.isRead(addr) {
		h.t.Errorf("expected read at %04x: %s", addr, h.p.Format(m6502.Names))
	}
}

func (h *harness) expectWrite(addr uint16) {
	h.t.Helper()
	h.tick()
	if !h.isWrite(addr) {
		h.t.Errorf("expected write at %04x: %s", addr, h.p.Format(m6502.Names))
	}
}
