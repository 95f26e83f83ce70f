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

package daisychain_test

import (
	"testing"

	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/daisychain"
	"github.com/jetsetilly/gopherchips/hardware/memory"
	"github.com/jetsetilly/gopherchips/hardware/pins"
	"github.com/jetsetilly/gopherchips/test"
)

// device with a single interrupt source
type device struct {
	daisychain.Request
	vector uint8
}

func (d *device) Interrupt(p pins.Word) pins.Word {
	return d.Resolve(p, d.vector)
}

func TestSingleRequest(t *testing.T) {
	a := &device{vector: 0x10}

	var p pins.Word
	p = daisychain.Resolve(p, a)
	test.ExpectFailure(t, p.Has(z80.INT))
	test.ExpectSuccess(t, p.Has(z80.IEIO))

	a.Trigger()
	test.ExpectSuccess(t, a.Pending())
	p = daisychain.Resolve(p, a)
	test.ExpectSuccess(t, p.Has(z80.INT))
	test.ExpectFailure(t, p.Has(z80.IEIO))

	// acknowledge
	p = pins.Word(0).Set(z80.M1 | z80.IORQ)
	p = daisychain.Resolve(p, a)
	test.Equate(t, p.Data(), 0x10)
	test.ExpectFailure(t, a.Pending())
	test.ExpectSuccess(t, a.Servicing())

	// INT is not asserted while the interrupt is being serviced
	p = daisychain.Resolve(pins.Word(0), a)
	test.ExpectFailure(t, p.Has(z80.INT))
	test.ExpectFailure(t, p.Has(z80.IEIO))

	p = daisychain.Resolve(pins.Word(0).Set(z80.RETI), a)
	test.ExpectFailure(t, a.Servicing())
	test.ExpectSuccess(t, p.Has(z80.IEIO))
	test.ExpectFailure(t, p.Has(z80.RETI))
}

// a higher priority device blocks a lower priority device
func TestPriority(t *testing.T) {
	a := &device{vector: 0x10}
	b := &device{vector: 0x20}
	chain := daisychain.Chain{a, b}

	a.Trigger()
	b.Trigger()

	p := chain.Resolve(pins.Word(0).Set(z80.M1 | z80.IORQ))
	test.Equate(t, p.Data(), 0x10)
	test.ExpectSuccess(t, a.Servicing())
	test.ExpectSuccess(t, b.Pending())

	// RETI is taken by the device in service. it is not seen by the lower
	// priority device which then requests its interrupt
	p = chain.Resolve(pins.Word(0).Set(z80.RETI))
	test.ExpectFailure(t, a.Servicing())
	test.ExpectSuccess(t, p.Has(z80.INT))

	p = chain.Resolve(pins.Word(0).Set(z80.M1 | z80.IORQ))
	test.Equate(t, p.Data(), 0x20)
	test.ExpectSuccess(t, b.Servicing())
}

// a lower priority device in service is interrupted by a higher priority
// device. the RETI of the higher priority device does not end the service of
// the lower priority device
func TestNested(t *testing.T) {
	a := &device{vector: 0x10}
	b := &device{vector: 0x20}
	chain := daisychain.Chain{a, b}

	b.Trigger()
	chain.Resolve(pins.Word(0).Set(z80.M1 | z80.IORQ))
	test.ExpectSuccess(t, b.Servicing())

	a.Trigger()
	p := chain.Resolve(pins.Word(0))
	test.ExpectSuccess(t, p.Has(z80.INT))
	p = chain.Resolve(pins.Word(0).Set(z80.M1 | z80.IORQ))
	test.Equate(t, p.Data(), 0x10)

	chain.Resolve(pins.Word(0).Set(z80.RETI))
	test.ExpectFailure(t, a.Servicing())
	test.ExpectSuccess(t, b.Servicing())

	chain.Resolve(pins.Word(0).Set(z80.RETI))
	test.ExpectFailure(t, b.Servicing())
}

// two devices requesting at the same time in a running system. the higher
// priority device is serviced first and the lower priority device waits until
// the RETI of the first interrupt routine
func TestChainWithCPU(t *testing.T) {
	mem := memory.NewMemory(memory.Z80Bus)
	test.DemandSuccess(t, mem.MapRAM(0, 0x0000, 0x10000, make([]uint8, 0x10000)))

	mem.Load(0x0000, []uint8{
		0x31, 0x00, 0x80, // LD SP,$8000
		0xed, 0x5e, // IM 2
		0x3e, 0x01, // LD A,$01
		0xed, 0x47, // LD I,A
		0xfb,       // EI
		0x18, 0xfe, // JR $
	})

	// vector table
	mem.Load(0x0110, []uint8{0x00, 0x10})
	mem.Load(0x0120, []uint8{0x00, 0x20})

	// interrupt routines. NOP; NOP; EI; RETI
	mem.Load(0x1000, []uint8{0x00, 0x00, 0xfb, 0xed, 0x4d})
	mem.Load(0x2000, []uint8{0x00, 0x00, 0xfb, 0xed, 0x4d})

	a := &device{vector: 0x10}
	b := &device{vector: 0x20}
	chain := daisychain.Chain{a, b}

	a.Trigger()
	b.Trigger()

	mc := z80.NewCPU()
	var p pins.Word

	var visits []uint16
	for i := 0; i < 2000; i++ {
		p = mc.Tick(p)
		p = mem.Respond(p)
		p = chain.Resolve(p)

		if mc.Boundary() && (mc.PC == 0x1000 || mc.PC == 0x2000) {
			visits = append(visits, mc.PC)

			// the lower priority device is still waiting when the first
			// routine starts
			if mc.PC == 0x1000 {
				test.ExpectSuccess(t, a.Servicing())
				test.ExpectSuccess(t, b.Pending())
			}
		}
	}

	test.DemandEquality(t, len(visits), 2)
	test.Equate(t, visits[0], 0x1000)
	test.Equate(t, visits[1], 0x2000)
	test.ExpectFailure(t, a.Servicing())
	test.ExpectFailure(t, b.Servicing())
	test.ExpectFailure(t, b.Pending())
}
