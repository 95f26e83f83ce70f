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

package daisychain

import (
	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/pins"
)

// Device is implemented by peripherals that take part in the interrupt daisy
// chain.
//
// The IEIO line of the pin word is the device's IEI on entry and should be
// its IEO on return. A device with IEI clear must not request an interrupt
// or respond to an acknowledge.
type Device interface {
	Interrupt(p pins.Word) pins.Word
}

// Chain is an ordered list of devices. The first device has the highest
// priority.
type Chain []Device

// Resolve the state of the daisy chain for the current tick. The INT line is
// recomputed from the devices. The vector of the interrupting device is
// placed on the data bus during an interrupt acknowledge.
//
// Resolve must be called on every tick, after the CPU and after any IO
// responders.
func (c Chain) Resolve(p pins.Word) pins.Word {
	return Resolve(p, c...)
}

// Resolve is the same as Chain.Resolve() for an ad-hoc list of devices.
func Resolve(p pins.Word, devices ...Device) pins.Word {
	p = p.Clear(z80.INT).Set(z80.IEIO)
	for _, d := range devices {
		p = d.Interrupt(p)
	}
	return p
}

// the bits of the request state
const (
	needed = 1 << iota
	requested
	servicing
)

// Request is the interrupt state of a single interrupt source. Devices with
// more than one source (one per channel, for example) have one Request for
// each and pass the pin word through them in priority order.
type Request struct {
	state uint8
}

// Trigger an interrupt. The interrupt will be requested when no higher
// priority device is being serviced.
func (r *Request) Trigger() {
	r.state |= needed
}

// Pending returns true if the interrupt has been triggered but not yet
// acknowledged by the CPU.
func (r *Request) Pending() bool {
	return r.state&(needed|requested) != 0
}

// Servicing returns true if the interrupt has been acknowledged and the
// interrupt routine has not yet returned with RETI.
func (r *Request) Servicing() bool {
	return r.state&servicing == servicing
}

// Clear any pending or in service interrupt.
func (r *Request) Clear() {
	r.state = 0
}

// Resolve the request for the current tick. The vector is placed on the
// data bus if the CPU acknowledges the interrupt.
func (r *Request) Resolve(p pins.Word, vector uint8) pins.Word {
	// the first device in service sees the RETI. it is not passed on to lower
	// priority devices
	if p.Has(z80.RETI) && r.state&servicing == servicing {
		r.state &^= servicing
		p = p.Clear(z80.RETI)
	}

	if !p.Has(z80.IEIO) || r.state == 0 {
		return p
	}

	if r.state&servicing == 0 {
		if r.state&needed == needed {
			r.state = r.state&^needed | requested
		}

		p = p.Set(z80.INT)

		if p.Has(z80.M1) && p.Has(z80.IORQ) {
			p = p.OrData(vector)
			r.state = r.state&^requested | servicing
		}
	}

	// lower priority devices are disabled while this source is requesting or
	// being serviced
	return p.Clear(z80.IEIO)
}
