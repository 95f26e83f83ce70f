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

package pins_test

import (
	"testing"

	"github.com/jetsetilly/gopherchips/hardware/pins"
	"github.com/jetsetilly/gopherchips/test"
)

var (
	rd = pins.Bit(24)
	wr = pins.Bit(25)
)

func TestAccessors(t *testing.T) {
	var w pins.Word

	w = w.SetAddress(0x1234).SetData(0xab)
	test.Equate(t, w.Address(), 0x1234)
	test.Equate(t, w.Data(), 0xab)

	// setting one bus does not disturb the other
	w = w.SetAddress(0xffff)
	test.Equate(t, w.Data(), 0xab)
	w = w.SetData(0x00)
	test.Equate(t, w.Address(), 0xffff)

	w = w.SetAddressData(0x0100, 0x55)
	test.Equate(t, w.Address(), 0x0100)
	test.Equate(t, w.Data(), 0x55)

	// responders OR their data into the bus
	w = w.OrData(0xa0)
	test.Equate(t, w.Data(), 0xf5)
	test.Equate(t, w.Address(), 0x0100)

	// control lines
	w = w.Set(rd)
	test.ExpectSuccess(t, w.Has(rd))
	test.ExpectFailure(t, w.Has(rd|wr))
	test.ExpectSuccess(t, w.Any(rd|wr))
	w = w.Clear(rd)
	test.ExpectFailure(t, w.Any(rd|wr))

	// control lines do not disturb the buses
	test.Equate(t, w.Address(), 0x0100)
	test.Equate(t, w.Data(), 0xf5)
}

func TestFormat(t *testing.T) {
	names := pins.Names{{rd, "RD"}, {wr, "WR"}}
	w := pins.Word(0).SetAddressData(0x00ff, 0x01).Set(wr)
	test.Equate(t, w.Format(names), "00ff 01 -- WR")
}

type ram struct {
	origin uint16
	data   [16]uint8
}

func (r *ram) Respond(w pins.Word) pins.Word {
	a := (w.Address() - r.origin) & 0x0f
	if w.Has(rd) {
		return w.SetData(r.data[a])
	}
	if w.Has(wr) {
		r.data[a] = w.Data()
	}
	return w
}

func TestDecoder(t *testing.T) {
	a := &ram{origin: 0x0000}
	b := &ram{origin: 0x0010}
	d := pins.NewDecoder(rd | wr)
	d.Add(0x0000, 0x000f, a)
	d.Add(0x0010, 0x001f, b)

	d.Respond(pins.Word(0).SetAddressData(0x0003, 0x11).Set(wr))
	d.Respond(pins.Word(0).SetAddressData(0x0013, 0x22).Set(wr))
	test.Equate(t, a.data[3], 0x11)
	test.Equate(t, b.data[3], 0x22)

	w := d.Respond(pins.Word(0).SetAddress(0x0013).Set(rd))
	test.Equate(t, w.Data(), 0x22)

	// no select line, no response
	w = d.Respond(pins.Word(0).SetAddress(0x0013))
	test.Equate(t, w.Data(), 0x00)

	// unmapped address leaves the word untouched
	w = d.Respond(pins.Word(0).SetAddressData(0x0100, 0x99).Set(rd))
	test.Equate(t, w.Data(), 0x99)

	// decoding the low byte only
	d.Mask = 0x00ff
	w = d.Respond(pins.Word(0).SetAddress(0x4513).Set(rd))
	test.Equate(t, w.Data(), 0x22)
}

func TestBitPanics(t *testing.T) {
	defer func() {
		test.ExpectSuccess(t, recover() != nil)
	}()
	_ = pins.Bit(23)
}
