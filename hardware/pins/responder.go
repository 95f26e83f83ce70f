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

package pins

// Responder is implemented by any chip that can be attached to a bus. Respond
// is called once per tick with the Word returned by the CPU and returns the
// Word with any change the chip makes to it.
//
// Implementations should check the request and direction lines, check the
// address and then only ever OR their output into the data bus on a read.
// Lines that the chip does not own must be left untouched. This means that
// any number of responders can be applied to the same Word in the same tick.
type Responder interface {
	Respond(Word) Word
}

// ResponderFunc allows a function to be used as a Responder.
type ResponderFunc func(Word) Word

// Respond implements the Responder interface.
func (f ResponderFunc) Respond(w Word) Word {
	return f(w)
}

// Region is a responder that is selected by an address range. The range is
// inclusive.
type Region struct {
	Origin    uint16
	Memtop    uint16
	Responder Responder
}

// Selected returns true if the address falls inside the region.
func (r Region) Selected(address uint16) bool {
	return address >= r.Origin && address <= r.Memtop
}

// Decoder dispatches a Word to at most one Region, selected by the address
// on the bus, but only if one of the select lines is present. Regions are
// checked in the order they were added.
type Decoder struct {
	Select Line

	// the address is masked before it is compared with the regions. Z80 IO
	// devices are usually decoded from the low byte of the address only
	Mask uint16

	regions []Region
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
// The decoder only responds to a Word if one of the lines in sel is set.
func NewDecoder(sel Line) *Decoder {
	return &Decoder{Select: sel, Mask: 0xffff}
}

// Add a responder for the address range. The range is inclusive.
func (d *Decoder) Add(origin uint16, memtop uint16, r Responder) {
	d.regions = append(d.regions, Region{Origin: origin, Memtop: memtop, Responder: r})
}

// Respond implements the Responder interface.
func (d *Decoder) Respond(w Word) Word {
	if !w.Any(d.Select) {
		return w
	}
	a := w.Address() & d.Mask
	for i := range d.regions {
		if d.regions[i].Selected(a) {
			return d.regions[i].Responder.Respond(w)
		}
	}
	return w
}

// Chain applies each responder to the Word in turn. Useful for wiring several
// chips that each do their own address decoding.
type Chain []Responder

// Respond implements the Responder interface.
func (c Chain) Respond(w Word) Word {
	for _, r := range c {
		w = r.Respond(w)
	}
	return w
}
