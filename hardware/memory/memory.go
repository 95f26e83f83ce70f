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
	"github.com/jetsetilly/gopherchips/curated"
)

// The address space is divided into pages. Mappings must begin on a page
// boundary and be a whole number of pages in size.
const (
	PageShift = 10
	PageSize  = 1 << PageShift
	PageMask  = PageSize - 1
	NumPages  = 0x10000 / PageSize
	NumLayers = 4
)

// MappingError is the pattern of errors returned by the Map functions.
const MappingError = "memory: %v"

// the kind of mapping. used by Summary()
type kind int

const (
	unmapped kind = iota
	ram
	rom
	rw
)

func (k kind) String() string {
	switch k {
	case ram:
		return "RAM"
	case rom:
		return "ROM"
	case rw:
		return "RW"
	}
	return "unmapped"
}

type page struct {
	kind  kind
	layer int
	read  []uint8
	write []uint8
}

// Memory is a 64K address space built from layers of mapped pages. Pages
// mapped in a lower numbered layer hide pages mapped at the same address in
// higher numbered layers.
//
// Reads from unmapped addresses return 0xff. Writes to unmapped addresses and
// to ROM are ignored.
type Memory struct {
	// the bus protocol used by Respond()
	Bus Bus

	layers [NumLayers][NumPages]page

	// the visible page at each address. rebuilt whenever the mapping changes
	pages [NumPages]page

	unmapped []uint8
	junk     []uint8
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The address space is initially unmapped.
func NewMemory(bus Bus) *Memory {
	mem := &Memory{
		Bus:      bus,
		unmapped: make([]uint8, PageSize),
		junk:     make([]uint8, PageSize),
	}
	for i := range mem.unmapped {
		mem.unmapped[i] = 0xff
	}
	mem.update()
	return mem
}

func (mem *Memory) check(layer int, addr uint16, size int) error {
	if layer < 0 || layer >= NumLayers {
		return curated.Errorf(MappingError, curated.Errorf("layer %d out of range", layer))
	}
	if addr&PageMask != 0 {
		return curated.Errorf(MappingError, curated.Errorf("address %04x not on a page boundary", addr))
	}
	if size <= 0 || size&PageMask != 0 {
		return curated.Errorf(MappingError, curated.Errorf("size %#x is not a whole number of pages", size))
	}
	if int(addr)+size > 0x10000 {
		return curated.Errorf(MappingError, curated.Errorf("mapping at %04x of %#x bytes exceeds address space", addr, size))
	}
	return nil
}

func (mem *Memory) mapPages(layer int, addr uint16, size int, k kind, read []uint8, write []uint8) error {
	if err := mem.check(layer, addr, size); err != nil {
		return err
	}
	if read != nil && len(read) < size {
		return curated.Errorf(MappingError, curated.Errorf("read bank too small (%d bytes)", len(read)))
	}
	if write != nil && len(write) < size {
		return curated.Errorf(MappingError, curated.Errorf("write bank too small (%d bytes)", len(write)))
	}

	for i := 0; i < size/PageSize; i++ {
		p := page{kind: k, layer: layer}
		o := i * PageSize
		if read != nil {
			p.read = read[o : o+PageSize]
		}
		if write != nil {
			p.write = write[o : o+PageSize]
		}
		mem.layers[layer][int(addr>>PageShift)+i] = p
	}

	mem.update()
	return nil
}

// MapRAM maps data for reading and writing.
func (mem *Memory) MapRAM(layer int, addr uint16, size int, data []uint8) error {
	return mem.mapPages(layer, addr, size, ram, data, data)
}

// MapROM maps data for reading only.
func (mem *Memory) MapROM(layer int, addr uint16, size int, data []uint8) error {
	return mem.mapPages(layer, addr, size, rom, data, nil)
}

// MapRW maps separate banks for reading and for writing. Either bank can be
// nil.
func (mem *Memory) MapRW(layer int, addr uint16, size int, read []uint8, write []uint8) error {
	return mem.mapPages(layer, addr, size, rw, read, write)
}

// Unmap every page in the layer.
func (mem *Memory) Unmap(layer int) {
	if layer < 0 || layer >= NumLayers {
		return
	}
	mem.layers[layer] = [NumPages]page{}
	mem.update()
}

// rebuild the visible pages from the layers
func (mem *Memory) update() {
	for i := range mem.pages {
		mem.pages[i] = page{
			kind:  unmapped,
			read:  mem.unmapped,
			write: mem.junk,
		}
		for l := range mem.layers {
			p := mem.layers[l][i]
			if p.kind == unmapped {
				continue
			}
			if p.read == nil {
				p.read = mem.unmapped
			}
			if p.write == nil {
				p.write = mem.junk
			}
			mem.pages[i] = p
			break
		}
	}
}

// Read the value at the address.
func (mem *Memory) Read(addr uint16) uint8 {
	return mem.pages[addr>>PageShift].read[addr&PageMask]
}

// Write the value to the address.
func (mem *Memory) Write(addr uint16, data uint8) {
	mem.pages[addr>>PageShift].write[addr&PageMask] = data
}

// Load data into memory starting at the address. The data is written as
// though by the CPU so ROM and unmapped addresses are not changed.
func (mem *Memory) Load(addr uint16, data []uint8) {
	for i, v := range data {
		mem.Write(addr+uint16(i), v)
	}
}

// Peek returns the value at the address without side effects. The error is
// always nil for this implementation.
func (mem *Memory) Peek(addr uint16) (uint8, error) {
	return mem.Read(addr), nil
}

// Poke writes the value to the read bank of the address, even if it is ROM.
// Returns an error if the address is not mapped for reading.
func (mem *Memory) Poke(addr uint16, value uint8) error {
	p := mem.pages[addr>>PageShift]
	if p.kind == unmapped || &p.read[0] == &mem.unmapped[0] {
		return curated.Errorf(MappingError, curated.Errorf("poke to unmapped address %04x", addr))
	}
	p.read[addr&PageMask] = value
	return nil
}
