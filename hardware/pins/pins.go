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

import (
	"fmt"
	"strings"
)

// Word is the state of every pin of a chip for a single tick. The address bus
// occupies bits 0 to 15, the data bus bits 16 to 23 and the remaining bits are
// control lines. The meaning of the control lines is particular to a
// processor family and is defined by the CPU packages. Peripheral chips use
// the same word so that they can be wired directly to the CPU.
type Word uint64

// Line is a single control line in a Word.
type Line uint64

const (
	// AddressMask and DataMask select the buses from a Word.
	AddressMask Word = 0x0000ffff
	DataMask    Word = 0x00ff0000

	dataShift = 16

	// FirstLine is the lowest bit available for control lines.
	FirstLine = 24
)

// Bit returns the Line for bit n of a Word. Bits below FirstLine are
// reserved for the address and data buses.
func Bit(n int) Line {
	if n < FirstLine || n > 63 {
		panic(fmt.Sprintf("pins: bit %d cannot be used as a control line", n))
	}
	return Line(1) << n
}

// Address returns the value of the address bus.
func (w Word) Address() uint16 {
	return uint16(w & AddressMask)
}

// SetAddress returns a copy of the Word with the address bus set.
func (w Word) SetAddress(a uint16) Word {
	return (w &^ AddressMask) | Word(a)
}

// Data returns the value of the data bus.
func (w Word) Data() uint8 {
	return uint8((w & DataMask) >> dataShift)
}

// SetData returns a copy of the Word with the data bus set.
func (w Word) SetData(d uint8) Word {
	return (w &^ DataMask) | (Word(d) << dataShift)
}

// OrData returns a copy of the Word with d ORed into the data bus. This is
// how responders should place data on the bus during a read cycle.
func (w Word) OrData(d uint8) Word {
	return w | (Word(d) << dataShift)
}

// SetAddressData returns a copy of the Word with both buses set.
func (w Word) SetAddressData(a uint16, d uint8) Word {
	return (w &^ (AddressMask | DataMask)) | Word(a) | (Word(d) << dataShift)
}

// Has returns true if every line in l is set.
func (w Word) Has(l Line) bool {
	return Line(w)&l == l
}

// Any returns true if at least one line in l is set.
func (w Word) Any(l Line) bool {
	return Line(w)&l != 0
}

// Set returns a copy of the Word with the lines set.
func (w Word) Set(l Line) Word {
	return w | Word(l)
}

// Clear returns a copy of the Word with the lines cleared.
func (w Word) Clear(l Line) Word {
	return w &^ Word(l)
}

// Lines returns the control lines portion of the Word.
func (w Word) Lines() Line {
	return Line(w &^ (AddressMask | DataMask))
}

// Names maps control lines to short names. Used by Format.
type Names []struct {
	Line Line
	Name string
}

// Format returns a one line description of the Word. Only the lines named in
// names are shown. Unset lines are shown as dashes so that columns align when
// printing one Word per line.
func (w Word) Format(names Names) string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%04x %02x", w.Address(), w.Data()))
	for _, n := range names {
		s.WriteRune(' ')
		if w.Has(n.Line) {
			s.WriteString(n.Name)
		} else {
			s.WriteString(strings.Repeat("-", len(n.Name)))
		}
	}
	return s.String()
}

func (w Word) String() string {
	return fmt.Sprintf("%04x %02x %010x", w.Address(), w.Data(), uint64(w.Lines())>>FirstLine)
}
