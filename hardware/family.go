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

package hardware

import (
	"strings"

	"github.com/jetsetilly/gopherchips/curated"
)

// Family is the processor family of a Machine.
type Family int

// List of supported processor families.
const (
	Z80 Family = iota
	M6502
)

func (f Family) String() string {
	switch f {
	case Z80:
		return "z80"
	case M6502:
		return "6502"
	}
	return ""
}

// UnknownFamily is returned by ParseFamily() for unrecognised names.
const UnknownFamily = "hardware: unknown processor family (%s)"

// ParseFamily returns the Family for the name. The name is not case
// sensitive.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "z80":
		return Z80, nil
	case "6502", "m6502":
		return M6502, nil
	}
	return Z80, curated.Errorf(UnknownFamily, name)
}
