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
	"fmt"
	"strings"
)

// Summary returns a string listing the visible mappings of the address
// space. Adjacent pages with the same kind of mapping from the same layer
// are listed as one range.
func (mem *Memory) Summary() string {
	s := strings.Builder{}

	label := func(p page) string {
		if p.kind == unmapped {
			return p.kind.String()
		}
		return fmt.Sprintf("%s (layer %d)", p.kind, p.layer)
	}

	var sr int
	area := label(mem.pages[0])
	for i := 1; i <= NumPages; i++ {
		a := ""
		if i < NumPages {
			a = label(mem.pages[i])
		}
		if a != area {
			s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", sr<<PageShift, i<<PageShift-1, area))
			area = a
			sr = i
		}
	}

	return s.String()
}
