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
	"github.com/jetsetilly/gopherchips/curated"
)

// StepLimit is the maximum number of ticks Step() will wait for an
// instruction to complete. A CPU held by WAIT or RDY, or a jammed 6502, will
// reach the limit.
const StepLimit = 1024

// NoBoundary is returned by Step() when StepLimit is reached.
const NoBoundary = "machine: no instruction boundary after %d ticks"

// Step the machine to the end of the current instruction. The number of ticks
// taken is returned.
//
// The onTick function is called after every tick and can be nil.
func (m *Machine) Step(onTick func() error) (int, error) {
	for n := 1; n <= StepLimit; n++ {
		m.Tick()

		if onTick != nil {
			if err := onTick(); err != nil {
				return n, err
			}
		}

		if m.CPU.Boundary() {
			return n, nil
		}
	}

	return StepLimit, curated.Errorf(NoBoundary, StepLimit)
}
