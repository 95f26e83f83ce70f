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
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/test"
)

// Klaus Dormann's functional test, assembled with the vectors test disabled.
// the binary is not included with the repository
//
// https://github.com/Klaus2m5/6502_65C02_functional_tests
var functionalTest = filepath.Join("testdata", "6502_functional_test.bin")

// these addresses are specific to the functional test binary
var programOrigin = uint16(0x0400)
var loadAddress = uint16(0x000a)
var successAddress = uint16(0x347d)

func TestFunctional(t *testing.T) {
	bin, err := os.ReadFile(functionalTest)
	if err != nil {
		t.Skipf("no functional test binary: %v", err)
	}

	h := newHarness(t)
	copy(h.mem[loadAddress:], bin)
	h.put(m6502.ResetVector, uint8(programOrigin), uint8(programOrigin>>8))

	// reset sequence
	h.skip(7)
	test.DemandSuccess(t, h.isSync(programOrigin))

	var totalCycles int
	for {
		addr := h.p.Address()
		totalCycles += h.step()

		// reaching the successAddress means that all tests have completed
		if h.p.Address() == successAddress {
			break
		}

		// "Loop on program counter determines error or successful completion of test"
		if h.p.Address() == addr {
			t.Fatalf("trapped at %04x after %d cycles: %s", addr, totalCycles, h.mc.String())
		}
	}

	t.Logf("functional test completed in %d cycles", totalCycles)
}
