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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/pins"
	"github.com/jetsetilly/gopherchips/test"
)

// the per-cycle single step tests by Tom Harte. the JSON files are not
// included with the repository. copy the 6502/v1 directory from
// https://github.com/SingleStepTests/65x02 into testdata to run the test

type memEvent string

const (
	read  = memEvent("read")
	write = memEvent("write")
)

type ramEntry struct {
	Address uint16
	Value   uint8
}

func (r *ramEntry) UnmarshalJSON(data []byte) error {
	var raw [2]uint64
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	r.Address = uint16(raw[0])
	r.Value = uint8(raw[1])
	return nil
}

type busCycle struct {
	Address uint16
	Data    uint8
	Event   memEvent
}

func (b *busCycle) UnmarshalJSON(data []byte) error {
	var raw [3]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	addr, _ := raw[0].(float64)
	dat, _ := raw[1].(float64)
	ev, _ := raw[2].(string)

	b.Address = uint16(addr)
	b.Data = uint8(dat)
	b.Event = memEvent(ev)

	switch b.Event {
	case read, write:
	default:
		return fmt.Errorf("unexpected memory event: %q", b.Event)
	}

	return nil
}

type harteState struct {
	PC  uint64     `json:"pc"`
	S   uint64     `json:"s"`
	A   uint64     `json:"a"`
	X   uint64     `json:"x"`
	Y   uint64     `json:"y"`
	P   uint64     `json:"p"`
	RAM []ramEntry `json:"ram"`
}

type harteTest struct {
	Name    string     `json:"name"`
	Initial harteState `json:"initial"`
	Final   harteState `json:"final"`
	Cycles  []busCycle `json:"cycles"`
}

var hartePath = filepath.Join("testdata", "6502", "v1")

func TestHarte(t *testing.T) {
	d, err := os.ReadDir(hartePath)
	if err != nil {
		t.Skipf("no single step tests: %v", err)
	}

	for _, e := range d {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) == ".json" {
			testHarte(t, filepath.Join(hartePath, e.Name()))
		}
	}
}

func busEvent(p pins.Word) memEvent {
	if p.Has(m6502.RW) {
		return read
	}
	return write
}

func testHarte(t *testing.T, testFile string) {
	f, err := os.Open(testFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var tests []harteTest
	if err := json.NewDecoder(f).Decode(&tests); err != nil {
		t.Fatalf("%s: %v", testFile, err)
	}

	h := newHarness(t)

	for i, s := range tests {
		for _, r := range s.Initial.RAM {
			h.mem[r.Address] = r.Value
		}

		// the JAM instructions never complete
		if m6502.Definitions[h.mem[uint16(s.Initial.PC)]].Mnemonic == "JAM" {
			return
		}

		h.mc.A = uint8(s.Initial.A)
		h.mc.X = uint8(s.Initial.X)
		h.mc.Y = uint8(s.Initial.Y)
		h.mc.S = uint8(s.Initial.S)
		h.mc.P.FromValue(uint8(s.Initial.P))
		h.start(uint16(s.Initial.PC))

		var fail bool
		check := func(cycle int) {
			if cycle >= len(s.Cycles) {
				fail = true
				t.Errorf("%s: %s: too many cycles", testFile, s.Name)
				return
			}
			c := s.Cycles[cycle]
			fail = !test.ExpectEquality(t, h.p.Address(), c.Address, testFile, s.Name, cycle, "address bus") || fail
			fail = !test.ExpectEquality(t, h.p.Data(), c.Data, testFile, s.Name, cycle, "data bus") || fail
			fail = !test.ExpectEquality(t, busEvent(h.p), c.Event, testFile, s.Name, cycle, "memory event") || fail
		}

		// the opcode fetch is the first cycle
		check(0)

		cycle := 1
		for ; !fail; cycle++ {
			h.tick()
			if h.mc.Boundary() {
				break
			}
			check(cycle)
		}
		fail = !test.ExpectEquality(t, cycle, len(s.Cycles), testFile, s.Name, "cycle count") || fail

		fail = !test.ExpectEquality(t, h.mc.PC, uint16(s.Final.PC), testFile, i, "PC") || fail
		fail = !test.ExpectEquality(t, h.mc.A, uint8(s.Final.A), testFile, i, "A") || fail
		fail = !test.ExpectEquality(t, h.mc.X, uint8(s.Final.X), testFile, i, "X") || fail
		fail = !test.ExpectEquality(t, h.mc.Y, uint8(s.Final.Y), testFile, i, "Y") || fail
		fail = !test.ExpectEquality(t, h.mc.S, uint8(s.Final.S), testFile, i, "SP") || fail
		fail = !test.ExpectEquality(t, h.mc.P.Value()&0xef, uint8(s.Final.P)&0xef, testFile, i, "Status") || fail
		for _, r := range s.Final.RAM {
			fail = !test.ExpectEquality(t, h.mem[r.Address], r.Value, testFile, i, "RAM %04x", r.Address) || fail
		}

		if fail {
			t.Logf("last instruction: %s", h.mc.Instruction().String())
			t.Fatalf("%s: failed on test %d", testFile, i)
		}
	}
}
