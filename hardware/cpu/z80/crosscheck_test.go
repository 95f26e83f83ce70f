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

package z80_test

import (
	"context"
	"testing"

	koron "github.com/koron-go/z80"

	"github.com/jetsetilly/gopherchips/test"
)

// koronMemory adapts a flat array to the memory interface of the
// instruction level emulator.
type koronMemory [0x10000]uint8

func (m *koronMemory) Get(addr uint16) uint8 {
	return m[addr]
}

func (m *koronMemory) Set(addr uint16, value uint8) {
	m[addr] = value
}

// a short program that uses block copies, loops, indexed loads and the
// stack. it finishes with HALT
var crosscheckProgram = []uint8{
	0x31, 0x00, 0xf0, // LD SP,$f000
	0x21, 0x00, 0x40, // LD HL,$4000
	0x11, 0x00, 0x50, // LD DE,$5000
	0x01, 0x10, 0x00, // LD BC,$0010
	0xed, 0xb0, // LDIR
	0x06, 0x0a, // LD B,10
	0x3e, 0x00, // LD A,0
	0x80,       // ADD A,B
	0x10, 0xfd, // DJNZ $0012
	0x32, 0x00, 0x60, // LD ($6000),A
	0xdd, 0x21, 0x00, 0x40, // LD IX,$4000
	0xdd, 0x7e, 0x03, // LD A,(IX+3)
	0x07,       // RLCA
	0xee, 0x5a, // XOR $5a
	0x4f,             // LD C,A
	0xc5,             // PUSH BC
	0xe1,             // POP HL
	0xcd, 0x2a, 0x00, // CALL $002a
	0x76, // HALT
	0x00,
	0x23,       // INC HL
	0xcb, 0x3c, // SRL H
	0xeb, // EX DE,HL
	0xc9, // RET
}

func TestCrossCheck(t *testing.T) {
	h := newHarness()
	km := &koronMemory{}

	h.bus.putInstructions(0x0000, crosscheckProgram...)
	copy(km[:], crosscheckProgram)
	for i := 0; i < 16; i++ {
		h.bus.mem[0x4000+i] = uint8(i*7 + 3)
		km[0x4000+i] = uint8(i*7 + 3)
	}

	for n := 0; !h.mc.Halted(); n++ {
		if n > 1000 {
			t.Fatalf("program did not halt")
		}
		h.step(t)
	}

	kc := koron.CPU{
		States: koron.States{SPR: koron.SPR{PC: 0x0000}},
		Memory: km,
	}
	err := kc.Run(context.Background())
	test.DemandSuccess(t, err)

	test.Equate(t, h.mc.A, kc.States.AF.Hi)
	test.Equate(t, h.mc.B, kc.States.BC.Hi)
	test.Equate(t, h.mc.C, kc.States.BC.Lo)
	test.Equate(t, h.mc.D, kc.States.DE.Hi)
	test.Equate(t, h.mc.E, kc.States.DE.Lo)
	test.Equate(t, h.mc.H, kc.States.HL.Hi)
	test.Equate(t, h.mc.L, kc.States.HL.Lo)
	test.Equate(t, h.mc.SP, kc.SP)
	test.Equate(t, h.mc.IX, kc.IX)

	for a := 0x5000; a < 0x5010; a++ {
		test.Equate(t, h.bus.mem[a], km[a])
	}
	test.Equate(t, h.bus.mem[0x6000], km[0x6000])
	test.Equate(t, h.bus.mem[0x6000], 55)
}
