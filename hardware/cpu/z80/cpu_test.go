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
	"testing"

	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/pins"
	"github.com/jetsetilly/gopherchips/test"
)

func TestPowerOn(t *testing.T) {
	mc := z80.NewCPU()
	test.Equate(t, mc.PC, 0x0000)
	test.Equate(t, mc.SP, 0xffff)
	test.Equate(t, mc.AF(), 0xffff)
	test.Equate(t, mc.IFF1, false)
	test.Equate(t, mc.IM, 0)
}

func TestOpcodeFetch(t *testing.T) {
	h := newHarness()
	h.bus.putInstructions(0x0000, 0x00)
	h.mc.I = 0x12
	h.mc.R = 0x34

	p := h.tick()
	test.ExpectSuccess(t, p.Has(z80.M1|z80.MREQ|z80.RD))
	test.Equate(t, p.Address(), 0x0000)

	// data is captured on the second tick with no request lines
	p = h.tick()
	test.ExpectFailure(t, p.Any(z80.M1|z80.MREQ|z80.RD|z80.WR|z80.IORQ))
	test.Equate(t, h.mc.PC, 0x0001)

	// refresh
	p = h.tick()
	test.ExpectSuccess(t, p.Has(z80.MREQ|z80.RFSH))
	test.ExpectFailure(t, p.Has(z80.M1))
	test.Equate(t, p.Address(), 0x1234)

	h.tick()
	test.ExpectSuccess(t, h.mc.Boundary())
}

func TestRefresh(t *testing.T) {
	h := newHarness()
	h.mc.R = 0xfe

	// three NOPs. the counter wraps at 128 and bit 7 is preserved
	for i := 0; i < 3; i++ {
		h.step(t)
	}
	test.Equate(t, h.mc.R, 0x81)

	// prefixed instructions refresh once per opcode fetch
	h = newHarness()
	h.bus.putInstructions(0x0000, 0xdd, 0x21, 0x00, 0x00, 0xdd, 0xcb, 0x00, 0xc6)
	h.step(t)
	test.Equate(t, h.mc.R, 2)
	h.step(t)
	test.Equate(t, h.mc.R, 4)
}

func TestWait(t *testing.T) {
	for waits := 0; waits < 4; waits++ {
		h := newHarness()

		// LD A,$42
		h.bus.putInstructions(0x0000, 0x3e, 0x42)

		ticks := 0
		remaining := waits
		for !h.mc.Boundary() || ticks == 0 {
			p := h.tick()
			ticks++

			// WAIT is held from the tick after the request and the address
			// is left untouched
			if ticks >= 1 && remaining > 0 {
				h.hold = z80.WAIT
				remaining--
			} else {
				h.hold = 0
			}
			if ticks > 1 && ticks <= 1+waits {
				test.Equate(t, p.Address(), 0x0000)
			}
		}

		test.Equate(t, ticks, 7+waits)
		test.Equate(t, h.mc.A, 0x42)
		test.Equate(t, h.mc.PC, 0x0002)
	}
}

// WAIT is sampled on the tick after the request of memory write, io and
// interrupt acknowledge cycles. each tick it is held adds one tick to the
// instruction and the buses are left as they were
func TestWaitCycles(t *testing.T) {
	type waitCase struct {
		name  string
		prog  []uint8
		setup func(h *harness)

		// instructions run before the one with wait states
		skip int

		request pins.Line
		ticks   int
		check   func(t *testing.T, h *harness)
	}

	cases := []waitCase{
		{
			name:    "LD (HL),A",
			prog:    []uint8{0x21, 0x00, 0x40, 0x3e, 0x5a, 0x77},
			skip:    2,
			request: z80.MREQ | z80.WR,
			ticks:   7,
			check: func(t *testing.T, h *harness) {
				h.bus.assert(t, 0x4000, 0x5a)
			},
		},
		{
			name: "IN A,(n)",
			prog: []uint8{0x3e, 0x12, 0xdb, 0x34},
			setup: func(h *harness) {
				h.bus.ports[0x34] = 0x77
			},
			skip:    1,
			request: z80.IORQ | z80.RD,
			ticks:   11,
			check: func(t *testing.T, h *harness) {
				test.Equate(t, h.mc.A, 0x77)
			},
		},
		{
			name:    "OUT (n),A",
			prog:    []uint8{0x3e, 0x5a, 0xd3, 0x34},
			skip:    1,
			request: z80.IORQ | z80.WR,
			ticks:   11,
			check: func(t *testing.T, h *harness) {
				test.Equate(t, h.bus.ports[0x34], 0x5a)
			},
		},
		{
			// LD A,$12; LD I,A; IM 2; EI; NOP
			name: "IM2 acknowledge",
			prog: []uint8{0x3e, 0x12, 0xed, 0x47, 0xed, 0x5e, 0xfb, 0x00},
			setup: func(h *harness) {
				h.mc.SP = 0x8000
				h.bus.vector = 0x34
				h.bus.putInstructions(0x1234, 0x78, 0x56)
				h.hold = z80.INT
			},
			skip:    5,
			request: z80.M1 | z80.IORQ,
			ticks:   19,
			check: func(t *testing.T, h *harness) {
				test.Equate(t, h.bus.acks, 1)
				test.Equate(t, h.mc.PC, 0x5678)
				h.bus.assert(t, 0x7ffe, 0x08)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for waits := 0; waits < 3; waits++ {
				h := newHarness()
				if c.setup != nil {
					c.setup(h)
				}
				h.bus.putInstructions(0x0000, c.prog...)
				for i := 0; i < c.skip; i++ {
					h.step(t)
				}

				base := h.hold
				remaining := waits
				requested := false
				waiting := false
				var addr uint16

				ticks := 0
				for ticks < 100 {
					p := h.tick()
					ticks++

					if waiting {
						test.Equate(t, p.Address(), addr)
						test.ExpectFailure(t, p.Any(z80.MREQ|z80.IORQ|z80.RD|z80.WR))
					}

					if !requested && p.Has(c.request) {
						requested = true
						addr = p.Address()
					}

					waiting = requested && remaining > 0
					if waiting {
						h.hold = base | z80.WAIT
						remaining--
					} else {
						h.hold = base
					}

					if h.mc.Boundary() {
						break
					}
				}

				test.ExpectSuccess(t, requested)
				test.Equate(t, ticks, c.ticks+waits)
				c.check(t, h)
			}
		})
	}
}

func TestMemoryWrite(t *testing.T) {
	h := newHarness()

	// LD HL,$4000; LD (HL),$99; LD A,(HL); INC (HL)
	h.bus.putInstructions(0x0000, 0x21, 0x00, 0x40, 0x36, 0x99, 0x7e, 0x34)
	test.Equate(t, h.step(t), 10)
	test.Equate(t, h.step(t), 10)
	h.bus.assert(t, 0x4000, 0x99)
	test.Equate(t, h.step(t), 7)
	test.Equate(t, h.mc.A, 0x99)
	test.Equate(t, h.step(t), 11)
	h.bus.assert(t, 0x4000, 0x9a)
}

func TestStack(t *testing.T) {
	h := newHarness()

	// LD SP,$8000; LD BC,$1234; PUSH BC; POP DE; CALL $0010
	h.bus.putInstructions(0x0000, 0x31, 0x00, 0x80, 0x01, 0x34, 0x12, 0xc5, 0xd1, 0xcd, 0x10, 0x00)

	// at $0010: RET
	h.bus.putInstructions(0x0010, 0xc9)

	h.step(t)
	h.step(t)
	test.Equate(t, h.step(t), 11)
	h.bus.assert(t, 0x7fff, 0x12)
	h.bus.assert(t, 0x7ffe, 0x34)
	test.Equate(t, h.step(t), 10)
	test.Equate(t, h.mc.DE(), 0x1234)

	test.Equate(t, h.step(t), 17)
	test.Equate(t, h.mc.PC, 0x0010)
	h.bus.assert(t, 0x7fff, 0x00)
	h.bus.assert(t, 0x7ffe, 0x0b)

	test.Equate(t, h.step(t), 10)
	test.Equate(t, h.mc.PC, 0x000b)
	test.Equate(t, h.mc.SP, 0x8000)
}

func TestIndexed(t *testing.T) {
	h := newHarness()

	// LD IX,$1000; LD (IX+5),$80; SET 0,(IX+5),B; LD A,(IX-1)
	h.bus.putInstructions(0x0000,
		0xdd, 0x21, 0x00, 0x10,
		0xdd, 0x36, 0x05, 0x80,
		0xdd, 0xcb, 0x05, 0xc0,
		0xdd, 0x7e, 0xff)
	h.bus.mem[0x0fff] = 0x55

	test.Equate(t, h.step(t), 14)
	test.Equate(t, h.mc.IX, 0x1000)
	test.Equate(t, h.step(t), 19)
	h.bus.assert(t, 0x1005, 0x80)
	test.Equate(t, h.step(t), 23)
	h.bus.assert(t, 0x1005, 0x81)
	test.Equate(t, h.mc.B, 0x81)
	test.Equate(t, h.step(t), 19)
	test.Equate(t, h.mc.A, 0x55)
}

func TestUndocumentedIndexHalves(t *testing.T) {
	h := newHarness()

	// LD IY,$1234; LD A,IYH; INC IYL; LD H,(IY+0)
	h.bus.putInstructions(0x0000,
		0xfd, 0x21, 0x34, 0x12,
		0xfd, 0x7c,
		0xfd, 0x2c,
		0xfd, 0x66, 0x00)
	h.bus.mem[0x1235] = 0x77

	h.step(t)
	test.Equate(t, h.step(t), 8)
	test.Equate(t, h.mc.A, 0x12)
	h.step(t)
	test.Equate(t, h.mc.IY, 0x1235)

	// H is the real H register when the other operand is (IY+d)
	h.step(t)
	test.Equate(t, h.mc.H, 0x77)
	test.Equate(t, h.mc.IY, 0x1235)
}

func TestBlockCopy(t *testing.T) {
	h := newHarness()

	// LD HL,$1000; LD DE,$2000; LD BC,4; LDIR
	h.bus.putInstructions(0x0000, 0x21, 0x00, 0x10, 0x11, 0x00, 0x20, 0x01, 0x04, 0x00, 0xed, 0xb0)
	h.bus.putInstructions(0x1000, 1, 2, 3, 4)

	h.step(t)
	h.step(t)
	h.step(t)

	ticks := 0
	for h.mc.PC != 0x000b {
		ticks += h.step(t)
	}
	test.Equate(t, ticks, 21*3+16)
	h.bus.assert(t, 0x2000, 1)
	h.bus.assert(t, 0x2003, 4)
	test.Equate(t, h.mc.BC(), 0)
	test.Equate(t, h.mc.HL(), 0x1004)
	test.Equate(t, h.mc.DE(), 0x2004)
	test.Equate(t, h.mc.F&z80.FlagPV, 0)
}

func TestIO(t *testing.T) {
	h := newHarness()
	h.bus.ports[0x20] = 0x5a

	// LD A,$01; OUT ($10),A; IN A,($20); LD BC,$0030; OUT (C),A
	h.bus.putInstructions(0x0000, 0x3e, 0x01, 0xd3, 0x10, 0xdb, 0x20, 0x01, 0x30, 0x00, 0xed, 0x79)

	h.step(t)
	test.Equate(t, h.step(t), 11)
	test.Equate(t, h.bus.ports[0x10], 0x01)
	test.Equate(t, h.step(t), 11)
	test.Equate(t, h.mc.A, 0x5a)
	h.step(t)
	test.Equate(t, h.step(t), 12)
	test.Equate(t, h.bus.ports[0x30], 0x5a)
}

func TestFlags(t *testing.T) {
	h := newHarness()

	// LD A,$7f; ADD A,1
	h.bus.putInstructions(0x0000, 0x3e, 0x7f, 0xc6, 0x01)
	h.step(t)
	h.step(t)
	test.Equate(t, h.mc.A, 0x80)
	test.Equate(t, h.mc.FlagString(), "SzyHxPnc")

	// LD A,0; SUB 1
	h = newHarness()
	h.bus.putInstructions(0x0000, 0x3e, 0x00, 0xd6, 0x01)
	h.step(t)
	h.step(t)
	test.Equate(t, h.mc.A, 0xff)
	test.Equate(t, h.mc.FlagString(), "SzYHXpNC")

	// LD A,$15; ADD A,$27; DAA
	h = newHarness()
	h.bus.putInstructions(0x0000, 0x3e, 0x15, 0xc6, 0x27, 0x27)
	h.step(t)
	h.step(t)
	h.step(t)
	test.Equate(t, h.mc.A, 0x42)
	test.Equate(t, h.mc.F, 0x14)

	// XOR A; CP $28
	h = newHarness()
	h.bus.putInstructions(0x0000, 0xaf, 0xfe, 0x28)
	h.step(t)
	test.Equate(t, h.mc.FlagString(), "sZyhxPnc")
	h.step(t)

	// undocumented flags come from the operand for CP
	test.Equate(t, h.mc.F&(z80.FlagX|z80.FlagY), 0x28)
	test.Equate(t, h.mc.A, 0x00)
}

func TestRETIPin(t *testing.T) {
	h := newHarness()

	// LD SP,$8000; RETI
	h.bus.putInstructions(0x0000, 0x31, 0x00, 0x80, 0xed, 0x4d)
	h.bus.putInstructions(0x8000, 0x00, 0x10)
	h.step(t)

	for {
		p := h.tick()
		test.ExpectFailure(t, p.Has(z80.RETI))
		if h.mc.Boundary() {
			break
		}
	}
	test.Equate(t, h.mc.PC, 0x1000)

	// the pin is set for exactly one tick after the instruction
	p := h.tick()
	test.ExpectSuccess(t, p.Has(z80.RETI))
	p = h.tick()
	test.ExpectFailure(t, p.Has(z80.RETI))
}

func TestDefinitions(t *testing.T) {
	d := z80.Definitions[z80.PrefixNone][0x3e]
	test.Equate(t, d.Mnemonic, "LD A,n")
	test.Equate(t, d.Bytes, 2)
	test.Equate(t, d.Ticks, 7)

	d = z80.Definitions[z80.PrefixDD][0x66]
	test.Equate(t, d.Mnemonic, "LD H,(IX+d)")
	test.Equate(t, d.Bytes, 3)
	test.Equate(t, d.Ticks, 19)

	d = z80.Definitions[z80.PrefixFD][0x7c]
	test.Equate(t, d.Mnemonic, "LD A,IYH")
	test.ExpectSuccess(t, d.Undocumented)

	d = z80.Definitions[z80.PrefixDDCB][0xc0]
	test.Equate(t, d.Mnemonic, "SET 0,(IX+d),B")
	test.ExpectSuccess(t, d.Undocumented)

	d = z80.Definitions[z80.PrefixED][0xb0]
	test.Equate(t, d.Mnemonic, "LDIR")
	test.Equate(t, d.Ticks, 16)
	test.Equate(t, d.TicksTaken, 21)

	test.ExpectSuccess(t, z80.Definitions[z80.PrefixNone][0xcb].IsPrefix())
}

func TestDisassemble(t *testing.T) {
	b := &mockBus{}
	b.putInstructions(0x0100,
		0x3e, 0x42, // LD A,$42
		0x21, 0x34, 0x12, // LD HL,$1234
		0x18, 0xfe, // JR $0105
		0xdd, 0x36, 0xfd, 0x07, // LD (IX-3),$07
		0xfd, 0xcb, 0x02, 0x46, // BIT 0,(IY+2)
		0xdb, 0x10, // IN A,($10)
	)
	read := func(addr uint16) uint8 { return b.mem[addr] }

	expected := []string{"LD A,$42", "LD HL,$1234", "JR $0105", "LD (IX-3),$07", "BIT 0,(IY+2)", "IN A,($10)"}
	addr := uint16(0x0100)
	for _, e := range expected {
		d, s := z80.Disassemble(read, addr)
		test.Equate(t, s, e)
		addr += uint16(d.Bytes)
	}
}
