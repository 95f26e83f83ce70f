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

package perfect6502

import (
	"fmt"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/netlist"
	"github.com/jetsetilly/gopherchips/hardware/pins"
)

// ChipError is the pattern of errors returned when a netlist is not a usable
// 6502.
const ChipError = "perfect6502: %v"

// ResetHalfCycles is the number of half cycles that the reset line is held
// for by Reset().
const ResetHalfCycles = 16

// Chip is a 6502 simulated at the transistor level.
type Chip struct {
	net *netlist.Netlist
	mem pins.Responder

	// HalfCycles is the number of half cycles since the end of the reset
	HalfCycles uint64

	ab    []netlist.Node
	db    []netlist.Node
	a     []netlist.Node
	x     []netlist.Node
	y     []netlist.Node
	s     []netlist.Node
	p     []netlist.Node
	pcl   []netlist.Node
	pch   []netlist.Node
	notir []netlist.Node

	rw   netlist.Node
	clk0 netlist.Node
	res  netlist.Node
	rdy  netlist.Node
	so   netlist.Node
	irq  netlist.Node
	nmi  netlist.Node
	sync netlist.Node
}

// NewChip wraps the netlist, which must have been loaded from the 6502 data
// files. The memory responder is used to service bus cycles. Reset() must be
// called before the chip is stepped.
func NewChip(net *netlist.Netlist, mem pins.Responder) (*Chip, error) {
	c := &Chip{net: net, mem: mem}

	var missing []string

	node := func(name string) netlist.Node {
		n, ok := net.Node(name)
		if !ok {
			missing = append(missing, name)
		}
		return n
	}

	bus := func(prefix string, width int) []netlist.Node {
		l := make([]netlist.Node, width)
		for i := range l {
			l[i] = node(fmt.Sprintf("%s%d", prefix, i))
		}
		return l
	}

	c.ab = bus("ab", 16)
	c.db = bus("db", 8)
	c.a = bus("a", 8)
	c.x = bus("x", 8)
	c.y = bus("y", 8)
	c.s = bus("s", 8)
	c.p = bus("p", 8)
	c.pcl = bus("pcl", 8)
	c.pch = bus("pch", 8)
	c.notir = bus("notir", 8)

	c.rw = node("rw")
	c.clk0 = node("clk0")
	c.res = node("res")
	c.rdy = node("rdy")
	c.so = node("so")
	c.irq = node("irq")
	c.nmi = node("nmi")
	c.sync = node("sync")

	if len(missing) > 0 {
		return nil, curated.Errorf(ChipError, fmt.Sprintf("netlist is missing nodes %v", missing))
	}

	return c, nil
}

func (c *Chip) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x S=%02x P=%02x IR=%02x",
		c.PC(), c.A(), c.X(), c.Y(), c.S(), c.P(), c.IR())
}

// Reset the chip. The input lines are set to their inactive state and the
// reset line is held while the clock runs for ResetHalfCycles. The chip then
// begins its own reset sequence of nine cycles, the same as the m6502
// engine's sequence plus the two cycles the engine doesn't model.
func (c *Chip) Reset() error {
	for _, s := range []struct {
		n    netlist.Node
		high bool
	}{
		{c.res, false},
		{c.clk0, true},
		{c.rdy, true},
		{c.so, false},
		{c.irq, true},
		{c.nmi, true},
	} {
		if err := c.net.SetNode(s.n, s.high); err != nil {
			return curated.Errorf(ChipError, err)
		}
	}

	if err := c.net.Stabilise(); err != nil {
		return curated.Errorf(ChipError, err)
	}

	for i := 0; i < ResetHalfCycles; i++ {
		if err := c.HalfStep(); err != nil {
			return err
		}
	}

	if err := c.net.SetNode(c.res, true); err != nil {
		return curated.Errorf(ChipError, err)
	}

	c.HalfCycles = 0

	return nil
}

// HalfStep inverts the clock. Memory is serviced when the clock goes high.
func (c *Chip) HalfStep() error {
	clk := c.net.IsHigh(c.clk0)
	if err := c.net.SetNode(c.clk0, !clk); err != nil {
		return curated.Errorf(ChipError, err)
	}

	if !clk {
		if err := c.handleMemory(); err != nil {
			return err
		}
	}

	c.HalfCycles++

	return nil
}

// Step the chip through one full clock cycle.
func (c *Chip) Step() error {
	if err := c.HalfStep(); err != nil {
		return err
	}
	return c.HalfStep()
}

func (c *Chip) handleMemory() error {
	if c.RW() {
		p := pins.Word(0).SetAddress(c.Address()).Set(m6502.RW)
		p = c.mem.Respond(p)
		if err := c.net.WriteNodes(c.db, uint(p.Data())); err != nil {
			return curated.Errorf(ChipError, err)
		}
		return nil
	}

	c.mem.Respond(pins.Word(0).SetAddressData(c.Address(), c.Data()))

	return nil
}

// Clock returns the state of the clock input.
func (c *Chip) Clock() bool {
	return c.net.IsHigh(c.clk0)
}

// Address returns the value on the address bus.
func (c *Chip) Address() uint16 {
	return uint16(c.net.ReadNodes(c.ab))
}

// Data returns the value on the data bus.
func (c *Chip) Data() uint8 {
	return uint8(c.net.ReadNodes(c.db))
}

// RW returns true if the chip is reading.
func (c *Chip) RW() bool {
	return c.net.IsHigh(c.rw)
}

// Sync returns true during an opcode fetch.
func (c *Chip) Sync() bool {
	return c.net.IsHigh(c.sync)
}

// Pins returns the state of the address and data buses and the RW and SYNC
// outputs in the same form as the m6502 package.
func (c *Chip) Pins() pins.Word {
	p := pins.Word(0).SetAddressData(c.Address(), c.Data())
	if c.RW() {
		p = p.Set(m6502.RW)
	}
	if c.Sync() {
		p = p.Set(m6502.SYNC)
	}
	return p
}

// A returns the accumulator.
func (c *Chip) A() uint8 {
	return uint8(c.net.ReadNodes(c.a))
}

// X returns the X index register.
func (c *Chip) X() uint8 {
	return uint8(c.net.ReadNodes(c.x))
}

// Y returns the Y index register.
func (c *Chip) Y() uint8 {
	return uint8(c.net.ReadNodes(c.y))
}

// S returns the stack pointer.
func (c *Chip) S() uint8 {
	return uint8(c.net.ReadNodes(c.s))
}

// P returns the status register. The unused and break bits do not exist in
// the chip as they do on the stack.
func (c *Chip) P() uint8 {
	return uint8(c.net.ReadNodes(c.p))
}

// PC returns the program counter.
func (c *Chip) PC() uint16 {
	return uint16(c.net.ReadNodes(c.pch))<<8 | uint16(c.net.ReadNodes(c.pcl))
}

// IR returns the instruction register. The chip stores the register
// inverted.
func (c *Chip) IR() uint8 {
	return uint8(c.net.ReadNodes(c.notir)) ^ 0xff
}

// SetIRQ asserts or releases the IRQ input. The line is active low on the
// chip.
func (c *Chip) SetIRQ(assert bool) error {
	return c.set(c.irq, !assert)
}

// SetNMI asserts or releases the NMI input.
func (c *Chip) SetNMI(assert bool) error {
	return c.set(c.nmi, !assert)
}

// SetRDY asserts or releases the RDY input. Asserting RDY halts the chip, as
// it does with the m6502 package.
func (c *Chip) SetRDY(assert bool) error {
	return c.set(c.rdy, !assert)
}

func (c *Chip) set(n netlist.Node, high bool) error {
	if err := c.net.SetNode(n, high); err != nil {
		return curated.Errorf(ChipError, err)
	}
	return nil
}
