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

package oracle

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/memory"
	"github.com/jetsetilly/gopherchips/hardware/netlist"
	"github.com/jetsetilly/gopherchips/hardware/netlist/perfect6502"
	"github.com/jetsetilly/gopherchips/hardware/pins"
	"github.com/jetsetilly/gopherchips/logger"
)

// Patterns of the errors returned by the package.
const (
	Diverged   = "oracle: diverged at tick %d: %v"
	SetupError = "oracle: %v"
)

// the number of ticks kept for Log()
const logLength = 32

// the longest instruction is seven ticks. anything longer than this means
// the netlist has stopped producing opcode fetches
const maxInstructionTicks = 16

// flags that are not compared. the unused and break bits do not exist as
// latches in the chip
const ignoreFlags = 0x20 | 0x10

// the interrupt disable flag. the chip sets it at a different point in the
// interrupt sequence so it is not compared on either side of an interrupt
// entry
const interruptDisable = 0x04

// Lockstep runs the two processors. The CPU and Chip fields are exposed for
// inspection but should not be ticked directly.
type Lockstep struct {
	CPU  *m6502.CPU
	Chip *perfect6502.Chip

	cpuMem  *memory.Memory
	chipMem *memory.Memory

	// the pin word of the engine
	pins pins.Word

	// Ticks and Instructions since Start()
	Ticks        uint64
	Instructions uint64

	log []string
}

// NewLockstep creates the two processors and their 64K memories. Each call
// creates a new netlist from the definition.
func NewLockstep(def *netlist.Definition, maxIterations int) (*Lockstep, error) {
	net, err := netlist.Setup(def, maxIterations)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	l := &Lockstep{
		CPU:     m6502.NewCPU(),
		cpuMem:  memory.NewMemory(memory.M6502Bus),
		chipMem: memory.NewMemory(memory.M6502Bus),
	}

	for _, mem := range []*memory.Memory{l.cpuMem, l.chipMem} {
		if err := mem.MapRAM(0, 0x0000, 0x10000, make([]uint8, 0x10000)); err != nil {
			return nil, curated.Errorf(SetupError, err)
		}
	}

	l.Chip, err = perfect6502.NewChip(net, l.chipMem)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	return l, nil
}

func (l *Lockstep) String() string {
	return fmt.Sprintf("engine: %s\nchip:   %s", l.CPU, l.Chip)
}

// Load data into both memories.
func (l *Lockstep) Load(addr uint16, data []uint8) {
	l.cpuMem.Load(addr, data)
	l.chipMem.Load(addr, data)
}

// Write a single byte to both memories. Can be used between calls to Step().
func (l *Lockstep) Write(addr uint16, data uint8) {
	l.cpuMem.Write(addr, data)
	l.chipMem.Write(addr, data)
}

// Read a byte from both memories. The first value is from the engine's
// memory.
func (l *Lockstep) Read(addr uint16) (uint8, uint8) {
	return l.cpuMem.Read(addr), l.chipMem.Read(addr)
}

// Start runs both processors through their reset sequences to the first
// instruction at addr. The engine's registers are then set to those of the
// chip, which are not defined by the reset.
func (l *Lockstep) Start(addr uint16) error {
	l.Load(m6502.ResetVector, []uint8{uint8(addr), uint8(addr >> 8)})

	l.CPU.Reset()
	l.pins = 0
	for i := 0; i < 7; i++ {
		l.pins = l.cpuMem.Respond(l.CPU.Tick(l.pins))
	}
	if !l.CPU.Boundary() || l.CPU.PC != addr {
		return curated.Errorf(SetupError, fmt.Sprintf("engine did not reset to %04x", addr))
	}

	if err := l.Chip.Reset(); err != nil {
		return curated.Errorf(SetupError, err)
	}
	for i := 0; i < 9; i++ {
		if err := l.Chip.Step(); err != nil {
			return curated.Errorf(SetupError, err)
		}
	}
	if l.Chip.PC() != addr {
		return curated.Errorf(SetupError, fmt.Sprintf("chip did not reset to %04x (%04x)", addr, l.Chip.PC()))
	}

	// run the chip half a cycle ahead
	if err := l.Chip.HalfStep(); err != nil {
		return curated.Errorf(SetupError, err)
	}

	l.CPU.A = l.Chip.A()
	l.CPU.X = l.Chip.X()
	l.CPU.Y = l.Chip.Y()
	l.CPU.S = l.Chip.S()
	l.CPU.P.FromValue(l.Chip.P() &^ 0x10)

	l.Ticks = 0
	l.Instructions = 0
	l.log = l.log[:0]

	return nil
}

// SetIRQ asserts or releases the IRQ line of both processors. The change is
// seen from the next tick.
func (l *Lockstep) SetIRQ(assert bool) error {
	if assert {
		l.pins = l.pins.Set(m6502.IRQ)
	} else {
		l.pins = l.pins.Clear(m6502.IRQ)
	}
	return l.Chip.SetIRQ(assert)
}

// SetNMI asserts or releases the NMI line of both processors.
func (l *Lockstep) SetNMI(assert bool) error {
	if assert {
		l.pins = l.pins.Set(m6502.NMI)
	} else {
		l.pins = l.pins.Clear(m6502.NMI)
	}
	return l.Chip.SetNMI(assert)
}

// the part of the engine's pin word that can be compared with the chip
func (l *Lockstep) outputs() pins.Word {
	return pins.Word(0).SetAddressData(l.pins.Address(), l.pins.Data()).Set(l.pins.Lines() & (m6502.RW | m6502.SYNC))
}

func (l *Lockstep) record(engine, chip pins.Word) {
	if len(l.log) >= logLength {
		l.log = l.log[1:]
	}
	l.log = append(l.log, fmt.Sprintf("%6d  %s  |  %s", l.Ticks, engine.Format(m6502.Names[:2]), chip.Format(m6502.Names[:2])))
}

func (l *Lockstep) diverged(detail string) error {
	logger.Logf(logger.Allow, "oracle", "diverged at tick %d: %s", l.Ticks, detail)
	return curated.Errorf(Diverged, l.Ticks, detail)
}

// tick both processors once and compare their pins. the first tick of an
// instruction skips the half step of the chip that was taken at the end of
// the previous instruction
func (l *Lockstep) tick(first bool) error {
	l.pins = l.cpuMem.Respond(l.CPU.Tick(l.pins))

	if !first {
		if err := l.Chip.HalfStep(); err != nil {
			return curated.Errorf(SetupError, err)
		}
	}
	if err := l.Chip.HalfStep(); err != nil {
		return curated.Errorf(SetupError, err)
	}

	l.Ticks++

	e := l.outputs()
	c := l.Chip.Pins()
	l.record(e, c)

	if e == c {
		return nil
	}

	var d []string
	if e.Address() != c.Address() {
		d = append(d, fmt.Sprintf("address %04x != %04x", e.Address(), c.Address()))
	}
	if e.Data() != c.Data() {
		d = append(d, fmt.Sprintf("data %02x != %02x", e.Data(), c.Data()))
	}
	if e.Has(m6502.RW) != c.Has(m6502.RW) {
		d = append(d, "RW")
	}
	if e.Has(m6502.SYNC) != c.Has(m6502.SYNC) {
		d = append(d, "SYNC")
	}
	return l.diverged(strings.Join(d, ", "))
}

// Step runs both processors to the end of the current instruction and returns
// the number of ticks taken.
func (l *Lockstep) Step() (int, error) {
	n := 0
	for {
		if err := l.tick(n == 0); err != nil {
			return n, err
		}
		n++

		if l.Chip.Sync() {
			break
		}
		if n >= maxInstructionTicks {
			return n, l.diverged("no opcode fetch from chip")
		}
	}

	if !l.CPU.Boundary() {
		return n, l.diverged(fmt.Sprintf("engine instruction is longer than %d ticks", n))
	}

	// half a cycle into the next instruction
	if err := l.Chip.HalfStep(); err != nil {
		return n, curated.Errorf(SetupError, err)
	}

	l.Instructions++

	return n, l.compareRegisters()
}

func (l *Lockstep) compareRegisters() error {
	var d []string

	reg := func(name string, e, c uint8) {
		if e != c {
			d = append(d, fmt.Sprintf("%s %02x != %02x", name, e, c))
		}
	}
	reg("A", l.CPU.A, l.Chip.A())
	reg("X", l.CPU.X, l.Chip.X())
	reg("Y", l.CPU.Y, l.Chip.Y())
	reg("S", l.CPU.S, l.Chip.S())

	// an interrupt sequence has just completed or the opcode being fetched
	// is about to be replaced by one
	entered := l.CPU.Instruction().OpCode == 0x00
	recognised := l.CPU.InterruptPending()

	mask := uint8(ignoreFlags)
	if entered || recognised {
		mask |= interruptDisable
	}
	reg("P", l.CPU.P.Value()&^mask, l.Chip.P()&^mask)

	// the chip increments the PC during the opcode fetch unless an interrupt
	// has been recognised, in which case the opcode is discarded
	pc := l.CPU.PC + 1
	if recognised {
		pc = l.CPU.PC
	}
	if l.Chip.PC() != pc {
		d = append(d, fmt.Sprintf("PC %04x != %04x", pc, l.Chip.PC()))
	}

	if len(d) == 0 {
		return nil
	}
	return l.diverged(strings.Join(d, ", "))
}

// Run the number of instructions. Stops at the first divergence.
func (l *Lockstep) Run(instructions int) error {
	for i := 0; i < instructions; i++ {
		if _, err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Log returns the most recent ticks. Each line shows the outputs of the
// engine and then of the chip.
func (l *Lockstep) Log() []string {
	return append([]string(nil), l.log...)
}
