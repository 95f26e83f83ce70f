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
	"fmt"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/daisychain"
	"github.com/jetsetilly/gopherchips/hardware/memory"
	"github.com/jetsetilly/gopherchips/hardware/pins"
	"github.com/jetsetilly/gopherchips/logger"
)

// CPU is implemented by the tick engines of both processor families.
type CPU interface {
	Tick(pins.Word) pins.Word
	Boundary() bool
	Reset()
	String() string
}

// Ticker is implemented by peripherals that need to see every tick, whether
// or not they are being addressed. For example, the counter of a timer.
type Ticker interface {
	Tick(pins.Word) pins.Word
}

// MachineError is the pattern of errors returned when a machine is put
// together incorrectly.
const MachineError = "machine: %v"

// Machine is the main container for the emulated components of a system.
type Machine struct {
	Family Family
	CPU    CPU
	Mem    *memory.Memory

	// IO is the decoder for the IO address space. Z80 only. Devices are
	// selected by the low byte of the address
	IO *pins.Decoder

	// the interrupt daisy chain. Z80 only. The first device has the highest
	// priority
	Chain daisychain.Chain

	// the state of the pins at the end of the most recent tick
	Pins pins.Word

	// Ticks and Instructions count the number of ticks and completed
	// instructions since the most recent reset
	Ticks        uint64
	Instructions uint64

	// responders for memory mapped devices. they see the word after memory
	devices pins.Chain

	tickers []Ticker

	// input lines driven by the host. inputs is the set of lines that are
	// owned by the host for the processor family and held is the set that
	// is currently asserted
	inputs pins.Line
	held   pins.Line
}

// NewMachine creates a machine for the processor family. RAM of ramSize bytes
// is mapped at address zero in the lowest priority layer, leaving the other
// layers for ROM and bank switching.
func NewMachine(family Family, ramSize int) (*Machine, error) {
	m := &Machine{Family: family}

	switch family {
	case Z80:
		m.CPU = z80.NewCPU()
		m.Mem = memory.NewMemory(memory.Z80Bus)
		m.IO = pins.NewDecoder(z80.IORQ)
		m.IO.Mask = 0x00ff
		m.inputs = z80.NMI | z80.WAIT | z80.RES
	case M6502:
		m.CPU = m6502.NewCPU()
		m.Mem = memory.NewMemory(memory.M6502Bus)
		m.inputs = m6502.IRQ | m6502.NMI | m6502.RDY | m6502.RES
	default:
		return nil, curated.Errorf(MachineError, fmt.Sprintf("unsupported family (%d)", family))
	}

	if ramSize > 0 {
		err := m.Mem.MapRAM(memory.NumLayers-1, 0x0000, ramSize, make([]uint8, ramSize))
		if err != nil {
			return nil, curated.Errorf(MachineError, err)
		}
	}

	logger.Logf(logger.Allow, "machine", "%s with %dK RAM", family, ramSize/1024)

	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s: %s", m.Family, m.CPU.String())
}

// Attach a memory mapped device. The device sees the pin word after memory
// and must do its own address decoding.
func (m *Machine) Attach(r pins.Responder) {
	m.devices = append(m.devices, r)
}

// AttachIO adds a device to the IO decoder for the port range. The range is
// inclusive. Z80 only.
func (m *Machine) AttachIO(origin uint8, memtop uint8, r pins.Responder) error {
	if m.IO == nil {
		return curated.Errorf(MachineError, fmt.Sprintf("%s has no IO address space", m.Family))
	}
	m.IO.Add(uint16(origin), uint16(memtop), r)
	return nil
}

// AttachTicker adds a device that needs to see every tick. Tickers are called
// in the order they were attached, after the memory and IO responders.
func (m *Machine) AttachTicker(t Ticker) {
	m.tickers = append(m.tickers, t)
}

// AttachInterrupt adds a device to the end of the daisy chain. The device
// will have a lower priority than any device already in the chain. Z80 only.
func (m *Machine) AttachInterrupt(d daisychain.Device) error {
	if m.Family != Z80 {
		return curated.Errorf(MachineError, fmt.Sprintf("%s has no interrupt daisy chain", m.Family))
	}
	m.Chain = append(m.Chain, d)
	return nil
}

// Hold asserts an input line until it is released. Only lines owned by the
// host for the processor family can be held (for the Z80 INT can also be
// held, in which case it is ORed with the daisy chain).
func (m *Machine) Hold(l pins.Line) {
	m.held |= l
}

// Release an input line previously asserted with Hold().
func (m *Machine) Release(l pins.Line) {
	m.held &^= l
}

// Reset the CPU and any attached device that can be reset. Memory is not
// changed.
func (m *Machine) Reset() {
	m.CPU.Reset()
	for _, t := range m.tickers {
		if r, ok := t.(interface{ Reset() }); ok {
			r.Reset()
		}
	}
	m.Pins = pins.Word(0).Set(m.held)
	m.Ticks = 0
	m.Instructions = 0
}

// Start resets the machine and places the CPU at the first tick of the
// instruction at addr, bypassing the reset sequence of the CPU.
func (m *Machine) Start(addr uint16) {
	m.Reset()
	switch mc := m.CPU.(type) {
	case *z80.CPU:
		mc.PC = addr
	case *m6502.CPU:
		m.Pins = m.respond(mc.Prefetch(addr))
	}
}

// the responders in the order they see the pin word
func (m *Machine) respond(p pins.Word) pins.Word {
	p = m.Mem.Respond(p)
	if m.IO != nil {
		p = m.IO.Respond(p)
	}
	return m.devices.Respond(p)
}

// Tick advances the machine by one clock.
func (m *Machine) Tick() {
	p := m.CPU.Tick(m.Pins)

	// devices can drive input lines too so the lines held by the host are
	// applied before the devices see the word
	p = p.Clear(m.inputs).Set(m.held)

	p = m.respond(p)
	for _, t := range m.tickers {
		p = t.Tick(p)
	}

	if m.Family == Z80 {
		p = m.Chain.Resolve(p)
		if m.held&z80.INT == z80.INT {
			p = p.Set(z80.INT)
		}
	}

	m.Pins = p

	m.Ticks++
	if m.CPU.Boundary() {
		m.Instructions++
	}
}
