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

package m6502

import (
	"fmt"

	"github.com/jetsetilly/gopherchips/hardware/pins"
)

// Interrupt vectors.
const (
	NMIVector   = uint16(0xfffa)
	ResetVector = uint16(0xfffc)
	IRQVector   = uint16(0xfffe)
)

// reasons for entering the BRK sequence
const (
	brkIRQ = 1 << iota
	brkNMI
	brkReset
)

// the interrupt pipelines are shifted left once per tick. an interrupt is
// taken at the instruction boundary if the pipeline bit has reached this
// position
const (
	pipSample = 0x100
	pipIRQ    = 0x400
	pipMask   = 0x3ff
)

// CPU implements the NMOS 6502 microprocessor. The CPU is driven by the Tick()
// function, one call per clock cycle.
//
// Each call to Tick() consumes the data placed on the pin word by the host in
// response to the previous tick and returns a pin word describing the next bus
// cycle: the address, the RW line and for write cycles the data. A returned
// word with SYNC set is an opcode fetch.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	PC uint16
	P  StatusRegister

	out pins.Word

	ins    *instruction
	opcode uint8
	cycle  int

	// tail is the cycle count since the effective address was placed on the
	// bus. negative while the address is being resolved
	tail int

	ad      uint16
	tmp     uint8
	base    uint8
	crossed bool

	brk  int
	sync bool

	irqPip  uint16
	nmiPip  uint32
	nmiLine bool

	boundary bool
	jammed   bool
}

// NewCPU is the preferred method of initialisation for the CPU type. The CPU
// begins with the reset sequence.
func NewCPU() *CPU {
	mc := &CPU{}
	mc.P.Zero = true
	mc.Reset()
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x S=%02x P=%s", mc.PC, mc.A, mc.X, mc.Y, mc.S, mc.P)
}

// Reset the CPU. The reset sequence is a BRK with the stack writes suppressed
// and begins on the next call to Tick(). The registers are otherwise
// unchanged, as with the real chip.
func (mc *CPU) Reset() {
	mc.brk = brkReset
	mc.sync = true
	mc.irqPip = 0
	mc.nmiPip = 0
	mc.jammed = false
	mc.ins = &instructions[0x00]
}

// Prefetch places the CPU at an opcode fetch of addr. The returned pin word
// should be serviced by the host and passed to the next call to Tick(). Any
// pending reset or interrupt is discarded.
func (mc *CPU) Prefetch(addr uint16) pins.Word {
	mc.brk = 0
	mc.irqPip = 0
	mc.nmiPip = 0
	mc.jammed = false
	mc.PC = addr
	mc.out = pins.Word(0)
	mc.fetch()
	return mc.out
}

// Boundary returns true if the most recent call to Tick() completed an
// instruction. The returned pin word of that tick is the opcode fetch of the
// next instruction.
func (mc *CPU) Boundary() bool {
	return mc.boundary
}

// Jammed returns true if a JAM instruction has locked the CPU. Only a reset
// recovers the CPU.
func (mc *CPU) Jammed() bool {
	return mc.jammed
}

// InterruptPending returns true if the opcode being fetched will be discarded
// and the interrupt sequence run in its place. Only meaningful when
// Boundary() is true.
func (mc *CPU) InterruptPending() bool {
	return mc.brk != 0 || mc.irqPip&pipIRQ != 0 || mc.nmiPip&^uint32(pipMask) != 0
}

// Instruction returns the definition of the instruction currently being
// executed.
func (mc *CPU) Instruction() Definition {
	return mc.ins.defn
}

// Tick advances the CPU by one clock cycle.
//
// The input lines (IRQ, NMI, RDY, RES) are owned by the host. The CPU leaves
// them as they are in the returned word.
func (mc *CPU) Tick(in pins.Word) pins.Word {
	mc.boundary = false

	if in.Has(RES) {
		mc.Reset()
		return in
	}

	// NMI is edge triggered. IRQ is level triggered and masked by the
	// interrupt disable flag
	nmi := in.Has(NMI)
	if nmi && !mc.nmiLine {
		mc.nmiPip |= pipSample
	}
	mc.nmiLine = nmi
	if in.Has(IRQ) && !mc.P.InterruptDisable {
		mc.irqPip |= pipSample
	}

	// RDY halts the CPU on read cycles. the read is repeated until RDY is
	// released
	if in.Has(RDY) && in.Has(RW) {
		mc.irqPip <<= 1
		return in
	}

	d := in.Data()
	mc.out = in.Clear(SYNC).Set(RW)

	if mc.sync {
		mc.sync = false
		mc.decode(d)
	}

	mc.execute(d)
	mc.cycle++

	mc.nmiPip <<= 1
	mc.irqPip <<= 1

	return mc.out
}

// decode the opcode on the data bus or, if an interrupt is pending, replace it
// with a BRK.
func (mc *CPU) decode(d uint8) {
	if mc.irqPip&pipIRQ != 0 {
		mc.brk |= brkIRQ
	}
	if mc.nmiPip&^uint32(pipMask) != 0 {
		mc.brk |= brkNMI
	}
	mc.irqPip &= pipMask
	mc.nmiPip &= pipMask

	if mc.brk != 0 {
		d = 0x00
	} else {
		mc.PC++
	}

	mc.opcode = d
	mc.ins = &instructions[d]
	mc.cycle = 0
	mc.tail = -1
	mc.crossed = false
}

// set read address. the data bus is cleared for the responding device
func (mc *CPU) sa(addr uint16) {
	mc.out = mc.out.SetAddressData(addr, 0).Set(RW)
}

// set address and data for a write cycle
func (mc *CPU) sad(addr uint16, v uint8) {
	mc.out = mc.out.SetAddressData(addr, v).Clear(RW)
}

// opcode fetch of the next instruction
func (mc *CPU) fetch() {
	mc.sa(mc.PC)
	mc.out = mc.out.Set(SYNC)
	mc.sync = true
	mc.boundary = true
}

// push value to the stack. the push is turned into a read during the reset
// sequence
func (mc *CPU) push(v uint8) {
	if mc.brk&brkReset == brkReset {
		mc.sa(0x0100 | uint16(mc.S))
	} else {
		mc.sad(0x0100|uint16(mc.S), v)
	}
	mc.S--
}

func (mc *CPU) stack() uint16 {
	return 0x0100 | uint16(mc.S)
}
