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

package z80

import (
	"github.com/jetsetilly/gopherchips/hardware/pins"
)

// which of the HL, IX or IY registers is selected by a DD or FD prefix
type index uint8

const (
	indexHL index = iota
	indexIX
	indexIY
)

// which opcode table the next fetched opcode is decoded with
type page uint8

const (
	pageMain page = iota
	pageCB
	pageED
)

// CPU is a tick accurate Z80. Each call to Tick() advances the CPU by one
// clock cycle (T state).
type CPU struct {
	Registers

	// machine cycles of the current instruction. the queue is filled by the
	// decoder and by the functions attached to each step
	queue [16]step
	qpos  int
	qlen  int

	// tick within the current step
	t int

	// address and data latched for the current step
	addr   uint16
	dlatch uint8

	// scratch value used by multi-byte reads
	tmp uint8

	// decode state of the current instruction
	opcode uint8
	page   page
	index  index

	halted bool

	// interrupt state. nmiLine is the state of the NMI line on the previous
	// tick and is used to detect the rising edge
	nmiLine    bool
	nmiPending bool
	eiDelay    bool
	reti       bool

	// true if the most recent tick completed an instruction
	boundary bool
}

// NewCPU is the preferred method of initialisation for the CPU type. The CPU
// is returned in the reset state.
func NewCPU() *CPU {
	mc := &CPU{}
	mc.Reset()
	return mc
}

// Reset the CPU to the power-on state. The next tick will be the first tick
// of the opcode fetch from address zero.
func (mc *CPU) Reset() {
	mc.Registers.reset()
	mc.halted = false
	mc.nmiLine = false
	mc.nmiPending = false
	mc.eiDelay = false
	mc.reti = false
	mc.boundary = false
	mc.startInstruction()
	mc.t = 0
}

// Boundary returns true if the most recent tick completed an instruction.
// Prefix bytes do not complete an instruction.
func (mc *CPU) Boundary() bool {
	return mc.boundary
}

// Halted returns true if the CPU is in the halt state.
func (mc *CPU) Halted() bool {
	return mc.halted
}

func (mc *CPU) String() string {
	return mc.Registers.String()
}

// the step kind and tick position at which the WAIT line is sampled
var waitSample = [...]int{
	stepFetch:    1,
	stepRead:     1,
	stepWrite:    2,
	stepIORead:   2,
	stepIOWrite:  2,
	stepInternal: -1,
	stepNMIAck:   1,
	stepIntAck:   3,
}

// Tick advances the CPU by one clock cycle. The incoming pins should be the
// pins returned by the previous call to Tick(), serviced by the host.
//
// Tick does not allocate and does not block.
func (mc *CPU) Tick(in pins.Word) pins.Word {
	mc.boundary = false

	if in.Has(RES) {
		mc.Reset()
		return in.Clear(outputs)
	}

	// NMI is edge triggered. it is rearmed when the line is released
	nmi := in.Has(NMI)
	if nmi && !mc.nmiLine {
		mc.nmiPending = true
	}
	mc.nmiLine = nmi

	out := in.Clear(outputs)
	if mc.halted {
		out = out.Set(HALT)
	}
	s := &mc.queue[mc.qpos]

	// RETI is signalled on the first tick after the instruction
	if mc.reti && mc.qpos == 0 && mc.t == 0 {
		out = out.Set(RETI)
		mc.reti = false
	}

	if mc.t == waitSample[s.kind] && in.Has(WAIT) {
		return out
	}

	switch s.kind {
	case stepFetch:
		switch mc.t {
		case 0:
			mc.addr = mc.PC
			out = out.SetAddressData(mc.addr, 0).Set(M1 | MREQ | RD)
		case 1:
			if mc.halted {
				mc.dlatch = 0x00
			} else {
				mc.dlatch = in.Data()
				mc.PC++
			}
		case 2:
			out = mc.refresh(out)
		case 3:
			mc.next(in, decode)
		}

	case stepRead:
		switch mc.t {
		case 0:
			mc.addr = mc.source(s.src)
			out = out.SetAddressData(mc.addr, 0).Set(MREQ | RD)
		case 1:
			mc.dlatch = in.Data()
			if s.fn != nil {
				s.fn(mc)
			}
		case 2:
			mc.next(in, nil)
		}

	case stepWrite:
		switch mc.t {
		case 0:
			src := s.src
			if s.fn != nil {
				s.fn(mc)
			}
			mc.addr = mc.source(src)
			out = out.SetAddressData(mc.addr, mc.dlatch)
		case 1:
			out = out.SetAddressData(mc.addr, mc.dlatch).Set(MREQ | WR)
		case 2:
			mc.next(in, nil)
		}

	case stepIORead:
		switch mc.t {
		case 0:
			mc.addr = mc.source(s.src)
			out = out.SetAddress(mc.addr)
		case 1:
			out = out.SetAddressData(mc.addr, 0).Set(IORQ | RD)
		case 2:
			mc.dlatch = in.Data()
			if s.fn != nil {
				s.fn(mc)
			}
		case 3:
			mc.next(in, nil)
		}

	case stepIOWrite:
		switch mc.t {
		case 0:
			src := s.src
			if s.fn != nil {
				s.fn(mc)
			}
			mc.addr = mc.source(src)
			out = out.SetAddressData(mc.addr, mc.dlatch)
		case 1:
			out = out.SetAddressData(mc.addr, mc.dlatch).Set(IORQ | WR)
		case 3:
			mc.next(in, nil)
		}

	case stepInternal:
		n := int(s.ticks)
		if mc.t == 0 && s.fn != nil {
			s.fn(mc)
		}
		if mc.t >= n-1 {
			mc.next(in, nil)
		}

	case stepNMIAck:
		switch mc.t {
		case 0:
			out = out.SetAddress(mc.PC).Set(M1 | MREQ | RD)
		case 2:
			out = mc.refresh(out)
		case 4:
			mc.next(in, nil)
		}

	case stepIntAck:
		switch mc.t {
		case 0, 1:
			out = out.SetAddress(mc.PC).Set(M1)
		case 2:
			out = out.SetAddressData(mc.PC, 0).Set(M1 | IORQ)
		case 3:
			mc.dlatch = in.Data()
		case 4:
			out = mc.refresh(out)
		case 5:
			mc.next(in, acknowledged)
		}
	}

	mc.t++

	return out
}

// put the refresh address on the bus and advance the refresh counter. bit
// 7 of the R register is never changed by the refresh.
func (mc *CPU) refresh(out pins.Word) pins.Word {
	out = out.SetAddress(uint16(mc.I)<<8 | uint16(mc.R)).Set(MREQ | RFSH)
	mc.R = (mc.R & 0x80) | ((mc.R + 1) & 0x7f)
	return out
}

// next moves the CPU to the next step in the queue. the supplied function is
// called before the queue is examined and may add more steps. if there are
// no more steps then the instruction has completed and the next instruction
// (or interrupt) is started.
//
// the tick counter is set to -1 because it is incremented at the end of
// every Tick()
func (mc *CPU) next(in pins.Word, fn func(mc *CPU)) {
	mc.t = -1
	if fn != nil {
		fn(mc)
	}
	mc.qpos++
	if mc.qpos < mc.qlen {
		return
	}

	mc.boundary = true

	if mc.nmiPending {
		mc.nmiPending = false
		mc.halted = false
		mc.IFF1 = false
		mc.clearQueue()
		mc.push(step{kind: stepNMIAck})
		mc.push(step{kind: stepWrite, src: srcAddr, fn: pushPCH})
		mc.push(step{kind: stepWrite, src: srcAddr, fn: pushPCLNMI})
	} else if in.Has(INT) && mc.IFF1 && !mc.eiDelay {
		mc.halted = false
		mc.IFF1 = false
		mc.IFF2 = false
		mc.clearQueue()
		mc.push(step{kind: stepIntAck})
	} else {
		mc.startInstruction()
	}

	mc.eiDelay = false
}

func (mc *CPU) startInstruction() {
	mc.page = pageMain
	mc.index = indexHL
	mc.clearQueue()
	mc.push(step{kind: stepFetch})
}

func (mc *CPU) clearQueue() {
	mc.qpos = 0
	mc.qlen = 0
}

// acknowledged is called at the end of the interrupt acknowledge cycle. the
// data latch holds the byte placed on the bus by the interrupting device.
func acknowledged(mc *CPU) {
	switch mc.IM {
	case 0:
		// the byte is executed as though it was fetched. the PC has not been
		// advanced by the acknowledge cycle
		mc.page = pageMain
		mc.index = indexHL
		decode(mc)
	case 1:
		mc.push(step{kind: stepInternal, ticks: 1})
		mc.push(step{kind: stepWrite, src: srcAddr, fn: pushPCH})
		mc.push(step{kind: stepWrite, src: srcAddr, fn: pushPCLIM1})
	default:
		mc.WZ = uint16(mc.I)<<8 | uint16(mc.dlatch)
		mc.push(step{kind: stepInternal, ticks: 1})
		mc.push(step{kind: stepWrite, src: srcAddr, fn: pushPCH})
		mc.push(step{kind: stepWrite, src: srcAddr, fn: pushPCL})
		mc.push(step{kind: stepRead, src: srcWZ, fn: loadTmpIncWZ})
		mc.push(step{kind: stepRead, src: srcWZ, fn: jumpTmp})
	}
}
