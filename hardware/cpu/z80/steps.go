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

// the kinds of machine cycle
type stepKind uint8

const (
	stepFetch    stepKind = iota // opcode fetch, including refresh (4 ticks)
	stepRead                     // memory read (3 ticks)
	stepWrite                    // memory write (3 ticks)
	stepIORead                   // io read (4 ticks)
	stepIOWrite                  // io write (4 ticks)
	stepInternal                 // no bus activity (variable)
	stepNMIAck                   // dummy opcode fetch for NMI (5 ticks)
	stepIntAck                   // interrupt acknowledge (6 ticks)
)

// where the address for a memory or io step comes from
type addrSource uint8

const (
	srcPC   addrSource = iota // program counter, incremented afterwards
	srcWZ                     // memptr
	srcHL                     // HL (never IX or IY)
	srcBC                     // BC
	srcDE                     // DE
	srcSP                     // stack pointer
	srcAddr                   // the address latch, set by a step function
)

// step is a single machine cycle. for read steps the function is called
// once the data has been latched. for write steps it is called before the
// address is put on the bus and must leave the value to write in the data
// latch. for internal steps it is called on the first tick.
type step struct {
	kind  stepKind
	src   addrSource
	ticks uint8
	fn    func(mc *CPU)
}

func (mc *CPU) source(src addrSource) uint16 {
	switch src {
	case srcPC:
		a := mc.PC
		mc.PC++
		return a
	case srcWZ:
		return mc.WZ
	case srcHL:
		return mc.HL()
	case srcBC:
		return mc.BC()
	case srcDE:
		return mc.DE()
	case srcSP:
		return mc.SP
	}
	return mc.addr
}

// push a step onto the end of the queue. steps that have been completed are
// discarded if the queue is full.
func (mc *CPU) push(s step) {
	if mc.qlen == len(mc.queue) {
		mc.qlen = copy(mc.queue[:], mc.queue[mc.qpos:mc.qlen])
		mc.qpos = 0
	}
	mc.queue[mc.qlen] = s
	mc.qlen++
}

func (mc *CPU) read(src addrSource, fn func(mc *CPU)) {
	mc.push(step{kind: stepRead, src: src, fn: fn})
}

func (mc *CPU) write(src addrSource, fn func(mc *CPU)) {
	mc.push(step{kind: stepWrite, src: src, fn: fn})
}

func (mc *CPU) ioRead(src addrSource, fn func(mc *CPU)) {
	mc.push(step{kind: stepIORead, src: src, fn: fn})
}

func (mc *CPU) ioWrite(src addrSource, fn func(mc *CPU)) {
	mc.push(step{kind: stepIOWrite, src: src, fn: fn})
}

func (mc *CPU) internal(ticks uint8, fn func(mc *CPU)) {
	mc.push(step{kind: stepInternal, ticks: ticks, fn: fn})
}

func (mc *CPU) fetch() {
	mc.push(step{kind: stepFetch})
}

// step functions shared by many instructions

// the data latch is left untouched. the value will be used by a later step
func latch(mc *CPU) {}

func loadZ(mc *CPU) {
	mc.WZ = (mc.WZ & 0xff00) | uint16(mc.dlatch)
}

func loadW(mc *CPU) {
	mc.WZ = (mc.WZ & 0x00ff) | uint16(mc.dlatch)<<8
}

func loadTmpIncWZ(mc *CPU) {
	mc.tmp = mc.dlatch
	mc.WZ++
}

func jumpTmp(mc *CPU) {
	mc.PC = uint16(mc.dlatch)<<8 | uint16(mc.tmp)
	mc.WZ = mc.PC
}

func jumpWZ(mc *CPU) {
	loadW(mc)
	mc.PC = mc.WZ
}

func pushPCH(mc *CPU) {
	mc.SP--
	mc.addr = mc.SP
	mc.dlatch = uint8(mc.PC >> 8)
}

func pushPCL(mc *CPU) {
	mc.SP--
	mc.addr = mc.SP
	mc.dlatch = uint8(mc.PC)
}

// push low byte of PC and jump to the address in WZ
func pushPCLJump(mc *CPU) {
	pushPCL(mc)
	mc.PC = mc.WZ
}

func pushPCLRst(mc *CPU) {
	pushPCL(mc)
	mc.PC = uint16(mc.opcode & 0x38)
	mc.WZ = mc.PC
}

func pushPCLNMI(mc *CPU) {
	pushPCL(mc)
	mc.PC = 0x0066
	mc.WZ = mc.PC
}

func pushPCLIM1(mc *CPU) {
	pushPCL(mc)
	mc.PC = 0x0038
	mc.WZ = mc.PC
}

func popZ(mc *CPU) {
	loadZ(mc)
	mc.SP++
}

func popWRet(mc *CPU) {
	loadW(mc)
	mc.SP++
	mc.PC = mc.WZ
}

func popWRetI(mc *CPU) {
	popWRet(mc)
	mc.IFF1 = mc.IFF2
	mc.reti = true
}
