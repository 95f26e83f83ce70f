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

import "fmt"

// operation describes what an instruction does with its operand. The
// addressing mode and the effect category of the instruction decide which of
// the functions is used and when.
type operation struct {
	read    func(mc *CPU, v uint8)
	write   func(mc *CPU) uint8
	modify  func(mc *CPU, v uint8) uint8
	implied func(mc *CPU)
	branch  func(mc *CPU) bool
}

// the bus cycle sequences that are not described by the addressing mode alone
type sequence int

const (
	seqAddressed sequence = iota
	seqBranch
	seqBRK
	seqRTI
	seqRTS
	seqJSR
	seqJMP
	seqJMPIndirect
	seqPush
	seqPull
	seqJAM
)

type instruction struct {
	defn Definition
	seq  sequence
	op   operation

	// the high byte of the address is replaced by the value written when the
	// indexed address crosses a page
	unstable bool
}

var instructions [256]instruction

func prepareInstructions() {
	for i, defn := range Definitions {
		ins := instruction{defn: defn}

		op, ok := operations[defn.Mnemonic]
		if !ok {
			panic(fmt.Sprintf("m6502: no operation for %s", defn.Mnemonic))
		}
		ins.op = op

		switch defn.Mnemonic {
		case "BRK":
			ins.seq = seqBRK
		case "RTI":
			ins.seq = seqRTI
		case "RTS":
			ins.seq = seqRTS
		case "JSR":
			ins.seq = seqJSR
		case "JMP":
			if defn.AddressingMode == Indirect {
				ins.seq = seqJMPIndirect
			} else {
				ins.seq = seqJMP
			}
		case "PHA", "PHP":
			ins.seq = seqPush
		case "PLA", "PLP":
			ins.seq = seqPull
		case "JAM":
			ins.seq = seqJAM
		case "SHA", "SHX", "SHY", "TAS":
			ins.unstable = true
		}

		if defn.IsBranch() {
			ins.seq = seqBranch
		}

		instructions[i] = ins
	}
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// the value written by the unstable store instructions is masked by the high
// byte of the base address plus one
func (mc *CPU) unstableMask() uint8 {
	return mc.base + 1
}

func adc(mc *CPU, v uint8) {
	a := mc.A
	c := b2u(mc.P.Carry)

	if mc.P.DecimalMode {
		al := (a & 0x0f) + (v & 0x0f) + c
		if al > 0x09 {
			al += 0x06
		}
		ah := (a >> 4) + (v >> 4) + b2u(al > 0x0f)

		// zero is computed from the binary result. sign and overflow are
		// computed before the high nibble is adjusted
		mc.P.Zero = a+v+c == 0
		mc.P.Sign = !mc.P.Zero && ah&0x08 == 0x08
		mc.P.Overflow = ^(a^v)&(a^(ah<<4))&0x80 == 0x80

		if ah > 0x09 {
			ah += 0x06
		}
		mc.P.Carry = ah > 0x0f
		mc.A = ah<<4 | al&0x0f
		return
	}

	sum := uint16(a) + uint16(v) + uint16(c)
	mc.P.Overflow = ^(a^v)&(a^uint8(sum))&0x80 == 0x80
	mc.P.Carry = sum > 0xff
	mc.A = uint8(sum)
	mc.P.nz(mc.A)
}

func sbc(mc *CPU, v uint8) {
	a := mc.A
	c := b2u(!mc.P.Carry)
	diff := uint16(a) - uint16(v) - uint16(c)

	if mc.P.DecimalMode {
		al := (a & 0x0f) - (v & 0x0f) - c
		if int8(al) < 0 {
			al -= 0x06
		}
		ah := (a >> 4) - (v >> 4) - b2u(int8(al) < 0)

		// flags are the same as the binary subtraction
		mc.P.Zero = uint8(diff) == 0
		mc.P.Sign = diff&0x80 == 0x80
		mc.P.Overflow = (a^v)&(a^uint8(diff))&0x80 == 0x80
		mc.P.Carry = diff&0xff00 == 0

		if ah&0x80 == 0x80 {
			ah -= 0x06
		}
		mc.A = ah<<4 | al&0x0f
		return
	}

	mc.P.Overflow = (a^v)&(a^uint8(diff))&0x80 == 0x80
	mc.P.Carry = diff&0xff00 == 0
	mc.A = uint8(diff)
	mc.P.nz(mc.A)
}

func compare(mc *CPU, r uint8, v uint8) {
	t := uint16(r) - uint16(v)
	mc.P.nz(uint8(t))
	mc.P.Carry = t&0xff00 == 0
}

func asl(mc *CPU, v uint8) uint8 {
	mc.P.Carry = v&0x80 == 0x80
	v <<= 1
	mc.P.nz(v)
	return v
}

func lsr(mc *CPU, v uint8) uint8 {
	mc.P.Carry = v&0x01 == 0x01
	v >>= 1
	mc.P.nz(v)
	return v
}

func rol(mc *CPU, v uint8) uint8 {
	c := b2u(mc.P.Carry)
	mc.P.Carry = v&0x80 == 0x80
	v = v<<1 | c
	mc.P.nz(v)
	return v
}

func ror(mc *CPU, v uint8) uint8 {
	c := b2u(mc.P.Carry)
	mc.P.Carry = v&0x01 == 0x01
	v = v>>1 | c<<7
	mc.P.nz(v)
	return v
}

// and with the operand followed by a rotate right of the accumulator. the
// flags behave unusually, especially in decimal mode
func arr(mc *CPU, v uint8) {
	a := mc.A & v
	c := b2u(mc.P.Carry)
	mc.A = a>>1 | c<<7
	mc.P.nz(mc.A)

	if mc.P.DecimalMode {
		mc.P.Overflow = (a^mc.A)&0x40 == 0x40
		if (a&0x0f)+(a&0x01) > 0x05 {
			mc.A = mc.A&0xf0 | (mc.A+0x06)&0x0f
		}
		mc.P.Carry = uint16(a&0xf0)+uint16(a&0x10) > 0x50
		if mc.P.Carry {
			mc.A += 0x60
		}
		return
	}

	mc.P.Carry = mc.A&0x40 == 0x40
	mc.P.Overflow = (mc.A&0x40)>>6^(mc.A&0x20)>>5 == 0x01
}

func transfer(mc *CPU, v uint8) uint8 {
	mc.P.nz(v)
	return v
}

func noop(_ *CPU)               {}
func noopRead(_ *CPU, _ uint8) {}

// operations by mnemonic
var operations = map[string]operation{
	// loads and stores
	"LDA": {read: func(mc *CPU, v uint8) { mc.A = transfer(mc, v) }},
	"LDX": {read: func(mc *CPU, v uint8) { mc.X = transfer(mc, v) }},
	"LDY": {read: func(mc *CPU, v uint8) { mc.Y = transfer(mc, v) }},
	"STA": {write: func(mc *CPU) uint8 { return mc.A }},
	"STX": {write: func(mc *CPU) uint8 { return mc.X }},
	"STY": {write: func(mc *CPU) uint8 { return mc.Y }},

	// transfers
	"TAX": {implied: func(mc *CPU) { mc.X = transfer(mc, mc.A) }},
	"TAY": {implied: func(mc *CPU) { mc.Y = transfer(mc, mc.A) }},
	"TXA": {implied: func(mc *CPU) { mc.A = transfer(mc, mc.X) }},
	"TYA": {implied: func(mc *CPU) { mc.A = transfer(mc, mc.Y) }},
	"TSX": {implied: func(mc *CPU) { mc.X = transfer(mc, mc.S) }},
	"TXS": {implied: func(mc *CPU) { mc.S = mc.X }},

	// flags
	"CLC": {implied: func(mc *CPU) { mc.P.Carry = false }},
	"SEC": {implied: func(mc *CPU) { mc.P.Carry = true }},
	"CLI": {implied: func(mc *CPU) { mc.P.InterruptDisable = false }},
	"SEI": {implied: func(mc *CPU) { mc.P.InterruptDisable = true }},
	"CLD": {implied: func(mc *CPU) { mc.P.DecimalMode = false }},
	"SED": {implied: func(mc *CPU) { mc.P.DecimalMode = true }},
	"CLV": {implied: func(mc *CPU) { mc.P.Overflow = false }},

	// increment and decrement
	"INX": {implied: func(mc *CPU) { mc.X = transfer(mc, mc.X+1) }},
	"INY": {implied: func(mc *CPU) { mc.Y = transfer(mc, mc.Y+1) }},
	"DEX": {implied: func(mc *CPU) { mc.X = transfer(mc, mc.X-1) }},
	"DEY": {implied: func(mc *CPU) { mc.Y = transfer(mc, mc.Y-1) }},
	"INC": {modify: func(mc *CPU, v uint8) uint8 { return transfer(mc, v+1) }},
	"DEC": {modify: func(mc *CPU, v uint8) uint8 { return transfer(mc, v-1) }},

	// arithmetic and logic
	"ADC": {read: adc},
	"SBC": {read: sbc},
	"AND": {read: func(mc *CPU, v uint8) { mc.A = transfer(mc, mc.A&v) }},
	"ORA": {read: func(mc *CPU, v uint8) { mc.A = transfer(mc, mc.A|v) }},
	"EOR": {read: func(mc *CPU, v uint8) { mc.A = transfer(mc, mc.A^v) }},
	"CMP": {read: func(mc *CPU, v uint8) { compare(mc, mc.A, v) }},
	"CPX": {read: func(mc *CPU, v uint8) { compare(mc, mc.X, v) }},
	"CPY": {read: func(mc *CPU, v uint8) { compare(mc, mc.Y, v) }},
	"BIT": {read: func(mc *CPU, v uint8) {
		mc.P.Zero = mc.A&v == 0
		mc.P.Sign = v&0x80 == 0x80
		mc.P.Overflow = v&0x40 == 0x40
	}},

	// shifts and rotates. the implied mode operates on the accumulator
	"ASL": {modify: asl},
	"LSR": {modify: lsr},
	"ROL": {modify: rol},
	"ROR": {modify: ror},

	// stack
	"PHA": {write: func(mc *CPU) uint8 { return mc.A }},
	"PHP": {write: func(mc *CPU) uint8 { return mc.P.Value() | 0x10 }},
	"PLA": {read: func(mc *CPU, v uint8) { mc.A = transfer(mc, v) }},
	"PLP": {read: func(mc *CPU, v uint8) {
		mc.P.FromValue(v)
		mc.P.Break = true
	}},

	// branches
	"BPL": {branch: func(mc *CPU) bool { return !mc.P.Sign }},
	"BMI": {branch: func(mc *CPU) bool { return mc.P.Sign }},
	"BVC": {branch: func(mc *CPU) bool { return !mc.P.Overflow }},
	"BVS": {branch: func(mc *CPU) bool { return mc.P.Overflow }},
	"BCC": {branch: func(mc *CPU) bool { return !mc.P.Carry }},
	"BCS": {branch: func(mc *CPU) bool { return mc.P.Carry }},
	"BNE": {branch: func(mc *CPU) bool { return !mc.P.Zero }},
	"BEQ": {branch: func(mc *CPU) bool { return mc.P.Zero }},

	// flow control. bus cycles for these are handled by their own sequence
	"JMP": {},
	"JSR": {},
	"RTS": {},
	"RTI": {},
	"BRK": {},
	"JAM": {},
	"NOP": {read: noopRead, implied: noop},

	// undocumented combined operations
	"SLO": {modify: func(mc *CPU, v uint8) uint8 {
		v = asl(mc, v)
		mc.A = transfer(mc, mc.A|v)
		return v
	}},
	"RLA": {modify: func(mc *CPU, v uint8) uint8 {
		v = rol(mc, v)
		mc.A = transfer(mc, mc.A&v)
		return v
	}},
	"SRE": {modify: func(mc *CPU, v uint8) uint8 {
		v = lsr(mc, v)
		mc.A = transfer(mc, mc.A^v)
		return v
	}},
	"RRA": {modify: func(mc *CPU, v uint8) uint8 {
		v = ror(mc, v)
		adc(mc, v)
		return v
	}},
	"DCP": {modify: func(mc *CPU, v uint8) uint8 {
		v--
		compare(mc, mc.A, v)
		return v
	}},
	"ISC": {modify: func(mc *CPU, v uint8) uint8 {
		v++
		sbc(mc, v)
		return v
	}},
	"SAX": {write: func(mc *CPU) uint8 { return mc.A & mc.X }},
	"LAX": {read: func(mc *CPU, v uint8) {
		mc.A = v
		mc.X = transfer(mc, v)
	}},

	// undocumented immediate operations
	"ANC": {read: func(mc *CPU, v uint8) {
		mc.A = transfer(mc, mc.A&v)
		mc.P.Carry = mc.A&0x80 == 0x80
	}},
	"ALR": {read: func(mc *CPU, v uint8) { mc.A = lsr(mc, mc.A&v) }},
	"ARR": {read: arr},
	"SBX": {read: func(mc *CPU, v uint8) {
		t := uint16(mc.A&mc.X) - uint16(v)
		mc.X = transfer(mc, uint8(t))
		mc.P.Carry = t&0xff00 == 0
	}},
	"ANE": {read: func(mc *CPU, v uint8) { mc.A = transfer(mc, (mc.A|0xee)&mc.X&v) }},
	"LXA": {read: func(mc *CPU, v uint8) {
		mc.A = (mc.A | 0xee) & v
		mc.X = transfer(mc, mc.A)
	}},
	"LAS": {read: func(mc *CPU, v uint8) {
		mc.S &= v
		mc.A = mc.S
		mc.X = transfer(mc, mc.S)
	}},

	// undocumented unstable stores
	"SHA": {write: func(mc *CPU) uint8 { return mc.A & mc.X & mc.unstableMask() }},
	"SHX": {write: func(mc *CPU) uint8 { return mc.X & mc.unstableMask() }},
	"SHY": {write: func(mc *CPU) uint8 { return mc.Y & mc.unstableMask() }},
	"TAS": {write: func(mc *CPU) uint8 {
		mc.S = mc.A & mc.X
		return mc.S & mc.unstableMask()
	}},
}
