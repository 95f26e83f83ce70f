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
	"fmt"
	"strings"
)

// Prefix identifies the opcode table an instruction is decoded from.
type Prefix int

// List of opcode tables.
const (
	PrefixNone Prefix = iota
	PrefixCB
	PrefixED
	PrefixDD
	PrefixFD
	PrefixDDCB
	PrefixFDCB
	NumPrefixes
)

func (p Prefix) String() string {
	return [...]string{"", "CB", "ED", "DD", "FD", "DDCB", "FDCB"}[p]
}

// Definition describes one instruction. Operand placeholders in the
// mnemonic are lower case: n for an immediate byte, nn for an immediate word
// and d for a displacement.
type Definition struct {
	Prefix   Prefix
	OpCode   uint8
	Mnemonic string
	Bytes    int

	// number of ticks when the condition is false or, for block
	// instructions, when the instruction does not repeat
	Ticks int

	// number of ticks when the condition is true or the block instruction
	// repeats. the same as Ticks for unconditional instructions
	TicksTaken int

	Undocumented bool
}

// IsPrefix returns true if the definition is a prefix byte rather than an
// instruction.
func (defn Definition) IsPrefix() bool {
	return defn.Mnemonic == ""
}

// Conditional returns true if the instruction takes a variable number of
// ticks.
func (defn Definition) Conditional() bool {
	return defn.Ticks != defn.TicksTaken
}

func (defn Definition) String() string {
	if defn.IsPrefix() {
		return "prefix"
	}
	s := fmt.Sprintf("%s%02x %s +%dbytes (%d", defn.Prefix, defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Ticks)
	if defn.Conditional() {
		s = fmt.Sprintf("%s/%d", s, defn.TicksTaken)
	}
	return s + " ticks)"
}

// Definitions for every opcode of every table. Built once at startup.
var Definitions [NumPrefixes][256]Definition

var (
	regNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	rpNames  = [4]string{"BC", "DE", "HL", "SP"}
	rp2Names = [4]string{"BC", "DE", "HL", "AF"}
	ccNames  = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
	aluNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
	rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}
	rotA     = [8]string{"RLCA", "RRCA", "RLA", "RRA", "DAA", "CPL", "SCF", "CCF"}
	imNames  = [4]string{"0", "0", "1", "2"}
	blockOps = [4][4]string{
		{"LDI", "CPI", "INI", "OUTI"},
		{"LDD", "CPD", "IND", "OUTD"},
		{"LDIR", "CPIR", "INIR", "OTIR"},
		{"LDDR", "CPDR", "INDR", "OTDR"},
	}
)

func init() {
	for i := 0; i < 256; i++ {
		op := uint8(i)
		Definitions[PrefixNone][i] = mainDefinition(op, "HL")
		Definitions[PrefixDD][i] = indexDefinition(op, "IX")
		Definitions[PrefixFD][i] = indexDefinition(op, "IY")
		Definitions[PrefixCB][i] = cbDefinition(op)
		Definitions[PrefixED][i] = edDefinition(op)
		Definitions[PrefixDDCB][i] = indexCBDefinition(op, "IX")
		Definitions[PrefixFDCB][i] = indexCBDefinition(op, "IY")
		Definitions[PrefixNone][i].Prefix = PrefixNone
		Definitions[PrefixDD][i].Prefix = PrefixDD
		Definitions[PrefixFD][i].Prefix = PrefixFD
		Definitions[PrefixCB][i].Prefix = PrefixCB
		Definitions[PrefixED][i].Prefix = PrefixED
		Definitions[PrefixDDCB][i].Prefix = PrefixDDCB
		Definitions[PrefixFDCB][i].Prefix = PrefixFDCB
	}
}

func defn(op uint8, mnemonic string, bytes int, ticks int) Definition {
	return Definition{OpCode: op, Mnemonic: mnemonic, Bytes: bytes, Ticks: ticks, TicksTaken: ticks}
}

func cond(op uint8, mnemonic string, bytes int, ticks int, taken int) Definition {
	d := defn(op, mnemonic, bytes, ticks)
	d.TicksTaken = taken
	return d
}

// mainDefinition returns the definition of an unprefixed opcode. the ix
// argument is the name used for the HL register. it is also used to build
// the definitions for the DD and FD pages
func mainDefinition(op uint8, ix string) Definition {
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1
	q := y & 0x01

	reg := func(r uint8) string {
		if ix != "HL" {
			switch r {
			case 4:
				return ix + "H"
			case 5:
				return ix + "L"
			}
		}
		return regNames[r]
	}
	rp := func(p uint8) string {
		if p == 2 {
			return ix
		}
		return rpNames[p]
	}

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0:
				return defn(op, "NOP", 1, 4)
			case 1:
				return defn(op, "EX AF,AF'", 1, 4)
			case 2:
				return cond(op, "DJNZ d", 2, 8, 13)
			case 3:
				return defn(op, "JR d", 2, 12)
			}
			return cond(op, fmt.Sprintf("JR %s,d", ccNames[y-4]), 2, 7, 12)
		case 1:
			if q == 0 {
				return defn(op, fmt.Sprintf("LD %s,nn", rp(p)), 3, 10)
			}
			return defn(op, fmt.Sprintf("ADD %s,%s", ix, rp(p)), 1, 11)
		case 2:
			switch y {
			case 0:
				return defn(op, "LD (BC),A", 1, 7)
			case 1:
				return defn(op, "LD A,(BC)", 1, 7)
			case 2:
				return defn(op, "LD (DE),A", 1, 7)
			case 3:
				return defn(op, "LD A,(DE)", 1, 7)
			case 4:
				return defn(op, fmt.Sprintf("LD (nn),%s", ix), 3, 16)
			case 5:
				return defn(op, fmt.Sprintf("LD %s,(nn)", ix), 3, 16)
			case 6:
				return defn(op, "LD (nn),A", 3, 13)
			}
			return defn(op, "LD A,(nn)", 3, 13)
		case 3:
			if q == 0 {
				return defn(op, fmt.Sprintf("INC %s", rp(p)), 1, 6)
			}
			return defn(op, fmt.Sprintf("DEC %s", rp(p)), 1, 6)
		case 4:
			if y == 6 {
				return defn(op, "INC (HL)", 1, 11)
			}
			return defn(op, fmt.Sprintf("INC %s", reg(y)), 1, 4)
		case 5:
			if y == 6 {
				return defn(op, "DEC (HL)", 1, 11)
			}
			return defn(op, fmt.Sprintf("DEC %s", reg(y)), 1, 4)
		case 6:
			if y == 6 {
				return defn(op, "LD (HL),n", 2, 10)
			}
			return defn(op, fmt.Sprintf("LD %s,n", reg(y)), 2, 7)
		}
		return defn(op, rotA[y], 1, 4)

	case 1:
		if y == 6 && z == 6 {
			return defn(op, "HALT", 1, 4)
		}
		if y == 6 {
			return defn(op, fmt.Sprintf("LD (HL),%s", regNames[z]), 1, 7)
		}
		if z == 6 {
			return defn(op, fmt.Sprintf("LD %s,(HL)", regNames[y]), 1, 7)
		}
		return defn(op, fmt.Sprintf("LD %s,%s", reg(y), reg(z)), 1, 4)

	case 2:
		if z == 6 {
			return defn(op, aluNames[y]+"(HL)", 1, 7)
		}
		return defn(op, aluNames[y]+reg(z), 1, 4)
	}

	switch z {
	case 0:
		return cond(op, fmt.Sprintf("RET %s", ccNames[y]), 1, 5, 11)
	case 1:
		if q == 0 {
			r := rp2Names[p]
			if p == 2 {
				r = ix
			}
			return defn(op, fmt.Sprintf("POP %s", r), 1, 10)
		}
		switch p {
		case 0:
			return defn(op, "RET", 1, 10)
		case 1:
			return defn(op, "EXX", 1, 4)
		case 2:
			return defn(op, fmt.Sprintf("JP (%s)", ix), 1, 4)
		}
		return defn(op, fmt.Sprintf("LD SP,%s", ix), 1, 6)
	case 2:
		return defn(op, fmt.Sprintf("JP %s,nn", ccNames[y]), 3, 10)
	case 3:
		switch y {
		case 0:
			return defn(op, "JP nn", 3, 10)
		case 1:
			return Definition{OpCode: op}
		case 2:
			return defn(op, "OUT (n),A", 2, 11)
		case 3:
			return defn(op, "IN A,(n)", 2, 11)
		case 4:
			return defn(op, fmt.Sprintf("EX (SP),%s", ix), 1, 19)
		case 5:
			return defn(op, "EX DE,HL", 1, 4)
		case 6:
			return defn(op, "DI", 1, 4)
		}
		return defn(op, "EI", 1, 4)
	case 4:
		return cond(op, fmt.Sprintf("CALL %s,nn", ccNames[y]), 3, 10, 17)
	case 5:
		if q == 0 {
			r := rp2Names[p]
			if p == 2 {
				r = ix
			}
			return defn(op, fmt.Sprintf("PUSH %s", r), 1, 11)
		}
		if p == 0 {
			return defn(op, "CALL nn", 3, 17)
		}
		return Definition{OpCode: op}
	case 6:
		return defn(op, aluNames[y]+"n", 2, 7)
	}
	return defn(op, fmt.Sprintf("RST %02XH", y*8), 1, 11)
}

// indexDefinition returns the definition of an opcode following a DD or FD
// prefix. the prefix replaces HL with the index register and (HL) with
// (IX+d). opcodes that do not use HL are executed as normal but take four
// more ticks
func indexDefinition(op uint8, ix string) Definition {
	d := mainDefinition(op, ix)
	if d.IsPrefix() {
		if op == 0xcb {
			return d
		}
		// a second prefix. the first is discarded
		return defn(op, "", 1, 4)
	}

	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	mem := fmt.Sprintf("(%s+d)", ix)

	switch {
	case x == 0 && (z == 4 || z == 5) && y == 6:
		d.Mnemonic = strings.Replace(d.Mnemonic, "(HL)", mem, 1)
		d.Bytes = 3
		d.Ticks = 23
	case x == 0 && z == 6 && y == 6:
		d.Mnemonic = strings.Replace(d.Mnemonic, "(HL)", mem, 1)
		d.Bytes = 4
		d.Ticks = 19
	case (x == 1 && (y == 6) != (z == 6)) || (x == 2 && z == 6):
		d.Mnemonic = strings.Replace(d.Mnemonic, "(HL)", mem, 1)
		d.Bytes = 3
		d.Ticks = 19
	default:
		d.Bytes++
		d.Ticks += 4
		plain := mainDefinition(op, "HL")
		if plain.Mnemonic == d.Mnemonic {
			d.Undocumented = true
		} else if strings.Contains(d.Mnemonic, ix+"H") || strings.Contains(d.Mnemonic, ix+"L") {
			d.Undocumented = true
		}
	}

	d.TicksTaken += d.Ticks - mainDefinition(op, "HL").Ticks
	if !d.Conditional() {
		d.TicksTaken = d.Ticks
	}

	return d
}

func cbDefinition(op uint8) Definition {
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07

	var d Definition
	switch x {
	case 0:
		d = defn(op, fmt.Sprintf("%s %s", rotNames[y], regNames[z]), 2, 8)
		d.Undocumented = y == 6
	case 1:
		d = defn(op, fmt.Sprintf("BIT %d,%s", y, regNames[z]), 2, 8)
	case 2:
		d = defn(op, fmt.Sprintf("RES %d,%s", y, regNames[z]), 2, 8)
	case 3:
		d = defn(op, fmt.Sprintf("SET %d,%s", y, regNames[z]), 2, 8)
	}

	if z == 6 {
		if x == 1 {
			d.Ticks = 12
		} else {
			d.Ticks = 15
		}
		d.TicksTaken = d.Ticks
	}

	return d
}

func indexCBDefinition(op uint8, ix string) Definition {
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	mem := fmt.Sprintf("(%s+d)", ix)

	var d Definition
	switch x {
	case 0:
		d = defn(op, fmt.Sprintf("%s %s", rotNames[y], mem), 4, 23)
	case 1:
		d = defn(op, fmt.Sprintf("BIT %d,%s", y, mem), 4, 20)
	case 2:
		d = defn(op, fmt.Sprintf("RES %d,%s", y, mem), 4, 23)
	case 3:
		d = defn(op, fmt.Sprintf("SET %d,%s", y, mem), 4, 23)
	}

	if z != 6 {
		d.Undocumented = true
		if x != 1 {
			d.Mnemonic = fmt.Sprintf("%s,%s", d.Mnemonic, regNames[z])
		}
	}
	if x == 0 && y == 6 {
		d.Undocumented = true
	}

	return d
}

func edDefinition(op uint8) Definition {
	x := op >> 6
	y := (op >> 3) & 0x07
	z := op & 0x07
	p := y >> 1
	q := y & 0x01

	if x == 2 && y >= 4 && z <= 3 {
		return cond(op, blockOps[y-4][z], 2, 16, 16+5*int(y>>1&0x01))
	}

	if x != 1 {
		d := defn(op, "NOP", 2, 8)
		d.Undocumented = true
		return d
	}

	var d Definition
	switch z {
	case 0:
		if y == 6 {
			d = defn(op, "IN F,(C)", 2, 12)
			d.Undocumented = true
		} else {
			d = defn(op, fmt.Sprintf("IN %s,(C)", regNames[y]), 2, 12)
		}
	case 1:
		if y == 6 {
			d = defn(op, "OUT (C),0", 2, 12)
			d.Undocumented = true
		} else {
			d = defn(op, fmt.Sprintf("OUT (C),%s", regNames[y]), 2, 12)
		}
	case 2:
		if q == 0 {
			d = defn(op, fmt.Sprintf("SBC HL,%s", rpNames[p]), 2, 15)
		} else {
			d = defn(op, fmt.Sprintf("ADC HL,%s", rpNames[p]), 2, 15)
		}
	case 3:
		if q == 0 {
			d = defn(op, fmt.Sprintf("LD (nn),%s", rpNames[p]), 4, 20)
		} else {
			d = defn(op, fmt.Sprintf("LD %s,(nn)", rpNames[p]), 4, 20)
		}
	case 4:
		d = defn(op, "NEG", 2, 8)
		d.Undocumented = y != 0
	case 5:
		if y == 1 {
			d = defn(op, "RETI", 2, 14)
		} else {
			d = defn(op, "RETN", 2, 14)
			d.Undocumented = y != 0
		}
	case 6:
		d = defn(op, fmt.Sprintf("IM %s", imNames[y&0x03]), 2, 8)
		d.Undocumented = y&0x03 == 1 || y >= 4
	case 7:
		switch y {
		case 0:
			d = defn(op, "LD I,A", 2, 9)
		case 1:
			d = defn(op, "LD R,A", 2, 9)
		case 2:
			d = defn(op, "LD A,I", 2, 9)
		case 3:
			d = defn(op, "LD A,R", 2, 9)
		case 4:
			d = defn(op, "RRD", 2, 18)
		case 5:
			d = defn(op, "RLD", 2, 18)
		default:
			d = defn(op, "NOP", 2, 8)
			d.Undocumented = true
		}
	}
	return d
}

// Lookup returns the definition of the instruction starting at the address.
func Lookup(read func(addr uint16) uint8, addr uint16) Definition {
	prefix := PrefixNone
	offset := uint16(0)

	switch read(addr) {
	case 0xcb:
		prefix = PrefixCB
		offset = 1
	case 0xed:
		prefix = PrefixED
		offset = 1
	case 0xdd:
		prefix = PrefixDD
		offset = 1
	case 0xfd:
		prefix = PrefixFD
		offset = 1
	}

	if (prefix == PrefixDD || prefix == PrefixFD) && read(addr+1) == 0xcb {
		if prefix == PrefixDD {
			prefix = PrefixDDCB
		} else {
			prefix = PrefixFDCB
		}
		// the opcode follows the displacement
		offset = 3
	}

	return Definitions[prefix][read(addr+offset)]
}

// Disassemble returns the instruction at the address with the operand
// placeholders replaced by the actual operands.
func Disassemble(read func(addr uint16) uint8, addr uint16) (Definition, string) {
	d := Lookup(read, addr)
	if d.IsPrefix() {
		return d, fmt.Sprintf("DB $%02x", read(addr))
	}

	// position of the first operand byte
	operand := addr + 1
	if d.Prefix != PrefixNone {
		operand++
	}

	s := d.Mnemonic

	if strings.Contains(s, "+d") {
		s = strings.Replace(s, "+d", fmt.Sprintf("%+d", int8(read(operand))), 1)
		operand++
	} else if strings.HasSuffix(s, "d") {
		// relative jumps are shown with the destination address
		dest := addr + uint16(d.Bytes) + uint16(int8(read(operand)))
		s = s[:len(s)-1] + fmt.Sprintf("$%04x", dest)
	}

	if strings.Contains(s, "nn") {
		v := uint16(read(operand)) | uint16(read(operand+1))<<8
		s = strings.Replace(s, "nn", fmt.Sprintf("$%04x", v), 1)
	} else if i := strings.LastIndex(s, "n"); i >= 0 && (i == len(s)-1 || s[i+1] == ')') {
		s = s[:i] + fmt.Sprintf("$%02x", read(operand)) + s[i+1:]
	}

	return d, s
}
