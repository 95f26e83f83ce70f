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
	"sort"
)

// Program is a short test program for the oracle.
type Program struct {
	Name string

	Origin uint16
	Code   []uint8

	// Data is loaded before the program starts
	Data map[uint16]uint8

	// the number of instructions to run
	Instructions int
}

// Programs are the built-in programs. They exercise the addressing modes,
// including the extra tick taken when indexing crosses a page, and branches
// that are taken and not taken.
var Programs = map[string]Program{
	"load": {
		Name:   "load",
		Origin: 0x0200,
		Code: []uint8{
			0xa9, 0x00, // LDA #$00
			0xa9, 0x80, // LDA #$80
			0xa5, 0x10, // LDA $10
			0xad, 0x00, 0x10, // LDA $1000
			0xa2, 0x0f, // LDX #$0F
			0xb5, 0x10, // LDA $10,X
			0xbd, 0xf1, 0x0f, // LDA $0FF1,X
			0xa0, 0xf0, // LDY #$F0
			0xb9, 0x10, 0x0f, // LDA $0F10,Y
			0xa1, 0xf0, // LDA ($F0,X)
			0xb1, 0x20, // LDA ($20),Y
			0xea, // NOP
		},
		Data: map[uint16]uint8{
			0x0000: 0x12,
			0x0010: 0x01,
			0x001f: 0xaa,
			0x0020: 0x21,
			0x0021: 0x43,
			0x00ff: 0x34,
			0x1000: 0x12,
			0x1234: 0x89,
			0x4411: 0xa8,
		},
		Instructions: 12,
	},
	"store": {
		Name:   "store",
		Origin: 0x0200,
		Code: []uint8{
			0xa9, 0x23, // LDA #$23
			0xa2, 0x10, // LDX #$10
			0xa0, 0xc0, // LDY #$C0
			0x85, 0x10, // STA $10
			0x8d, 0x34, 0x12, // STA $1234
			0x95, 0x10, // STA $10,X
			0x9d, 0x00, 0x20, // STA $2000,X
			0x99, 0x00, 0x20, // STA $2000,Y
			0x81, 0x10, // STA ($10,X)
			0x91, 0x20, // STA ($20),Y
			0x86, 0x30, // STX $30
			0x84, 0x31, // STY $31
			0xea, // NOP
		},
		Data: map[uint16]uint8{
			0x0020: 0x21,
			0x0021: 0x43,
		},
		Instructions: 13,
	},
	"branch": {
		Name:   "branch",
		Origin: 0x0200,
		Code: []uint8{
			0xa9, 0x10, // LDA #$10
			0xc9, 0x10, // CMP #$10
			0xf0, 0x02, // BEQ +2
			0xa9, 0x0f, // LDA #$0F
			0xc9, 0x0f, // CMP #$0F
			0xd0, 0xfa, // BNE -6
			0xa2, 0x03, // LDX #$03
			0xca,       // DEX
			0xd0, 0xfd, // BNE -3
			0xb0, 0xb0, // BCS $01C3
		},
		Data: map[uint16]uint8{
			0x01c3: 0xea, // NOP
		},
		Instructions: 17,
	},
	"arithmetic": {
		Name:   "arithmetic",
		Origin: 0x0200,
		Code: []uint8{
			0x18,       // CLC
			0xa9, 0x40, // LDA #$40
			0x69, 0x40, // ADC #$40
			0x38,       // SEC
			0xe9, 0x01, // SBC #$01
			0xe6, 0x10, // INC $10
			0xc6, 0x11, // DEC $11
			0x0a,       // ASL A
			0x6a,       // ROR A
			0x26, 0x10, // ROL $10
			0xc9, 0x7f, // CMP #$7F
			0x24, 0x12, // BIT $12
			0x49, 0xff, // EOR #$FF
			0xea, // NOP
		},
		Data: map[uint16]uint8{
			0x0012: 0xc0,
		},
		Instructions: 14,
	},
	"subroutine": {
		Name:   "subroutine",
		Origin: 0x0200,
		Code: []uint8{
			0x20, 0x06, 0x02, // JSR $0206
			0x4c, 0x03, 0x02, // JMP $0203
			0xa9, 0x55, // LDA #$55
			0x48,       // PHA
			0x08,       // PHP
			0xa9, 0x00, // LDA #$00
			0x28, // PLP
			0x68, // PLA
			0x60, // RTS
		},
		Instructions: 12,
	},
	"status": {
		Name:   "status",
		Origin: 0x0200,
		Code: []uint8{
			0x78,       // SEI
			0x58,       // CLI
			0xa9, 0x0c, // LDA #$0C
			0x48, // PHA
			0x28, // PLP
			0x08, // PHP
			0x68, // PLA
			0xd8, // CLD
			0x58, // CLI
			0x78, // SEI
			0x58, // CLI
			0xea, // NOP
		},
		Instructions: 12,
	},
}

// ProgramNames returns the names of the built-in programs in alphabetical
// order.
func ProgramNames() []string {
	n := make([]string, 0, len(Programs))
	for k := range Programs {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// LoadProgram loads the program and its data into both memories and starts
// the processors at the program's origin.
func (l *Lockstep) LoadProgram(p Program) error {
	for a, v := range p.Data {
		l.Write(a, v)
	}
	l.Load(p.Origin, p.Code)
	return l.Start(p.Origin)
}
