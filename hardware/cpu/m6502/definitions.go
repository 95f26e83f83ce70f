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
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopherchips/curated"
)

// AddressingMode describes the method data for the instruction should be received.
type AddressingMode int

// List of supported addressing modes.
const (
	Implied AddressingMode = iota
	Immediate
	Relative // relative addressing is used for branch instructions

	Absolute // abs
	ZeroPage // zpg
	Indirect // ind

	PreIndexedIndirect  // (ind,X)
	PostIndexedIndirect // (ind), Y

	AbsoluteIndexedX // abs,X
	AbsoluteIndexedY // abs,Y

	IndexedZeroPageX // zpg,X
	IndexedZeroPageY // zpg,Y
)

// EffectCategory categorises an instruction by the effect it has.
type EffectCategory int

// List of effect categories.
const (
	Read EffectCategory = iota
	Write
	RMW

	// flow consists of the Branch and JMP instructions. Branch instructions
	// specifically can be distinguished by the AddressingMode
	Flow

	Subroutine
	Interrupt
)

// Definition defines each instruction in the instruction set; one per instruction.
type Definition struct {
	OpCode         uint8
	Mnemonic       string
	Bytes          int
	Cycles         int
	AddressingMode AddressingMode
	PageSensitive  bool
	Effect         EffectCategory
	Undocumented   bool
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undecoded instruction"
	}
	return fmt.Sprintf("%02x %s +%dbytes (%d cycles) [mode=%d pagesens=%t effect=%d]", defn.OpCode, defn.Mnemonic, defn.Bytes, defn.Cycles, defn.AddressingMode, defn.PageSensitive, defn.Effect)
}

// IsBranch returns true if instruction is a branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.AddressingMode == Relative && defn.Effect == Flow
}

// Pattern of the error returned by parseDefinitions().
const DefinitionError = "m6502: definitions: %v [line %d]"

//go:embed instructions.csv
var definitionsCSV string

// Definitions is the table of instruction definitions for the NMOS 6502,
// indexed by opcode. Every opcode is defined, including the undocumented
// instructions.
var Definitions [256]Definition

func init() {
	defs, err := parseDefinitions(strings.NewReader(definitionsCSV))
	if err != nil {
		panic(err)
	}
	Definitions = defs
	prepareInstructions()
}

func parseDefinitions(r io.Reader) ([256]Definition, error) {
	var deftable [256]Definition
	var found [256]bool

	csvr := csv.NewReader(r)
	csvr.Comment = rune('#')
	csvr.TrimLeadingSpace = true
	csvr.ReuseRecord = true

	// instruction file can have a variable number of fields per definition.
	// instruction effect field is optional (defaulting to READ)
	csvr.FieldsPerRecord = -1

	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return deftable, curated.Errorf(DefinitionError, err, 0)
		}
		line, _ := csvr.FieldPos(0)

		if !(len(rec) == 5 || len(rec) == 6) {
			return deftable, curated.Errorf(DefinitionError, fmt.Sprintf("wrong number of fields (%s)", rec), line)
		}

		newDef := Definition{}

		// trim trailing comment from record. the comment is used to mark
		// undocumented instructions
		last := strings.SplitN(rec[len(rec)-1], "#", 2)
		rec[len(rec)-1] = last[0]
		if len(last) > 1 {
			newDef.Undocumented = strings.TrimSpace(last[1]) == "undocumented"
		}

		for i := 0; i < len(rec); i++ {
			rec[i] = strings.TrimSpace(rec[i])
		}

		// field: parse opcode
		opcode := strings.TrimPrefix(strings.ToLower(rec[0]), "0x")
		n, err := strconv.ParseUint(opcode, 16, 8)
		if err != nil {
			return deftable, curated.Errorf(DefinitionError, fmt.Sprintf("invalid opcode (%s)", rec[0]), line)
		}
		newDef.OpCode = uint8(n)

		// field: opcode mnemonic
		newDef.Mnemonic = rec[1]

		// field: cycle count
		newDef.Cycles, err = strconv.Atoi(rec[2])
		if err != nil {
			return deftable, curated.Errorf(DefinitionError, fmt.Sprintf("invalid cycle count for %#02x (%s)", newDef.OpCode, rec[2]), line)
		}

		// field: addressing mode
		//
		// the addressing mode also defines how many bytes an opcode
		// requires
		switch strings.ToUpper(rec[3]) {
		default:
			return deftable, curated.Errorf(DefinitionError, fmt.Sprintf("invalid addressing mode for %#02x (%s)", newDef.OpCode, rec[3]), line)
		case "IMPLIED":
			newDef.AddressingMode = Implied
			newDef.Bytes = 1
		case "IMMEDIATE":
			newDef.AddressingMode = Immediate
			newDef.Bytes = 2
		case "RELATIVE":
			newDef.AddressingMode = Relative
			newDef.Bytes = 2
		case "ABSOLUTE":
			newDef.AddressingMode = Absolute
			newDef.Bytes = 3
		case "ZERO_PAGE":
			newDef.AddressingMode = ZeroPage
			newDef.Bytes = 2
		case "INDIRECT":
			newDef.AddressingMode = Indirect
			newDef.Bytes = 3
		case "PRE_INDEX_INDIRECT":
			newDef.AddressingMode = PreIndexedIndirect
			newDef.Bytes = 2
		case "POST_INDEX_INDIRECT":
			newDef.AddressingMode = PostIndexedIndirect
			newDef.Bytes = 2
		case "ABSOLUTE_INDEXED_X":
			newDef.AddressingMode = AbsoluteIndexedX
			newDef.Bytes = 3
		case "ABSOLUTE_INDEXED_Y":
			newDef.AddressingMode = AbsoluteIndexedY
			newDef.Bytes = 3
		case "INDEXED_ZERO_PAGE_X":
			newDef.AddressingMode = IndexedZeroPageX
			newDef.Bytes = 2
		case "INDEXED_ZERO_PAGE_Y":
			newDef.AddressingMode = IndexedZeroPageY
			newDef.Bytes = 2
		}

		// field: page sensitive
		switch strings.ToUpper(rec[4]) {
		default:
			return deftable, curated.Errorf(DefinitionError, fmt.Sprintf("invalid page sensitivity switch for %#02x (%s)", newDef.OpCode, rec[4]), line)
		case "TRUE":
			newDef.PageSensitive = true
		case "FALSE":
			newDef.PageSensitive = false
		}

		// field: effect category
		if len(rec) == 5 {
			newDef.Effect = Read
		} else {
			switch rec[5] {
			default:
				return deftable, curated.Errorf(DefinitionError, fmt.Sprintf("unknown category for %#02x (%s)", newDef.OpCode, rec[5]), line)
			case "READ":
				newDef.Effect = Read
			case "WRITE":
				newDef.Effect = Write
			case "RMW":
				newDef.Effect = RMW
			case "FLOW":
				newDef.Effect = Flow
			case "SUB-ROUTINE":
				newDef.Effect = Subroutine
			case "INTERRUPT":
				newDef.Effect = Interrupt
			}
		}

		if found[newDef.OpCode] {
			return deftable, curated.Errorf(DefinitionError, fmt.Sprintf("duplicate opcode %#02x", newDef.OpCode), line)
		}
		found[newDef.OpCode] = true
		deftable[newDef.OpCode] = newDef
	}

	for i := range found {
		if !found[i] {
			return deftable, curated.Errorf(DefinitionError, fmt.Sprintf("missing opcode %#02x", i), 0)
		}
	}

	return deftable, nil
}

// Disassemble the instruction at addr using the read function to access
// memory. Returns the definition and the instruction formatted in the
// conventional assembler notation.
func Disassemble(read func(addr uint16) uint8, addr uint16) (Definition, string) {
	defn := Definitions[read(addr)]

	var operand uint16
	switch defn.Bytes {
	case 2:
		operand = uint16(read(addr + 1))
	case 3:
		operand = uint16(read(addr+1)) | uint16(read(addr+2))<<8
	}

	var s string
	switch defn.AddressingMode {
	case Implied:
		s = defn.Mnemonic
	case Immediate:
		s = fmt.Sprintf("%s #$%02x", defn.Mnemonic, operand)
	case Relative:
		s = fmt.Sprintf("%s $%04x", defn.Mnemonic, addr+2+uint16(int8(operand)))
	case Absolute:
		s = fmt.Sprintf("%s $%04x", defn.Mnemonic, operand)
	case ZeroPage:
		s = fmt.Sprintf("%s $%02x", defn.Mnemonic, operand)
	case Indirect:
		s = fmt.Sprintf("%s ($%04x)", defn.Mnemonic, operand)
	case PreIndexedIndirect:
		s = fmt.Sprintf("%s ($%02x,X)", defn.Mnemonic, operand)
	case PostIndexedIndirect:
		s = fmt.Sprintf("%s ($%02x),Y", defn.Mnemonic, operand)
	case AbsoluteIndexedX:
		s = fmt.Sprintf("%s $%04x,X", defn.Mnemonic, operand)
	case AbsoluteIndexedY:
		s = fmt.Sprintf("%s $%04x,Y", defn.Mnemonic, operand)
	case IndexedZeroPageX:
		s = fmt.Sprintf("%s $%02x,X", defn.Mnemonic, operand)
	case IndexedZeroPageY:
		s = fmt.Sprintf("%s $%02x,Y", defn.Mnemonic, operand)
	}

	return defn, s
}
