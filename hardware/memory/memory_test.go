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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/memory"
	"github.com/jetsetilly/gopherchips/hardware/pins"
	"github.com/jetsetilly/gopherchips/test"
)

func TestUnmapped(t *testing.T) {
	mem := memory.NewMemory(memory.Z80Bus)
	test.Equate(t, mem.Read(0x0000), 0xff)
	test.Equate(t, mem.Read(0xffff), 0xff)

	// writes to unmapped memory are ignored
	mem.Write(0x1234, 0x00)
	test.Equate(t, mem.Read(0x1234), 0xff)

	test.ExpectFailure(t, mem.Poke(0x1234, 0x00))
}

func TestRAMAndROM(t *testing.T) {
	mem := memory.NewMemory(memory.Z80Bus)

	ram := make([]uint8, 0x10000)
	rom := make([]uint8, 0x2000)
	rom[0x0000] = 0xc3
	rom[0x1fff] = 0x76

	test.DemandSuccess(t, mem.MapRAM(1, 0x0000, 0x10000, ram))
	test.DemandSuccess(t, mem.MapROM(0, 0x0000, 0x2000, rom))

	test.Equate(t, mem.Read(0x0000), 0xc3)
	test.Equate(t, mem.Read(0x1fff), 0x76)

	// ROM is not writable. the write does not fall through to the RAM
	// underneath
	mem.Write(0x0000, 0x00)
	test.Equate(t, mem.Read(0x0000), 0xc3)
	test.Equate(t, ram[0x0000], 0x00)

	// RAM above the ROM
	mem.Write(0x2000, 0x55)
	test.Equate(t, mem.Read(0x2000), 0x55)
	test.Equate(t, ram[0x2000], 0x55)

	// removing the ROM reveals the RAM
	mem.Unmap(0)
	test.Equate(t, mem.Read(0x0000), 0x00)
	mem.Write(0x0000, 0xaa)
	test.Equate(t, ram[0x0000], 0xaa)
}

func TestReadWriteBanks(t *testing.T) {
	mem := memory.NewMemory(memory.M6502Bus)

	read := make([]uint8, 0x0400)
	write := make([]uint8, 0x0400)
	read[0x10] = 0x11

	test.DemandSuccess(t, mem.MapRW(0, 0x8000, 0x0400, read, write))
	test.Equate(t, mem.Read(0x8010), 0x11)
	mem.Write(0x8010, 0x22)
	test.Equate(t, mem.Read(0x8010), 0x11)
	test.Equate(t, write[0x10], 0x22)

	// write only bank reads as unmapped
	test.DemandSuccess(t, mem.MapRW(0, 0x8400, 0x0400, nil, write))
	test.Equate(t, mem.Read(0x8410), 0xff)
	mem.Write(0x8411, 0x33)
	test.Equate(t, write[0x11], 0x33)
}

func TestMappingErrors(t *testing.T) {
	mem := memory.NewMemory(memory.Z80Bus)
	data := make([]uint8, 0x10000)

	err := mem.MapRAM(4, 0x0000, 0x0400, data)
	test.ExpectSuccess(t, curated.Is(err, memory.MappingError))

	err = mem.MapRAM(0, 0x0100, 0x0400, data)
	test.ExpectSuccess(t, curated.Is(err, memory.MappingError))

	err = mem.MapRAM(0, 0x0000, 0x0100, data)
	test.ExpectSuccess(t, curated.Is(err, memory.MappingError))

	err = mem.MapRAM(0, 0xfc00, 0x0800, data)
	test.ExpectSuccess(t, curated.Is(err, memory.MappingError))

	err = mem.MapROM(0, 0x0000, 0x0800, data[:0x0400])
	test.ExpectSuccess(t, curated.Is(err, memory.MappingError))
}

func TestPoke(t *testing.T) {
	mem := memory.NewMemory(memory.Z80Bus)
	rom := make([]uint8, 0x0400)
	test.DemandSuccess(t, mem.MapROM(0, 0x0000, 0x0400, rom))

	test.ExpectSuccess(t, mem.Poke(0x0010, 0x99))
	v, err := mem.Peek(0x0010)
	test.ExpectSuccess(t, err)
	test.Equate(t, v, 0x99)
}

func TestLoad(t *testing.T) {
	mem := memory.NewMemory(memory.Z80Bus)
	ram := make([]uint8, 0x0400)
	test.DemandSuccess(t, mem.MapRAM(0, 0x0000, 0x0400, ram))

	mem.Load(0x03fe, []uint8{0x01, 0x02, 0x03, 0x04})
	test.Equate(t, ram[0x03fe], 0x01)
	test.Equate(t, ram[0x03ff], 0x02)
	test.Equate(t, mem.Read(0x0400), 0xff)
}

func TestRespondZ80(t *testing.T) {
	mem := memory.NewMemory(memory.Z80Bus)
	ram := make([]uint8, 0x0400)
	ram[0x20] = 0x5a
	test.DemandSuccess(t, mem.MapRAM(0, 0x0000, 0x0400, ram))

	var p pins.Word

	p = p.SetAddress(0x0020).Set(z80.MREQ | z80.RD)
	p = mem.Respond(p)
	test.Equate(t, p.Data(), 0x5a)

	p = pins.Word(0).SetAddressData(0x0021, 0xa5).Set(z80.MREQ | z80.WR)
	mem.Respond(p)
	test.Equate(t, ram[0x21], 0xa5)

	// IO requests and refresh cycles are not for memory
	p = pins.Word(0).SetAddress(0x0020).Set(z80.IORQ | z80.RD)
	p = mem.Respond(p)
	test.Equate(t, p.Data(), 0x00)

	p = pins.Word(0).SetAddressData(0x0022, 0x77).Set(z80.MREQ | z80.RFSH)
	mem.Respond(p)
	test.Equate(t, ram[0x22], 0x00)
}

func TestRespond6502(t *testing.T) {
	mem := memory.NewMemory(memory.M6502Bus)
	ram := make([]uint8, 0x0400)
	ram[0x20] = 0x5a
	test.DemandSuccess(t, mem.MapRAM(0, 0x0000, 0x0400, ram))

	p := pins.Word(0).SetAddress(0x0020).Set(m6502.RW)
	p = mem.Respond(p)
	test.Equate(t, p.Data(), 0x5a)

	p = pins.Word(0).SetAddressData(0x0021, 0xa5)
	mem.Respond(p)
	test.Equate(t, ram[0x21], 0xa5)
}

func TestSummary(t *testing.T) {
	mem := memory.NewMemory(memory.Z80Bus)
	test.DemandSuccess(t, mem.MapROM(0, 0x0000, 0x4000, make([]uint8, 0x4000)))
	test.DemandSuccess(t, mem.MapRAM(1, 0x0000, 0x10000, make([]uint8, 0x10000)))

	test.Equate(t, mem.Summary(), "0000 -> 3fff\tROM (layer 0)\n4000 -> ffff\tRAM (layer 1)\n")

	mem.Unmap(1)
	test.Equate(t, mem.Summary(), "0000 -> 3fff\tROM (layer 0)\n4000 -> ffff\tunmapped\n")
}
