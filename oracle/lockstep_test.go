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

package oracle_test

import (
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware"
	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/netlist"
	"github.com/jetsetilly/gopherchips/oracle"
	"github.com/jetsetilly/gopherchips/test"
)

const dataDirEnv = "GOPHERCHIPS_NETLIST_DIR"

func loadDefinition(t *testing.T) *netlist.Definition {
	t.Helper()

	dir := os.Getenv(dataDirEnv)
	if dir == "" {
		t.Skipf("%s not set", dataDirEnv)
	}

	def, err := netlist.Load(dir)
	test.DemandSuccess(t, err)
	return def
}

// the built-in programs run on the engine alone. this doesn't need the
// netlist data
func TestProgramsOnEngine(t *testing.T) {
	results := map[string]func(m *hardware.Machine, mc *m6502.CPU){
		"load": func(m *hardware.Machine, mc *m6502.CPU) {
			test.Equate(t, mc.A, 0xa8)
			test.Equate(t, mc.Y, 0xf0)
		},
		"store": func(m *hardware.Machine, mc *m6502.CPU) {
			test.Equate(t, m.Mem.Read(0x0010), 0x23)
			test.Equate(t, m.Mem.Read(0x1234), 0x23)
			test.Equate(t, m.Mem.Read(0x20c0), 0x23)
			test.Equate(t, m.Mem.Read(0x0030), 0x10)
			test.Equate(t, m.Mem.Read(0x0031), 0xc0)
		},
		"branch": func(m *hardware.Machine, mc *m6502.CPU) {
			test.Equate(t, mc.PC, 0x01c4)
			test.Equate(t, mc.X, 0x00)
		},
		"arithmetic": func(m *hardware.Machine, mc *m6502.CPU) {
			test.Equate(t, mc.A, 0x80)
			test.Equate(t, m.Mem.Read(0x0010), 0x02)
			test.Equate(t, m.Mem.Read(0x0011), 0xff)
			test.ExpectSuccess(t, mc.P.Overflow)
			test.ExpectSuccess(t, mc.P.Sign)
		},
		"subroutine": func(m *hardware.Machine, mc *m6502.CPU) {
			test.Equate(t, mc.A, 0x55)
			test.Equate(t, mc.PC, 0x0203)
		},
		"status": func(m *hardware.Machine, mc *m6502.CPU) {
			test.Equate(t, mc.A, 0x3c)
			test.Equate(t, mc.PC, 0x020d)
			test.ExpectFailure(t, mc.P.InterruptDisable)
			test.ExpectFailure(t, mc.P.DecimalMode)
		},
	}

	for _, name := range oracle.ProgramNames() {
		t.Run(name, func(t *testing.T) {
			p := oracle.Programs[name]

			m, err := hardware.NewMachine(hardware.M6502, 0x10000)
			test.DemandSuccess(t, err)
			for a, v := range p.Data {
				m.Mem.Write(a, v)
			}
			m.Mem.Load(p.Origin, p.Code)
			m.Start(p.Origin)

			mc := m.CPU.(*m6502.CPU)
			s := mc.S
			for i := 0; i < p.Instructions; i++ {
				_, err := m.Step(nil)
				test.DemandSuccess(t, err)
			}
			test.ExpectFailure(t, mc.Jammed())
			test.Equate(t, mc.S, s)

			r, ok := results[name]
			test.DemandSuccess(t, ok)
			r(m, mc)
		})
	}
}

func TestPrograms(t *testing.T) {
	def := loadDefinition(t)

	for _, name := range oracle.ProgramNames() {
		t.Run(name, func(t *testing.T) {
			l, err := oracle.NewLockstep(def, netlist.DefaultMaxIterations)
			test.DemandSuccess(t, err)
			test.DemandSuccess(t, l.LoadProgram(oracle.Programs[name]))

			err = l.Run(oracle.Programs[name].Instructions)
			if !test.ExpectSuccess(t, err) {
				for _, s := range l.Log() {
					t.Log(s)
				}
			}
		})
	}
}

func TestTicks(t *testing.T) {
	def := loadDefinition(t)

	l, err := oracle.NewLockstep(def, 0)
	test.DemandSuccess(t, err)
	l.Load(0x0200, []uint8{
		0xa9, 0x00, // LDA #$00
		0xa5, 0x10, // LDA $10
		0xa2, 0x20, // LDX #$20
		0xbd, 0xf0, 0x10, // LDA $10F0,X
	})
	test.DemandSuccess(t, l.Start(0x0200))

	for _, c := range []int{2, 3, 2, 5} {
		n, err := l.Step()
		test.DemandSuccess(t, err)
		test.Equate(t, n, c)
	}
	test.ExpectSuccess(t, l.CPU.P.Zero)
	test.Equate(t, l.Instructions, 4)
}

func TestDivergence(t *testing.T) {
	def := loadDefinition(t)

	l, err := oracle.NewLockstep(def, 0)
	test.DemandSuccess(t, err)
	l.Load(0x0200, []uint8{
		0xa2, 0x01, // LDX #$01
		0xea, // NOP
	})
	test.DemandSuccess(t, l.Start(0x0200))

	l.CPU.A = l.Chip.A() + 1
	_, err = l.Step()
	test.ExpectSuccess(t, curated.Is(err, oracle.Diverged))
	test.ExpectSuccess(t, len(l.Log()) > 0)
}

// the interrupt disable flag is compared when no interrupt is involved
func TestInterruptDisableDivergence(t *testing.T) {
	def := loadDefinition(t)

	l, err := oracle.NewLockstep(def, 0)
	test.DemandSuccess(t, err)
	l.Load(0x0200, []uint8{
		0x58, // CLI
		0xea, // NOP
		0xea, // NOP
	})
	test.DemandSuccess(t, l.Start(0x0200))

	_, err = l.Step()
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, l.CPU.P.InterruptDisable)

	l.CPU.P.InterruptDisable = true
	_, err = l.Step()
	test.ExpectSuccess(t, curated.Is(err, oracle.Diverged))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "P "))
}
