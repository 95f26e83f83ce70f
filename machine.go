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

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware"
	"github.com/jetsetilly/gopherchips/hardware/cpu/m6502"
	"github.com/jetsetilly/gopherchips/hardware/cpu/z80"
	"github.com/jetsetilly/gopherchips/hardware/pins"
)

// parseAddress accepts decimal, hex with a 0x prefix or hex with a $ prefix.
func parseAddress(s string) (uint16, error) {
	if len(s) > 1 && s[0] == '$' {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, curated.Errorf("address: %v", err)
	}
	return uint16(v), nil
}

// lineNames returns the names of the control lines for the processor family.
func lineNames(family hardware.Family) pins.Names {
	if family == hardware.M6502 {
		return m6502.Names
	}
	return z80.Names
}

// newMachine creates a machine from the settings and the command line. If
// filename is not empty the file is loaded at the origin. The machine is
// started at the origin.
func newMachine(family string, filename string, origin string) (*hardware.Machine, error) {
	f, err := hardware.ParseFamily(family)
	if err != nil {
		return nil, err
	}

	m, err := hardware.NewMachine(f, cfg.Machine.RAM)
	if err != nil {
		return nil, err
	}

	org, err := parseAddress(origin)
	if err != nil {
		return nil, err
	}

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, curated.Errorf("load: %v", err)
		}
		if int(org)+len(data) > 0x10000 {
			return nil, curated.Errorf("load: %s does not fit at %04x", filename, org)
		}
		m.Mem.Load(org, data)
	}

	m.Start(org)

	return m, nil
}

// registers returns the registers of the CPU in a form suitable for pp.
func registers(m *hardware.Machine) any {
	switch mc := m.CPU.(type) {
	case *z80.CPU:
		return mc.Registers
	case *m6502.CPU:
		return struct {
			PC uint16
			A  uint8
			X  uint8
			Y  uint8
			S  uint8
			P  string
		}{
			PC: mc.PC, A: mc.A, X: mc.X, Y: mc.Y, S: mc.S, P: mc.P.String(),
		}
	}
	return fmt.Sprint(m.CPU)
}
