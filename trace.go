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
	"io"
	"os"

	"github.com/jetsetilly/gopherchips/govern"
	"github.com/jetsetilly/gopherchips/hardware"
	"github.com/jetsetilly/gopherchips/hardware/pins"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func traceCmd() *cobra.Command {
	var family string
	var origin string
	var ticks int
	var regs bool

	cmd := &cobra.Command{
		Use:   "trace [binary]",
		Short: "run a machine and print the pins after every tick",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if family == "" {
				family = cfg.Machine.Family
			}
			if ticks <= 0 {
				ticks = cfg.Trace.Limit
			}

			var filename string
			if len(args) > 0 {
				filename = args[0]
			}

			m, err := newMachine(family, filename, origin)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := trace(out, m, uint64(ticks), terminalWidth()); err != nil {
				return err
			}

			if regs {
				pp.Fprintln(out, registers(m))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&family, "family", "f", "", "processor family (z80 or 6502)")
	cmd.Flags().StringVarP(&origin, "origin", "o", "0x0000", "load and start address")
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 0, "number of ticks to trace")
	cmd.Flags().BoolVar(&regs, "regs", false, "print the registers at the end of the trace")

	return cmd
}

// terminalWidth returns the width of stdout if it is a terminal. Zero means
// that lines are not truncated.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// trace the machine for the number of ticks. Instruction boundaries are
// marked with an asterisk.
func trace(out io.Writer, m *hardware.Machine, ticks uint64, width int) error {
	names := lineNames(m.Family)

	return m.RunFor(ticks, func(tick uint64) (govern.State, error) {
		s := traceLine(tick, m.Pins, names, m.CPU.Boundary())
		if width > 0 && len(s) > width {
			s = s[:width]
		}
		if _, err := fmt.Fprintln(out, s); err != nil {
			return govern.Ending, err
		}
		return govern.Running, nil
	})
}

func traceLine(tick uint64, p pins.Word, names pins.Names, boundary bool) string {
	b := ' '
	if boundary {
		b = '*'
	}
	return fmt.Sprintf("%8d %c %s", tick, b, p.Format(names))
}
