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

	"github.com/jetsetilly/gopherchips/config"
	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware/netlist"
	"github.com/jetsetilly/gopherchips/oracle"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
)

func oracleCmd() *cobra.Command {
	var dir string
	var program string
	var origin string
	var instructions int

	cmd := &cobra.Command{
		Use:   "oracle [binary]",
		Short: "run the 6502 engine in lock-step with the transistor netlist",
		Long: `Run the 6502 engine in lock-step with the transistor netlist and report
the first tick where they differ. Without a binary the built-in programs are
run. The netlist directory must contain the visual6502 data files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = cfg.Netlist.Dir
			}
			if dir == "" {
				return curated.Errorf("oracle: no netlist directory (use --netlist or %s_NETLIST_DIR)", config.EnvVarPrefix)
			}

			def, err := netlist.Load(dir)
			if err != nil {
				return err
			}

			var programs []oracle.Program

			if len(args) > 0 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return curated.Errorf("oracle: %v", err)
				}
				org, err := parseAddress(origin)
				if err != nil {
					return err
				}
				programs = append(programs, oracle.Program{
					Name:         args[0],
					Origin:       org,
					Code:         data,
					Instructions: instructions,
				})
			} else if program == "" || program == "all" {
				for _, n := range oracle.ProgramNames() {
					programs = append(programs, oracle.Programs[n])
				}
			} else {
				p, ok := oracle.Programs[program]
				if !ok {
					return curated.Errorf("oracle: no built-in program named %s (%v)", program, oracle.ProgramNames())
				}
				programs = append(programs, p)
			}

			out := cmd.OutOrStdout()
			for _, p := range programs {
				if err := runOracle(out, def, p); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "netlist", "", "directory containing the netlist data files")
	cmd.Flags().StringVarP(&program, "program", "p", "all", "built-in program to run")
	cmd.Flags().StringVarP(&origin, "origin", "o", "0x0200", "load and start address of binary")
	cmd.Flags().IntVarP(&instructions, "instructions", "n", 100, "number of instructions to run from binary")

	return cmd
}

func runOracle(out io.Writer, def *netlist.Definition, p oracle.Program) error {
	l, err := oracle.NewLockstep(def, cfg.Netlist.MaxIterations)
	if err != nil {
		return err
	}

	if err := l.LoadProgram(p); err != nil {
		return err
	}

	err = l.Run(p.Instructions)
	if err == nil {
		fmt.Fprintf(out, "%s: ok (%d instructions in %d ticks)\n", p.Name, l.Instructions, l.Ticks)
		return nil
	}

	if !curated.Is(err, oracle.Diverged) {
		return err
	}

	fmt.Fprintf(out, "%s: %v\n", p.Name, err)
	for _, s := range l.Log() {
		fmt.Fprintln(out, s)
	}
	pp.Fprintln(out, map[string]string{
		"engine": l.CPU.String(),
		"chip":   l.Chip.String(),
	})

	return err
}
