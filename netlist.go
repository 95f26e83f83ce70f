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

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware/netlist"
	"github.com/spf13/cobra"
)

// networks larger than this produce graphs that are too large to be useful
const memvizLimit = 64

func netlistCmd() *cobra.Command {
	var viz string

	cmd := &cobra.Command{
		Use:   "netlist [dir]",
		Short: "load and stabilise a visual6502 netlist",
		Long: `Load and stabilise a visual6502 netlist. Without a directory the directory
from the configuration is used. If that is not set either a small
demonstration network (an SR latch) is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.Netlist.Dir
			if len(args) > 0 {
				dir = args[0]
			}

			var def *netlist.Definition
			if dir == "" {
				def = demoNetlist()
			} else {
				var err error
				def, err = netlist.Load(dir)
				if err != nil {
					return err
				}
			}

			net, err := netlist.Setup(def, cfg.Netlist.MaxIterations)
			if err != nil {
				return err
			}
			if err := net.Stabilise(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %d named\n", net, len(def.Names))

			if viz != "" {
				if def.NumNodes() > memvizLimit {
					return curated.Errorf("netlist: too many nodes for memviz (%d)", def.NumNodes())
				}
				f, err := os.Create(viz)
				if err != nil {
					return curated.Errorf("netlist: %v", err)
				}
				defer f.Close()
				memviz.Map(f, def)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&viz, "memviz", "", "write a memviz graph of the definition to file")

	return cmd
}

// an SR latch made from two NOR gates
func demoNetlist() *netlist.Definition {
	def := netlist.NewDefinition()
	s := def.AddNode("s", false)
	r := def.AddNode("r", false)
	q := def.AddNode("q", true)
	qn := def.AddNode("qn", true)
	def.AddTransistor(r, q, def.VSS)
	def.AddTransistor(qn, q, def.VSS)
	def.AddTransistor(s, qn, def.VSS)
	def.AddTransistor(q, qn, def.VSS)
	return def
}
