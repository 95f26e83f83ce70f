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
	"time"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware"
	"github.com/jetsetilly/gopherchips/performance"
	"github.com/jetsetilly/gopherchips/performance/limiter"
	"github.com/jetsetilly/gopherchips/statsview"
	"github.com/spf13/cobra"
)

// the number of batches per second when running at a fixed clock rate
const limiterRate = 50

func benchCmd() *cobra.Command {
	var family string
	var origin string
	var duration string
	var profile string
	var stats bool
	var hz int

	cmd := &cobra.Command{
		Use:   "bench [binary]",
		Short: "run a machine for a fixed time and report the clock rate achieved",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if family == "" {
				family = cfg.Machine.Family
			}
			if duration != "" {
				cfg.Bench.Duration = duration
			}
			if profile == "" {
				profile = cfg.Bench.Profile
			}

			var filename string
			if len(args) > 0 {
				filename = args[0]
			}

			m, err := newMachine(family, filename, origin)
			if err != nil {
				return err
			}

			d, err := cfg.BenchDuration()
			if err != nil {
				return err
			}

			prf, err := performance.ParseProfile(profile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if stats || cfg.Bench.Statsview {
				if !statsview.Available() {
					return curated.Errorf("bench: statsview not available (build with -tags statsview)")
				}
				stop := statsview.Launch(out)
				defer stop()
			}

			fmt.Fprintf(out, "%s\n", m)

			if hz > 0 {
				return benchLimited(out, m, d, hz)
			}

			_, err = performance.Check(out, prf, m, d)
			return err
		},
	}

	cmd.Flags().StringVarP(&family, "family", "f", "", "processor family (z80 or 6502)")
	cmd.Flags().StringVarP(&origin, "origin", "o", "0x0000", "load and start address")
	cmd.Flags().StringVarP(&duration, "duration", "d", "", "duration of the benchmark")
	cmd.Flags().StringVar(&profile, "profile", "", "profiles to write (none, cpu, mem, trace, both, all)")
	cmd.Flags().BoolVar(&stats, "statsview", false, "launch the statsview server")
	cmd.Flags().IntVar(&hz, "hz", 0, "run at a fixed clock rate")

	return cmd
}

// run the machine at a fixed clock rate for the duration
func benchLimited(out io.Writer, m *hardware.Machine, d time.Duration, hz int) error {
	lim, err := limiter.NewLimiter(limiterRate)
	if err != nil {
		return err
	}
	defer lim.Stop()

	batch := uint64(hz / limiterRate)
	if batch == 0 {
		batch = 1
	}

	res := performance.Result{}
	startTicks := m.Ticks
	startInstructions := m.Instructions

	start := time.Now()
	for time.Since(start) < d {
		lim.Wait()
		if err := m.RunFor(batch, nil); err != nil {
			return err
		}
	}

	res.Duration = time.Since(start)
	res.Ticks = m.Ticks - startTicks
	res.Instructions = m.Instructions - startInstructions
	fmt.Fprintf(out, "%s\n", res)

	return nil
}
