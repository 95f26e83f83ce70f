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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/govern"
	"github.com/jetsetilly/gopherchips/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// Result of a performance check.
type Result struct {
	Ticks        uint64
	Instructions uint64
	Duration     time.Duration
}

// Rate returns the number of ticks per second. Equivalent to the clock rate
// of the machine in Hz.
func (r Result) Rate() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Ticks) / r.Duration.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf("%.3f MHz (%d ticks, %d instructions in %.2f seconds)",
		r.Rate()/1000000, r.Ticks, r.Instructions, r.Duration.Seconds())
}

// Check the performance of the machine. The machine will run for the
// specified duration and will create a cpu, memory profile, a trace (or a
// combination of those) as defined by the Profile argument.
//
// The result is also written to output.
func Check(output io.Writer, profile Profile, m *hardware.Machine, duration time.Duration) (Result, error) {
	var res Result

	startTicks := m.Ticks
	startInstructions := m.Instructions

	runner := func() error {
		// signals when the duration has expired
		timerChan := make(chan bool, 1)
		time.AfterFunc(duration, func() {
			timerChan <- true
		})

		start := time.Now()
		defer func() {
			res.Duration = time.Since(start)
		}()

		// only check for end of measurement period every PerformanceBrake CPU
		// instructions. checking the timerChan is relatively expensive
		performanceBrake := 0

		return m.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0
				select {
				case <-timerChan:
					return govern.Ending, timedOut
				default:
				}
			}
			return govern.Running, nil
		})
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return res, curated.Errorf("performance: %v", err)
	}

	res.Ticks = m.Ticks - startTicks
	res.Instructions = m.Instructions - startInstructions

	if output != nil {
		output.Write([]byte(fmt.Sprintf("%s\n", res)))
	}

	return res, nil
}
