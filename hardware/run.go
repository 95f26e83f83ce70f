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

package hardware

import (
	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/govern"
)

// While the continueCheck() function only runs at the end of a CPU instruction
// it can still be expensive to do a full continue check every time.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Run sets the machine running as quickly as possible. The continueCheck
// function is called at the end of every instruction. A nil continueCheck
// runs the machine forever.
func (m *Machine) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var err error

	state := govern.Running

	for state != govern.Ending {
		switch state {
		case govern.Running, govern.Stepping:
			_, err = m.Step(nil)
			if err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("machine: unsupported state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunFor runs the machine for exactly the number of ticks. The continueCheck
// function is called after every tick and can be nil. Unlike Run(), the
// machine can be stopped part way through an instruction.
func (m *Machine) RunFor(ticks uint64, continueCheck func(tick uint64) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(_ uint64) (govern.State, error) { return govern.Running, nil }
	}

	end := m.Ticks + ticks

	state := govern.Running
	for m.Ticks < end && state != govern.Ending {
		m.Tick()

		var err error
		state, err = continueCheck(m.Ticks)
		if err != nil {
			return err
		}
	}

	return nil
}
