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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new Limiter can be created with (error handling removed for clarity):
//
//	lim, _ := limiter.NewLimiter(50)
//
// Operations can then be stalled with the Wait() function. For example, to
// run a machine at 1MHz:
//
//	for {
//		lim.Wait()
//		m.RunFor(1000000/50, nil)
//	}
package limiter

import (
	"fmt"
	"time"

	"github.com/jetsetilly/gopherchips/curated"
)

// this is a really rough attempt at rate limiting. probably only any good if
// base performance of the machine is well above the required rate.

// LimiterError is the pattern of errors returned by the package.
const LimiterError = "limiter: %v"

// Limiter will trigger a fixed number of times per second.
type Limiter struct {
	perSecond int
	period    time.Duration

	tick chan bool
	quit chan bool
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
func NewLimiter(perSecond int) (*Limiter, error) {
	if perSecond <= 0 {
		return nil, curated.Errorf(LimiterError, fmt.Sprintf("rate must be positive (%d)", perSecond))
	}

	lim := &Limiter{
		tick: make(chan bool),
		quit: make(chan bool),
	}
	lim.SetLimit(perSecond)

	// run ticker concurrently
	go func() {
		adjusted := lim.period
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - lim.period
			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the rate at which the Limiter triggers.
func (lim *Limiter) SetLimit(perSecond int) {
	lim.perSecond = perSecond
	lim.period = time.Second / time.Duration(perSecond)
}

// Rate returns the number of triggers per second.
func (lim *Limiter) Rate() int {
	return lim.perSecond
}

// Wait will block until trigger.
func (lim *Limiter) Wait() {
	<-lim.tick
}

// HasWaited will return true if time has already elapsed and false if it is
// still yet to happen.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Stop the limiter. The limiter cannot be used afterwards.
func (lim *Limiter) Stop() {
	close(lim.quit)
}
