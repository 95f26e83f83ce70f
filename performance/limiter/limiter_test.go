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

package limiter_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/performance/limiter"
	"github.com/jetsetilly/gopherchips/test"
)

func TestLimiter(t *testing.T) {
	lim, err := limiter.NewLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Stop()
	test.Equate(t, lim.Rate(), 100)

	// the first trigger is immediate
	lim.Wait()

	start := time.Now()
	for i := 0; i < 5; i++ {
		lim.Wait()
	}
	test.ExpectSuccess(t, time.Since(start) >= 30*time.Millisecond)
}

func TestBadRate(t *testing.T) {
	_, err := limiter.NewLimiter(0)
	test.ExpectSuccess(t, curated.Is(err, limiter.LimiterError))
}
