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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is what identifies the error. Packages that return errors that
// callers are expected to act upon export the pattern as a constant. For
// example, the netlist package:
//
//	const Stalled = "netlist: no fixpoint after %d iterations"
//
// and the caller:
//
//	if curated.Is(err, netlist.Stalled) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf(netlist.Stalled, 100)
//	f := curated.Errorf("oracle: %v", e)
//
//	curated.Has(f, netlist.Stalled) == true
//	curated.Is(f, netlist.Stalled) == false
//
// The Error() function normalises the error chain. Adjacent parts of the
// message that are identical are collapsed. This means that wrapping an error
// with the same prefix as the wrapped error does not result in messages like:
//
//	oracle: oracle: diverged at tick 10
//
// Parts of the chain are separated by the sub-string ': ' as suggested on
// p239 of "The Go Programming Language" (Donovan, Kernighan).
package curated
