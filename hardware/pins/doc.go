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

// Package pins defines the Word type, the shared bus vocabulary for every chip
// in the emulation.
//
// A CPU's Tick() function takes a Word and returns a Word. The returned Word
// describes the bus activity for that tick. The host services the Word by
// passing it to one or more Responder implementations before handing it back
// to the CPU on the next tick.
//
//	w = cpu.Tick(w)
//	w = decoder.Respond(w)
//
// After a tick, the control lines alone describe what happened on the bus.
package pins
