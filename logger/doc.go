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

// Package logger is the central log for the application. It is used by the
// host side of the emulation (machine construction, netlist loading, the
// oracle) and never by a chip's tick function.
//
// Log entries are made up of a tag and a detail string. Consecutive entries
// with the same tag and detail are collapsed:
//
//	netlist: loaded 3510 transistors (repeat x2)
//
// Whether a log entry is made or not is decided by the Permission argument.
// The logger.Allow value always allows logging.
package logger
