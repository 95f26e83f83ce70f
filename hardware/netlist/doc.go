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

// Package netlist is a switch-level simulator for NMOS transistor networks.
// It knows nothing about any particular chip. A chip is described by a
// Definition (the nodes with their pull-ups, the transistors and the two
// power rails) and the Netlist type evaluates that description.
//
// Each transistor connects its two terminals when its gate node is high.
// Nodes connected through conducting transistors form a group and every node
// in a group has the same value. The value of a group is decided by the
// following, in order of priority:
//
//	the group touches the ground rail (low)
//	the group touches the power rail (high)
//	a node in the group is pulled down (low)
//	a node in the group is pulled up (high)
//	a node in the group is already high (high)
//
// A group with none of these is low. The rails themselves are never members
// of a group.
//
// Inputs to the network are driven with SetNode(), which pulls the node up or
// down and propagates the change until the network settles. Propagation is
// capped at a maximum number of iterations. A network that does not settle (a
// ring oscillator for example) returns the Stalled error.
//
// Definitions of real chips are loaded from the text files published by the
// visual6502 project with the Load() function.
package netlist
