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

package netlist

import (
	"fmt"
	"sort"
)

// Node is the index of a node in a Definition.
type Node int

// Transistor connects C1 and C2 when the Gate node is high.
type Transistor struct {
	Gate Node
	C1   Node
	C2   Node
}

func (t Transistor) String() string {
	return fmt.Sprintf("%d: %d <-> %d", t.Gate, t.C1, t.C2)
}

// Definition is the static description of a transistor network.
type Definition struct {
	// Pullup has one entry per node. The number of nodes in the network is
	// the length of the slice
	Pullup []bool

	Transistors []Transistor

	// the ground and power rails
	VSS Node
	VCC Node

	// names of interesting nodes. not every node need be named
	Names map[string]Node
}

// NewDefinition returns an empty Definition with the two rails as nodes 0
// and 1. Useful for building small networks by hand.
func NewDefinition() *Definition {
	return &Definition{
		Pullup: make([]bool, 2),
		VSS:    0,
		VCC:    1,
		Names: map[string]Node{
			"vss": 0,
			"vcc": 1,
		},
	}
}

// AddNode adds a node to the definition and returns its index. The name can
// be empty.
func (def *Definition) AddNode(name string, pullup bool) Node {
	n := Node(len(def.Pullup))
	def.Pullup = append(def.Pullup, pullup)
	if name != "" {
		if def.Names == nil {
			def.Names = make(map[string]Node)
		}
		def.Names[name] = n
	}
	return n
}

// AddTransistor adds a transistor to the definition.
func (def *Definition) AddTransistor(gate, c1, c2 Node) {
	def.Transistors = append(def.Transistors, Transistor{Gate: gate, C1: c1, C2: c2})
}

// NumNodes returns the number of nodes in the definition, including the
// rails.
func (def *Definition) NumNodes() int {
	return len(def.Pullup)
}

// Node returns the node for the name.
func (def *Definition) Node(name string) (Node, bool) {
	n, ok := def.Names[name]
	return n, ok
}

// SortedNames returns the names in the definition in node order.
func (def *Definition) SortedNames() []string {
	names := make([]string, 0, len(def.Names))
	for k := range def.Names {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		a := def.Names[names[i]]
		b := def.Names[names[j]]
		if a == b {
			return names[i] < names[j]
		}
		return a < b
	})
	return names
}
