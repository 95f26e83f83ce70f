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

	"github.com/jetsetilly/gopherchips/curated"
)

// DefaultMaxIterations is the number of propagation rounds allowed before a
// network is considered to have stalled.
const DefaultMaxIterations = 100

// Patterns of the errors returned by the package.
const (
	Stalled    = "netlist: no fixpoint after %d iterations"
	SetupError = "netlist: %v"
)

// the value of a group in increasing order of priority
type contains int

const (
	containsNothing contains = iota
	containsHigh
	containsPullup
	containsPulldown
	containsVCC
	containsVSS
)

// Netlist is the evaluated state of a transistor network.
type Netlist struct {
	maxIterations int

	vss Node
	vcc Node

	names map[string]Node

	// node state
	pullup   []bool
	pulldown []bool
	value    []bool

	// transistors that have the node as their gate and transistors that
	// have the node as one of their terminals
	gates [][]int
	c1c2s [][]int

	// nodes to recalculate when the node changes. dependants are the non-rail
	// terminals of every transistor gated by the node. leftDependants has one
	// terminal per transistor and is used when the node goes high, because
	// both terminals are then in the same group
	dependants     [][]Node
	leftDependants [][]Node

	// transistor state
	transistors []Transistor
	on          []bool

	// the work lists. queued indicates that a node is in the out list
	in     []Node
	out    []Node
	queued []bool

	// the group being resolved
	group    []Node
	inGroup  []bool
	stack    []Node
	contains contains
}

// Setup creates a Netlist from the definition. Duplicate transistors (the
// same gate and the same two terminals in either order) are removed. The
// network is not stabilised and the value of every node is low.
func Setup(def *Definition, maxIterations int) (*Netlist, error) {
	num := def.NumNodes()

	if def.VSS == def.VCC {
		return nil, curated.Errorf(SetupError, "ground and power rails are the same node")
	}
	if def.VSS < 0 || int(def.VSS) >= num || def.VCC < 0 || int(def.VCC) >= num {
		return nil, curated.Errorf(SetupError, "power rails are not in the list of nodes")
	}

	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	n := &Netlist{
		maxIterations:  maxIterations,
		vss:            def.VSS,
		vcc:            def.VCC,
		names:          def.Names,
		pullup:         make([]bool, num),
		pulldown:       make([]bool, num),
		value:          make([]bool, num),
		gates:          make([][]int, num),
		c1c2s:          make([][]int, num),
		dependants:     make([][]Node, num),
		leftDependants: make([][]Node, num),
		queued:         make([]bool, num),
		inGroup:        make([]bool, num),
		in:             make([]Node, 0, num),
		out:            make([]Node, 0, num),
		group:          make([]Node, 0, num),
	}
	copy(n.pullup, def.Pullup)

	type key struct {
		gate Node
		c1   Node
		c2   Node
	}
	seen := make(map[key]bool)

	for _, t := range def.Transistors {
		for _, c := range []Node{t.Gate, t.C1, t.C2} {
			if c < 0 || int(c) >= num {
				return nil, curated.Errorf(SetupError, fmt.Sprintf("transistor %s refers to unknown node %d", t, c))
			}
		}

		k := key{gate: t.Gate, c1: t.C1, c2: t.C2}
		if k.c1 > k.c2 {
			k.c1, k.c2 = k.c2, k.c1
		}
		if seen[k] {
			continue
		}
		seen[k] = true

		i := len(n.transistors)
		n.transistors = append(n.transistors, t)
		n.gates[t.Gate] = append(n.gates[t.Gate], i)
		n.c1c2s[t.C1] = append(n.c1c2s[t.C1], i)
		n.c1c2s[t.C2] = append(n.c1c2s[t.C2], i)
	}
	n.on = make([]bool, len(n.transistors))

	for i := range n.gates {
		for _, tn := range n.gates[i] {
			t := n.transistors[tn]
			c1 := !n.isRail(t.C1)
			c2 := !n.isRail(t.C2)
			if c1 {
				n.dependants[i] = appendUnique(n.dependants[i], t.C1)
			}
			if c2 {
				n.dependants[i] = appendUnique(n.dependants[i], t.C2)
			}
			if c1 {
				n.leftDependants[i] = appendUnique(n.leftDependants[i], t.C1)
			} else {
				n.leftDependants[i] = appendUnique(n.leftDependants[i], t.C2)
			}
		}
	}

	// the value of the rails is never evaluated but it is convenient for
	// the power rail to read as high
	n.value[n.vcc] = true
	for _, tn := range n.gates[n.vcc] {
		n.on[tn] = true
	}

	return n, nil
}

func appendUnique(l []Node, v Node) []Node {
	for _, e := range l {
		if e == v {
			return l
		}
	}
	return append(l, v)
}

func (n *Netlist) isRail(nn Node) bool {
	return nn == n.vss || nn == n.vcc
}

func (n *Netlist) String() string {
	return fmt.Sprintf("%d nodes, %d transistors", len(n.value), len(n.transistors))
}

// NumNodes returns the number of nodes in the network, including the rails.
func (n *Netlist) NumNodes() int {
	return len(n.value)
}

// NumTransistors returns the number of transistors in the network, after
// duplicates have been removed.
func (n *Netlist) NumTransistors() int {
	return len(n.transistors)
}

// Node returns the node for the name.
func (n *Netlist) Node(name string) (Node, bool) {
	nn, ok := n.names[name]
	return nn, ok
}

// IsHigh returns the current value of the node.
func (n *Netlist) IsHigh(nn Node) bool {
	return n.value[nn]
}

// Values returns a copy of the value of every node.
func (n *Netlist) Values() []bool {
	v := make([]bool, len(n.value))
	copy(v, n.value)
	return v
}

// ReadNodes returns the values of the nodes as a number. The first node in
// the list is the least significant bit.
func (n *Netlist) ReadNodes(nodes []Node) uint {
	var v uint
	for i := len(nodes) - 1; i >= 0; i-- {
		v <<= 1
		if n.value[nodes[i]] {
			v |= 1
		}
	}
	return v
}

// WriteNodes sets the nodes from the bits of v. The first node in the list is
// set from the least significant bit.
func (n *Netlist) WriteNodes(nodes []Node, v uint) error {
	for _, nn := range nodes {
		n.force(nn, v&1 == 1)
		v >>= 1
	}
	return n.propagate()
}

// SetNode pulls the node up (or down) and propagates the change through the
// network.
func (n *Netlist) SetNode(nn Node, high bool) error {
	n.force(nn, high)
	return n.propagate()
}

func (n *Netlist) force(nn Node, high bool) {
	n.pullup[nn] = high
	n.pulldown[nn] = !high
	n.enqueue(nn)
}

// Stabilise recalculates every node in the network. A stable network is not
// changed by a call to Stabilise().
func (n *Netlist) Stabilise() error {
	for i := range n.value {
		if !n.isRail(Node(i)) {
			n.enqueue(Node(i))
		}
	}
	return n.propagate()
}

func (n *Netlist) enqueue(nn Node) {
	if !n.queued[nn] {
		n.queued[nn] = true
		n.out = append(n.out, nn)
	}
}

// propagate changes until the out list is empty.
func (n *Netlist) propagate() error {
	for i := 0; i < n.maxIterations; i++ {
		n.in, n.out = n.out, n.in[:0]
		if len(n.in) == 0 {
			return nil
		}
		for _, nn := range n.in {
			n.queued[nn] = false
		}
		for _, nn := range n.in {
			n.recalcNode(nn)
		}
	}

	if len(n.out) == 0 {
		return nil
	}

	for _, nn := range n.out {
		n.queued[nn] = false
	}
	n.out = n.out[:0]

	return curated.Errorf(Stalled, n.maxIterations)
}

func (n *Netlist) recalcNode(nn Node) {
	n.collectGroup(nn)

	v := false
	switch n.contains {
	case containsVCC, containsPullup, containsHigh:
		v = true
	}

	for _, g := range n.group {
		n.inGroup[g] = false
		if n.value[g] == v {
			continue
		}

		n.value[g] = v
		for _, tn := range n.gates[g] {
			n.on[tn] = v
		}

		if v {
			for _, d := range n.leftDependants[g] {
				n.enqueue(d)
			}
		} else {
			for _, d := range n.dependants[g] {
				n.enqueue(d)
			}
		}
	}
}

// collectGroup finds every node connected to nn through conducting
// transistors. the rails stop the search
func (n *Netlist) collectGroup(nn Node) {
	n.group = n.group[:0]
	n.contains = containsNothing
	n.stack = append(n.stack[:0], nn)

	for len(n.stack) > 0 {
		c := n.stack[len(n.stack)-1]
		n.stack = n.stack[:len(n.stack)-1]

		if c == n.vss {
			n.contains = containsVSS
			continue
		}
		if c == n.vcc {
			if n.contains != containsVSS {
				n.contains = containsVCC
			}
			continue
		}

		if n.inGroup[c] {
			continue
		}
		n.inGroup[c] = true
		n.group = append(n.group, c)

		if n.contains < containsPulldown && n.pulldown[c] {
			n.contains = containsPulldown
		}
		if n.contains < containsPullup && n.pullup[c] {
			n.contains = containsPullup
		}
		if n.contains < containsHigh && n.value[c] {
			n.contains = containsHigh
		}

		for _, tn := range n.c1c2s[c] {
			if !n.on[tn] {
				continue
			}
			t := n.transistors[tn]
			if t.C1 == c {
				n.stack = append(n.stack, t.C2)
			} else {
				n.stack = append(n.stack, t.C1)
			}
		}
	}
}
