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

package netlist_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/hardware/netlist"
	"github.com/jetsetilly/gopherchips/test"
)

const transdefs = `var transdefs = [
['t0',4,2,0,[4250,4270,2323,2337],[415,415,3,1,2480],false,],
['t1',2,3,0,[4250,4270,2323,2337],[415,415,3,1,2480],false,],
['t2',4,2,0,[4250,4270,2323,2337],[415,415,3,1,2480],false,],
]`

const segdefs = `var segdefs = [
[ 0,'-',5,5391,8260,5391,8216,5357,8216],
[ 2,'+',1,4000,4000,4100,4100],
[ 2,'-',1,4000,4000,4100,4100],
[ 3,'+',1,4000,4000,4100,4100],
[ 4,'-',1,4000,4000,4100,4100],
]`

const nodenames = `var nodenames ={
vss: 0,
vcc: 1,
in: 4,
out: 2,
out2: 3, // second stage
}`

func TestParse(t *testing.T) {
	trans, err := netlist.ParseTransdefs(strings.NewReader(transdefs))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(trans), 3)
	test.ExpectEquality(t, trans[1], netlist.Transistor{Gate: 2, C1: 3, C2: 0})

	pullup, err := netlist.ParseSegdefs(strings.NewReader(segdefs))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(pullup), 5)
	test.ExpectFailure(t, pullup[0])
	test.ExpectFailure(t, pullup[1])
	test.ExpectSuccess(t, pullup[2])
	test.ExpectSuccess(t, pullup[3])
	test.ExpectFailure(t, pullup[4])

	names, err := netlist.ParseNodenames(strings.NewReader(nodenames))
	test.DemandSuccess(t, err)
	test.Equate(t, len(names), 5)
	test.ExpectEquality(t, names["out2"], netlist.Node(3))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, content string) {
		test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write(netlist.TransdefsFile, transdefs)
	write(netlist.SegdefsFile, segdefs)

	_, err := netlist.Load(dir)
	test.ExpectSuccess(t, curated.Is(err, netlist.LoadError))

	write(netlist.NodenamesFile, nodenames)
	def, err := netlist.Load(dir)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, def.VSS, netlist.Node(0))
	test.ExpectEquality(t, def.VCC, netlist.Node(1))
	test.Equate(t, def.NumNodes(), 5)

	// the loaded definition is two inverters in series
	n, err := netlist.Setup(def, 0)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, n.Stabilise())
	test.Equate(t, n.NumTransistors(), 2)

	in, _ := n.Node("in")
	out, _ := n.Node("out")
	out2, _ := n.Node("out2")
	test.DemandSuccess(t, n.SetNode(in, true))
	test.ExpectFailure(t, n.IsHigh(out))
	test.ExpectSuccess(t, n.IsHigh(out2))
}

func TestSortedNames(t *testing.T) {
	names, err := netlist.ParseNodenames(strings.NewReader(nodenames))
	test.DemandSuccess(t, err)
	def := &netlist.Definition{Names: names}
	test.Equate(t, strings.Join(def.SortedNames(), ","), "vss,vcc,out,out2,in")
}
