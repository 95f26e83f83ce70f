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
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/logger"
)

// The files in a visual6502 netlist directory.
const (
	TransdefsFile = "transdefs.js"
	SegdefsFile   = "segdefs.js"
	NodenamesFile = "nodenames.js"
)

// LoadError is the pattern of errors returned by Load() and the Parse
// functions.
const LoadError = "netlist: load: %v"

// ['t123',gate,c1,c2,[...],...]
var transdefRE = regexp.MustCompile(`^\s*\[\s*'t\d+'\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)

// [node,'+',...] or [node,'-',...]
var segdefRE = regexp.MustCompile(`^\s*\[\s*(\d+)\s*,\s*'([+-])'`)

// name: number,
var nodenameRE = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(\d+)\s*,?`)

func atoi(s string, line int) (Node, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, curated.Errorf(LoadError, curated.Errorf("line %d: %v", line, err))
	}
	return Node(v), nil
}

// ParseTransdefs reads the transistor definitions. Lines that are not
// transistor definitions are ignored.
func ParseTransdefs(r io.Reader) ([]Transistor, error) {
	var trans []Transistor

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		m := transdefRE.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		var t Transistor
		var err error
		if t.Gate, err = atoi(m[1], line); err != nil {
			return nil, err
		}
		if t.C1, err = atoi(m[2], line); err != nil {
			return nil, err
		}
		if t.C2, err = atoi(m[3], line); err != nil {
			return nil, err
		}
		trans = append(trans, t)
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	return trans, nil
}

// ParseSegdefs reads the segment definitions and returns the pull-up state of
// every node. A node has many segments. It is pulled up if any of its
// segments is marked '+'.
func ParseSegdefs(r io.Reader) ([]bool, error) {
	var pullup []bool

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		m := segdefRE.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		n, err := atoi(m[1], line)
		if err != nil {
			return nil, err
		}
		for int(n) >= len(pullup) {
			pullup = append(pullup, false)
		}
		if m[2] == "+" {
			pullup[n] = true
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	return pullup, nil
}

// ParseNodenames reads the node names.
func ParseNodenames(r io.Reader) (map[string]Node, error) {
	names := make(map[string]Node)

	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		m := nodenameRE.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		n, err := atoi(m[2], line)
		if err != nil {
			return nil, err
		}
		names[m[1]] = n
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	return names, nil
}

// Load a definition from a directory containing the visual6502 netlist files.
// The nodenames file must name the two rails "vss" and "vcc".
func Load(dir string) (*Definition, error) {
	open := func(name string) (*os.File, error) {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}
		return f, nil
	}

	def := &Definition{}

	f, err := open(SegdefsFile)
	if err != nil {
		return nil, err
	}
	def.Pullup, err = ParseSegdefs(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	f, err = open(TransdefsFile)
	if err != nil {
		return nil, err
	}
	def.Transistors, err = ParseTransdefs(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	f, err = open(NodenamesFile)
	if err != nil {
		return nil, err
	}
	def.Names, err = ParseNodenames(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	var ok bool
	if def.VSS, ok = def.Names["vss"]; !ok {
		return nil, curated.Errorf(LoadError, "no vss node")
	}
	if def.VCC, ok = def.Names["vcc"]; !ok {
		return nil, curated.Errorf(LoadError, "no vcc node")
	}

	// nodes that have no segments are not pulled up
	extend := func(n Node) {
		for int(n) >= len(def.Pullup) {
			def.Pullup = append(def.Pullup, false)
		}
	}
	for _, t := range def.Transistors {
		extend(t.Gate)
		extend(t.C1)
		extend(t.C2)
	}
	for _, n := range def.Names {
		extend(n)
	}

	logger.Logf(logger.Allow, "netlist", "loaded %d nodes and %d transistors from %s",
		def.NumNodes(), len(def.Transistors), dir)

	return def, nil
}
