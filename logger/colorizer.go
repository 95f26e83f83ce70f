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

package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	dimPen    = "\033[2m"
	normalPen = "\033[0m"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is dimmed so that the detail stands out. Coloring is only applied if
// the underlying writer is a terminal.
type Colorizer struct {
	out      io.Writer
	terminal bool
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	c := Colorizer{out: out}
	if f, ok := out.(*os.File); ok {
		c.terminal = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return c
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	if !c.terminal {
		return c.out.Write(p)
	}

	// find end of tag
	i := 0
	for i < len(p) && p[i] != ':' {
		i++
	}
	if i == len(p) {
		return c.out.Write(p)
	}

	_, err = io.WriteString(c.out, dimPen)
	if err != nil {
		return 0, err
	}
	m, err := c.out.Write(p[:i+1])
	n += m
	if err != nil {
		return n, err
	}
	_, err = io.WriteString(c.out, normalPen)
	if err != nil {
		return n, err
	}
	m, err = c.out.Write(p[i+1:])
	n += m

	return n, err
}
