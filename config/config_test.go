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

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/gopherchips/config"
	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/test"
)

func TestDefault(t *testing.T) {
	cfg, err := config.Load("")
	test.DemandSuccess(t, err)
	test.Equate(t, cfg.Machine.Family, "z80")
	test.Equate(t, cfg.Machine.RAM, 0x10000)
	test.Equate(t, cfg.Netlist.MaxIterations, 100)

	d, err := cfg.BenchDuration()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 5*time.Second)

	// a missing file is not an error
	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	test.ExpectSuccess(t, err)

	// a directory is
	_, err = config.Load(t.TempDir())
	test.ExpectSuccess(t, curated.Is(err, config.ConfigError))
}

func TestFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "gopherchips.yaml")
	err := os.WriteFile(fn, []byte(strings.Join([]string{
		"machine:",
		"  family: 6502",
		"netlist:",
		"  max_iterations: 250",
		"bench:",
		"  duration: 250ms",
		"  statsview: true",
		"",
	}, "\n")), 0o644)
	test.DemandSuccess(t, err)

	cfg, err := config.Load(fn)
	test.DemandSuccess(t, err)
	test.Equate(t, cfg.Machine.Family, "6502")
	test.Equate(t, cfg.Netlist.MaxIterations, 250)
	test.ExpectSuccess(t, cfg.Bench.Statsview)

	// settings not in the file keep their default
	test.Equate(t, cfg.Machine.RAM, 0x10000)
	test.Equate(t, cfg.Bench.Profile, "none")

	d, err := cfg.BenchDuration()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, d, 250*time.Millisecond)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("GOPHERCHIPS_NETLIST_DIR", "/tmp/visual6502")
	t.Setenv("GOPHERCHIPS_MACHINE_RAM", "16384")
	t.Setenv("GOPHERCHIPS_LOG_ECHO", "true")
	t.Setenv("GOPHERCHIPS_NETLIST_MAX_ITERATIONS", "500")

	cfg, err := config.Load("")
	test.DemandSuccess(t, err)
	test.Equate(t, cfg.Netlist.Dir, "/tmp/visual6502")
	test.Equate(t, cfg.Machine.RAM, 16384)
	test.ExpectSuccess(t, cfg.Log.Echo)
	test.Equate(t, cfg.Netlist.MaxIterations, 500)

	// settings not in the environment keep their default
	test.Equate(t, cfg.Machine.Family, "z80")
}

func TestWrite(t *testing.T) {
	cfg := config.Default()
	cfg.Trace.Limit = 42

	var w test.Writer
	test.DemandSuccess(t, config.Write(&w, cfg))
	test.ExpectSuccess(t, strings.Contains(w.String(), "limit: 42"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "max_iterations: 100"))

	// written settings can be loaded again
	fn := filepath.Join(t.TempDir(), "gopherchips.yaml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(w.String()), 0o644))
	cfg, err := config.Load(fn)
	test.DemandSuccess(t, err)
	test.Equate(t, cfg.Trace.Limit, 42)
}
