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

// Package config loads the settings used by the command line tools.
//
// Settings come from three places. In increasing order of priority: the
// defaults returned by Default(), an optional YAML file and environment
// variables. Environment variables are named after the setting with the
// GOPHERCHIPS prefix, for example GOPHERCHIPS_NETLIST_DIR for netlist.dir.
package config
