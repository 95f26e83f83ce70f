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

package main

import (
	"fmt"
	"os"

	"github.com/jetsetilly/gopherchips/config"
	"github.com/jetsetilly/gopherchips/logger"
	"github.com/spf13/cobra"
)

// the value passed to os.Exit() when a command fails
const exitError = 10

var cfgFile string
var echoLog bool

// cfg is loaded by cobra.OnInitialize before any command runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "gopherchips",
	Short:         "tick accurate Z80 and 6502 emulation with a transistor level reference",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "configuration file")
	rootCmd.PersistentFlags().BoolVar(&echoLog, "log", false, "echo log entries to stderr")

	rootCmd.AddCommand(traceCmd())
	rootCmd.AddCommand(oracleCmd())
	rootCmd.AddCommand(benchCmd())
	rootCmd.AddCommand(netlistCmd())
	rootCmd.AddCommand(configCmd())
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(exitError)
	}

	if echoLog || cfg.Log.Echo {
		logger.SetEcho(os.Stderr)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(exitError)
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "print the current configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Write(cmd.OutOrStdout(), cfg)
		},
	}
}
