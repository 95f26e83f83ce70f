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

package config

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/jetsetilly/gopherchips/curated"
	"github.com/jetsetilly/gopherchips/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvVarPrefix is the prefix of all environment variables.
const EnvVarPrefix = "GOPHERCHIPS"

// ConfigError is the pattern of errors returned by the package.
const ConfigError = "config: %v"

var replacer = strings.NewReplacer(".", "_")

// Config is the complete set of settings.
type Config struct {
	Netlist Netlist `mapstructure:"netlist" yaml:"netlist"`
	Machine Machine `mapstructure:"machine" yaml:"machine"`
	Trace   Trace   `mapstructure:"trace" yaml:"trace"`
	Bench   Bench   `mapstructure:"bench" yaml:"bench"`
	Log     Log     `mapstructure:"log" yaml:"log"`
}

// Netlist settings.
type Netlist struct {
	// directory containing the visual6502 data files
	Dir string `mapstructure:"dir" yaml:"dir"`

	MaxIterations int `mapstructure:"max_iterations" yaml:"max_iterations"`
}

// Machine settings.
type Machine struct {
	// z80 or 6502
	Family string `mapstructure:"family" yaml:"family"`

	// size of RAM in bytes
	RAM int `mapstructure:"ram" yaml:"ram"`
}

// Trace settings.
type Trace struct {
	// number of ticks to trace
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// Bench settings.
type Bench struct {
	Duration string `mapstructure:"duration" yaml:"duration"`

	// none, cpu, mem or both
	Profile string `mapstructure:"profile" yaml:"profile"`

	Statsview bool `mapstructure:"statsview" yaml:"statsview"`
}

// Log settings.
type Log struct {
	// echo log entries to stderr as they are made
	Echo bool `mapstructure:"echo" yaml:"echo"`
}

// Default returns the default settings.
func Default() *Config {
	return &Config{
		Netlist: Netlist{
			MaxIterations: 100,
		},
		Machine: Machine{
			Family: "z80",
			RAM:    0x10000,
		},
		Trace: Trace{
			Limit: 1000,
		},
		Bench: Bench{
			Duration: "5s",
			Profile:  "none",
		},
	}
}

// BenchDuration returns the bench duration as a time.Duration.
func (cfg *Config) BenchDuration() (time.Duration, error) {
	d, err := time.ParseDuration(cfg.Bench.Duration)
	if err != nil {
		return 0, curated.Errorf(ConfigError, err)
	}
	return d, nil
}

// Load the settings. The file is optional and an empty string means that no
// file is used. A file that does not exist is noted in the log but is not an
// error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	cfg := Default()

	// viper only overrides keys that it already knows about. the defaults
	// are set for every key and each key is bound to its environment
	// variable
	v.AutomaticEnv()
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)
	if err := bindVars(v, reflect.ValueOf(*cfg), ""); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		fi, err := os.Stat(cfgFile)
		switch {
		case err != nil:
			logger.Logf(logger.Allow, "config", "no config file (%s)", cfgFile)
		case fi.IsDir():
			return nil, curated.Errorf(ConfigError, fmt.Sprintf("%s is a directory", cfgFile))
		default:
			v.SetConfigFile(cfgFile)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, curated.Errorf(ConfigError, err)
			}
			logger.Logf(logger.Allow, "config", "loaded %s", cfgFile)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, curated.Errorf(ConfigError, err)
	}

	return cfg, nil
}

// set the default of every leaf setting and bind it to its environment
// variable
func bindVars(v *viper.Viper, val reflect.Value, prefix string) error {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		tag = prefix + tag

		if field.Type.Kind() == reflect.Struct {
			if err := bindVars(v, val.Field(i), tag+"."); err != nil {
				return err
			}
			continue
		}

		v.SetDefault(tag, val.Field(i).Interface())
		if err := v.BindEnv(tag); err != nil {
			return curated.Errorf(ConfigError, err)
		}
	}
	return nil
}

// Write the settings as YAML. The output can be used as a config file.
func Write(w io.Writer, cfg *Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return curated.Errorf(ConfigError, err)
	}
	if _, err := w.Write(b); err != nil {
		return curated.Errorf(ConfigError, err)
	}
	return nil
}
