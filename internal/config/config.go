// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ostafen/srf/internal/srf"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	DefaultConfigName = "srf" // Looked up as srf.yaml in the working directory
	EnvPrefix         = "SRF"
)

var Formats = []string{"text", "json", "xml"}

type PSTH struct {
	BinSize float64 `mapstructure:"bin_size"` // Overrides the header bin size when > 0
	TMin    float64 `mapstructure:"t_min"`
	TMax    float64 `mapstructure:"t_max"` // Histogram range is taken from the header when TMax <= TMin
}

// Config holds the settings shared by all commands.
type Config struct {
	Revision string `mapstructure:"revision"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	Mmap     bool   `mapstructure:"mmap"`
	Format   string `mapstructure:"format"`
	PSTH     PSTH   `mapstructure:"psth"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"revision":  "revision",
	"log-level": "log_level",
	"log-file":  "log_file",
	"mmap":      "mmap",
	"format":    "format",
	"bin-size":  "psth.bin_size",
	"t-min":     "psth.t_min",
	"t-max":     "psth.t_max",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("revision", srf.RevisionCurrent.String())
	v.SetDefault("log_level", "WARN")
	v.SetDefault("log_file", "")
	v.SetDefault("mmap", false)
	v.SetDefault("format", "text")
	v.SetDefault("psth.bin_size", 0.0)
	v.SetDefault("psth.t_min", 0.0)
	v.SetDefault("psth.t_max", 0.0)
}

// Load resolves the configuration of cmd. Precedence, highest first: flags set
// on the command line, SRF_* environment variables, the config file, defaults.
// The config file is the one named by the --config flag, or srf.yaml in the
// working directory if present.
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	if err := readConfigFile(v, cmd); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Validate checks the values that cannot be validated by the type system.
func (c Config) Validate() error {
	if _, err := srf.ParseRevision(c.Revision); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.PSTH.BinSize < 0 {
		return fmt.Errorf("invalid configuration: negative bin size %g", c.PSTH.BinSize)
	}
	return nil
}

// ValidateFormat checks the output format. Only commands that print in the
// configured format call it, so a stray format setting does not break the others.
func (c Config) ValidateFormat() error {
	for _, f := range Formats {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid configuration: unknown format %q (expected one of %s)", c.Format, strings.Join(Formats, ", "))
}

// DecoderRevision returns the sentinel layout selected by the configuration.
func (c Config) DecoderRevision() srf.Revision {
	rev, err := srf.ParseRevision(c.Revision)
	if err != nil {
		return srf.RevisionCurrent
	}
	return rev
}
