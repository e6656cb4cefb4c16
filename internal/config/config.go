// SPDX-License-Identifier: EPL-2.0

// Package config loads the command line configuration: built-in defaults,
// then an optional YAML file, then AUDWAVE_* environment variables.
// Command line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ik5/audwave/peaks"
	"github.com/ik5/audwave/waveform"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "audwave.yaml"

// EnvPrefix starts every environment override.
const EnvPrefix = "AUDWAVE_"

// Config is the file layout:
//
//	verbose: true
//	source:
//	  convert_to: wav
//	waveform:
//	  method: rms
//	  auto_width: 10
//	data:
//	  pixels_per_second: 20
//	  bits: 8
type Config struct {
	Verbose  bool            `yaml:"verbose"`
	Source   SourceConfig    `yaml:"source"`
	Waveform waveform.Config `yaml:"waveform"`
	Data     DataConfig      `yaml:"data"`
}

// SourceConfig controls how input files are staged before decoding.
type SourceConfig struct {
	SetExtension string `yaml:"set_extension"`
	ConvertTo    string `yaml:"convert_to"`
}

// DataConfig holds the peak data options.
type DataConfig struct {
	peaks.Options `yaml:",inline"`
	// Tool is the audiowaveform binary to run. Empty computes peaks natively.
	Tool string `yaml:"tool"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Waveform: waveform.DefaultConfig(),
		Data:     DataConfig{Options: peaks.DefaultOptions()},
	}
}

// Load reads the configuration at path, or DefaultFile when path is empty
// and that file exists, then applies environment overrides and validates
// the result.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(lookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the waveform and peak sections.
func (c *Config) Validate() error {
	return errors.Join(c.Waveform.Validate(), c.Data.Options.Validate())
}

// applyEnvOverrides reads AUDWAVE_<FIELD> for every setting, where FIELD is
// the upper cased YAML key (AUDWAVE_AUTO_WIDTH, AUDWAVE_BITS, ...).
func (c *Config) applyEnvOverrides(lookupEnv func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookupEnv(EnvPrefix + key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	if v, ok := lookupEnv(EnvPrefix + "METHOD"); ok {
		c.Waveform.Method = waveform.Method(v)
	}
	str("COLOR", &c.Waveform.Color)
	str("BACKGROUND_COLOR", &c.Waveform.BackgroundColor)
	str("SET_EXTENSION", &c.Source.SetExtension)
	str("CONVERT_TO", &c.Source.ConvertTo)
	str("TOOL", &c.Data.Tool)

	errs := []error{
		num("WIDTH", &c.Waveform.Width),
		num("HEIGHT", &c.Waveform.Height),
		num("SAMPLE_WIDTH", &c.Waveform.SampleWidth),
		num("GAP_WIDTH", &c.Waveform.GapWidth),
		num("PIXELS_PER_SECOND", &c.Data.PixelsPerSecond),
		num("BITS", &c.Data.Bits),
	}

	if v, ok := lookupEnv(EnvPrefix + "AUTO_WIDTH"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sAUTO_WIDTH: %w", EnvPrefix, err))
		} else {
			c.Waveform.AutoWidth = f
		}
	}
	if v, ok := lookupEnv(EnvPrefix + "VERBOSE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sVERBOSE: %w", EnvPrefix, err))
		} else {
			c.Verbose = b
		}
	}

	return errors.Join(errs...)
}
