package util

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Config is the on-disk shape of a corelangc.yaml project file. Fields left
// zero/empty leave the corresponding Options field untouched, so Config
// only ever widens defaults that command-line flags can still override.
//
// Layered config file support: flags set on the command line always win
// over whatever a project's corelangc.yaml sets.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Verbose  bool   `yaml:"verbose"`
}

// ---------------------
// ----- functions -----
// ---------------------

// LoadConfig reads and parses a YAML config file. A missing file is not an
// error: it returns a zero Config so callers can layer flags over it
// unconditionally.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Apply layers cfg under o: it fills only the fields o left at their zero
// value, so flags explicitly set on the command line always win.
func (cfg Config) Apply(o Options) Options {
	if o.LogLevel == "" {
		o.LogLevel = cfg.LogLevel
	}
	if !o.Verbose {
		o.Verbose = cfg.Verbose
	}
	return o
}
