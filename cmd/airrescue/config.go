// cmd/airrescue/config.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mmp/airrescue/util"
)

// Config holds the settings for a run. It can be given as a JSON file via
// -config; command-line flags that are explicitly set take precedence over
// values from the file.
type Config struct {
	Candidates string `json:"candidates"`
	Scenarios  string `json:"scenarios"`
	Seed       int64  `json:"seed"`
	Workers    int    `json:"workers"`
	Trials     int    `json:"trials"`
	Format     string `json:"format"`
	Archive    string `json:"archive"`
}

func LoadConfig(path string) (Config, error) {
	var c Config
	if path == "" {
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	if err := util.UnmarshalJSON(f, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ApplyFlags overrides the config's values with those of any flags in fs
// that were set on the command line.
func (c *Config) ApplyFlags(fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "candidates":
			c.Candidates = f.Value.String()
		case "scenarios":
			c.Scenarios = f.Value.String()
		case "seed":
			c.Seed = f.Value.(flag.Getter).Get().(int64)
		case "workers":
			c.Workers = f.Value.(flag.Getter).Get().(int)
		case "trials":
			c.Trials = f.Value.(flag.Getter).Get().(int)
		case "format":
			c.Format = f.Value.String()
		case "archive":
			c.Archive = f.Value.String()
		}
	})
}

func (c *Config) Validate() error {
	var e util.ErrorLogger
	if c.Candidates == "" {
		e.ErrorString("no candidate table specified (use -candidates)")
	}
	if c.Scenarios == "" {
		e.ErrorString("no scenario table specified (use -scenarios)")
	}
	if c.Trials < 0 {
		e.ErrorString("%d: trial count must not be negative (omit -trials to be prompted)", c.Trials)
	}
	if c.Workers < 0 {
		e.ErrorString("%d: worker count must not be negative", c.Workers)
	}
	return e.Err()
}
