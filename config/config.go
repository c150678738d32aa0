// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package config holds the configuration of a viable domain tracker.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Strategy selects how domains are represented.
type Strategy string

const (
	// Symbolic keeps each domain as a decision diagram over the bits of
	// the variable.  It is exact.
	Symbolic Strategy = "symbolic"
	// Interval keeps each domain as one modular interval and narrows it
	// with cached constraint sets.  It is cheaper but partial.
	Interval Strategy = "interval"
)

// Imprecision selects what the interval strategy does with a narrowed set
// that is not a single modular interval.
type Imprecision string

const (
	// Over keeps a superset of the narrowed set.
	Over Imprecision = "over"
	// Under records the domain as empty.
	Under Imprecision = "under"
)

// MaxLevels bounds MaxWidth.
const MaxLevels = 1 << 16

// Config is the configuration of a tracker.
type Config struct {
	Strategy Strategy `yaml:"strategy"`

	// MaxWidth is the largest bit-width of any variable.  The decision
	// diagram is created with this many levels.
	MaxWidth int `yaml:"maxWidth"`

	// NodeSize and OpCacheSize are initial sizes of the decision diagram's
	// node table and operation cache; 0 selects the library defaults.
	NodeSize    int `yaml:"nodeSize"`
	OpCacheSize int `yaml:"opCacheSize"`

	// CacheCapacity is the number of constraint sets the interval
	// strategy keeps before evicting the least active half.
	CacheCapacity int `yaml:"cacheCapacity"`

	Imprecision Imprecision `yaml:"imprecision"`

	// TrackSaves counts outstanding saves per variable and panics when a
	// variable is popped while the trail still refers to it.
	TrackSaves bool `yaml:"trackSaves"`

	LogLevel string `yaml:"logLevel"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Strategy:      Symbolic,
		MaxWidth:      64,
		CacheCapacity: 1024,
		Imprecision:   Over,
		LogLevel:      logrus.InfoLevel.String(),
	}
}

// Load reads a YAML configuration from r.  Fields absent from r keep their
// default values.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrap(err, "decoding config")
	}
	return cfg, cfg.Validate()
}

// LoadFile reads a YAML configuration from the file at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), errors.Wrap(err, "opening config")
	}
	defer f.Close()
	cfg, err := Load(f)
	return cfg, errors.Wrapf(err, "config %s", path)
}

// Validate checks that c is usable.
func (c Config) Validate() error {
	switch c.Strategy {
	case Symbolic, Interval:
	default:
		return errors.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.MaxWidth < 1 || c.MaxWidth > MaxLevels {
		return errors.Errorf("maxWidth %d not in [1,%d]", c.MaxWidth, MaxLevels)
	}
	if c.NodeSize < 0 {
		return errors.Errorf("negative nodeSize %d", c.NodeSize)
	}
	if c.OpCacheSize < 0 {
		return errors.Errorf("negative opCacheSize %d", c.OpCacheSize)
	}
	if c.CacheCapacity < 1 {
		return errors.Errorf("cacheCapacity %d < 1", c.CacheCapacity)
	}
	switch c.Imprecision {
	case Over, Under:
	default:
		return errors.Errorf("unknown imprecision policy %q", c.Imprecision)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the log level of c.  An empty level is Info.
func (c Config) Level() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, errors.Wrap(err, "logLevel")
	}
	return lvl, nil
}

// NewLogger returns a logger writing to w at the level of c.
func (c Config) NewLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	if lvl, err := c.Level(); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
