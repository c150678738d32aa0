// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	cfg, err := Load(strings.NewReader(`
strategy: interval
maxWidth: 16
cacheCapacity: 8
imprecision: under
trackSaves: true
logLevel: debug
`))
	require.NoError(t, err)
	assert.Equal(t, Interval, cfg.Strategy)
	assert.Equal(t, 16, cfg.MaxWidth)
	assert.Equal(t, 8, cfg.CacheCapacity)
	assert.Equal(t, Under, cfg.Imprecision)
	assert.True(t, cfg.TrackSaves)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)
}

func TestLoadEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("maxWdith: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding config")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxWidth: 12\n"), 0o644))
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MaxWidth)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		mod  func(*Config)
		msg  string
	}{
		{"strategy", func(c *Config) { c.Strategy = "bdd" }, "unknown strategy"},
		{"width zero", func(c *Config) { c.MaxWidth = 0 }, "maxWidth"},
		{"width huge", func(c *Config) { c.MaxWidth = MaxLevels + 1 }, "maxWidth"},
		{"node size", func(c *Config) { c.NodeSize = -1 }, "nodeSize"},
		{"op cache", func(c *Config) { c.OpCacheSize = -1 }, "opCacheSize"},
		{"capacity", func(c *Config) { c.CacheCapacity = 0 }, "cacheCapacity"},
		{"imprecision", func(c *Config) { c.Imprecision = "exact" }, "imprecision"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "logLevel"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mod(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	log := cfg.NewLogger(io.Discard)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}
