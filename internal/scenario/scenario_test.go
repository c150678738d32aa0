// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package scenario

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-air/viable"
	"github.com/go-air/viable/config"
	"github.com/sebdah/goldie/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, path := range paths {
		sc, err := LoadFile(path)
		require.NoError(t, err)
		t.Run(sc.Name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			buf := &bytes.Buffer{}
			_, err := Run(sc, buf, viable.WithLogger(log))
			require.NoError(t, err)
			g.Assert(t, sc.Name, buf.Bytes())
			assert.NotEmpty(t, hook.AllEntries())
		})
	}
}

func TestLoad(t *testing.T) {
	sc, err := Load(strings.NewReader(`
name: tiny
steps:
  - op: push
    width: 3
  - op: exclude
    value: 0x7
  - op: expect
    values: [0, 1, 2, 3, 4, 5, 6]
`))
	require.NoError(t, err)
	assert.Equal(t, config.Symbolic, sc.Config.Strategy)
	assert.Equal(t, 64, sc.Config.MaxWidth)
	require.Len(t, sc.Steps, 3)
	assert.Equal(t, int64(7), sc.Steps[1].Value.Get().Int64())
	assert.Len(t, sc.Steps[2].Values, 7)

	buf := &bytes.Buffer{}
	v, err := Run(sc, buf)
	require.NoError(t, err)
	assert.Equal(t, 1, v.NumVars())
	assert.Equal(t, "push w=3 -> v0\nexclude v0 7 -> {0 1 2 3 4 5 6}\nexpect v0 ok\n", buf.String())
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name, src, msg string
	}{
		{"unknown field", "name: x\nstep: []\n", "parsing scenario"},
		{"bad integer", "name: x\nsteps:\n  - op: exclude\n    value: seven\n", "bad integer"},
		{"no name", "steps:\n  - op: pop\n", "name is required"},
		{"no steps", "name: x\n", "steps must be non-empty"},
		{"unknown op", "name: x\nsteps:\n  - op: jump\n", "unknown op"},
		{"wide", "name: x\nconfig:\n  maxWidth: 4\nsteps:\n  - op: push\n    width: 5\n", "width 5"},
		{"mark", "name: x\nsteps:\n  - op: mark\n", "needs a name"},
		{"config", "name: x\nconfig:\n  strategy: magic\nsteps:\n  - op: pop\n", "unknown strategy"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestRunErrors(t *testing.T) {
	for _, tc := range []struct {
		name, src, msg string
	}{
		{"expect values", "name: x\nsteps:\n  - op: push\n    width: 2\n  - op: expect\n    values: [1]\n",
			"values {0 1 2 3}, want {1}"},
		{"expect count", "name: x\nsteps:\n  - op: push\n    width: 2\n  - op: expect\n    count: 3\n",
			"count 4, want 3"},
		{"expect empty", "name: x\nsteps:\n  - op: push\n    width: 2\n  - op: expect\n    empty: true\n",
			"empty is false"},
		{"missing var", "name: x\nsteps:\n  - op: push\n    width: 2\n  - op: save\n    var: 1\n",
			"v1 does not exist"},
		{"restore", "name: x\nsteps:\n  - op: restore\n", "trail is empty"},
		{"pop", "name: x\nsteps:\n  - op: pop\n", "no variable to pop"},
		{"undo", "name: x\nsteps:\n  - op: undo\n    name: L\n", "unknown mark"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sc, err := Load(strings.NewReader(tc.src))
			require.NoError(t, err)
			log, _ := test.NewNullLogger()
			_, err = Run(sc, &bytes.Buffer{}, viable.WithLogger(log))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
			assert.Contains(t, err.Error(), "scenario x: step")
		})
	}
}
