// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package viable_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/go-air/viable"
	"github.com/go-air/viable/config"
	"github.com/go-air/viable/z"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Example_decisionLevels() {
	g := viable.New()
	x := g.Push(4)

	// level 1: x <= 9
	level1 := g.TrailLen()
	g.IntersectUle(x, big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(9), true)

	// level 2: 2x + 2 == 0, then x != 7
	level2 := g.TrailLen()
	g.IntersectEq(big.NewInt(2), x, big.NewInt(2), true)
	fmt.Println(g.Values(x))
	g.AddNonViable(x, big.NewInt(7))
	fmt.Println(g.HasViable(x))

	g.PopViableTo(level2)
	fmt.Println(g.FindViable(x, big.NewInt(12)))
	g.PopViableTo(level1)
	fmt.Println(g.Count(x))
	// Output:
	// [7]
	// false
	// multiple 8
	// 16
}

func TestNewConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = "bogus"
	_, err := viable.NewConfig(cfg)
	require.Error(t, err)

	cfg = config.Default()
	cfg.Strategy = config.Interval
	g, err := viable.NewConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.Interval, g.Strategy())
	assert.Equal(t, config.Symbolic, viable.New().Strategy())
}

func TestConflictHandler(t *testing.T) {
	var got []z.Var
	g := viable.New(viable.WithConflictHandler(func(v z.Var) {
		got = append(got, v)
	}))
	x := g.Push(8)
	y := g.Push(8)
	g.IntersectUle(y, big.NewInt(0), big.NewInt(200), big.NewInt(1), big.NewInt(0), true)
	g.IntersectUle(y, big.NewInt(1), big.NewInt(0), big.NewInt(0), big.NewInt(100), true)
	assert.True(t, g.HasViable(x))
	assert.True(t, g.IsFalse(y))
	assert.Equal(t, []z.Var{y}, got)

	st := &viable.Stats{}
	g.ReadStats(st)
	assert.Equal(t, int64(1), st.Conflicts)
	assert.Equal(t, int64(2), st.UleNarrowings)
}

func TestWithLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	g := viable.New(viable.WithLogger(log))
	x := g.Push(2)
	g.AddNonViable(x, big.NewInt(2))
	g.Log(x)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "viable [0 1 3]", hook.LastEntry().Message)
	g.LogAll()
	assert.Len(t, hook.Entries, 2)
}

func TestScopes(t *testing.T) {
	g := viable.New()
	for w := 0; w < 5; w++ {
		v := g.Push(w)
		assert.Equal(t, z.Var(w), v)
		assert.Equal(t, w, g.Width(v))
		assert.Equal(t, int64(1)<<uint(w), g.Count(v).Int64())
	}
	assert.Equal(t, 5, g.NumVars())
	for i := 0; i < 5; i++ {
		g.Pop()
	}
	assert.Equal(t, 0, g.NumVars())
}

func TestPushPopViable(t *testing.T) {
	g := viable.New()
	x := g.Push(3)
	g.PushViable(x)
	g.IntersectEq(big.NewInt(1), x, big.NewInt(-5), true)
	assert.True(t, g.IsViable(x, big.NewInt(5)))
	assert.False(t, g.IsViable(x, big.NewInt(4)))
	assert.False(t, g.Inexact(x))
	g.PopViable()
	g.PopViable()
	assert.Equal(t, 0, g.TrailLen())
	assert.True(t, g.IsViable(x, big.NewInt(4)))
}
