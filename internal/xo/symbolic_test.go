// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"testing"

	"github.com/go-air/viable/config"
	"github.com/stretchr/testify/assert"
)

func TestSetString(t *testing.T) {
	b := testBits(t, 4)
	y := NewSymbolic()
	d := y.Full(b)
	assert.Equal(t, "{0 1 2 3 4 5 6 7 ...}", d.String())
	d = y.IntersectUle(d, bi(1), bi(0), bi(0), bi(2), true)
	assert.Equal(t, "{0 1 2}", d.String())
	d = y.IntersectEq(d, bi(0), bi(1), true)
	assert.Equal(t, "{}", d.String())
	assert.True(t, d.IsEmpty())
}

func TestStrategyMismatch(t *testing.T) {
	b := testBits(t, 4)
	sym := NewSymbolic()
	ivs := testIntervals(config.Over)
	assert.Panics(t, func() { sym.Exclude(ivs.Full(b), bi(1)) })
	assert.Panics(t, func() { ivs.Exclude(sym.Full(b), bi(1)) })
	assert.Equal(t, config.Symbolic, sym.Name())
	assert.Equal(t, config.Interval, ivs.Name())
}
