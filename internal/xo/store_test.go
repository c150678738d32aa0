// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"testing"

	"github.com/go-air/viable/z"
	"github.com/stretchr/testify/assert"
)

func TestStoreTrail(t *testing.T) {
	b := testBits(t, 3)
	y := NewSymbolic()
	st := NewStore(false)
	v := st.Push(3, y.Full(b))
	w := st.Push(3, y.Full(b))
	assert.Equal(t, z.Var(1), w)
	assert.Equal(t, 2, st.Len())
	assert.Equal(t, -1, st.Outstanding(v))

	st.Save(v)
	st.Replace(v, y.Exclude(st.Current(v), bi(0)))
	st.Save(w)
	st.Replace(w, y.Exclude(st.Current(w), bi(1)))
	st.Save(v)
	st.Replace(v, y.Exclude(st.Current(v), bi(2)))
	assert.Equal(t, 3, st.TrailLen())
	assert.Equal(t, int64(6), st.Current(v).Count().Int64())

	assert.Equal(t, v, st.Restore())
	assert.Equal(t, int64(7), st.Current(v).Count().Int64())
	st.RestoreTo(0)
	assert.Equal(t, int64(8), st.Current(v).Count().Int64())
	assert.Equal(t, int64(8), st.Current(w).Count().Int64())

	s := NewStats()
	st.readStats(s)
	assert.Equal(t, int64(3), s.Saves)
	assert.Equal(t, int64(3), s.Restores)
	assert.Equal(t, 2, s.Vars)
}

func TestStoreTrackSaves(t *testing.T) {
	b := testBits(t, 2)
	y := NewSymbolic()
	st := NewStore(true)
	v := st.Push(2, y.Full(b))
	w := st.Push(2, y.Full(b))
	st.Save(v)
	st.Save(w)
	st.Save(w)
	assert.Equal(t, 1, st.Outstanding(v))
	assert.Equal(t, 2, st.Outstanding(w))
	assert.Panics(t, func() { st.Pop() })
	st.RestoreTo(1)
	assert.Equal(t, 0, st.Outstanding(w))
	st.Pop()
	assert.Equal(t, 1, st.Len())
	assert.Panics(t, func() { st.Width(w) })
	assert.Panics(t, func() { st.RestoreTo(-1) })
}

func TestBitMap(t *testing.T) {
	c := testBits(t, 0).C()
	m := NewBitMap(c)
	assert.Same(t, m.ForWidth(3), m.ForWidth(3))
	assert.Equal(t, 8, m.ForWidth(8).Width())
	assert.Panics(t, func() { m.ForWidth(9) })
	assert.Panics(t, func() { m.ForWidth(-1) })
	st := NewStore(false)
	v := st.Push(5, NewSymbolic().Full(m.ForWidth(5)))
	assert.Same(t, m.ForWidth(5), m.ForVar(st, v))
}
