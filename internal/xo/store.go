// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"fmt"

	"github.com/go-air/viable/z"
)

type saved struct {
	v z.Var
	d Domain
}

// Store holds the current domain and width of each variable, together
// with a trail of saved domains.
//
// Variables are created and destroyed in stack order.  The trail is undone
// in reverse order of saves.
type Store struct {
	widths []int
	doms   []Domain
	trail  []saved
	saves  []int // outstanding saves per variable, nil unless tracked

	stSaves    int64
	stRestores int64
}

// NewStore creates an empty store.  If trackSaves, the store counts the
// trail entries of each variable and refuses to pop a variable which has
// some.
func NewStore(trackSaves bool) *Store {
	st := &Store{}
	if trackSaves {
		st.saves = make([]int, 0, 16)
	}
	return st
}

// Push creates a variable of width w and initial domain d.
func (st *Store) Push(w int, d Domain) z.Var {
	v := z.Var(len(st.doms))
	st.widths = append(st.widths, w)
	st.doms = append(st.doms, d)
	if st.saves != nil {
		st.saves = append(st.saves, 0)
	}
	return v
}

// Pop destroys the last variable pushed.
func (st *Store) Pop() {
	n := len(st.doms)
	if n == 0 {
		panic("xo: pop of empty store")
	}
	if st.saves != nil {
		if k := st.saves[n-1]; k != 0 {
			panic(fmt.Sprintf("xo: pop of %s with %d saves on the trail", z.Var(n-1), k))
		}
		st.saves = st.saves[:n-1]
	}
	st.doms[n-1] = nil
	st.widths = st.widths[:n-1]
	st.doms = st.doms[:n-1]
}

// Save pushes the current domain of v on the trail.
func (st *Store) Save(v z.Var) {
	st.check(v)
	st.trail = append(st.trail, saved{v: v, d: st.doms[v]})
	if st.saves != nil {
		st.saves[v]++
	}
	st.stSaves++
}

// Restore pops the last trail entry, making its domain current again, and
// returns its variable.
func (st *Store) Restore() z.Var {
	n := len(st.trail)
	if n == 0 {
		panic("xo: restore of empty trail")
	}
	e := st.trail[n-1]
	st.trail[n-1] = saved{}
	st.trail = st.trail[:n-1]
	st.check(e.v)
	st.doms[e.v] = e.d
	if st.saves != nil {
		st.saves[e.v]--
	}
	st.stRestores++
	return e.v
}

// RestoreTo restores until the trail has length n.
func (st *Store) RestoreTo(n int) {
	if n < 0 || n > len(st.trail) {
		panic(fmt.Sprintf("xo: restore to %d with trail of length %d", n, len(st.trail)))
	}
	for len(st.trail) > n {
		st.Restore()
	}
}

// Current returns the current domain of v.
func (st *Store) Current(v z.Var) Domain {
	st.check(v)
	return st.doms[v]
}

// Replace sets the current domain of v to d without saving.
func (st *Store) Replace(v z.Var, d Domain) {
	st.check(v)
	st.doms[v] = d
}

// Width returns the width of v.
func (st *Store) Width(v z.Var) int {
	st.check(v)
	return st.widths[v]
}

// Len returns the number of variables.
func (st *Store) Len() int {
	return len(st.doms)
}

// TrailLen returns the length of the trail.
func (st *Store) TrailLen() int {
	return len(st.trail)
}

// Outstanding returns the number of trail entries of v, or -1 if saves are
// not tracked.
func (st *Store) Outstanding(v z.Var) int {
	st.check(v)
	if st.saves == nil {
		return -1
	}
	return st.saves[v]
}

func (st *Store) check(v z.Var) {
	if int(v) >= len(st.doms) {
		panic(fmt.Sprintf("xo: %s out of range [0,%d)", v, len(st.doms)))
	}
}

func (st *Store) readStats(s *Stats) {
	s.Vars = len(st.doms)
	s.TrailLen = len(st.trail)
	s.Saves += st.stSaves
	st.stSaves = 0
	s.Restores += st.stRestores
	st.stRestores = 0
}
