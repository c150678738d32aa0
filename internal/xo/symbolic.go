// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/go-air/viable/config"
	"github.com/go-air/viable/logic"
	"github.com/go-air/viable/z"
)

// Set is a domain kept as a predicate over the bits of its width.  It is
// exact.
type Set struct {
	b *logic.Bits
	s logic.Node
}

// Node returns the predicate of d.
func (d Set) Node() logic.Node {
	return d.s
}

func (d Set) Width() int {
	return d.b.Width()
}

func (d Set) IsEmpty() bool {
	return d.b.C().IsFalse(d.s)
}

func (d Set) Contains(val *big.Int) bool {
	return d.b.Contains(d.s, val)
}

func (d Set) Find(hint *big.Int) (z.Find, *big.Int) {
	return d.b.FindHint(d.s, hint)
}

func (d Set) Count() *big.Int {
	return d.b.Count(d.s)
}

func (d Set) Values(f func(*big.Int) bool) {
	d.b.Values(d.s, f)
}

func (d Set) Inexact() bool {
	return false
}

// String lists up to 8 values of d.
func (d Set) String() string {
	buf := bytes.NewBufferString("{")
	i := 0
	d.Values(func(v *big.Int) bool {
		if i == 8 {
			buf.WriteString(" ...")
			return false
		}
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(v.String())
		i++
		return true
	})
	buf.WriteByte('}')
	return buf.String()
}

type symbolic struct{}

// NewSymbolic returns the strategy keeping domains as Sets.
func NewSymbolic() Strategy {
	return symbolic{}
}

func (symbolic) Name() config.Strategy {
	return config.Symbolic
}

func (symbolic) Full(b *logic.Bits) Domain {
	return Set{b: b, s: b.C().T}
}

func (y symbolic) IntersectEq(d Domain, a, b *big.Int, pos bool) Domain {
	set := y.set(d)
	return set.and(set.b.EqZero(a, b), pos)
}

func (y symbolic) IntersectUle(d Domain, a, b, c, e *big.Int, pos bool) Domain {
	set := y.set(d)
	return set.and(set.b.Ule(a, b, c, e), pos)
}

func (y symbolic) Exclude(d Domain, val *big.Int) Domain {
	set := y.set(d)
	return set.and(set.b.Point(val), false)
}

func (symbolic) readStats(st *Stats) {}

func (symbolic) set(d Domain) Set {
	set, ok := d.(Set)
	if !ok {
		panic(fmt.Sprintf("xo: symbolic strategy given %T", d))
	}
	return set
}

func (d Set) and(p logic.Node, pos bool) Set {
	c := d.b.C()
	if !pos {
		p = c.Not(p)
	}
	return Set{b: d.b, s: c.And(d.s, p)}
}
