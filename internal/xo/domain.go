// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"math/big"

	"github.com/go-air/viable/config"
	"github.com/go-air/viable/logic"
	"github.com/go-air/viable/z"
)

// Domain is the set of values of one variable at one point in time.
//
// Domains are immutable: narrowing returns a new Domain, so the trail may
// keep old ones by reference.  Values passed to a Domain are in
// [0, 2^Width()).
type Domain interface {
	Width() int
	IsEmpty() bool
	Contains(val *big.Int) bool
	Find(hint *big.Int) (z.Find, *big.Int)
	Count() *big.Int
	// Values calls f on each value in ascending order until f returns false.
	Values(f func(*big.Int) bool)
	// Inexact returns whether the domain may hold values which an
	// applied constraint excludes.
	Inexact() bool
	String() string
}

// Strategy is a representation of domains together with the narrowing
// operations on it.  A Strategy only accepts the Domains it creates.
type Strategy interface {
	Name() config.Strategy

	// Full returns the domain holding every value of width b.Width().
	Full(b *logic.Bits) Domain

	// IntersectEq keeps the x of d with a*x + b == 0 if pos, and the
	// others if not.
	IntersectEq(d Domain, a, b *big.Int, pos bool) Domain

	// IntersectUle keeps the x of d with a*x + b <= c*x + e if pos, and
	// the others if not.
	IntersectUle(d Domain, a, b, c, e *big.Int, pos bool) Domain

	// Exclude removes val from d.
	Exclude(d Domain, val *big.Int) Domain

	readStats(st *Stats)
}
