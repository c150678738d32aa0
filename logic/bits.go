// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package logic

import (
	"fmt"
	"math/big"

	"github.com/go-air/viable/z"
)

// Bits is the encoding of an unsigned integer of a fixed width as levels of
// a circuit: bit i of the integer is level i.
//
// Predicates built from a Bits only depend on the levels below its width, so
// the same predicate means the same set of integers for every variable of
// that width.
type Bits struct {
	c    *C
	n    int
	x    Vec
	mod  *big.Int
	drop uint // levels above the width, for counting
}

// NewBits creates the encoding of width n in c.
func NewBits(c *C, n int) *Bits {
	if n < 0 || n > c.levels {
		panic(fmt.Sprintf("logic: width %d out of range [0,%d]", n, c.levels))
	}
	x := make(Vec, n)
	for i := range x {
		x[i] = c.Lit(i, true)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return &Bits{c: c, n: n, x: x, mod: mod, drop: uint(c.levels - n)}
}

// C returns the circuit of b.
func (b *Bits) C() *C {
	return b.c
}

// Width returns the number of bits of b.
func (b *Bits) Width() int {
	return b.n
}

// Mod returns a new copy of 2^Width().
func (b *Bits) Mod() *big.Int {
	return new(big.Int).Set(b.mod)
}

// Var returns the vector of the encoded integer.
func (b *Bits) Var() Vec {
	return b.x
}

// Const returns the constant vector of val mod 2^Width().
func (b *Bits) Const(val *big.Int) Vec {
	return b.c.Const(b.n, b.Reduce(val))
}

// Reduce returns a new integer equal to x mod 2^Width(), in [0, 2^Width()).
func (b *Bits) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, b.mod)
}

// Point returns the predicate satisfied by exactly val.
func (b *Bits) Point(val *big.Int) Node {
	return b.c.Eq(b.x, b.Const(val))
}

// EqZero returns the set of x with a*x + c == 0.
func (b *Bits) EqZero(a, c *big.Int) Node {
	return b.c.IsZero(b.c.Affine(b.x, b.Reduce(a), b.Reduce(c)))
}

// Ule returns the set of x with a*x + c <= d*x + e, unsigned.
//
// EqZero and Ule build the diagrams of every bit of the product a*x.
// With coefficients having many set bits those grow exponentially in the
// width, so widths above about 20 are only practical with sparse
// coefficients.
func (b *Bits) Ule(a, c, d, e *big.Int) Node {
	lhs := b.c.Affine(b.x, b.Reduce(a), b.Reduce(c))
	rhs := b.c.Affine(b.x, b.Reduce(d), b.Reduce(e))
	return b.c.Ule(lhs, rhs)
}

// Interval returns the set of x in the half open modular interval
// [lo, hi).  lo == hi denotes every value.
func (b *Bits) Interval(lo, hi *big.Int) Node {
	lo, hi = b.Reduce(lo), b.Reduce(hi)
	if lo.Cmp(hi) == 0 {
		return b.c.T
	}
	ge := b.c.Ule(b.c.Const(b.n, lo), b.x)
	lt := b.c.Not(b.c.Ule(b.c.Const(b.n, hi), b.x))
	if lo.Cmp(hi) < 0 {
		return b.c.And(ge, lt)
	}
	return b.c.Or(ge, lt)
}

// Contains returns whether val is in the set s.
func (b *Bits) Contains(s Node, val *big.Int) bool {
	return !b.c.IsFalse(b.c.And(s, b.Point(val)))
}

// Count returns the number of values in s.
func (b *Bits) Count(s Node) *big.Int {
	n := b.c.bdd.Satcount(s)
	return n.Rsh(n, b.drop)
}

// Min returns the least value of s, and false if s is empty.
func (b *Bits) Min(s Node) (*big.Int, bool) {
	return b.extreme(s, false)
}

// Max returns the greatest value of s, and false if s is empty.
func (b *Bits) Max(s Node) (*big.Int, bool) {
	return b.extreme(s, true)
}

func (b *Bits) extreme(s Node, prefer bool) (*big.Int, bool) {
	c := b.c
	if c.IsFalse(s) {
		return nil, false
	}
	val := new(big.Int)
	for i := b.n - 1; i >= 0; i-- {
		bit := prefer
		t := c.And(s, c.Lit(i, bit))
		if c.IsFalse(t) {
			bit = !bit
			t = c.And(s, c.Lit(i, bit))
		}
		if bit {
			val.SetBit(val, i, 1)
		}
		s = t
	}
	return val, true
}

// FindHint finds a value in s, following the bits of hint from the most
// significant one down for as long as s allows it.  If hint is in s, then
// hint is the value found.
//
// FindHint returns z.FindSingleton if s has exactly one value,
// z.FindMultiple if it has more, and z.FindEmpty with a nil value if s is
// empty.
func (b *Bits) FindHint(s Node, hint *big.Int) (z.Find, *big.Int) {
	c := b.c
	if c.IsFalse(s) {
		return z.FindEmpty, nil
	}
	hint = b.Reduce(hint)
	unique := true
	val := new(big.Int)
	for i := b.n - 1; i >= 0; i-- {
		bit := hint.Bit(i) == 1
		t := c.And(s, c.Lit(i, bit))
		u := c.And(s, c.Lit(i, !bit))
		if c.IsFalse(t) {
			bit = !bit
			t = u
		} else if !c.IsFalse(u) {
			unique = false
		}
		if bit {
			val.SetBit(val, i, 1)
		}
		s = t
	}
	if unique {
		return z.FindSingleton, val
	}
	return z.FindMultiple, val
}

// Values calls f on each value of s in ascending order until f returns
// false.  Values takes time exponential in the width and is meant for
// debugging small instances.
func (b *Bits) Values(s Node, f func(*big.Int) bool) {
	b.values(s, b.n-1, new(big.Int), f)
}

func (b *Bits) values(s Node, i int, val *big.Int, f func(*big.Int) bool) bool {
	c := b.c
	if c.IsFalse(s) {
		return true
	}
	if i < 0 {
		return f(new(big.Int).Set(val))
	}
	if !b.values(c.And(s, c.Lit(i, false)), i-1, val, f) {
		return false
	}
	val.SetBit(val, i, 1)
	ok := b.values(c.And(s, c.Lit(i, true)), i-1, val, f)
	val.SetBit(val, i, 0)
	return ok
}
