// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package logic

import "math/big"

// Vec is a fixed width bit-vector of predicates, least significant bit
// first.  Arithmetic on Vecs is modulo 2^len.
type Vec []Node

// Const returns the constant vector of width n holding the n low bits of
// val.  val must not be negative.
func (c *C) Const(n int, val *big.Int) Vec {
	v := make(Vec, n)
	for i := range v {
		if val.Bit(i) == 1 {
			v[i] = c.T
		} else {
			v[i] = c.F
		}
	}
	return v
}

// Add returns x + y with a ripple carry adder.
func (c *C) Add(x, y Vec) Vec {
	checkWidths(x, y)
	res := make(Vec, len(x))
	carry := c.F
	for i := range x {
		t := c.Xor(x[i], y[i])
		res[i] = c.Xor(t, carry)
		carry = c.Or(c.And(x[i], y[i]), c.And(carry, t))
	}
	return res
}

// Shl returns x shifted left by k bits, keeping the width of x.
func (c *C) Shl(x Vec, k int) Vec {
	res := make(Vec, len(x))
	for i := range res {
		if i < k {
			res[i] = c.F
			continue
		}
		res[i] = x[i-k]
	}
	return res
}

// MulConst returns a*x as a sum of shifted copies of x, one per set bit of
// a below the width of x.
func (c *C) MulConst(x Vec, a *big.Int) Vec {
	res := c.Const(len(x), new(big.Int))
	for j := range x {
		if a.Bit(j) == 0 {
			continue
		}
		res = c.Add(res, c.Shl(x, j))
	}
	return res
}

// Affine returns a*x + b.
func (c *C) Affine(x Vec, a, b *big.Int) Vec {
	return c.Add(c.MulConst(x, a), c.Const(len(x), b))
}

// IsZero returns the predicate "x == 0".
func (c *C) IsZero(x Vec) Node {
	return c.Not(c.Ors(x...))
}

// Eq returns the predicate "x == y".
func (c *C) Eq(x, y Vec) Node {
	checkWidths(x, y)
	same := make([]Node, len(x))
	for i := range x {
		same[i] = c.Iff(x[i], y[i])
	}
	return c.Ands(same...)
}

// Ule returns the predicate "x <= y" with x and y read as unsigned
// integers.
func (c *C) Ule(x, y Vec) Node {
	checkWidths(x, y)
	// le holds x[0..i) <= y[0..i).  Bit i decides when x and y differ
	// there, and then x <= y iff y has it set.
	le := c.T
	for i := range x {
		le = c.Choice(c.Iff(x[i], y[i]), le, y[i])
	}
	return le
}

func checkWidths(x, y Vec) {
	if len(x) != len(y) {
		panic("logic: vector width mismatch")
	}
}
