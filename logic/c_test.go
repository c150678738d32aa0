// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package logic_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/go-air/viable/logic"
)

func newC(t *testing.T, levels int) *logic.C {
	t.Helper()
	c, err := logic.NewC(levels)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewCBadLevels(t *testing.T) {
	if _, err := logic.NewC(0); err == nil {
		t.Errorf("created circuit with no levels")
	}
}

func TestCLogic(t *testing.T) {
	c := newC(t, 4)
	a, b := c.Lit(0, true), c.Lit(1, true)
	if !c.Same(c.And(c.T, b), b) {
		t.Errorf("t simp")
	}
	if !c.IsFalse(c.And(c.F, b)) {
		t.Errorf("f simp")
	}
	if !c.Same(c.And(a, a), a) {
		t.Errorf("= simp")
	}
	if !c.IsFalse(c.And(a, c.Not(a))) {
		t.Errorf("!= simp")
	}
	if !c.Same(c.And(a, b), c.And(b, a)) {
		t.Errorf("h simp")
	}
	if !c.IsTrue(c.Ors(a, c.Not(a))) {
		t.Errorf("excluded middle")
	}
	if !c.IsTrue(c.Ands()) || !c.IsFalse(c.Ors()) {
		t.Errorf("empty ands/ors")
	}
	if !c.Same(c.Choice(a, b, c.F), c.And(a, b)) {
		t.Errorf("choice")
	}
	if !c.Same(c.Xor(a, b), c.Not(c.Iff(a, b))) {
		t.Errorf("xor")
	}
}

func TestCLitRange(t *testing.T) {
	c := newC(t, 2)
	defer func() {
		if recover() == nil {
			t.Errorf("no panic on level out of range")
		}
	}()
	c.Lit(2, true)
}

// eval evaluates a predicate over the bits of a width n integer.
func eval(c *logic.C, n int, p logic.Node, x int64) bool {
	bs := logic.NewBits(c, n)
	return bs.Contains(p, big.NewInt(x))
}

func TestVecArith(t *testing.T) {
	const n = 4
	c := newC(t, n)
	bs := logic.NewBits(c, n)
	x := bs.Var()
	mod := int64(1) << n
	for a := int64(0); a < mod; a++ {
		for k := int64(0); k < mod; k += 3 {
			sum := c.Affine(x, big.NewInt(a), big.NewInt(k))
			for v := int64(0); v < mod; v++ {
				want := (a*v + k) % mod
				got := c.Eq(sum, bs.Const(big.NewInt(want)))
				if !eval(c, n, got, v) {
					t.Fatalf("%d*%d+%d != %d", a, v, k, want)
				}
			}
		}
	}
}

func TestVecUle(t *testing.T) {
	const n = 3
	c := newC(t, n)
	bs := logic.NewBits(c, n)
	mod := int64(1) << n
	for k := int64(0); k < mod; k++ {
		le := c.Ule(bs.Var(), bs.Const(big.NewInt(k)))
		ge := c.Ule(bs.Const(big.NewInt(k)), bs.Var())
		for v := int64(0); v < mod; v++ {
			if eval(c, n, le, v) != (v <= k) {
				t.Errorf("%d <= %d", v, k)
			}
			if eval(c, n, ge, v) != (k <= v) {
				t.Errorf("%d <= %d", k, v)
			}
		}
	}
}

func TestVecWidthMismatch(t *testing.T) {
	c := newC(t, 4)
	defer func() {
		if recover() == nil {
			t.Errorf("no panic on width mismatch")
		}
	}()
	c.Add(logic.NewBits(c, 2).Var(), logic.NewBits(c, 3).Var())
}

func ExampleC_equiv() {
	L, _ := logic.NewC(3)
	a, b, c := L.Lit(0, true), L.Lit(1, true), L.Lit(2, true)
	c1 := L.Ors(a, b, c)
	c2 := L.Ors(a, b, L.Not(c))
	g1 := L.And(c1, c2)
	g2 := L.Or(a, b)
	// a "miter" is false everywhere iff "(a b c) and (a b -c)" is
	// equivalent to "(a b)".
	m := L.Xor(g1, g2)
	if L.IsFalse(m) {
		fmt.Printf("equivalent\n")
	} else {
		fmt.Printf("not equivalent\n")
	}
	//Output: equivalent
}
