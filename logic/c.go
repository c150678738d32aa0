// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package logic

import (
	"fmt"

	"github.com/dalzilio/rudd"
	"github.com/pkg/errors"
)

// Node is a predicate over the levels of a C.
type Node = rudd.Node

// Type C represents a combinational circuit whose gates are kept canonical
// in a shared binary decision diagram.
//
// A C has a fixed number of levels, set at creation.  Every bit-vector built
// from a C uses levels 0..n-1 for a width of n, so C must be created with at
// least as many levels as the widest vector it will carry.
type C struct {
	bdd    *rudd.BDD
	levels int
	T      Node // true
	F      Node // false
}

// NewC creates a new circuit with the given number of levels.
func NewC(levels int) (*C, error) {
	return NewCCap(levels, 0, 0)
}

// NewCCap creates a new circuit with the given number of levels and
// initial capacity hints for the node table and the operation cache.
// Non-positive hints select the library defaults.
func NewCCap(levels, nodeHint, cacheHint int) (*C, error) {
	if levels < 1 {
		return nil, errors.Errorf("logic: invalid number of levels %d", levels)
	}
	var (
		b   *rudd.BDD
		err error
	)
	switch {
	case nodeHint > 0 && cacheHint > 0:
		b, err = rudd.New(levels, rudd.Nodesize(nodeHint), rudd.Cachesize(cacheHint))
	case nodeHint > 0:
		b, err = rudd.New(levels, rudd.Nodesize(nodeHint))
	case cacheHint > 0:
		b, err = rudd.New(levels, rudd.Cachesize(cacheHint))
	default:
		b, err = rudd.New(levels)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "logic: creating decision diagram with %d levels", levels)
	}
	return &C{bdd: b, levels: levels, T: b.True(), F: b.False()}, nil
}

// Levels returns the number of levels of c.
func (c *C) Levels() int {
	return c.levels
}

// Lit returns the predicate "level i is v".
func (c *C) Lit(i int, v bool) Node {
	if i < 0 || i >= c.levels {
		panic(fmt.Sprintf("logic: level %d out of range [0,%d)", i, c.levels))
	}
	if v {
		return c.check(c.bdd.Ithvar(i))
	}
	return c.check(c.bdd.NIthvar(i))
}

// IsFalse returns whether a is the constant false.
func (c *C) IsFalse(a Node) bool {
	return *a == *c.F
}

// IsTrue returns whether a is the constant true.
func (c *C) IsTrue(a Node) bool {
	return *a == *c.T
}

// Same returns whether a and b denote the same predicate.  Nodes are
// canonical, so this is a constant time test.
func (c *C) Same(a, b Node) bool {
	return *a == *b
}

// Not returns the negation of a.
func (c *C) Not(a Node) Node {
	return c.check(c.bdd.Not(a))
}

// And returns a literal equivalent to "a and b".
func (c *C) And(a, b Node) Node {
	return c.check(c.bdd.Apply(a, b, rudd.OPand))
}

// Ands constructs a conjunction of a sequence of nodes.
// If ms is empty, then Ands returns c.T.
func (c *C) Ands(ms ...Node) Node {
	a := c.T
	for _, m := range ms {
		a = c.And(a, m)
	}
	return a
}

// Or constructs a node which is the disjunction of a and b.
func (c *C) Or(a, b Node) Node {
	return c.check(c.bdd.Apply(a, b, rudd.OPor))
}

// Ors constructs a node which is the disjuntion of the nodes in ms.
// If ms is empty, then Ors returns c.F
func (c *C) Ors(ms ...Node) Node {
	d := c.F
	for _, m := range ms {
		d = c.Or(d, m)
	}
	return d
}

// Xor constructs a node which is equivalent to (a xor b).
func (c *C) Xor(a, b Node) Node {
	return c.check(c.bdd.Apply(a, b, rudd.OPxor))
}

// Iff constructs a node which is equivalent to (a iff b).
func (c *C) Iff(a, b Node) Node {
	return c.check(c.bdd.Apply(a, b, rudd.OPbiimp))
}

// Choice constructs a node which is equivalent to
//  if i then t else e
func (c *C) Choice(i, t, e Node) Node {
	return c.check(c.bdd.Ite(i, t, e))
}

// Stats returns the statistics of the underlying diagram.
func (c *C) Stats() string {
	return c.bdd.Stats()
}

// the diagram returns nil when it runs out of nodes or is handed a bad
// operand; there is no sensible way to continue after that.
func (c *C) check(n Node) Node {
	if n == nil {
		panic(fmt.Sprintf("logic: decision diagram failure: %s", c.bdd.Error()))
	}
	return n
}
