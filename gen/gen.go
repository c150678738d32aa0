// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"fmt"
	"math/big"
	"math/rand"
	"sync"

	"github.com/go-air/viable/inter"
	"github.com/go-air/viable/z"
)

/// make the rng seedable
var rng = rand.New(rand.NewSource(33))
var mu sync.Mutex

func Seed(s int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(s))
}

// Kind is the shape of a Constraint.
type Kind int

const (
	// Eq is a*x + b == 0.
	Eq Kind = iota
	// Ule is a*x + b <= c*x + d, unsigned.
	Ule
	// NonViable is x != a.
	NonViable
)

func (k Kind) String() string {
	switch k {
	case Eq:
		return "eq"
	case Ule:
		return "ule"
	case NonViable:
		return "exclude"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Constraint is an affine constraint over one variable.  Positive false
// negates Eq and Ule constraints.
type Constraint struct {
	Kind       Kind
	A, B, C, D *big.Int
	Positive   bool
}

// Holds returns whether x satisfies c at width w.  Coefficients are
// reduced mod 2^w.
func (c *Constraint) Holds(w int, x *big.Int) bool {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(w))
	affine := func(a, b *big.Int) *big.Int {
		r := new(big.Int).Mul(a, x)
		r.Add(r, b)
		return r.Mod(r, mod)
	}
	var res bool
	switch c.Kind {
	case Eq:
		res = affine(c.A, c.B).Sign() == 0
	case Ule:
		res = affine(c.A, c.B).Cmp(affine(c.C, c.D)) <= 0
	case NonViable:
		return x.Cmp(c.A) != 0
	default:
		panic(fmt.Sprintf("gen: unknown kind %s", c.Kind))
	}
	return res == c.Positive
}

// Apply posts c on v in dst.
func (c *Constraint) Apply(dst inter.Narrower, v z.Var) {
	switch c.Kind {
	case Eq:
		dst.IntersectEq(c.A, v, c.B, c.Positive)
	case Ule:
		dst.IntersectUle(v, c.A, c.B, c.C, c.D, c.Positive)
	case NonViable:
		dst.AddNonViable(v, c.A)
	default:
		panic(fmt.Sprintf("gen: unknown kind %s", c.Kind))
	}
}

func (c *Constraint) String() string {
	neg := ""
	if !c.Positive {
		neg = "!"
	}
	switch c.Kind {
	case Eq:
		return fmt.Sprintf("%s(%s*x + %s == 0)", neg, c.A, c.B)
	case Ule:
		return fmt.Sprintf("%s(%s*x + %s <= %s*x + %s)", neg, c.A, c.B, c.C, c.D)
	default:
		return fmt.Sprintf("x != %s", c.A)
	}
}

// RandConstraint generates a random constraint at width w.  Coefficients
// are in [0, 2^w); one Eq or Ule constraint in four is negated and one
// constraint in eight is a point exclusion.
func RandConstraint(w int) *Constraint {
	mu.Lock()
	defer mu.Unlock()
	return randConstraint(w)
}

// RandConstraints generates n random constraints at width w.
func RandConstraints(w, n int) []*Constraint {
	mu.Lock()
	defer mu.Unlock()
	res := make([]*Constraint, n)
	for i := range res {
		res[i] = randConstraint(w)
	}
	return res
}

func randConstraint(w int) *Constraint {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(w))
	coef := func() *big.Int {
		return new(big.Int).Rand(rng, mod)
	}
	c := &Constraint{Positive: rng.Intn(4) != 0}
	switch r := rng.Intn(8); {
	case r == 0:
		c.Kind = NonViable
		c.A = coef()
		c.Positive = true
	case r < 4:
		c.Kind = Eq
		c.A, c.B = coef(), coef()
	default:
		c.Kind = Ule
		c.A, c.B, c.C, c.D = coef(), coef(), coef(), coef()
	}
	return c
}

// Solutions returns the values of [0, 2^w) satisfying every constraint in
// cs, in ascending order.
func Solutions(w int, cs ...*Constraint) []*big.Int {
	var res []*big.Int
	mod := new(big.Int).Lsh(big.NewInt(1), uint(w))
	one := big.NewInt(1)
outer:
	for x := new(big.Int); x.Cmp(mod) < 0; x.Add(x, one) {
		for _, c := range cs {
			if !c.Holds(w, x) {
				continue outer
			}
		}
		res = append(res, new(big.Int).Set(x))
	}
	return res
}
