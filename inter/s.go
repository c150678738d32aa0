// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package inter holds the interfaces a search engine uses to drive a
// viable domain tracker.
package inter

import (
	"math/big"

	"github.com/go-air/viable/z"
)

// Scoper creates and destroys variables in stack order.
type Scoper interface {
	// Push creates a variable of width w with every value in [0, 2^w)
	// viable.
	Push(w int) z.Var

	// Pop destroys the last variable created.  The trail should not
	// hold entries of that variable.
	Pop()

	Width(v z.Var) int
	NumVars() int
}

// Trailer saves and restores domains.
//
// Every narrowing call saves the domain it changes once, so PopViable
// undoes it.  A decision level is undone by recording TrailLen when it
// starts and calling PopViableTo with that length.
type Trailer interface {
	PushViable(v z.Var)
	PopViable()
	TrailLen() int
	PopViableTo(n int)
}

// Narrower removes values from the domains of variables.  Coefficients
// are taken mod 2^w where w is the width of the variable; negative values
// wrap.
type Narrower interface {
	// IntersectEq keeps the values x of v with a*x + b == 0 if pos and
	// the others if not.
	IntersectEq(a *big.Int, v z.Var, b *big.Int, pos bool)

	// IntersectUle keeps the values x of v with a*x + b <= c*x + d,
	// comparing unsigned, if pos and the others if not.
	IntersectUle(v z.Var, a, b, c, d *big.Int, pos bool)

	// AddNonViable removes val from v.
	AddNonViable(v z.Var, val *big.Int)
}

// Querier answers questions about domains.
type Querier interface {
	HasViable(v z.Var) bool
	IsFalse(v z.Var) bool
	IsViable(v z.Var, val *big.Int) bool
	FindViable(v z.Var, hint *big.Int) (z.Find, *big.Int)
	Values(v z.Var) []*big.Int
	Count(v z.Var) *big.Int
	Inexact(v z.Var) bool
}

// Logger logs domains.
type Logger interface {
	Log(v z.Var)
	LogAll()
}

// Viable is a viable domain tracker.
type Viable interface {
	Scoper
	Trailer
	Narrower
	Querier
	Logger
}
