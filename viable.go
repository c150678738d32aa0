// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package viable tracks the values of bit-vector variables which remain
// consistent with affine constraints posted by a search engine.
//
// A Viable creates variables of a fixed width with Push, narrows their
// domains with IntersectEq, IntersectUle and AddNonViable, and undoes
// narrowings in reverse order with PopViable and PopViableTo.
package viable

import (
	"math/big"

	"github.com/go-air/viable/config"
	"github.com/go-air/viable/inter"
	"github.com/go-air/viable/internal/xo"
	"github.com/go-air/viable/z"
	"github.com/sirupsen/logrus"
)

// Stats holds statistics read with ReadStats.
type Stats = xo.Stats

// Viable is a concrete viable domain tracker.
type Viable struct {
	xo *xo.S
}

var _ inter.Viable = (*Viable)(nil)

type options struct {
	log        logrus.FieldLogger
	onConflict func(z.Var)
}

// Option configures a Viable.
type Option func(*options)

// WithLogger sets the logger of a Viable.  By default a Viable logs to
// standard error at the level of its config.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithConflictHandler sets a function called with each variable whose
// domain becomes empty.
func WithConflictHandler(f func(z.Var)) Option {
	return func(o *options) {
		o.onConflict = f
	}
}

// New creates a new Viable with the default config.
func New(opts ...Option) *Viable {
	v, err := NewConfig(config.Default(), opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// NewConfig creates a new Viable from cfg.
func NewConfig(cfg config.Config, opts ...Option) (*Viable, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	x, err := xo.NewS(cfg, o.log, o.onConflict)
	if err != nil {
		return nil, err
	}
	return &Viable{xo: x}, nil
}

// Push creates a variable of width w with every value viable.
func (g *Viable) Push(w int) z.Var {
	return g.xo.Push(w)
}

// Pop destroys the last variable created.
func (g *Viable) Pop() {
	g.xo.Pop()
}

// Width returns the width of v.
func (g *Viable) Width(v z.Var) int {
	return g.xo.Width(v)
}

// NumVars returns the number of variables.
func (g *Viable) NumVars() int {
	return g.xo.NumVars()
}

// PushViable saves the domain of v.
func (g *Viable) PushViable(v z.Var) {
	g.xo.PushViable(v)
}

// PopViable restores the last saved domain.
func (g *Viable) PopViable() {
	g.xo.PopViable()
}

// TrailLen returns the number of saved domains.
func (g *Viable) TrailLen() int {
	return g.xo.TrailLen()
}

// PopViableTo restores saved domains until TrailLen() is n.
func (g *Viable) PopViableTo(n int) {
	g.xo.PopViableTo(n)
}

// IntersectEq implements inter.Narrower.
func (g *Viable) IntersectEq(a *big.Int, v z.Var, b *big.Int, pos bool) {
	g.xo.IntersectEq(a, v, b, pos)
}

// IntersectUle implements inter.Narrower.
func (g *Viable) IntersectUle(v z.Var, a, b, c, d *big.Int, pos bool) {
	g.xo.IntersectUle(v, a, b, c, d, pos)
}

// AddNonViable implements inter.Narrower.
func (g *Viable) AddNonViable(v z.Var, val *big.Int) {
	g.xo.AddNonViable(v, val)
}

// HasViable returns whether v has a viable value.
func (g *Viable) HasViable(v z.Var) bool {
	return g.xo.HasViable(v)
}

// IsFalse returns whether v has no viable value.
func (g *Viable) IsFalse(v z.Var) bool {
	return g.xo.IsFalse(v)
}

// IsViable returns whether val is viable for v.
func (g *Viable) IsViable(v z.Var, val *big.Int) bool {
	return g.xo.IsViable(v, val)
}

// FindViable finds a viable value of v near hint.
func (g *Viable) FindViable(v z.Var, hint *big.Int) (z.Find, *big.Int) {
	return g.xo.FindViable(v, hint)
}

// Values returns the viable values of v in ascending order.
func (g *Viable) Values(v z.Var) []*big.Int {
	return g.xo.Values(v)
}

// Count returns the number of viable values of v.
func (g *Viable) Count(v z.Var) *big.Int {
	return g.xo.Count(v)
}

// Inexact returns whether the domain of v over approximates.
func (g *Viable) Inexact(v z.Var) bool {
	return g.xo.Inexact(v)
}

// Log logs the viable values of v.
func (g *Viable) Log(v z.Var) {
	g.xo.Log(v)
}

// LogAll logs the viable values of all variables.
func (g *Viable) LogAll() {
	g.xo.LogAll()
}

// Strategy returns the strategy in use.
func (g *Viable) Strategy() config.Strategy {
	return g.xo.Strategy()
}

// DiagramStats returns a summary of the decision diagram manager of g.
func (g *Viable) DiagramStats() string {
	return g.xo.DiagramStats()
}

// ReadStats reads statistics into st, resetting cumulative ones in g.
func (g *Viable) ReadStats(st *Stats) {
	g.xo.ReadStats(st)
}
