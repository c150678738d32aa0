// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"fmt"
	"math/big"

	"github.com/go-air/viable/config"
	"github.com/go-air/viable/inter"
	"github.com/go-air/viable/logic"
	"github.com/go-air/viable/z"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// S tracks the viable values of bit-vector variables.
//
// Each narrowing call saves the domain it changes exactly once, so
// PopViable undoes the last narrowing call.  A search engine undoes a
// decision level by recording TrailLen when the level starts and calling
// PopViableTo when it is retracted.
type S struct {
	Bits  *BitMap
	Store *Store
	Strat Strategy

	log        logrus.FieldLogger
	onConflict func(z.Var)

	stEq        int64
	stUle       int64
	stExclude   int64
	stConflicts int64
}

var _ inter.Viable = (*S)(nil)

// NewS creates a tracker from cfg.  onConflict, if not nil, is called with
// each variable whose domain a narrowing empties.
func NewS(cfg config.Config, log logrus.FieldLogger, onConflict func(z.Var)) (*S, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "xo: invalid config")
	}
	if log == nil {
		log = cfg.NewLogger(logrus.StandardLogger().Out)
	}
	c, err := logic.NewCCap(cfg.MaxWidth, cfg.NodeSize, cfg.OpCacheSize)
	if err != nil {
		return nil, err
	}
	s := &S{
		Bits:       NewBitMap(c),
		Store:      NewStore(cfg.TrackSaves),
		log:        log,
		onConflict: onConflict}
	switch cfg.Strategy {
	case config.Interval:
		s.Strat = NewIntervals(NewCache(cfg.CacheCapacity, log), cfg.Imprecision, log)
	default:
		s.Strat = NewSymbolic()
	}
	return s, nil
}

// Push creates a variable of width w with every value viable.
func (s *S) Push(w int) z.Var {
	return s.Store.Push(w, s.Strat.Full(s.Bits.ForWidth(w)))
}

// Pop destroys the last variable pushed.
func (s *S) Pop() {
	s.Store.Pop()
}

// PushViable saves the domain of v on the trail.
func (s *S) PushViable(v z.Var) {
	s.Store.Save(v)
}

// PopViable restores the last saved domain.
func (s *S) PopViable() {
	s.Store.Restore()
}

// TrailLen returns the number of saved domains.
func (s *S) TrailLen() int {
	return s.Store.TrailLen()
}

// PopViableTo restores saved domains until TrailLen() is n.
func (s *S) PopViableTo(n int) {
	s.Store.RestoreTo(n)
}

// IntersectEq narrows v to the values x with a*x + b == 0 (mod 2^w) if
// pos, and to the values where it does not hold otherwise.
func (s *S) IntersectEq(a *big.Int, v z.Var, b *big.Int, pos bool) {
	s.stEq++
	s.narrow(v, func(d Domain) Domain {
		return s.Strat.IntersectEq(d, a, b, pos)
	})
}

// IntersectUle narrows v to the values x with a*x + b <= c*x + d
// (unsigned, mod 2^w) if pos, and to the values where it does not hold
// otherwise.
func (s *S) IntersectUle(v z.Var, a, b, c, d *big.Int, pos bool) {
	s.stUle++
	s.narrow(v, func(cur Domain) Domain {
		return s.Strat.IntersectUle(cur, a, b, c, d, pos)
	})
}

// AddNonViable removes val from the domain of v.  Values outside
// [0, 2^w) are never viable and are ignored, but v is still saved.
func (s *S) AddNonViable(v z.Var, val *big.Int) {
	s.stExclude++
	s.narrow(v, func(d Domain) Domain {
		if !s.inRange(v, val) {
			return d
		}
		return s.Strat.Exclude(d, val)
	})
}

func (s *S) narrow(v z.Var, f func(Domain) Domain) {
	s.Store.Save(v)
	d := s.Store.Current(v)
	nd := f(d)
	s.Store.Replace(v, nd)
	if nd.IsEmpty() && !d.IsEmpty() {
		s.stConflicts++
		s.log.WithField("var", v).Debug("no viable values")
		if s.onConflict != nil {
			s.onConflict(v)
		}
	}
}

// HasViable returns whether v has some viable value.
func (s *S) HasViable(v z.Var) bool {
	return !s.Store.Current(v).IsEmpty()
}

// IsFalse returns whether v has no viable value.
func (s *S) IsFalse(v z.Var) bool {
	return s.Store.Current(v).IsEmpty()
}

// IsViable returns whether val is a viable value of v.
func (s *S) IsViable(v z.Var, val *big.Int) bool {
	return s.inRange(v, val) && s.Store.Current(v).Contains(val)
}

// FindViable finds a viable value of v, preferring hint.  A nil hint is 0.
// The returned z.Find tells whether the domain is empty, has exactly the
// returned value, or has more.
func (s *S) FindViable(v z.Var, hint *big.Int) (z.Find, *big.Int) {
	if hint == nil {
		hint = new(big.Int)
	}
	return s.Store.Current(v).Find(s.Bits.ForVar(s.Store, v).Reduce(hint))
}

// Values returns the viable values of v in ascending order.  It takes time
// exponential in the width of v.
func (s *S) Values(v z.Var) []*big.Int {
	var vals []*big.Int
	s.Store.Current(v).Values(func(x *big.Int) bool {
		vals = append(vals, x)
		return true
	})
	return vals
}

// Count returns the number of viable values of v.
func (s *S) Count(v z.Var) *big.Int {
	return s.Store.Current(v).Count()
}

// Width returns the width of v.
func (s *S) Width(v z.Var) int {
	return s.Store.Width(v)
}

// NumVars returns the number of variables.
func (s *S) NumVars() int {
	return s.Store.Len()
}

// Inexact returns whether the domain of v may hold values which an
// applied constraint excludes.  It is always false for the symbolic
// strategy.
func (s *S) Inexact(v z.Var) bool {
	return s.Store.Current(v).Inexact()
}

// Domain returns the current domain of v.
func (s *S) Domain(v z.Var) Domain {
	return s.Store.Current(v)
}

// Log logs the viable values of v at info level.
func (s *S) Log(v z.Var) {
	d := s.Store.Current(v)
	e := s.log.WithFields(logrus.Fields{
		"var":   v,
		"width": d.Width()})
	if d.Inexact() {
		e = e.WithField("inexact", true)
	}
	e.Info("viable " + fmt.Sprint(s.Values(v)))
}

// LogAll logs the viable values of every variable.
func (s *S) LogAll() {
	for i := 0; i < s.Store.Len(); i++ {
		s.Log(z.Var(i))
	}
}

// Strategy returns the name of the strategy of s.
func (s *S) Strategy() config.Strategy {
	return s.Strat.Name()
}

// DiagramStats returns the statistics of the decision diagram manager
// shared by all widths.
func (s *S) DiagramStats() string {
	return s.Bits.C().Stats()
}

// ReadStats reads data from the tracker into st.  Cumulative values are
// reset in s.
func (s *S) ReadStats(st *Stats) {
	st.EqNarrowings += s.stEq
	s.stEq = 0
	st.UleNarrowings += s.stUle
	s.stUle = 0
	st.Exclusions += s.stExclude
	s.stExclude = 0
	st.Conflicts += s.stConflicts
	s.stConflicts = 0
	s.Store.readStats(st)
	s.Strat.readStats(st)
}

func (s *S) inRange(v z.Var, val *big.Int) bool {
	return val.Sign() >= 0 && val.Cmp(s.Bits.ForVar(s.Store, v).Mod()) < 0
}
