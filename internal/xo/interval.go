// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/go-air/viable/config"
	"github.com/go-air/viable/logic"
	"github.com/go-air/viable/z"
	"github.com/sirupsen/logrus"
)

// Interval is a domain kept as the modular interval [lo, hi) of its
// width.  lo == hi is the full domain unless the interval is empty.
//
// An inexact Interval may hold values which an applied constraint
// excludes; see config.Imprecision.
type Interval struct {
	b       *logic.Bits
	lo, hi  *big.Int
	empty   bool
	inexact bool
}

// IsFull returns whether d holds every value of its width.
func (d Interval) IsFull() bool {
	return !d.empty && d.lo.Cmp(d.hi) == 0
}

func (d Interval) Width() int {
	return d.b.Width()
}

func (d Interval) IsEmpty() bool {
	return d.empty
}

func (d Interval) Contains(val *big.Int) bool {
	switch {
	case d.empty:
		return false
	case d.IsFull():
		return true
	case d.lo.Cmp(d.hi) < 0:
		return d.lo.Cmp(val) <= 0 && val.Cmp(d.hi) < 0
	default:
		return d.lo.Cmp(val) <= 0 || val.Cmp(d.hi) < 0
	}
}

func (d Interval) Count() *big.Int {
	n := new(big.Int)
	for _, sg := range d.segments() {
		n.Add(n, sg.len())
	}
	return n
}

// Find returns hint if it is in d, and the lower bound of d otherwise.
func (d Interval) Find(hint *big.Int) (z.Find, *big.Int) {
	if d.empty {
		return z.FindEmpty, nil
	}
	val := d.b.Reduce(hint)
	if !d.Contains(val) {
		val.Set(d.lo)
	}
	if d.Count().Cmp(big.NewInt(1)) == 0 {
		return z.FindSingleton, val
	}
	return z.FindMultiple, val
}

func (d Interval) Values(f func(*big.Int) bool) {
	one := big.NewInt(1)
	for _, sg := range d.segments() {
		for x := new(big.Int).Set(sg.lo); x.Cmp(sg.hi) < 0; x.Add(x, one) {
			if !f(new(big.Int).Set(x)) {
				return
			}
		}
	}
}

func (d Interval) Inexact() bool {
	return d.inexact
}

func (d Interval) String() string {
	var s string
	switch {
	case d.empty:
		s = "empty"
	case d.IsFull():
		s = "full"
	default:
		s = fmt.Sprintf("[%s,%s)", d.lo, d.hi)
	}
	if d.inexact {
		s += "~"
	}
	return s
}

// seg is the linear range [lo, hi) with 0 <= lo < hi <= 2^width.
type seg struct {
	lo, hi *big.Int
}

func (sg seg) len() *big.Int {
	return new(big.Int).Sub(sg.hi, sg.lo)
}

// segments returns the linear pieces of d in ascending order.
func (d Interval) segments() []seg {
	mod := d.b.Mod()
	switch {
	case d.empty:
		return nil
	case d.IsFull():
		return []seg{{new(big.Int), mod}}
	case d.lo.Cmp(d.hi) < 0:
		return []seg{{d.lo, d.hi}}
	case d.hi.Sign() == 0:
		return []seg{{d.lo, mod}}
	default:
		return []seg{{new(big.Int), d.hi}, {d.lo, mod}}
	}
}

func emptyInterval(b *logic.Bits, inexact bool) Interval {
	return Interval{b: b, lo: new(big.Int), hi: new(big.Int), empty: true, inexact: inexact}
}

func modInterval(b *logic.Bits, lo, hi *big.Int) Interval {
	return Interval{b: b, lo: b.Reduce(lo), hi: b.Reduce(hi)}
}

func pointInterval(b *logic.Bits, val *big.Int) Interval {
	return modInterval(b, val, new(big.Int).Add(val, big.NewInt(1)))
}

// complement returns the values of the width of d not in d.
func (d Interval) complement() Interval {
	switch {
	case d.empty:
		return Interval{b: d.b, lo: new(big.Int), hi: new(big.Int)}
	case d.IsFull():
		return emptyInterval(d.b, false)
	default:
		return Interval{b: d.b, lo: d.hi, hi: d.lo}
	}
}

// meetSegments returns the linear pieces of x ∩ y in ascending order,
// merging adjacent ones.
func meetSegments(x, y Interval) []seg {
	var res []seg
	for _, sx := range x.segments() {
		for _, sy := range y.segments() {
			lo, hi := sx.lo, sx.hi
			if sy.lo.Cmp(lo) > 0 {
				lo = sy.lo
			}
			if sy.hi.Cmp(hi) < 0 {
				hi = sy.hi
			}
			if lo.Cmp(hi) < 0 {
				res = append(res, seg{lo, hi})
			}
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].lo.Cmp(res[j].lo) < 0 })
	j := 0
	for i := range res {
		if j > 0 && res[j-1].hi.Cmp(res[i].lo) >= 0 {
			if res[i].hi.Cmp(res[j-1].hi) > 0 {
				res[j-1].hi = res[i].hi
			}
			continue
		}
		res[j] = res[i]
		j++
	}
	return res[:j]
}

// cover returns the hull of segs, which are ascending and disjoint, and
// whether it contains nothing else.  The hull starts at the first segment
// at or above from, or after the largest gap between segments if from is
// nil.
func cover(b *logic.Bits, segs []seg, from *big.Int) (Interval, bool) {
	n := len(segs)
	if n == 0 {
		return emptyInterval(b, false), true
	}
	total := new(big.Int)
	for _, sg := range segs {
		total.Add(total, sg.len())
	}
	k := 0
	if from == nil {
		gap := new(big.Int).Sub(b.Mod(), segs[n-1].hi)
		gap.Add(gap, segs[0].lo)
		for i := 1; i < n; i++ {
			g := new(big.Int).Sub(segs[i].lo, segs[i-1].hi)
			if g.Cmp(gap) > 0 {
				gap, k = g, i
			}
		}
	} else {
		for i, sg := range segs {
			if sg.lo.Cmp(from) >= 0 {
				k = i
				break
			}
		}
	}
	res := modInterval(b, segs[k].lo, segs[(k+n-1)%n].hi)
	return res, res.Count().Cmp(total) == 0
}

type intervals struct {
	cache  *Cache
	policy config.Imprecision
	log    logrus.FieldLogger

	stFast      int64
	stImprecise int64
}

// NewIntervals returns the strategy keeping domains as Intervals.
// Constraints without an interval solution are narrowed through
// satisfying sets held in cache.
func NewIntervals(cache *Cache, policy config.Imprecision, log logrus.FieldLogger) Strategy {
	return &intervals{cache: cache, policy: policy, log: log}
}

func (y *intervals) Name() config.Strategy {
	return config.Interval
}

func (y *intervals) Full(b *logic.Bits) Domain {
	return Interval{b: b, lo: new(big.Int), hi: new(big.Int)}
}

func (y *intervals) IntersectEq(d Domain, a, b *big.Int, pos bool) Domain {
	cur := y.interval(d)
	if cur.empty {
		return cur
	}
	bits := cur.b
	ra, rb := bits.Reduce(a), bits.Reduce(b)
	switch {
	case ra.Sign() == 0:
		y.stFast++
		return y.constant(cur, (rb.Sign() == 0) == pos)
	case ra.Bit(0) == 1:
		// odd a is invertible: exactly one root
		y.stFast++
		x0 := new(big.Int).ModInverse(ra, bits.Mod())
		x0.Mul(x0, rb)
		x0.Neg(x0)
		set := pointInterval(bits, x0)
		if !pos {
			set = set.complement()
		}
		return y.meet(cur, set)
	}
	e := y.cache.Acquire(eqKey(bits, ra, rb), func() logic.Node {
		return bits.EqZero(ra, rb)
	})
	defer y.cache.Release(e)
	return y.narrow(cur, e.set, pos)
}

func (y *intervals) IntersectUle(d Domain, a, b, c, e *big.Int, pos bool) Domain {
	cur := y.interval(d)
	if cur.empty {
		return cur
	}
	bits := cur.b
	ra, rb, rc, re := bits.Reduce(a), bits.Reduce(b), bits.Reduce(c), bits.Reduce(e)
	one := big.NewInt(1)
	top := new(big.Int).Sub(bits.Mod(), one)
	switch {
	case ra.Sign() == 0 && rc.Sign() == 0:
		y.stFast++
		return y.constant(cur, (rb.Cmp(re) <= 0) == pos)
	case ra.Cmp(one) == 0 && rc.Sign() == 0:
		// x + b <= e
		y.stFast++
		if re.Cmp(top) == 0 {
			return y.constant(cur, pos)
		}
		lo := new(big.Int).Neg(rb)
		hi := new(big.Int).Sub(re, rb)
		hi.Add(hi, one)
		return y.meetSet(cur, modInterval(bits, lo, hi), pos)
	case ra.Sign() == 0 && rc.Cmp(one) == 0:
		// b <= x + e
		y.stFast++
		if rb.Sign() == 0 {
			return y.constant(cur, pos)
		}
		lo := new(big.Int).Sub(rb, re)
		hi := new(big.Int).Neg(re)
		return y.meetSet(cur, modInterval(bits, lo, hi), pos)
	}
	ent := y.cache.Acquire(uleKey(bits, ra, rb, rc, re), func() logic.Node {
		return bits.Ule(ra, rb, rc, re)
	})
	defer y.cache.Release(ent)
	return y.narrow(cur, ent.set, pos)
}

func (y *intervals) Exclude(d Domain, val *big.Int) Domain {
	cur := y.interval(d)
	if !cur.Contains(val) {
		return cur
	}
	return y.meet(cur, pointInterval(cur.b, val).complement())
}

func (y *intervals) readStats(st *Stats) {
	st.FastPaths += y.stFast
	y.stFast = 0
	st.Imprecise += y.stImprecise
	y.stImprecise = 0
	y.cache.readStats(st)
}

func (y *intervals) interval(d Domain) Interval {
	iv, ok := d.(Interval)
	if !ok {
		panic(fmt.Sprintf("xo: interval strategy given %T", d))
	}
	return iv
}

func (y *intervals) constant(cur Interval, holds bool) Interval {
	if holds {
		return cur
	}
	return emptyInterval(cur.b, false)
}

func (y *intervals) meetSet(cur, set Interval, pos bool) Interval {
	if !pos {
		set = set.complement()
	}
	return y.meet(cur, set)
}

// meet intersects cur with set.  The result is inside cur.
func (y *intervals) meet(cur, set Interval) Interval {
	var from *big.Int
	if !cur.IsFull() {
		from = cur.lo
	}
	res, exact := cover(cur.b, meetSegments(cur, set), from)
	return y.settle(cur, res, exact)
}

// narrow intersects cur with the set s, or its complement if !pos, and
// keeps the hull of the result starting from the lower bound of cur.
func (y *intervals) narrow(cur Interval, s logic.Node, pos bool) Interval {
	bits := cur.b
	c := bits.C()
	zero := new(big.Int)
	if !pos {
		s = c.Not(s)
	}
	s = c.And(s, bits.Interval(cur.lo, cur.hi))
	if c.IsFalse(s) {
		return emptyInterval(bits, false)
	}
	if cur.IsFull() {
		return y.narrowFull(cur, s)
	}
	above := c.And(s, bits.Interval(cur.lo, zero))
	first, ok := bits.Min(above)
	if !ok {
		first, _ = bits.Min(s)
	}
	var last *big.Int
	if cur.lo.Sign() > 0 {
		last, _ = bits.Max(c.And(s, bits.Interval(zero, cur.lo)))
	}
	if last == nil {
		last, _ = bits.Max(above)
	}
	res := modInterval(bits, first, new(big.Int).Add(last, big.NewInt(1)))
	return y.settle(cur, res, bits.Count(s).Cmp(res.Count()) == 0)
}

// narrowFull returns the interval of the non-empty set s, a narrowing of the
// full domain cur.  A set forming one wrapping interval has a complement
// forming one linear interval.  Other sets are covered from their least
// value.
func (y *intervals) narrowFull(cur Interval, s logic.Node) Interval {
	bits := cur.b
	one := big.NewInt(1)
	n := bits.Count(s)
	first, _ := bits.Min(s)
	last, _ := bits.Max(s)
	res := modInterval(bits, first, new(big.Int).Add(last, one))
	if n.Cmp(res.Count()) == 0 {
		return y.settle(cur, res, true)
	}
	hole := bits.C().Not(s)
	lo, _ := bits.Min(hole)
	hi, _ := bits.Max(hole)
	gap := new(big.Int).Sub(hi, lo)
	gap.Add(gap, one)
	if gap.Cmp(new(big.Int).Sub(bits.Mod(), n)) == 0 {
		return y.settle(cur, modInterval(bits, hi.Add(hi, one), lo), true)
	}
	return y.settle(cur, res, false)
}

// settle applies the imprecision policy to res, the narrowing of cur.
func (y *intervals) settle(cur, res Interval, exact bool) Interval {
	if res.empty {
		return res
	}
	res.inexact = cur.inexact
	if exact {
		return res
	}
	y.stImprecise++
	y.log.WithFields(logrus.Fields{
		"width":  cur.b.Width(),
		"from":   cur.String(),
		"hull":   res.String(),
		"policy": y.policy,
	}).Debug("imprecise narrowing")
	if y.policy == config.Under {
		return emptyInterval(cur.b, true)
	}
	res.inexact = true
	return res
}
