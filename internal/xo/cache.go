// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"math/big"
	"sort"

	"github.com/go-air/viable/logic"
	"github.com/sirupsen/logrus"
)

type opKind uint8

const (
	opEq opKind = iota + 1
	opUle
)

func (o opKind) String() string {
	switch o {
	case opEq:
		return "eq"
	case opUle:
		return "ule"
	default:
		return "op?"
	}
}

// cacheKey identifies a constraint independently of the variable it is
// applied to.  Coefficients are residues mod 2^width in base 16.
type cacheKey struct {
	op         opKind
	width      int
	a, b, c, d string
}

func eqKey(bits *logic.Bits, a, b *big.Int) cacheKey {
	return cacheKey{
		op:    opEq,
		width: bits.Width(),
		a:     bits.Reduce(a).Text(16),
		b:     bits.Reduce(b).Text(16)}
}

func uleKey(bits *logic.Bits, a, b, c, d *big.Int) cacheKey {
	return cacheKey{
		op:    opUle,
		width: bits.Width(),
		a:     bits.Reduce(a).Text(16),
		b:     bits.Reduce(b).Text(16),
		c:     bits.Reduce(c).Text(16),
		d:     bits.Reduce(d).Text(16)}
}

type cacheEntry struct {
	key      cacheKey
	set      logic.Node // satisfying set of the positive constraint
	activity uint32
	seq      uint64
	pins     int
}

// Cache holds the satisfying sets of constraints, at most one per key.
// When a miss finds the cache at capacity, the least active unpinned entries
// are evicted down to half the capacity and the activity of the others is
// halved.
type Cache struct {
	log      logrus.FieldLogger
	capacity int
	entries  map[cacheKey]*cacheEntry
	seq      uint64

	stHits      int64
	stMisses    int64
	stEvictions int64
}

// NewCache creates a cache holding up to capacity entries.
func NewCache(capacity int, log logrus.FieldLogger) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		log:      log,
		capacity: capacity,
		entries:  make(map[cacheKey]*cacheEntry, capacity)}
}

// Acquire returns the entry for k, creating it with build if there is
// none.  The entry is pinned until Release.
func (c *Cache) Acquire(k cacheKey, build func() logic.Node) *cacheEntry {
	e, ok := c.entries[k]
	if ok {
		c.stHits++
	} else {
		c.stMisses++
		if len(c.entries) >= c.capacity {
			c.gc()
		}
		c.seq++
		e = &cacheEntry{key: k, set: build(), seq: c.seq}
		c.entries[k] = e
	}
	e.activity++
	e.pins++
	return e
}

// Release unpins e.
func (c *Cache) Release(e *cacheEntry) {
	if e.pins == 0 {
		panic("xo: release of unpinned cache entry")
	}
	e.pins--
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Activity returns the activity of the entry for k and whether it exists.
func (c *Cache) Activity(k cacheKey) (uint32, bool) {
	e, ok := c.entries[k]
	if !ok {
		return 0, false
	}
	return e.activity, true
}

func (c *Cache) gc() {
	cands := make([]*cacheEntry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.pins == 0 {
			cands = append(cands, e)
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		ei, ej := cands[i], cands[j]
		if ei.activity != ej.activity {
			return ei.activity < ej.activity
		}
		return ei.seq < ej.seq
	})
	target := c.capacity / 2
	n := 0
	for _, e := range cands {
		if len(c.entries) <= target {
			break
		}
		delete(c.entries, e.key)
		n++
	}
	for _, e := range c.entries {
		e.activity /= 2
	}
	c.stEvictions += int64(n)
	c.log.WithFields(logrus.Fields{
		"evicted": n,
		"kept":    len(c.entries),
	}).Debug("constraint cache gc")
}

func (c *Cache) readStats(st *Stats) {
	st.CacheEntries = len(c.entries)
	st.CacheHits += c.stHits
	c.stHits = 0
	st.CacheMisses += c.stMisses
	c.stMisses = 0
	st.CacheEvictions += c.stEvictions
	c.stEvictions = 0
}
