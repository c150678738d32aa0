// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xo

import (
	"bytes"
	"fmt"
)

// Stats holds statistics of a tracker.  The counters are cumulative and
// reset in the tracker each time they are read; Vars, TrailLen and
// CacheEntries are current values.
type Stats struct {
	Vars         int
	TrailLen     int
	CacheEntries int

	EqNarrowings  int64
	UleNarrowings int64
	Exclusions    int64
	Saves         int64
	Restores      int64
	Conflicts     int64

	CacheHits      int64
	CacheMisses    int64
	CacheEvictions int64
	FastPaths      int64
	Imprecise      int64
}

// NewStats creates a new Stats object.
func NewStats() *Stats {
	return &Stats{}
}

// String returns a multiline summary of st.
func (st *Stats) String() string {
	buf := bytes.NewBuffer(nil)
	fmt.Fprintf(buf, "vars:            %d\n", st.Vars)
	fmt.Fprintf(buf, "trail:           %d\n", st.TrailLen)
	fmt.Fprintf(buf, "eq narrowings:   %d\n", st.EqNarrowings)
	fmt.Fprintf(buf, "ule narrowings:  %d\n", st.UleNarrowings)
	fmt.Fprintf(buf, "exclusions:      %d\n", st.Exclusions)
	fmt.Fprintf(buf, "saves/restores:  %d/%d\n", st.Saves, st.Restores)
	fmt.Fprintf(buf, "conflicts:       %d\n", st.Conflicts)
	fmt.Fprintf(buf, "cache:           %d entries, %d hits, %d misses, %d evicted\n",
		st.CacheEntries, st.CacheHits, st.CacheMisses, st.CacheEvictions)
	fmt.Fprintf(buf, "fast/imprecise:  %d/%d\n", st.FastPaths, st.Imprecise)
	return buf.String()
}
