// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package metrics exports tracker statistics to Prometheus.
package metrics

import (
	"sync"

	"github.com/go-air/viable"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "viable"

// StatsReader is something whose statistics can be read, resetting the
// cumulative ones.  *viable.Viable is a StatsReader.
type StatsReader interface {
	ReadStats(st *viable.Stats)
}

// MetricsProvider updates metrics from their source.
type MetricsProvider interface {
	HandleMetrics() error
}

// Collector holds the metrics of one tracker.  HandleMetrics must be
// called on the goroutine using the tracker; Prometheus may gather from
// any goroutine.
type Collector struct {
	mu  sync.Mutex
	src StatsReader

	vars         prometheus.Gauge
	trail        prometheus.Gauge
	cacheEntries prometheus.Gauge

	narrowings *prometheus.CounterVec
	exclusions prometheus.Counter
	saves      prometheus.Counter
	restores   prometheus.Counter
	conflicts  prometheus.Counter
	cache      *prometheus.CounterVec
	fastPaths  prometheus.Counter
	imprecise  prometheus.Counter
}

var _ MetricsProvider = (*Collector)(nil)
var _ prometheus.Collector = (*Collector)(nil)

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

func gauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// NewCollector creates a collector of the statistics of src.
func NewCollector(src StatsReader) *Collector {
	return &Collector{
		src:          src,
		vars:         gauge("vars", "Number of live variables"),
		trail:        gauge("trail_length", "Number of saved domains on the trail"),
		cacheEntries: gauge("cache_entries", "Number of cached constraint sets"),
		narrowings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrowings_total",
			Help:      "Number of narrowings by constraint kind",
		}, []string{"kind"}),
		exclusions: counter("exclusions_total", "Number of point exclusions"),
		saves:      counter("saves_total", "Number of domains saved on the trail"),
		restores:   counter("restores_total", "Number of domains restored from the trail"),
		conflicts:  counter("conflicts_total", "Number of narrowings which emptied a domain"),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_total",
			Help:      "Constraint cache events by outcome",
		}, []string{"outcome"}),
		fastPaths: counter("fast_paths_total", "Number of interval narrowings without the cache"),
		imprecise: counter("imprecise_total", "Number of interval narrowings which lost precision"),
	}
}

// HandleMetrics reads the statistics of the source into the metrics.
func (c *Collector) HandleMetrics() error {
	st := &viable.Stats{}
	c.src.ReadStats(st)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vars.Set(float64(st.Vars))
	c.trail.Set(float64(st.TrailLen))
	c.cacheEntries.Set(float64(st.CacheEntries))
	c.narrowings.WithLabelValues("eq").Add(float64(st.EqNarrowings))
	c.narrowings.WithLabelValues("ule").Add(float64(st.UleNarrowings))
	c.exclusions.Add(float64(st.Exclusions))
	c.saves.Add(float64(st.Saves))
	c.restores.Add(float64(st.Restores))
	c.conflicts.Add(float64(st.Conflicts))
	c.cache.WithLabelValues("hit").Add(float64(st.CacheHits))
	c.cache.WithLabelValues("miss").Add(float64(st.CacheMisses))
	c.cache.WithLabelValues("evict").Add(float64(st.CacheEvictions))
	c.fastPaths.Add(float64(st.FastPaths))
	c.imprecise.Add(float64(st.Imprecise))
	return nil
}

func (c *Collector) metrics() []prometheus.Collector {
	return []prometheus.Collector{
		c.vars, c.trail, c.cacheEntries,
		c.narrowings, c.exclusions, c.saves, c.restores, c.conflicts,
		c.cache, c.fastPaths, c.imprecise,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.metrics() {
		m.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.metrics() {
		m.Collect(ch)
	}
}

// Register registers c with r.
func (c *Collector) Register(r prometheus.Registerer) error {
	return r.Register(c)
}
