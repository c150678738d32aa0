// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package metrics_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/go-air/viable"
	"github.com/go-air/viable/config"
	"github.com/go-air/viable/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.Strategy = config.Interval
	g, err := viable.NewConfig(cfg, viable.WithLogger(log))
	require.NoError(t, err)
	x := g.Push(4)
	g.IntersectEq(big.NewInt(2), x, big.NewInt(2), true)
	g.IntersectEq(big.NewInt(1), x, big.NewInt(-3), true)

	c := metrics.NewCollector(g)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, c.Register(reg))
	require.NoError(t, c.HandleMetrics())

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP viable_narrowings_total Number of narrowings by constraint kind
# TYPE viable_narrowings_total counter
viable_narrowings_total{kind="eq"} 2
viable_narrowings_total{kind="ule"} 0
# HELP viable_conflicts_total Number of narrowings which emptied a domain
# TYPE viable_conflicts_total counter
viable_conflicts_total 1
# HELP viable_cache_total Constraint cache events by outcome
# TYPE viable_cache_total counter
viable_cache_total{outcome="evict"} 0
viable_cache_total{outcome="hit"} 0
viable_cache_total{outcome="miss"} 1
`), "viable_narrowings_total", "viable_conflicts_total", "viable_cache_total")
	assert.NoError(t, err)

	// counters accumulate and gauges follow the tracker
	g.PopViable()
	require.NoError(t, c.HandleMetrics())
	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP viable_restores_total Number of domains restored from the trail
# TYPE viable_restores_total counter
viable_restores_total 1
# HELP viable_saves_total Number of domains saved on the trail
# TYPE viable_saves_total counter
viable_saves_total 2
# HELP viable_trail_length Number of saved domains on the trail
# TYPE viable_trail_length gauge
viable_trail_length 1
`), "viable_restores_total", "viable_saves_total", "viable_trail_length")
	assert.NoError(t, err)
	assert.Equal(t, 14, testutil.CollectAndCount(c))
}
