// metrics.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file defines the Prometheus metrics collected
// by the word index.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package skrafl

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "skrafl"

// Metrics holds the collectors of a word index. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	Lookups        prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	WordsIndexed   prometheus.Counter
	LinesSkipped   prometheus.Counter
	LookupDuration prometheus.Histogram
}

// NewMetrics creates the index collectors and registers them
// with reg, unless reg is nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "index_lookups_total",
			Help:      "Number of index lookups.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "index_cache_hits_total",
			Help:      "Number of canonical keys served from the lookup cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "index_cache_misses_total",
			Help:      "Number of canonical keys fetched from the store.",
		}),
		WordsIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "index_words_indexed_total",
			Help:      "Number of words written to the store while building.",
		}),
		LinesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "index_lines_skipped_total",
			Help:      "Number of wordlist lines rejected while building.",
		}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "index_lookup_duration_seconds",
			Help:      "Duration of index lookups.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Lookups, m.CacheHits, m.CacheMisses,
			m.WordsIndexed, m.LinesSkipped, m.LookupDuration)
	}
	return m
}

func (m *Metrics) lookup(start time.Time, hits, misses int) {
	if m == nil {
		return
	}
	m.Lookups.Inc()
	m.CacheHits.Add(float64(hits))
	m.CacheMisses.Add(float64(misses))
	m.LookupDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) indexed(words, skipped int) {
	if m == nil {
		return
	}
	m.WordsIndexed.Add(float64(words))
	m.LinesSkipped.Add(float64(skipped))
}
