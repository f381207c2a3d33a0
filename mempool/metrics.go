// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the prometheus collectors a running mempool exposes. A
// Mempool always carries one -- constructed against a private registry by
// New -- so instrumentation is never optional, only possibly unobserved by
// anyone scraping it.
type Metrics struct {
	txsAdded     prometheus.Counter
	txsDispensed prometheus.Counter
	txsCommitted prometheus.Counter
	getTxsBatch  prometheus.Histogram
}

// NewMetrics registers a fresh set of mempool collectors against a private
// registry, so constructing a Mempool never risks a duplicate-registration
// panic against the process-wide default registerer. Hosts that want these
// series scraped alongside everything else should call
// NewMetricsWithRegisterer(prometheus.DefaultRegisterer) themselves and pass
// the result to the engine, or gather this private registry separately.
func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.NewRegistry())
}

// NewMetricsWithRegisterer registers mempool collectors against reg, so a
// host can scope multiple mempool instances (or keep them out of the global
// registry entirely in tests) without name collisions.
func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		txsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mempool",
			Name:      "txs_added_total",
			Help:      "Number of transactions accepted by add_tx.",
		}),
		txsDispensed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mempool",
			Name:      "txs_dispensed_total",
			Help:      "Number of transactions handed out by get_txs.",
		}),
		txsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mempool",
			Name:      "txs_committed_total",
			Help:      "Number of transaction hashes passed to commit_block, including hashes unknown to this pool.",
		}),
		getTxsBatch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mempool",
			Name:      "get_txs_batch_size",
			Help:      "Size of the slice returned by each get_txs call that returned at least one transaction.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	reg.MustRegister(m.txsAdded, m.txsDispensed, m.txsCommitted, m.getTxsBatch)
	return m
}

func (m *Metrics) observeAdded() {
	m.txsAdded.Inc()
}

func (m *Metrics) observeDispensed(n int) {
	m.txsDispensed.Add(float64(n))
	m.getTxsBatch.Observe(float64(n))
}

func (m *Metrics) observeCommit(n int) {
	m.txsCommitted.Add(float64(n))
}