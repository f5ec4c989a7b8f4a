// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CleanerPassCounter counts pruning passes per list and outcome.
	CleanerPassCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mru",
			Subsystem: "cleaner",
			Name:      "passes_total",
			Help:      "Total pruning passes per list and outcome.",
		}, []string{"list", "outcome"})

	CleanerItemsScannedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mru",
			Subsystem: "cleaner",
			Name:      "items_scanned_total",
			Help:      "Total MRU items visited by pruning passes.",
		}, []string{"list"})

	CleanerItemsRemovedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mru",
			Subsystem: "cleaner",
			Name:      "items_removed_total",
			Help:      "Total stale MRU items removed.",
		}, []string{"list"})

	CleanerItemsUndecidedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mru",
			Subsystem: "cleaner",
			Name:      "items_undecided_total",
			Help:      "Total MRU items kept because their liveness could not be decided.",
		}, []string{"list"})

	CleanerPassDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mru",
			Subsystem: "cleaner",
			Name:      "pass_duration_seconds",
			Help:      "Bucketed histogram of pruning pass duration (s) per list.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms~32s
		}, []string{"list"})
)

// InitCleanerMetrics registers the cleaner metrics.
func InitCleanerMetrics(registry *prometheus.Registry) {
	registry.MustRegister(CleanerPassCounter)
	registry.MustRegister(CleanerItemsScannedCounter)
	registry.MustRegister(CleanerItemsRemovedCounter)
	registry.MustRegister(CleanerItemsUndecidedCounter)
	registry.MustRegister(CleanerPassDurationHistogram)
}

// WriteTextfile writes every metric gathered by registry to path in the
// Prometheus text format, for the node exporter textfile collector.
func WriteTextfile(path string, registry *prometheus.Registry) error {
	return errors.Trace(prometheus.WriteToTextfile(path, registry))
}
