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

package cleaner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pingcap/log"
	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/mru-cleaner/pkg/host"
	"github.com/pingcap/mru-cleaner/pkg/metrics"
	"github.com/pingcap/mru-cleaner/pkg/mru"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const flushTimeout = 30 * time.Second

// Outcome is the result of one cleaner run.
type Outcome string

const (
	// OutcomePruned means the whole list was scanned.
	OutcomePruned      Outcome = "pruned"
	// OutcomeSkipped means the list could not be resolved and was left untouched.
	OutcomeSkipped     Outcome = "skipped"
	// OutcomeAborted means a removal failed and the pass stopped early.
	OutcomeAborted     Outcome = "aborted"
	// OutcomeFlushFailed means the pass finished but the host store was not updated.
	OutcomeFlushFailed Outcome = "flush_failed"
)

// Report describes one cleaner run.
type Report struct {
	List    string
	RunID   string
	Outcome Outcome
	DryRun  bool
	Result  mru.Result
}

// Cleaner prunes one host MRU list. It is the boundary that absorbs every
// host integration failure: Run never returns an error and never panics.
type Cleaner struct {
	name     string
	accessor host.Accessor
	exists   mru.ExistsFunc
	dryRun   bool

	started *atomic.Bool
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithExistsFunc replaces the filesystem liveness predicate.
func WithExistsFunc(exists mru.ExistsFunc) Option {
	return func(c *Cleaner) {
		c.exists = exists
	}
}

// WithDryRun reports stale items without removing them.
func WithDryRun(dryRun bool) Option {
	return func(c *Cleaner) {
		c.dryRun = dryRun
	}
}

// New creates a cleaner for the list named name.
func New(name string, accessor host.Accessor, opts ...Option) *Cleaner {
	c := &Cleaner{
		name:     name,
		accessor: accessor,
		exists:   mru.FileExists,
		started:  atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the list name.
func (c *Cleaner) Name() string {
	return c.name
}

// RunOnce runs the cleaner on its first call and does nothing afterwards.
// The boolean is false when an earlier call already ran it.
func (c *Cleaner) RunOnce(ctx context.Context) (Report, bool) {
	if !c.started.CompareAndSwap(false, true) {
		return Report{List: c.name}, false
	}
	return c.Run(ctx), true
}

// Run resolves the list and prunes it.
func (c *Cleaner) Run(ctx context.Context) (report Report) {
	report = Report{
		List:   c.name,
		RunID:  uuid.New().String(),
		DryRun: c.dryRun,
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Warn("mru cleaner panicked, skip this session",
				zap.String("list", c.name),
				zap.String("runID", report.RunID),
				zap.Any("panic", r))
			report.Outcome = OutcomeSkipped
		}
		c.observe(report, time.Since(start))
	}()

	list, err := c.accessor.ResolveList(ctx)
	if err != nil || list == nil {
		log.Warn("mru list is unavailable, skip this session",
			zap.String("list", c.name),
			zap.String("runID", report.RunID),
			zap.Bool("unavailable", errors.IsMRUListUnavailable(err)),
			zap.Error(err))
		report.Outcome = OutcomeSkipped
		return report
	}

	target := list
	if c.dryRun {
		target = mru.NewDryRunList(list)
	}
	report.Result = mru.Prune(target, c.exists)
	report.Outcome = OutcomePruned
	if report.Result.Aborted {
		log.Warn("mru pruning pass aborted",
			zap.String("list", c.name),
			zap.String("runID", report.RunID),
			zap.Int("removed", report.Result.Removed),
			zap.Error(report.Result.Err))
		report.Outcome = OutcomeAborted
	}

	if flusher, ok := list.(host.Flusher); ok && !c.dryRun && report.Result.Removed > 0 {
		flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
		err := flusher.Flush(flushCtx)
		cancel()
		if err != nil {
			log.Warn("flush mru list failed",
				zap.String("list", c.name),
				zap.String("runID", report.RunID),
				zap.Error(err))
			report.Outcome = OutcomeFlushFailed
			return report
		}
	}

	for _, path := range report.Result.RemovedPaths {
		log.Debug("stale mru item",
			zap.String("list", c.name),
			zap.String("path", path),
			zap.Bool("dryRun", c.dryRun))
	}
	log.Info("mru list pruned",
		zap.String("list", c.name),
		zap.String("runID", report.RunID),
		zap.String("outcome", string(report.Outcome)),
		zap.Bool("dryRun", c.dryRun),
		zap.Int("scanned", report.Result.Scanned),
		zap.Int("removed", report.Result.Removed),
		zap.Int("undecided", report.Result.Undecided),
		zap.Duration("duration", time.Since(start)))
	return report
}

func (c *Cleaner) observe(report Report, elapsed time.Duration) {
	metrics.CleanerPassCounter.WithLabelValues(c.name, string(report.Outcome)).Inc()
	metrics.CleanerPassDurationHistogram.WithLabelValues(c.name).Observe(elapsed.Seconds())
	metrics.CleanerItemsScannedCounter.WithLabelValues(c.name).Add(float64(report.Result.Scanned))
	metrics.CleanerItemsUndecidedCounter.WithLabelValues(c.name).Add(float64(report.Result.Undecided))
	if !report.DryRun {
		metrics.CleanerItemsRemovedCounter.WithLabelValues(c.name).Add(float64(report.Result.Removed))
	}
}

// RunAll runs every cleaner once. Lists are independent, so they are pruned
// concurrently; each list is still handled by a single synchronous pass.
// Reports are returned in the order of cleaners.
func RunAll(ctx context.Context, cleaners []*Cleaner) []Report {
	reports := make([]Report, len(cleaners))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range cleaners {
		g.Go(func() error {
			reports[i], _ = c.RunOnce(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}
