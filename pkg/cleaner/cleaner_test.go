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
	"testing"

	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/mru-cleaner/pkg/host"
	"github.com/pingcap/mru-cleaner/pkg/metrics"
	"github.com/pingcap/mru-cleaner/pkg/mru"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func existsIn(live ...string) mru.ExistsFunc {
	set := make(map[string]struct{}, len(live))
	for _, p := range live {
		set[p] = struct{}{}
	}
	return func(path string) (bool, error) {
		_, ok := set[path]
		return ok, nil
	}
}

type flushingList struct {
	*mru.SliceList
	flushed  int
	flushErr error
}

func (l *flushingList) Flush(context.Context) error {
	l.flushed++
	return l.flushErr
}

func TestCleanerPrunes(t *testing.T) {
	t.Parallel()

	list := mru.NewSliceList("/a", "/missing", "/b")
	c := New("prune-test", host.Static{Name: "prune-test", List: list}, WithExistsFunc(existsIn("/a", "/b")))

	report := c.Run(context.Background())
	require.Equal(t, OutcomePruned, report.Outcome)
	require.NotEmpty(t, report.RunID)
	require.Equal(t, 1, report.Result.Removed)
	require.Equal(t, []string{"/a", "/b"}, list.Paths())

	require.Equal(t, float64(1), testutil.ToFloat64(metrics.CleanerItemsRemovedCounter.WithLabelValues("prune-test")))
	require.Equal(t, float64(3), testutil.ToFloat64(metrics.CleanerItemsScannedCounter.WithLabelValues("prune-test")))
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.CleanerPassCounter.WithLabelValues("prune-test", string(OutcomePruned))))
}

func TestCleanerSkipsUnavailableList(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		accessor host.Accessor
	}{
		{"missing list", host.Static{Name: "skip-missing"}},
		{"resolve error", host.AccessorFunc(func(context.Context) (mru.List, error) {
			return nil, errors.ErrMRUListUnavailable.GenWithStackByArgs("skip-error")
		})},
		{"resolve panic", host.AccessorFunc(func(context.Context) (mru.List, error) {
			panic("internal type renamed")
		})},
		{"nil list", host.AccessorFunc(func(context.Context) (mru.List, error) {
			return nil, nil
		})},
	}
	for _, tc := range testCases {
		c := New("skip-"+tc.name, tc.accessor)
		var report Report
		require.NotPanics(t, func() { report = c.Run(context.Background()) }, tc.name)
		require.Equal(t, OutcomeSkipped, report.Outcome, tc.name)
		require.Equal(t, mru.Result{}, report.Result, tc.name)
	}
}

func TestCleanerDryRun(t *testing.T) {
	t.Parallel()

	list := &flushingList{SliceList: mru.NewSliceList("/missing0", "/a", "/missing2")}
	c := New("dry-run-test", host.Static{List: list}, WithExistsFunc(existsIn("/a")), WithDryRun(true))

	report := c.Run(context.Background())
	require.Equal(t, OutcomePruned, report.Outcome)
	require.True(t, report.DryRun)
	require.Equal(t, 2, report.Result.Removed)
	require.Equal(t, []string{"/missing2", "/missing0"}, report.Result.RemovedPaths)
	require.Equal(t, []string{"/missing0", "/a", "/missing2"}, list.Paths())
	require.Equal(t, 0, list.flushed)
	require.Equal(t, float64(0), testutil.ToFloat64(metrics.CleanerItemsRemovedCounter.WithLabelValues("dry-run-test")))
}

func TestCleanerFlush(t *testing.T) {
	t.Parallel()

	list := &flushingList{SliceList: mru.NewSliceList("/a", "/missing")}
	report := New("flush-test", host.Static{List: list}, WithExistsFunc(existsIn("/a"))).Run(context.Background())
	require.Equal(t, OutcomePruned, report.Outcome)
	require.Equal(t, 1, list.flushed)

	// Nothing removed, nothing flushed.
	report = New("flush-noop-test", host.Static{List: list}, WithExistsFunc(existsIn("/a"))).Run(context.Background())
	require.Equal(t, OutcomePruned, report.Outcome)
	require.Equal(t, 1, list.flushed)

	failing := &flushingList{
		SliceList: mru.NewSliceList("/missing"),
		flushErr:  errors.ErrMRUStoreFlush.GenWithStackByArgs("flush-fail-test"),
	}
	report = New("flush-fail-test", host.Static{List: failing}, WithExistsFunc(existsIn())).Run(context.Background())
	require.Equal(t, OutcomeFlushFailed, report.Outcome)
	require.Equal(t, 1, failing.flushed)
}

func TestCleanerRunOnce(t *testing.T) {
	t.Parallel()

	resolved := 0
	c := New("once-test", host.AccessorFunc(func(context.Context) (mru.List, error) {
		resolved++
		return mru.NewSliceList("/missing"), nil
	}), WithExistsFunc(existsIn()))

	report, ran := c.RunOnce(context.Background())
	require.True(t, ran)
	require.Equal(t, 1, report.Result.Removed)

	report, ran = c.RunOnce(context.Background())
	require.False(t, ran)
	require.Equal(t, "once-test", report.List)
	require.Equal(t, 1, resolved)
}

func TestRunAll(t *testing.T) {
	t.Parallel()

	lists := []*mru.SliceList{
		mru.NewSliceList("/a", "/missing"),
		mru.NewSliceList("/missing", "/missing"),
		mru.NewSliceList("/b"),
	}
	cleaners := []*Cleaner{
		New("run-all-0", host.Static{List: lists[0]}, WithExistsFunc(existsIn("/a", "/b"))),
		New("run-all-1", host.Static{List: lists[1]}, WithExistsFunc(existsIn("/a", "/b"))),
		New("run-all-2", host.Static{List: lists[2]}, WithExistsFunc(existsIn("/a", "/b"))),
		New("run-all-3", host.Static{Name: "run-all-3"}),
	}

	reports := RunAll(context.Background(), cleaners)
	require.Len(t, reports, 4)
	for i, report := range reports {
		require.Equal(t, cleaners[i].Name(), report.List)
	}
	require.Equal(t, 1, reports[0].Result.Removed)
	require.Equal(t, 2, reports[1].Result.Removed)
	require.Equal(t, 0, reports[2].Result.Removed)
	require.Equal(t, OutcomeSkipped, reports[3].Outcome)

	require.Equal(t, []string{"/a"}, lists[0].Paths())
	require.Empty(t, lists[1].Paths())
	require.Equal(t, []string{"/b"}, lists[2].Paths())
}
