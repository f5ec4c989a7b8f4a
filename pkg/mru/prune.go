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

package mru

import (
	"github.com/pingcap/mru-cleaner/pkg/errors"
)

// ExistsFunc reports whether path refers to a live entry.
// A non-nil error means the answer could not be decided.
type ExistsFunc func(path string) (bool, error)

// Result summarizes one pruning pass.
type Result struct {
	// Scanned is the number of indices visited.
	Scanned int
	// Removed is the number of records removed from the list.
	Removed int
	// Undecided is the number of records kept because liveness could not be decided.
	Undecided int
	// RemovedPaths holds the paths of removed records, in visiting order.
	RemovedPaths []string
	// Aborted is set when a removal failed and the pass stopped early.
	Aborted bool
	// Err is the removal failure that aborted the pass.
	Err error
}

// Prune removes every record of list whose path does not satisfy exists.
//
// Indices are visited from the last to the first: removing index i only shifts
// indices greater than i, all of which have already been visited. Records whose
// liveness cannot be decided are kept. Prune never panics. A failed removal
// stops the pass, since the list can no longer be trusted to shift indices.
func Prune(list List, exists ExistsFunc) (res Result) {
	if list == nil || exists == nil {
		return res
	}
	defer func() {
		if r := recover(); r != nil {
			res.Aborted = true
			res.Err = errors.Errorf("mru list panicked: %v", r)
		}
	}()

	for i := list.Len() - 1; i >= 0; i-- {
		res.Scanned++
		path, alive, ok := probe(list, exists, i)
		if !ok {
			res.Undecided++
			continue
		}
		if alive {
			continue
		}
		if err := list.RemoveAt(i); err != nil {
			res.Aborted = true
			res.Err = errors.Annotatef(err, "remove mru item %d", i)
			return res
		}
		res.Removed++
		res.RemovedPaths = append(res.RemovedPaths, path)
	}
	return res
}

// probe reads the path at index i and evaluates exists on it.
// ok is false when either step failed or panicked.
func probe(list List, exists ExistsFunc, i int) (path string, alive bool, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			alive, ok = true, false
		}
	}()

	path, err := list.PathAt(i)
	if err != nil {
		return path, true, false
	}
	alive, err = exists(path)
	if err != nil {
		return path, true, false
	}
	return path, alive, true
}
