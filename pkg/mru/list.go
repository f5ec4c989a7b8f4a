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
	"strings"

	"github.com/pingcap/mru-cleaner/pkg/errors"
)

// valueSeparator separates the path from host metadata in a raw item value.
const valueSeparator = "|"

// Record is one entry of a host MRU list.
type Record struct {
	// Path is the filesystem path the entry refers to. It may be empty or malformed.
	Path string
	// Value is the raw host value the path was parsed from, e.g. "path|guid|flags".
	Value string
}

// List is a host-owned ordered MRU list.
//
// Removing the element at index i must leave the indices of elements before i
// unchanged and shift every element after i down by one.
type List interface {
	// Len returns the current number of records.
	Len() int
	// PathAt returns the path of the record at index.
	PathAt(index int) (string, error)
	// RemoveAt removes the record at index.
	RemoveAt(index int) error
}

// PathFromValue extracts the path from a raw host item value such as
// "path|guid|flags": the path is the first `|` separated field.
func PathFromValue(value string) string {
	path, _, _ := strings.Cut(value, valueSeparator)
	return path
}

// SliceList is an in-memory List.
type SliceList struct {
	Records []Record
}

// NewSliceList creates a SliceList holding a record for every path.
func NewSliceList(paths ...string) *SliceList {
	records := make([]Record, 0, len(paths))
	for _, p := range paths {
		records = append(records, Record{Path: p, Value: p})
	}
	return &SliceList{Records: records}
}

func (l *SliceList) Len() int {
	return len(l.Records)
}

func (l *SliceList) PathAt(index int) (string, error) {
	if index < 0 || index >= len(l.Records) {
		return "", errors.Errorf("mru index %d out of range [0, %d)", index, len(l.Records))
	}
	return l.Records[index].Path, nil
}

func (l *SliceList) RemoveAt(index int) error {
	if index < 0 || index >= len(l.Records) {
		return errors.Errorf("mru index %d out of range [0, %d)", index, len(l.Records))
	}
	l.Records = append(l.Records[:index], l.Records[index+1:]...)
	return nil
}

// Paths returns the paths of all records in list order.
func (l *SliceList) Paths() []string {
	paths := make([]string, 0, len(l.Records))
	for _, r := range l.Records {
		paths = append(paths, r.Path)
	}
	return paths
}

// DryRunList reports removals without applying them to the wrapped list.
//
// Prune visits indices in descending order, so an index that was not actually
// removed never shifts a record that is still to be visited.
type DryRunList struct {
	List
	Removed []int
}

// NewDryRunList wraps list.
func NewDryRunList(list List) *DryRunList {
	return &DryRunList{List: list}
}

func (l *DryRunList) RemoveAt(index int) error {
	if index < 0 || index >= l.List.Len() {
		return errors.Errorf("mru index %d out of range [0, %d)", index, l.List.Len())
	}
	l.Removed = append(l.Removed, index)
	return nil
}
