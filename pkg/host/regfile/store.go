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

package regfile

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/failpoint"
	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/mru-cleaner/pkg/mru"
)

const (
	// DefaultProjectsKey is the key under which the host keeps its project MRU items.
	DefaultProjectsKey = "{a9c4a31f-f9cb-47a9-abc0-49ce82d0b3ac}"

	rootTable  = "mru-items"
	itemsTable = "items"
)

// Store is a registry-style MRU store kept in a TOML document:
//
//	[mru-items."{guid}".items]
//	"0" = "/src/app/app.sln|..."
//	"1" = "/src/old/old.sln"
//
// Item names are positions. The first `|` separated field of a value is the path.
type Store struct {
	path string
	key  string
}

// New creates a store for the MRU key in the document at path.
func New(path, key string) *Store {
	if key == "" {
		key = DefaultProjectsKey
	}
	return &Store{path: path, key: key}
}

// ResolveList implements host.Accessor.
func (s *Store) ResolveList(ctx context.Context) (mru.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Trace(err)
	}

	doc := make(map[string]interface{})
	if _, err := toml.DecodeFile(s.path, &doc); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(errors.ErrMRUListUnavailable, err, s.key)
		}
		return nil, errors.WrapError(errors.ErrMRUStoreDecode, err, s.path)
	}

	items, err := s.lookupItems(doc)
	if err != nil {
		return nil, err
	}
	records, err := orderedRecords(items)
	if err != nil {
		return nil, errors.WrapError(errors.ErrMRUStoreDecode, err, s.path)
	}
	return &List{
		SliceList: &mru.SliceList{Records: records},
		store:     s,
		doc:       doc,
	}, nil
}

func (s *Store) lookupItems(doc map[string]interface{}) (map[string]interface{}, error) {
	root, ok := doc[rootTable].(map[string]interface{})
	if !ok {
		return nil, errors.ErrMRUListUnavailable.GenWithStackByArgs(rootTable)
	}
	keyTable, ok := root[s.key].(map[string]interface{})
	if !ok {
		return nil, errors.ErrMRUListUnavailable.GenWithStackByArgs(s.key)
	}
	items, ok := keyTable[itemsTable].(map[string]interface{})
	if !ok {
		return nil, errors.ErrMRUListUnavailable.GenWithStackByArgs(s.key + "." + itemsTable)
	}
	return items, nil
}

// orderedRecords orders items by numeric name. Names that are not numbers
// follow, in lexical order.
func orderedRecords(items map[string]interface{}) ([]mru.Record, error) {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, errA := strconv.Atoi(names[i])
		b, errB := strconv.Atoi(names[j])
		switch {
		case errA == nil && errB == nil:
			if a != b {
				return a < b
			}
			return names[i] < names[j]
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return names[i] < names[j]
		}
	})

	records := make([]mru.Record, 0, len(names))
	for _, name := range names {
		value, ok := items[name].(string)
		if !ok {
			return nil, errors.Errorf("mru item %s is not a string: %T", name, items[name])
		}
		records = append(records, mru.Record{Path: mru.PathFromValue(value), Value: value})
	}
	return records, nil
}

// List is the MRU list of a Store. Removals are applied in memory and written
// back by Flush.
type List struct {
	*mru.SliceList
	store   *Store
	doc     map[string]interface{}
	removed int
}

func (l *List) RemoveAt(index int) error {
	if err := l.SliceList.RemoveAt(index); err != nil {
		return errors.WrapError(errors.ErrMRUItemRemove, err, index)
	}
	l.removed++
	return nil
}

// Flush rewrites the item table with the surviving values renamed "0".."n-1".
// Other tables of the document are kept. Nothing is written when no item was removed.
func (l *List) Flush(ctx context.Context) error {
	if l.removed == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}

	items := make(map[string]interface{}, len(l.Records))
	for i, r := range l.Records {
		items[strconv.Itoa(i)] = r.Value
	}
	root := l.doc[rootTable].(map[string]interface{})
	keyTable := root[l.store.key].(map[string]interface{})
	keyTable[itemsTable] = items

	if err := writeFileAtomic(l.store.path, l.doc); err != nil {
		return errors.WrapError(errors.ErrMRUStoreFlush, err, l.store.path)
	}
	l.removed = 0
	return nil
}

func writeFileAtomic(path string, doc map[string]interface{}) error {
	failpoint.Inject("mruRegfileFlushFailed", func() {
		failpoint.Return(errors.New("injected flush failure"))
	})

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Trace(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return errors.Trace(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Trace(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Trace(err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.Rename(tmpName, path))
}
