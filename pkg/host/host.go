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

package host

import (
	"context"

	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/mru-cleaner/pkg/mru"
)

// Accessor locates the live MRU list of a host application.
//
// ResolveList fails when the host feature is absent or its layout is not the
// expected one. Callers must treat any failure as "skip pruning".
type Accessor interface {
	ResolveList(ctx context.Context) (mru.List, error)
}

// Flusher is implemented by lists that buffer removals and must write them back
// to the host store once a pass is done.
type Flusher interface {
	Flush(ctx context.Context) error
}

// AccessorFunc adapts a function to Accessor.
type AccessorFunc func(ctx context.Context) (mru.List, error)

func (f AccessorFunc) ResolveList(ctx context.Context) (mru.List, error) {
	return f(ctx)
}

// Static hands out a list that is already in memory.
type Static struct {
	Name string
	List mru.List
}

func (s Static) ResolveList(ctx context.Context) (mru.List, error) {
	if s.List == nil {
		return nil, errors.ErrMRUListUnavailable.GenWithStackByArgs(s.Name)
	}
	return s.List, nil
}
