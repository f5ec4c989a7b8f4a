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
	"os"
	"strings"
	"syscall"

	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/failpoint"
)

// ExistsOptions tunes the filesystem liveness predicate.
type ExistsOptions struct {
	// AllowDirectories treats an existing directory as a live entry.
	AllowDirectories bool
}

// FileExists reports whether path names an existing regular file.
//
// Empty paths and paths containing a NUL byte are malformed and reported as
// missing. Stat failures other than "not found" are returned as errors so the
// caller keeps the record.
func FileExists(path string) (bool, error) {
	return statExists(path, ExistsOptions{})
}

// NewExistsFunc returns a filesystem liveness predicate configured by opts.
func NewExistsFunc(opts ExistsOptions) ExistsFunc {
	return func(path string) (bool, error) {
		return statExists(path, opts)
	}
}

func statExists(path string, opts ExistsOptions) (bool, error) {
	if strings.TrimSpace(path) == "" || strings.IndexByte(path, 0) >= 0 {
		return false, nil
	}

	failpoint.Inject("mruStatIndeterminate", func() {
		failpoint.Return(false, errors.Errorf("injected stat failure for %s", path))
	})

	info, err := os.Stat(path)
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, errors.Trace(err)
	}
	if info.IsDir() {
		return opts.AllowDirectories, nil
	}
	return true, nil
}

func isMissing(err error) bool {
	if os.IsNotExist(err) {
		return true
	}
	pathErr, ok := err.(*os.PathError)
	if !ok {
		return false
	}
	errno, ok := pathErr.Err.(syscall.Errno)
	return ok && (errno == syscall.ENOTDIR || errno == syscall.ENAMETOOLONG)
}
