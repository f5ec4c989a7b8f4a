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

package errors

import (
	perrors "github.com/pingcap/errors"
)

var (
	// New is a shortcut for errors.New.
	New = perrors.New
	// Errorf is a shortcut for errors.Errorf.
	Errorf = perrors.Errorf
	// Trace is a shortcut for errors.Trace.
	Trace = perrors.Trace
	// Annotate is a shortcut for errors.Annotate.
	Annotate = perrors.Annotate
	// Annotatef is a shortcut for errors.Annotatef.
	Annotatef = perrors.Annotatef
	// Cause is a shortcut for errors.Cause.
	Cause = perrors.Cause
)
