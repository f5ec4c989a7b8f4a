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
	"github.com/pingcap/errors"
)

// errors
var (
	// host accessor related errors
	ErrMRUListUnavailable = errors.Normalize(
		"mru list %s is unavailable",
		errors.RFCCodeText("MRU:ErrMRUListUnavailable"),
	)
	ErrMRUStoreDecode = errors.Normalize(
		"decode mru store %s failed",
		errors.RFCCodeText("MRU:ErrMRUStoreDecode"),
	)
	ErrMRUItemRemove = errors.Normalize(
		"remove mru item %d failed",
		errors.RFCCodeText("MRU:ErrMRUItemRemove"),
	)
	ErrMRUStoreFlush = errors.Normalize(
		"flush mru store %s failed",
		errors.RFCCodeText("MRU:ErrMRUStoreFlush"),
	)

	// config related errors
	ErrInvalidConfig = errors.Normalize(
		"invalid config: %s",
		errors.RFCCodeText("MRU:ErrInvalidConfig"),
	)
)
