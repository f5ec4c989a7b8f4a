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
	"fmt"
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	t.Parallel()
	var (
		err       = errors.New("cause error")
		testCases = []struct {
			rfcError *errors.Error
			err      error
			isNil    bool
			expected string
			args     []interface{}
		}{
			{ErrMRUStoreDecode, nil, true, "", nil},
			{
				ErrMRUStoreDecode, err, false,
				"[MRU:ErrMRUStoreDecode]decode mru store /tmp/mru.toml failed: cause error",
				[]interface{}{"/tmp/mru.toml"},
			},
		}
	)
	for _, tc := range testCases {
		we := WrapError(tc.rfcError, tc.err, tc.args...)
		if tc.isNil {
			require.Nil(t, we)
		} else {
			require.NotNil(t, we)
			require.Equal(t, we.Error(), tc.expected)
		}
	}
}

func TestRFCCode(t *testing.T) {
	t.Parallel()
	rfc, ok := RFCCode(ErrInvalidConfig)
	require.Equal(t, true, ok)
	require.Contains(t, rfc, "ErrInvalidConfig")

	err := fmt.Errorf("inner error: store locked")
	rfc, ok = RFCCode(err)
	require.Equal(t, false, ok)
	require.Equal(t, rfc, errors.RFCErrorCode(""))

	wrapped := WrapError(ErrMRUStoreFlush, err, "projects")
	rfc, ok = RFCCode(wrapped)
	require.Equal(t, true, ok)
	require.Contains(t, rfc, "ErrMRUStoreFlush")

	anoErr := errors.Annotate(ErrMRUItemRemove, "annotated remove failure")
	rfc, ok = RFCCode(anoErr)
	require.Equal(t, true, ok)
	require.Contains(t, rfc, "ErrMRUItemRemove")
}

func TestIsMRUListUnavailable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("test"), false},
		{"other rfc error", ErrMRUStoreFlush.GenWithStackByArgs("projects"), false},
		{"unavailable", ErrMRUListUnavailable.GenWithStackByArgs("projects"), true},
		{"wrapped unavailable", WrapError(ErrMRUListUnavailable, errors.New("no such key"), "projects"), true},
		{"annotated unavailable", errors.Annotate(ErrMRUListUnavailable.GenWithStackByArgs("projects"), "resolve"), true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsMRUListUnavailable(tt.err), "case:%s", tt.name)
	}
}
