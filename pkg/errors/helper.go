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

// WrapError wraps err as the cause of a new rfcError built from args.
// A nil err yields nil, unlike Wrap in pingcap/errors.
func WrapError(rfcError *errors.Error, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return rfcError.Wrap(err).GenWithStackByArgs(args...)
}

// RFCCode returns the RFC code of the first normalized error found in the
// cause chain of err.
func RFCCode(err error) (errors.RFCErrorCode, bool) {
	type rfcCoder interface {
		RFCCode() errors.RFCErrorCode
	}
	type causer interface {
		Cause() error
	}
	for err != nil {
		if terr, ok := err.(rfcCoder); ok {
			return terr.RFCCode(), true
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		next := c.Cause()
		if next == err {
			break
		}
		err = next
	}
	return "", false
}

// IsMRUListUnavailable reports whether err means the host MRU list could not
// be resolved.
func IsMRUListUnavailable(err error) bool {
	code, ok := RFCCode(err)
	return ok && code == ErrMRUListUnavailable.RFCCode()
}
