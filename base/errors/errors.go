// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides helpers that report errors to the logging
// sink while passing them through to the caller.
package errors

import (
	"errors"
	"log/slog"
)

// Log takes the given error and logs it if it is non-nil.
// The intended usage is:
//
//	errors.Log(MyFunc(v))
//	// or
//	return errors.Log(MyFunc(v))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error())
	}
	return err
}

// Is is the same as [errors.Is] from the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// New is the same as [errors.New] from the standard library.
func New(text string) error {
	return errors.New(text)
}

// Join is the same as [errors.Join] from the standard library.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
