// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import "errors"

// Configuration errors. They are detected once, at initialization,
// and leave the joint or chain permanently invalid.
var (
	ErrUnknownAxis      = errors.New("unknown axis")
	ErrDuplicateAxis    = errors.New("axis configured more than once")
	ErrInvertedLimit    = errors.New("lower bound above upper bound")
	ErrMissingReference = errors.New("missing reference")
	ErrZeroLengthBone   = errors.New("bone has zero length")
	ErrInvertedRange    = errors.New("min target range above max target range")
	ErrChainSize        = errors.New("wrong number of joints for chain kind")
	ErrDisconnected     = errors.New("end joint does not start at the base endpoint")
	ErrInvalidJoint     = errors.New("invalid joint")
)
