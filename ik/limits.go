// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import (
	"errors"
	"fmt"

	"cogentcore.org/ik/math32"
)

// AxisLimit is one degree of freedom with its bounds and rest angle.
// Rotational bounds are signed degrees in [-180, 180].
type AxisLimit struct {

	// Axis is the degree of freedom this entry configures.
	Axis Axis `toml:"axis" yaml:"axis"`

	// Lower is the lower bound.
	Lower float32 `toml:"lower" yaml:"lower"`

	// Upper is the upper bound.
	Upper float32 `toml:"upper" yaml:"upper"`

	// Rest is the angle the joint returns to when idle.
	Rest float32 `toml:"rest" yaml:"rest"`
}

// Limit returns an [AxisLimit] for the given axis and bounds.
func Limit(axis Axis, lower, upper, rest float32) AxisLimit {
	return AxisLimit{Axis: axis, Lower: lower, Upper: upper, Rest: rest}
}

// Clamp clamps the given angle in degrees into [Lower, Upper],
// comparing in (-180, 180]. An angle of 180 is read as -180 when
// that lies within the bounds.
func (l AxisLimit) Clamp(deg float32) float32 {
	v := math32.WrapAngle180(deg)
	if v >= l.Lower && v <= l.Upper {
		return v
	}
	if alt := v - 360; alt >= l.Lower && alt <= l.Upper {
		return alt
	}
	return math32.Clamp(v, l.Lower, l.Upper)
}

// Limits is the set of degrees of freedom of a joint.
type Limits []AxisLimit

// FreeRotation returns limits leaving all three Euler axes
// unconstrained, with twist locked.
func FreeRotation() Limits {
	return Limits{
		Limit(RotX, -180, 180, 0),
		Limit(RotY, -180, 180, 0),
		Limit(RotZ, -180, 180, 0),
	}
}

// Validate checks that no axis appears twice and that every lower
// bound is at most its upper bound. All problems are reported.
func (ls Limits) Validate() error {
	var errs []error
	var seen Axes
	for _, l := range ls {
		if !l.Axis.IsValid() {
			errs = append(errs, fmt.Errorf("axis %d: %w", int32(l.Axis), ErrUnknownAxis))
			continue
		}
		if seen.Has(l.Axis) {
			errs = append(errs, fmt.Errorf("%v: %w", l.Axis, ErrDuplicateAxis))
		}
		seen = seen.With(l.Axis)
		if l.Lower > l.Upper {
			errs = append(errs, fmt.Errorf("%v: lower %g > upper %g: %w", l.Axis, l.Lower, l.Upper, ErrInvertedLimit))
		}
	}
	return errors.Join(errs...)
}

// Find returns the limit for the given axis, if present.
func (ls Limits) Find(axis Axis) (AxisLimit, bool) {
	for _, l := range ls {
		if l.Axis == axis {
			return l, true
		}
	}
	return AxisLimit{}, false
}

// Has reports whether the set configures the given axis.
func (ls Limits) Has(axis Axis) bool {
	_, ok := ls.Find(axis)
	return ok
}

// clampEps is the change below which an axis is not reported as clamped.
const clampEps = 1e-4

// Apply enforces the limits on o. Each configured rotational axis is
// clamped into its bounds. Rotational axes that are not configured are
// locked to their value in init, and twist is forced to zero when no
// [Twist] entry exists. Positional entries do not affect rotation.
// The returned set holds every axis whose value was changed.
func (ls Limits) Apply(o *Orientation, init Orientation) Axes {
	var clamped Axes
	set := func(a Axis, v float32) {
		if math32.Abs(math32.DeltaAngle(o.Angle(a), v)) > clampEps {
			clamped = clamped.With(a)
		}
		o.SetAngle(a, v)
	}
	for _, a := range BendAxes {
		if l, ok := ls.Find(a); ok {
			set(a, l.Clamp(o.Angle(a)))
		} else {
			set(a, init.Angle(a))
		}
	}
	if l, ok := ls.Find(Twist); ok {
		set(Twist, l.Clamp(o.Angle(Twist)))
	} else {
		set(Twist, 0)
	}
	return clamped
}
