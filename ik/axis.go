// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import (
	"fmt"
	"strings"
)

// Axis is a single degree of freedom of a joint.
type Axis int32

const (
	// MoveX is translation along the local X axis.
	MoveX Axis = iota

	// MoveY is translation along the local Y axis.
	MoveY

	// MoveZ is translation along the local Z axis.
	MoveZ

	// RotX is the Euler rotation around the local X axis.
	RotX

	// RotY is the Euler rotation around the local Y axis.
	RotY

	// RotZ is the Euler rotation around the local Z axis.
	RotZ

	// Twist is rotation around the bone's own long axis.
	Twist

	// AxisN is the number of axes.
	AxisN
)

var axisNames = [AxisN]string{"MoveX", "MoveY", "MoveZ", "RotX", "RotY", "RotZ", "Twist"}

// BendAxes are the three Euler rotation axes.
var BendAxes = [3]Axis{RotX, RotY, RotZ}

// String returns the name of the axis.
func (a Axis) String() string {
	if a < 0 || a >= AxisN {
		return fmt.Sprintf("Axis(%d)", int32(a))
	}
	return axisNames[a]
}

// IsRotation reports whether the axis is one of the Euler rotation axes.
func (a Axis) IsRotation() bool {
	return a >= RotX && a <= RotZ
}

// IsValid reports whether a is a known axis.
func (a Axis) IsValid() bool {
	return a >= 0 && a < AxisN
}

// ParseAxis returns the axis with the given case-insensitive name,
// ignoring underscores, so "RotX", "rotx" and "rot_x" are all accepted.
func ParseAxis(s string) (Axis, error) {
	key := strings.ToLower(strings.ReplaceAll(s, "_", ""))
	for i, nm := range axisNames {
		if strings.ToLower(nm) == key {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("ik: unknown axis %q", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (a Axis) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("ik: invalid axis %d", int32(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Axis) UnmarshalText(text []byte) error {
	v, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Axes is a set of axes.
type Axes uint8

// Has reports whether the set contains a.
func (s Axes) Has(a Axis) bool {
	return s&(1<<a) != 0
}

// With returns the set with a added.
func (s Axes) With(a Axis) Axes {
	return s | 1<<a
}

// Bends returns the subset of Euler rotation axes.
func (s Axes) Bends() Axes {
	return s & (1<<RotX | 1<<RotY | 1<<RotZ)
}

// String returns the axis names in the set, separated by "|".
func (s Axes) String() string {
	var names []string
	for a := MoveX; a < AxisN; a++ {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return strings.Join(names, "|")
}
