// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import (
	"fmt"

	"cogentcore.org/ik/math32"
)

// Orientation is a joint local rotation decomposed into Euler angles
// (see [math32.NewQuatEulerDeg]) and a separate twist around the bone's
// long axis. All angles are degrees, stored in [0, 360).
type Orientation struct {
	Euler math32.Vector3
	Twist float32
}

// String implements the [fmt.Stringer] interface, printing signed angles.
func (o Orientation) String() string {
	return fmt.Sprintf("{X: %.2f, Y: %.2f, Z: %.2f, Twist: %.2f}", o.Signed(RotX), o.Signed(RotY), o.Signed(RotZ), o.Signed(Twist))
}

// Angle returns the stored angle for a rotational axis or twist.
// Positional axes return 0.
func (o Orientation) Angle(a Axis) float32 {
	switch a {
	case RotX:
		return o.Euler.X
	case RotY:
		return o.Euler.Y
	case RotZ:
		return o.Euler.Z
	case Twist:
		return o.Twist
	}
	return 0
}

// SetAngle sets the angle for a rotational axis or twist,
// normalized into [0, 360). Positional axes are ignored.
func (o *Orientation) SetAngle(a Axis, deg float32) {
	deg = math32.WrapAngle360(deg)
	switch a {
	case RotX:
		o.Euler.X = deg
	case RotY:
		o.Euler.Y = deg
	case RotZ:
		o.Euler.Z = deg
	case Twist:
		o.Twist = deg
	}
}

// Signed returns the angle for the given axis in (-180, 180].
func (o Orientation) Signed(a Axis) float32 {
	return math32.WrapAngle180(o.Angle(a))
}

// Normalized returns o with every angle in [0, 360).
func (o Orientation) Normalized() Orientation {
	return Orientation{
		Euler: math32.Vec3(math32.WrapAngle360(o.Euler.X), math32.WrapAngle360(o.Euler.Y), math32.WrapAngle360(o.Euler.Z)),
		Twist: math32.WrapAngle360(o.Twist),
	}
}

// Bend returns the rotation of the Euler part alone.
func (o Orientation) Bend() math32.Quat {
	return math32.NewQuatEulerDeg(o.Euler)
}

// Quat returns the full local rotation: the Euler bend applied after
// the twist around boneAxis, which is the bone direction in the
// joint's own frame.
func (o Orientation) Quat(boneAxis math32.Vector3) math32.Quat {
	return o.Bend().Mul(math32.NewQuatAxisAngleDeg(boneAxis, o.Twist))
}

// orientationFromQuat returns the Euler decomposition of q with the given twist.
func orientationFromQuat(q math32.Quat, twist float32) Orientation {
	return Orientation{Euler: q.ToEulerDeg(), Twist: twist}.Normalized()
}
