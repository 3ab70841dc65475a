// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "cogentcore.org/ik/math32"

// Pose contains the position and rotation of a node relative to its parent.
// Scale is not modeled: kinematic chains are rigid.
type Pose struct {

	// position relative to the parent
	Pos math32.Vector3

	// rotation relative to the parent, as a quaternion
	Quat math32.Quat
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// FromRel returns the absolute pose of a child whose relative pose
// is rel, given the absolute pose of its parent.
func (ps Pose) FromRel(par Pose) Pose {
	return Pose{
		Pos:  par.Quat.Rotate(ps.Pos).Add(par.Pos),
		Quat: par.Quat.Mul(ps.Quat),
	}
}

// SetEulerRotation sets the rotation in Euler angles (degrees).
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat = math32.NewQuatEulerDeg(math32.Vec3(x, y, z))
}

// EulerRotation returns the current rotation in Euler angles (degrees).
func (ps *Pose) EulerRotation() math32.Vector3 {
	return ps.Quat.ToEulerDeg()
}

// SetAxisRotation sets rotation from local axis and angle in degrees.
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat = math32.NewQuatAxisAngleDeg(math32.Vec3(x, y, z), angle)
}
