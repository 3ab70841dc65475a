// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz provides the transform hierarchy that kinematic chains
// read from and commit rotations to. [Transform] is the minimal contract
// a host scene graph must satisfy; [Node] is a self-contained
// implementation used by rigs, tools and tests.
package xyz

import "cogentcore.org/ik/math32"

// Transform is a node in a transform hierarchy.
type Transform interface {

	// WorldPosition returns the position in world space.
	WorldPosition() math32.Vector3

	// LocalPosition returns the position relative to the parent.
	LocalPosition() math32.Vector3

	// WorldRotation returns the rotation in world space.
	WorldRotation() math32.Quat

	// LocalRotation returns the rotation relative to the parent.
	LocalRotation() math32.Quat

	// SetLocalRotation sets the rotation relative to the parent.
	SetLocalRotation(q math32.Quat)

	// Parent returns the parent transform, or nil at the root.
	Parent() Transform
}

// Positioner is anything with a world position, such as a reach target.
type Positioner interface {
	WorldPosition() math32.Vector3
}

// Point is a fixed world position usable wherever a [Positioner] is needed.
type Point math32.Vector3

// WorldPosition implements [Positioner].
func (p Point) WorldPosition() math32.Vector3 {
	return math32.Vector3(p)
}

// Forward returns the +Z axis of the given rotation.
func Forward(q math32.Quat) math32.Vector3 {
	return q.Rotate(math32.Vector3Z)
}

// Up returns the +Y axis of the given rotation.
func Up(q math32.Quat) math32.Vector3 {
	return q.Rotate(math32.Vector3Y)
}

// Right returns the +X axis of the given rotation.
func Right(q math32.Quat) math32.Vector3 {
	return q.Rotate(math32.Vector3X)
}

// ParentRotation returns the world rotation of the parent of t,
// or the identity when t has no parent.
func ParentRotation(t Transform) math32.Quat {
	if p := t.Parent(); p != nil {
		return p.WorldRotation()
	}
	return math32.NewQuatIdentity()
}
