// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import "cogentcore.org/ik/math32"

// Aim returns the local orientation that points the bone along the
// world direction dir when the parent has world rotation parentRot,
// carrying the given twist, with the limits applied. When limits clamp
// a bend axis the remaining free rotation axes are tried one at a time
// to recover as much of the aim as possible. The returned set holds
// the axes clamped in the chosen orientation. Aim does not modify j.
func (j *Joint) Aim(dir math32.Vector3, parentRot math32.Quat, twist float32) (Orientation, Axes) {
	dirP := parentRot.Inverse().Rotate(dir)
	if dirP.LengthSquared() < minBoneLengthSq {
		o := j.current
		return o, j.ApplyLimits(&o)
	}
	r := math32.NewQuatFromTo(j.origRootToEnd, dirP)
	o := orientationFromQuat(r.Mul(j.origRot), twist)
	clamped := j.ApplyLimits(&o)
	if clamped.Bends() == 0 {
		return o, clamped
	}
	return j.correctClamped(o, dirP, clamped)
}

// NewForward returns the world forward axis the joint would have if the
// bone were turned from its original direction onto dir by the shortest
// rotation, under a parent with world rotation parentRot. When the bone
// runs along the forward axis the normalized dir is returned directly.
func (j *Joint) NewForward(dir math32.Vector3, parentRot math32.Quat) math32.Vector3 {
	if j.origRootToEnd.Normal().Cross(j.origForward).LengthSquared() < 1e-8 {
		return dir.Normal()
	}
	dirP := parentRot.Inverse().Rotate(dir)
	r := math32.NewQuatFromTo(j.origRootToEnd, dirP)
	return parentRot.Mul(r).Rotate(j.origForward)
}

// correctClamped greedily re-aims a clamped orientation using each
// configured rotation axis that was not clamped, keeping whichever
// single axis leaves the bone closest to dirP (in the parent's frame).
func (j *Joint) correctClamped(o Orientation, dirP math32.Vector3, clamped Axes) (Orientation, Axes) {
	best, bestClamped := o, clamped
	bestErr := j.aimError(o, dirP)
	for _, a := range BendAxes {
		if clamped.Has(a) || !j.DOF.Has(a) {
			continue
		}
		c := o
		c.SetAngle(a, c.Angle(a)+j.swingAround(c, a, dirP))
		cc := j.ApplyLimits(&c)
		if err := j.aimError(c, dirP); err < bestErr {
			best, bestClamped, bestErr = c, cc, err
		}
	}
	return best, bestClamped
}

// aimError is the angle in radians between the bone under o and dirP.
func (j *Joint) aimError(o Orientation, dirP math32.Vector3) float32 {
	return o.Bend().Rotate(j.boneAxis).AngleTo(dirP)
}

// swingAround returns the change in degrees of Euler angle a that
// brings the bone under o closest to dirP. Euler angles compose as
// Y * X * Z, so Y turns about the parent's Y axis, X about the X axis
// after Y, and Z about the Z axis after both.
func (j *Joint) swingAround(o Orientation, a Axis, dirP math32.Vector3) float32 {
	qx := math32.NewQuatAxisAngleDeg(math32.Vector3X, o.Euler.X)
	qy := math32.NewQuatAxisAngleDeg(math32.Vector3Y, o.Euler.Y)
	var axis math32.Vector3
	switch a {
	case RotX:
		axis = qy.Rotate(math32.Vector3X)
	case RotY:
		axis = math32.Vector3Y
	case RotZ:
		axis = qy.Mul(qx).Rotate(math32.Vector3Z)
	}
	cur := o.Bend().Rotate(j.boneAxis)
	return math32.SignedAngle(cur.ProjectOnPlane(axis), dirP.ProjectOnPlane(axis), axis)
}
