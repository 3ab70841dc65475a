// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import (
	"log/slog"

	"cogentcore.org/ik/math32"
	"cogentcore.org/ik/xyz"
)

// Deadband is the turn in degrees below which a single bone chain
// holds its previous ideal rather than re-aiming.
const Deadband = 1

// minTargetDistSq is the squared distance below which a target is
// treated as sitting on the pivot.
const minTargetDistSq = 1e-10

// reachScale returns how much of the full turn to take for the given
// remaining distance, and false when the chain should not move.
func reachScale(distanceToGo, minRange, maxRange float32) (float32, bool) {
	if distanceToGo <= minRange {
		return 0, false
	}
	if distanceToGo >= maxRange {
		return 1, true
	}
	return math32.SmoothStep(math32.InverseLerp(minRange, maxRange, distanceToGo)), true
}

func solveSingleBone(c *Chain) Targets {
	j := c.Joints[0]
	root := j.Root()
	endVec := j.Endpoint().Sub(root)
	target := c.Target.WorldPosition()
	targetVec := target.Sub(root)
	if targetVec.LengthSquared() < minTargetDistSq || endVec.LengthSquared() < minTargetDistSq {
		return Targets{}
	}
	scale, ok := reachScale(j.Endpoint().DistanceTo(target), c.MinTargetRange, c.MaxTargetRange)
	if !ok {
		return Targets{}
	}
	angle := math32.RadToDeg(endVec.AngleTo(targetVec)) * scale
	if angle <= Deadband {
		return Targets{Moved: true, Joints: []JointTarget{{Hold: true}}}
	}
	parentRot := xyz.ParentRotation(j.Node)
	axis := endVec.Cross(targetVec)
	if axis.LengthSquared() < minTargetDistSq {
		// target directly behind: turn over the joint's own up axis
		axis = endVec.Cross(xyz.Up(j.Node.WorldRotation()))
		if axis.LengthSquared() < minTargetDistSq {
			axis = endVec.Cross(xyz.Right(j.Node.WorldRotation()))
		}
		slog.Debug("ik: target opposite the bone", "chain", c.Name)
	}
	newVec := math32.NewQuatAxisAngleDeg(axis, angle).Rotate(endVec)
	twist := math32.AngleAroundAxis(endVec, newVec, j.NewForward(newVec, parentRot))
	o, _ := j.Aim(newVec, parentRot, twist)
	return Targets{Moved: true, Joints: []JointTarget{{Orientation: o}}}
}

// triangleHeight returns the height over the side of length base of
// the triangle with the other two sides a and b, by Heron's formula.
// Impossible triangles have height 0.
func triangleHeight(base, a, b float32) float32 {
	if base <= 0 {
		return 0
	}
	s := (base + a + b) / 2
	area2 := s * (s - base) * (s - a) * (s - b)
	if area2 <= 0 {
		return 0
	}
	return 2 * math32.Sqrt(area2) / base
}

// elbowPosition returns where the middle joint of a two bone chain goes
// so that bones of length upper and lower span root to target, bending
// toward swivel. hint is a fallback bend direction used when swivel
// lies on the root to target line.
func elbowPosition(root, target, swivel, hint math32.Vector3, upper, lower float32) math32.Vector3 {
	d := target.Sub(root)
	dist := d.Length()
	dn := d.DivScalar(dist)
	foot := math32.Clamp((dist*dist+upper*upper-lower*lower)/(2*dist), -upper, upper)
	mid1D := root.Add(dn.MulScalar(foot))
	h := triangleHeight(dist, upper, lower)

	bend := d.Cross(swivel.Sub(mid1D)).Cross(d)
	if bend.LengthSquared() < minTargetDistSq {
		bend = hint.ProjectOnPlane(d)
	}
	if bend.LengthSquared() < minTargetDistSq {
		bend = d.Cross(math32.Vector3Y)
		if bend.LengthSquared() < minTargetDistSq {
			bend = d.Cross(math32.Vector3X)
		}
	}
	return mid1D.Add(bend.Normal().MulScalar(h))
}

func solveTwoBone(c *Chain) Targets {
	base, end := c.Joints[0], c.Joints[1]
	root := base.Root()
	mid := end.Root()
	eff := end.Endpoint()
	target := c.Target.WorldPosition()
	if eff.DistanceTo(target) <= c.MinTargetRange {
		return Targets{}
	}
	toTarget := target.Sub(root)
	if toTarget.LengthSquared() < minTargetDistSq {
		return Targets{}
	}
	upper, lower := base.BoneLength(), end.BoneLength()
	parentRot := xyz.ParentRotation(base.Node)

	elbowDir := toTarget
	if toTarget.Length() < upper+lower {
		hint := mid.Sub(root)
		elbowDir = elbowPosition(root, target, c.Swivel.WorldPosition(), hint, upper, lower).Sub(root)
	}
	newMidToEnd := target.Sub(root.Add(elbowDir.Normal().MulScalar(upper)))
	baseTwist := math32.AngleAroundAxis(eff.Sub(mid), newMidToEnd, base.NewForward(elbowDir, parentRot))
	baseO, _ := base.Aim(elbowDir, parentRot, baseTwist)

	// the end joint is aimed from where the base will be, not where it is
	endOffset := base.Node.WorldRotation().Inverse().Mul(xyz.ParentRotation(end.Node))
	baseRot := base.WorldRotationFor(baseO, parentRot)
	endParent := baseRot.Mul(endOffset)
	newMid := base.EndpointFor(baseO, parentRot, root)
	endDir := target.Sub(newMid)
	endTwist := math32.AngleAroundAxis(eff.Sub(mid), endDir, end.NewForward(endDir, endParent))
	endO, _ := end.Aim(endDir, endParent, endTwist)

	if base.DOF.Has(Twist) {
		baseO.Twist += measureTwistAngle(base, end, baseO, endO, parentRot, endOffset, root, target)
		base.ApplyLimits(&baseO)
	}
	return Targets{Moved: true, Joints: []JointTarget{{Orientation: baseO}, {Orientation: endO}}}
}

// measureTwistAngle returns the extra base twist in degrees that swings
// the plane holding the solved effector onto the plane holding the
// target, both through the base bone. It evaluates the hypothetical
// pose and never touches a transform.
func measureTwistAngle(base, end *Joint, baseO, endO Orientation, parentRot, endOffset math32.Quat, root, target math32.Vector3) float32 {
	baseRot := base.WorldRotationFor(baseO, parentRot)
	mid := base.EndpointFor(baseO, parentRot, root)
	eff := end.EndpointFor(endO, baseRot.Mul(endOffset), mid)
	axis := mid.Sub(root)
	return math32.WrapAngle180(-math32.AngleBetweenPlanes(axis, eff.Sub(root), axis, target.Sub(root)))
}
