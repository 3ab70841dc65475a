// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import (
	"cogentcore.org/ik/math32"
	"cogentcore.org/ik/xyz"
)

// Phase is where a joint is within the current tick.
type Phase int32

const (
	// PhaseFresh is the state after [Joint.EarlyUpdate]:
	// the joint may be driven and then late updated.
	PhaseFresh Phase = iota

	// PhaseLateDone is the state after [Joint.LateUpdate]:
	// the current orientation is final but not yet committed.
	PhaseLateDone

	// PhaseCommitted is the state after [Joint.FinalUpdate].
	PhaseCommitted
)

func (p Phase) String() string {
	switch p {
	case PhaseFresh:
		return "Fresh"
	case PhaseLateDone:
		return "LateDone"
	case PhaseCommitted:
		return "Committed"
	}
	return "Phase(?)"
}

// droopBand is the elevation in degrees above which droop fades out,
// reaching zero when the bone points straight along gravity.
const droopBand = 45

// EarlyUpdate starts a new tick: the joint is not yet driven.
func (j *Joint) EarlyUpdate() {
	if !j.valid {
		return
	}
	j.moved = false
	j.phase = PhaseFresh
}

// LateUpdate advances the current orientation by dt seconds: toward the
// ideal when driven, otherwise toward rest if enabled. Smoothing and
// droop are then applied on the resulting pose, followed by the limits.
// It runs at most once per tick.
func (j *Joint) LateUpdate(dt float32) {
	if !j.valid || j.phase != PhaseFresh {
		return
	}
	parentRot := xyz.ParentRotation(j.Node)
	root := j.Node.WorldPosition()
	end := j.End.WorldPosition()

	if j.moved {
		j.stepToward(dt)
	} else if j.DoesReturnToRest {
		j.returnToRest(dt)
	}
	if j.UsesSmoothing && j.hasLastEnd {
		j.smooth(end.Sub(j.lastEnd), parentRot, root)
	}
	if j.UsesGravityDroop {
		j.droop(parentRot, root, dt)
	}
	j.ApplyLimits(&j.current)

	j.lastEnd = end
	j.hasLastEnd = true
	j.phase = PhaseLateDone
}

// FinalUpdate commits the current orientation to the pivot transform.
func (j *Joint) FinalUpdate() {
	if !j.valid || j.phase == PhaseCommitted {
		return
	}
	j.Node.SetLocalRotation(j.LocalRotation(j.current))
	j.phase = PhaseCommitted
}

// stepToward moves each angle toward the ideal at a speed proportional
// to the remaining angle, capped by MaxAngularSpeed, never overshooting.
func (j *Joint) stepToward(dt float32) {
	for _, a := range [...]Axis{RotX, RotY, RotZ, Twist} {
		cur := j.current.Angle(a)
		rem := math32.Abs(math32.DeltaAngle(cur, j.ideal.Angle(a)))
		speed := math32.Min(rem*j.RotationGain, j.MaxAngularSpeed)
		j.current.SetAngle(a, math32.MoveTowardsAngle(cur, j.ideal.Angle(a), speed*dt))
	}
}

// returnToRest eases each configured rotation axis toward its rest angle
// while its deviation from rest is larger than the axis lower bound.
func (j *Joint) returnToRest(dt float32) {
	t := math32.Clamp(j.ReturnToRestSpeed*dt, 0, 1)
	for _, l := range j.DOF {
		if !l.Axis.IsRotation() && l.Axis != Twist {
			continue
		}
		cur := j.current.Angle(l.Axis)
		if math32.Abs(math32.DeltaAngle(cur, l.Rest)) <= l.Lower {
			continue
		}
		j.current.SetAngle(l.Axis, math32.LerpAngle(cur, l.Rest, t))
	}
	j.ideal = j.current
}

// lookAt turns the current bend by the shortest rotation taking the
// current bone direction onto dirP, in the parent's frame.
func (j *Joint) lookAt(dirP math32.Vector3) {
	if dirP.LengthSquared() < minBoneLengthSq {
		return
	}
	bend := j.current.Bend()
	r := math32.NewQuatFromTo(bend.Rotate(j.boneAxis), dirP)
	j.current = orientationFromQuat(r.Mul(bend), j.current.Twist)
}

// smooth lags the bone behind the last tick's endpoint velocity.
func (j *Joint) smooth(vel math32.Vector3, parentRot math32.Quat, root math32.Vector3) {
	if vel.LengthSquared() == 0 {
		return
	}
	lag := j.EndpointFor(j.current, parentRot, root).Sub(vel.MulScalar(1 - math32.Clamp(j.SmoothingRate, 0, 1)))
	j.lookAt(parentRot.Inverse().Rotate(lag.Sub(root)))
}

// droop sags the endpoint along gravity by an amount proportional to
// bone length and weight, fading out as the bone nears vertical.
func (j *Joint) droop(parentRot math32.Quat, root math32.Vector3, dt float32) {
	gl := j.Gravity.Length()
	if gl == 0 {
		return
	}
	dir := j.bendDirection(j.current, parentRot)
	elevation := math32.RadToDeg(math32.Asin(math32.Abs(dir.Dot(j.Gravity.DivScalar(gl)))))
	mag := j.boneLength * j.Weight
	if elevation > droopBand {
		mag *= 1 - math32.InverseLerp(droopBand, 90, elevation)
	}
	offset := j.Gravity.MulScalar(mag * dt * dt)
	end := root.Add(dir.MulScalar(j.boneLength))
	j.lookAt(parentRot.Inverse().Rotate(end.Add(offset).Sub(root)))
}
