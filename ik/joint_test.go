// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import (
	"bytes"
	"log/slog"
	"testing"

	"cogentcore.org/ik/base/logx"
	"cogentcore.org/ik/base/tolassert"
	"cogentcore.org/ik/math32"
	"cogentcore.org/ik/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog routes the default logger into the returned buffer
// for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	logx.Install(&buf)
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// armRig returns a one bone arm at the origin pointing along +Z.
func armRig() (root, arm, tip *xyz.Node) {
	root = xyz.NewNode("root")
	arm = root.NewChild("arm")
	tip = arm.NewChild("tip").SetPos(0, 0, 1)
	return
}

func TolAssertEqualVector(t *testing.T, tol float32, vt, va math32.Vector3) {
	t.Helper()
	tolassert.EqualTol(t, vt.X, va.X, tol)
	tolassert.EqualTol(t, vt.Y, va.Y, tol)
	tolassert.EqualTol(t, vt.Z, va.Z, tol)
}

func tick(j *Joint, dt float32) {
	j.EarlyUpdate()
	j.LateUpdate(dt)
	j.FinalUpdate()
}

func TestJointInit(t *testing.T) {
	root, arm, tip := armRig()
	root.SetPos(1, 2, 3).SetEulerRotation(0, 90, 0)
	arm.SetEulerRotation(-20, 0, 0)
	j := NewJoint("arm", arm, tip, FreeRotation()...)
	require.NoError(t, j.Init())
	assert.True(t, j.IsValid())
	assert.NoError(t, j.Init())

	tolassert.EqualTol(t, 1, j.BoneLength(), 1e-5)
	TolAssertEqualVector(t, 1e-5, math32.Vector3Z, j.BoneAxis())
	// originals are in the parent's frame, so the root turn does not show
	TolAssertEqualVector(t, 1e-5, math32.NewQuatEulerDeg(math32.Vec3(-20, 0, 0)).Rotate(math32.Vector3Z), j.OriginalForward())
	TolAssertEqualVector(t, 1e-5, j.OriginalForward(), j.OriginalRootToEnd())
	TolAssertEqualVector(t, 1e-5, j.OriginalForward().Cross(j.OriginalUp()).Negate(), j.OriginalRight())
	tolassert.EqualTol(t, -20, j.Initial().Signed(RotX), 1e-3)
	assert.Equal(t, j.Initial(), j.Current())
	assert.Equal(t, j.Initial(), j.Ideal())
}

func TestJointInvalidConfig(t *testing.T) {
	buf := captureLog(t)
	_, arm, tip := armRig()
	j := NewJoint("elbow", arm, tip, Limit(RotX, -10, 10, 0), Limit(RotX, -5, 5, 0), Limit(RotY, 20, -20, 0))
	err := j.Init()
	assert.ErrorIs(t, err, ErrDuplicateAxis)
	assert.ErrorIs(t, err, ErrInvertedLimit)
	assert.False(t, j.IsValid())
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), `joint "elbow"`)

	// every update is a no-op
	before := arm.LocalRotation()
	j.SetIdeal(Orientation{Euler: math32.Vec3(0, 90, 0)})
	tick(j, 0.1)
	assert.Equal(t, before, arm.LocalRotation())
	assert.False(t, j.Moved())
	assert.ErrorIs(t, j.Init(), ErrInvalidJoint)

	c := NewSingleBone("arm", j, xyz.Point(math32.Vec3(1, 0, 0)))
	assert.ErrorIs(t, c.Init(), ErrInvalidJoint)
	assert.False(t, c.Tick(0.1))
	assert.Equal(t, before, arm.LocalRotation())
}

func TestJointMissingReferences(t *testing.T) {
	captureLog(t)
	j := NewJoint("ghost", nil, nil)
	assert.ErrorIs(t, j.Init(), ErrMissingReference)

	_, arm, _ := armRig()
	j = NewJoint("point", arm, arm)
	assert.ErrorIs(t, j.Init(), ErrZeroLengthBone)
	assert.False(t, j.IsValid())
}

func TestJointPhases(t *testing.T) {
	_, arm, tip := armRig()
	j := NewJoint("arm", arm, tip, FreeRotation()...)
	j.RotationGain = 100
	j.MaxAngularSpeed = 45
	require.NoError(t, j.Init())
	assert.Equal(t, PhaseFresh, j.Phase())

	j.SetIdeal(Orientation{Euler: math32.Vec3(0, 90, 0)})
	assert.True(t, j.Moved())
	j.LateUpdate(1)
	assert.Equal(t, PhaseLateDone, j.Phase())
	tolassert.EqualTol(t, 45, j.Current().Signed(RotY), 1e-3)
	// nothing is committed before the final update
	assert.True(t, arm.LocalRotation().IsIdentity())

	// a second late update in the same tick does nothing
	j.LateUpdate(1)
	tolassert.EqualTol(t, 45, j.Current().Signed(RotY), 1e-3)

	j.FinalUpdate()
	assert.Equal(t, PhaseCommitted, j.Phase())
	s := math32.Sqrt(0.5)
	TolAssertEqualVector(t, 1e-4, math32.Vec3(s, 0, s), tip.WorldPosition())

	j.EarlyUpdate()
	assert.Equal(t, PhaseFresh, j.Phase())
	assert.False(t, j.Moved())
	// not driven and no return to rest: the joint stays put
	j.LateUpdate(1)
	j.FinalUpdate()
	TolAssertEqualVector(t, 1e-4, math32.Vec3(s, 0, s), tip.WorldPosition())
}

func TestJointInterpolation(t *testing.T) {
	_, arm, tip := armRig()
	j := NewJoint("arm", arm, tip, FreeRotation()...)
	j.RotationGain = 4
	j.MaxAngularSpeed = 60
	require.NoError(t, j.Init())

	dt := float32(0.05)
	prev := j.Current().Signed(RotX)
	for range make([]struct{}, 200) {
		j.EarlyUpdate()
		j.SetIdeal(Orientation{Euler: math32.Vec3(-80, 0, 0)})
		j.LateUpdate(dt)
		j.FinalUpdate()
		cur := j.Current().Signed(RotX)
		step := prev - cur
		assert.LessOrEqual(t, step, j.MaxAngularSpeed*dt+1e-3)
		assert.GreaterOrEqual(t, step, float32(-1e-4))
		assert.GreaterOrEqual(t, cur, float32(-80.001))
		prev = cur
	}
	tolassert.EqualTol(t, -80, prev, 1e-2)
	tolassert.EqualTol(t, 80, math32.RadToDeg(arm.LocalRotation().Angle(math32.NewQuatIdentity())), 1e-1)
}

func TestJointReturnToRest(t *testing.T) {
	_, arm, tip := armRig()
	arm.SetEulerRotation(25, 0, 0)
	j := NewJoint("arm", arm, tip, Limit(RotX, -30, 30, 0))
	j.DoesReturnToRest = true
	j.ReturnToRestSpeed = 10
	require.NoError(t, j.Init())
	tolassert.EqualTol(t, 25, j.Current().Signed(RotX), 1e-3)

	prev := j.Current().Signed(RotX)
	for range make([]struct{}, 100) {
		tick(j, 0.02)
		cur := j.Current().Signed(RotX)
		assert.LessOrEqual(t, cur, prev)
		assert.GreaterOrEqual(t, cur, float32(0))
		prev = cur
	}
	tolassert.EqualTol(t, 0, prev, 1e-3)
	TolAssertEqualVector(t, 1e-4, math32.Vector3Z, tip.WorldPosition())
}

func TestJointDroop(t *testing.T) {
	_, arm, tip := armRig()
	j := NewJoint("tail", arm, tip, FreeRotation()...)
	j.UsesGravityDroop = true
	require.NoError(t, j.Init())

	prev := tip.WorldPosition().Y
	for range make([]struct{}, 20) {
		tick(j, 0.02)
		y := tip.WorldPosition().Y
		assert.Less(t, y, prev)
		prev = y
	}
	assert.Less(t, prev, float32(0))
	tolassert.EqualTol(t, 0, tip.WorldPosition().X, 1e-4)

	// hanging straight down there is nothing left to droop
	for range make([]struct{}, 5000) {
		tick(j, 0.02)
	}
	low := tip.WorldPosition()
	tick(j, 0.02)
	tolassert.EqualTol(t, low.Y, tip.WorldPosition().Y, 1e-3)
	assert.Less(t, low.Y, float32(-0.7))
}

func TestJointDroopBand(t *testing.T) {
	const dt = 0.1
	g := DefaultTunables().Gravity
	// sag per tick is full up to 45 degrees of elevation and fades
	// linearly to zero at vertical
	for _, tc := range []struct {
		elevation, scale float32
	}{{30, 1}, {45, 1}, {60, 2.0 / 3}, {90, 0}} {
		_, arm, tip := armRig()
		arm.SetEulerRotation(-tc.elevation, 0, 0)
		j := NewJoint("tail", arm, tip, FreeRotation()...)
		j.UsesGravityDroop = true
		require.NoError(t, j.Init())

		start := tip.WorldPosition()
		tolassert.EqualTol(t, math32.Sin(math32.DegToRad(tc.elevation)), start.Y, 1e-5)
		tick(j, dt)
		want := start.Add(g.MulScalar(tc.scale * dt * dt)).Normal()
		TolAssertEqualVector(t, 1e-4, want, tip.WorldPosition())
	}
}

func TestJointSmoothing(t *testing.T) {
	body := xyz.NewNode("body")
	arm := body.NewChild("arm")
	tip := arm.NewChild("tip").SetPos(0, -1, 0)
	j := NewJoint("arm", arm, tip, FreeRotation()...)
	j.UsesSmoothing = true
	j.SmoothingRate = 0.5
	require.NoError(t, j.Init())

	tick(j, 0.02)
	TolAssertEqualVector(t, 1e-5, math32.Vec3(0, -1, 0), tip.WorldPosition())

	body.SetPos(0.1, 0, 0)
	tick(j, 0.02)
	// the hanging bone trails behind the moving body
	assert.Less(t, tip.WorldPosition().X, body.WorldPosition().X)
	tolassert.EqualTol(t, 1, tip.WorldPosition().DistanceTo(arm.WorldPosition()), 1e-4)
}

func TestAimCorrection(t *testing.T) {
	root := xyz.NewNode("root")
	arm := root.NewChild("arm")
	tip := arm.NewChild("tip").SetPos(1, 0, 1)
	j := NewJoint("arm", arm, tip, Limit(RotX, 0, 0, 0), Limit(RotY, 0, 0, 0), Limit(RotZ, -180, 180, 0))
	require.NoError(t, j.Init())

	bone := math32.Vec3(1, 0, 1).Normal()
	dir := math32.NewQuatAxisAngleDeg(math32.Vector3Z, 40).Rotate(bone)

	// clamping the direct aim alone misses by a wide margin
	plain := orientationFromQuat(math32.NewQuatFromTo(bone, dir), 0)
	assert.NotEqual(t, Axes(0), j.ApplyLimits(&plain).Bends())
	assert.Greater(t, math32.RadToDeg(j.aimError(plain, dir)), float32(1))

	o, clamped := j.Aim(dir, math32.NewQuatIdentity(), 0)
	assert.Equal(t, Axes(0), clamped)
	tolassert.EqualTol(t, 40, o.Signed(RotZ), 0.05)
	assert.Equal(t, float32(0), o.Signed(RotX))
	assert.Equal(t, float32(0), o.Signed(RotY))
	assert.Less(t, math32.RadToDeg(j.aimError(o, dir)), float32(0.05))
}

func TestOrientToward(t *testing.T) {
	root, arm, tip := armRig()
	root.SetEulerRotation(0, 90, 0)
	j := NewJoint("arm", arm, tip, FreeRotation()...)
	require.NoError(t, j.Init())

	// world +X is the root's forward, so the arm needs no turn
	assert.Equal(t, Axes(0), j.OrientToward(math32.Vector3X, 0))
	TolAssertEqualVector(t, 1e-4, math32.Vector3X, j.EndpointFor(j.Ideal(), xyz.ParentRotation(arm), arm.WorldPosition()))

	j.OrientToward(math32.Vec3(0, 1, 0), 0)
	TolAssertEqualVector(t, 1e-4, math32.Vector3Y, j.EndpointFor(j.Ideal(), xyz.ParentRotation(arm), arm.WorldPosition()))
}
