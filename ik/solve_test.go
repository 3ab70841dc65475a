// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import (
	"testing"

	"cogentcore.org/ik/base/tolassert"
	"cogentcore.org/ik/math32"
	"cogentcore.org/ik/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// legRig returns a two bone leg: the upper bone runs from the origin
// to (0, 0, 1) and the lower bone is bent 90 degrees toward +X.
func legRig() (root, upper, lower, tip *xyz.Node) {
	root = xyz.NewNode("root")
	upper = root.NewChild("upper")
	lower = upper.NewChild("lower").SetPos(0, 0, 1).SetEulerRotation(0, 90, 0)
	tip = lower.NewChild("tip").SetPos(0, 0, 1)
	return
}

func fastJoint(name string, node, end xyz.Transform) *Joint {
	j := NewJoint(name, node, end, FreeRotation()...)
	j.RotationGain = 50
	j.MaxAngularSpeed = 720
	return j
}

func TestReachScale(t *testing.T) {
	_, ok := reachScale(0.5, 0.5, 2)
	assert.False(t, ok)
	_, ok = reachScale(0, 0, 0)
	assert.False(t, ok)

	s, ok := reachScale(2, 0.5, 2)
	assert.True(t, ok)
	assert.Equal(t, float32(1), s)
	s, _ = reachScale(10, 0.5, 2)
	assert.Equal(t, float32(1), s)
	s, _ = reachScale(1.25, 0.5, 2)
	tolassert.EqualTol(t, 0.5, s, 1e-5)

	// eased in: monotone, flat at the ends
	prev := float32(0)
	for d := float32(0.51); d < 2; d += 0.01 {
		s, ok := reachScale(d, 0.5, 2)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
	s, _ = reachScale(0.501, 0.5, 2)
	assert.Less(t, s, float32(1e-5))
}

func TestSingleBoneReachesTarget(t *testing.T) {
	_, arm, tip := armRig()
	j := NewJoint("arm", arm, tip, FreeRotation()...)
	j.MaxAngularSpeed = 90
	c := NewSingleBone("arm", j, xyz.Point(math32.Vec3(1, 0, 0)))
	require.NoError(t, c.Init())

	dt := float32(0.02)
	prev := tip.WorldPosition().Sub(arm.WorldPosition())
	for range make([]struct{}, 400) {
		c.Tick(dt)
		dir := tip.WorldPosition().Sub(arm.WorldPosition())
		assert.LessOrEqual(t, math32.RadToDeg(prev.AngleTo(dir)), j.MaxAngularSpeed*dt+0.01)
		prev = dir
	}
	assert.LessOrEqual(t, math32.RadToDeg(prev.AngleTo(math32.Vector3X)), float32(Deadband))
	tolassert.EqualTol(t, 90, j.Current().Signed(RotY), 0.01)
	TolAssertEqualVector(t, 1e-3, math32.Vector3X, tip.WorldPosition())
}

func TestSingleBoneRange(t *testing.T) {
	_, arm, tip := armRig()
	j := NewJoint("arm", arm, tip, FreeRotation()...)
	c := NewSingleBone("arm", j, xyz.Point(math32.Vec3(0, 1, 1)))
	c.MinTargetRange = 2
	c.MaxTargetRange = 3
	require.NoError(t, c.Init())

	// the endpoint is within the min range: nothing moves
	for range make([]struct{}, 10) {
		assert.False(t, c.Tick(0.1))
	}
	assert.True(t, arm.LocalRotation().IsIdentity())
	assert.False(t, j.Moved())

	// far away: full turn toward the target
	c.SetTarget(xyz.Point(math32.Vec3(0, 10, 1)))
	for range make([]struct{}, 100) {
		c.Tick(0.1)
	}
	want := math32.Vec3(0, 10, 1).Normal()
	assert.LessOrEqual(t, math32.RadToDeg(tip.WorldPosition().AngleTo(want)), float32(Deadband))
}

func TestSingleBoneInvertedRange(t *testing.T) {
	captureLog(t)
	_, arm, tip := armRig()
	c := NewSingleBone("arm", NewJoint("arm", arm, tip, FreeRotation()...), xyz.Point(math32.Vec3(1, 0, 0)))
	c.MinTargetRange = 3
	c.MaxTargetRange = 2
	assert.ErrorIs(t, c.Init(), ErrInvertedRange)
	assert.False(t, c.IsValid())
	assert.Equal(t, Targets{}, Solve(c))
}

func TestTriangleHeight(t *testing.T) {
	tolassert.EqualTol(t, 4, triangleHeight(6, 5, 5), 1e-5)
	tolassert.EqualTol(t, math32.Sqrt(3)/2, triangleHeight(1, 1, 1), 1e-5)
	assert.Equal(t, float32(0), triangleHeight(2, 1, 1))
	assert.Equal(t, float32(0), triangleHeight(3, 1, 1))
	assert.Equal(t, float32(0), triangleHeight(0, 1, 1))
}

func TestElbowPosition(t *testing.T) {
	root := math32.Vec3(0, 0, 0)
	target := math32.Vec3(0, 0, 1.5)
	elbow := elbowPosition(root, target, math32.Vec3(1, 0, 0.75), math32.Vector3Y, 1, 1)
	h := math32.Sqrt(1 - 0.75*0.75)
	TolAssertEqualVector(t, 1e-4, math32.Vec3(h, 0, 0.75), elbow)
	tolassert.EqualTol(t, 1, elbow.DistanceTo(root), 1e-4)
	tolassert.EqualTol(t, 1, elbow.DistanceTo(target), 1e-4)

	// unequal bones still meet both lengths
	elbow = elbowPosition(root, math32.Vec3(0, 2, 0), math32.Vec3(0, 1, -3), math32.Vector3X, 1.5, 1)
	tolassert.EqualTol(t, 1.5, elbow.DistanceTo(root), 1e-4)
	tolassert.EqualTol(t, 1, elbow.DistanceTo(math32.Vec3(0, 2, 0)), 1e-4)
	assert.Less(t, elbow.Z, float32(0))

	// swivel on the line: the hint decides the bend side
	elbow = elbowPosition(root, target, math32.Vec3(0, 0, 5), math32.Vec3(0, -1, 0.3), 1, 1)
	TolAssertEqualVector(t, 1e-4, math32.Vec3(0, -h, 0.75), elbow)
}

func TestElbowBoundaryContinuity(t *testing.T) {
	root := math32.Vec3(0.5, -1, 2)
	dir := math32.Vec3(1, 2, -0.5).Normal()
	swivel := math32.Vec3(3, 0, 0)
	stretched := root.Add(dir.MulScalar(1.25))

	// exactly at full reach the bent solution is the stretched one
	elbow := elbowPosition(root, root.Add(dir.MulScalar(2)), swivel, math32.Vector3Y, 1.25, 0.75)
	TolAssertEqualVector(t, 1e-3, stretched, elbow)

	// and it approaches it continuously from inside
	prev := float32(1)
	for _, eps := range []float32{1e-1, 1e-2, 1e-3, 1e-4} {
		elbow := elbowPosition(root, root.Add(dir.MulScalar(2-eps)), swivel, math32.Vector3Y, 1.25, 0.75)
		d := elbow.DistanceTo(stretched)
		assert.Less(t, d, prev)
		prev = d
	}
	assert.Less(t, prev, float32(0.05))
}

func TestTwoBoneStretched(t *testing.T) {
	_, upper, lower, tip := legRig()
	TolAssertEqualVector(t, 1e-5, math32.Vec3(1, 0, 1), tip.WorldPosition())
	target := math32.Vec3(0, 0, 2.5)
	c := NewTwoBone("leg", fastJoint("upper", upper, lower), fastJoint("lower", lower, tip), xyz.Point(math32.Vec3(1, 0, 0.5)), xyz.Point(target))
	require.NoError(t, c.Init())

	for range make([]struct{}, 200) {
		assert.True(t, c.Tick(0.02))
	}
	eff := tip.WorldPosition()
	tolassert.EqualTol(t, 2, eff.Length(), 1e-3)
	assert.Less(t, math32.DistancePointToLine(eff, target, math32.Vector3{}), float32(1e-3))
	assert.Greater(t, eff.Dot(target), float32(0))
}

func TestTwoBoneReach(t *testing.T) {
	_, upper, lower, tip := legRig()
	target := math32.Vec3(0, 0, 1.5)
	base := fastJoint("upper", upper, lower)
	end := fastJoint("lower", lower, tip)
	c := NewTwoBone("leg", base, end, xyz.Point(math32.Vec3(1, 0, 0.75)), xyz.Point(target))
	require.NoError(t, c.Init())

	for range make([]struct{}, 200) {
		c.Tick(0.02)
	}
	h := math32.Sqrt(1 - 0.75*0.75)
	TolAssertEqualVector(t, 1e-3, math32.Vec3(h, 0, 0.75), lower.WorldPosition())
	TolAssertEqualVector(t, 1e-3, target, tip.WorldPosition())
	tolassert.EqualTol(t, math32.RadToDeg(math32.Atan2(h, 0.75)), base.Current().Signed(RotY), 0.05)

	// bone lengths are preserved throughout
	tolassert.EqualTol(t, 1, lower.WorldPosition().DistanceTo(upper.WorldPosition()), 1e-4)
	tolassert.EqualTol(t, 1, tip.WorldPosition().DistanceTo(lower.WorldPosition()), 1e-4)
}

func TestTwoBoneMinRange(t *testing.T) {
	_, upper, lower, tip := legRig()
	c := NewTwoBone("leg", fastJoint("upper", upper, lower), fastJoint("lower", lower, tip), xyz.Point(math32.Vec3(1, 0, 0)), xyz.Point(math32.Vec3(1.1, 0, 1)))
	c.MinTargetRange = 0.2
	c.MaxTargetRange = 1
	require.NoError(t, c.Init())
	assert.False(t, c.Tick(0.02))
	TolAssertEqualVector(t, 1e-5, math32.Vec3(1, 0, 1), tip.WorldPosition())
}

func TestMeasureTwistAngle(t *testing.T) {
	_, upper, lower, tip := legRig()
	base := NewJoint("upper", upper, lower, Limit(RotX, -90, 90, 0), Limit(Twist, -180, 180, 0))
	end := NewJoint("lower", lower, tip)
	require.NoError(t, base.Init())
	require.NoError(t, end.Init())

	id := math32.NewQuatIdentity()
	root := upper.WorldPosition()
	target := math32.Vec3(0, 1, 1)
	twist := measureTwistAngle(base, end, base.Initial(), end.Initial(), id, id, root, target)
	tolassert.EqualTol(t, 90, twist, 1e-3)

	// twisting the base by the measured angle swings the effector onto the target
	o := base.Initial()
	o.Twist += twist
	mid := base.EndpointFor(o, id, root)
	eff := end.EndpointFor(end.Initial(), base.WorldRotationFor(o, id), mid)
	TolAssertEqualVector(t, 1e-4, target, eff)

	// already in plane: nothing to correct
	tolassert.EqualTol(t, 0, measureTwistAngle(base, end, base.Initial(), end.Initial(), id, id, root, math32.Vec3(2, 0, 1)), 1e-3)
}

func TestTwoBoneTwistCorrection(t *testing.T) {
	_, upper, lower, tip := legRig()
	// the base can only twist and the end is locked, so only the
	// twist correction can bring the effector round to the target
	base := fastJoint("upper", upper, lower)
	base.DOF = Limits{Limit(RotX, 0, 0, 0), Limit(RotY, 0, 0, 0), Limit(RotZ, 0, 0, 0), Limit(Twist, -180, 180, 0)}
	end := fastJoint("lower", lower, tip)
	end.DOF = nil
	target := math32.Vec3(0, 1, 1)
	c := NewTwoBone("leg", base, end, xyz.Point(math32.Vec3(0, 1, 0.5)), xyz.Point(target))
	require.NoError(t, c.Init())

	for range make([]struct{}, 200) {
		c.Tick(0.02)
	}
	TolAssertEqualVector(t, 1e-3, target, tip.WorldPosition())
	tolassert.EqualTol(t, 90, base.Current().Signed(Twist), 0.05)
}
