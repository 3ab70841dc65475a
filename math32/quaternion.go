// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Quat is quaternion with X,Y,Z and W components.
// The zero value is not a valid rotation; use [NewQuatIdentity].
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuat returns a new quaternion from the specified components.
func NewQuat(x, y, z, w float32) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// NewQuatIdentity returns the identity rotation.
func NewQuatIdentity() Quat {
	return Quat{W: 1}
}

// NewQuatAxisAngle returns a new quaternion from given axis and angle rotation (radians).
// The axis is normalized first.
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	nq := Quat{}
	nq.SetFromAxisAngle(axis.Normal(), angle)
	return nq
}

// NewQuatAxisAngleDeg is [NewQuatAxisAngle] with the angle in degrees.
func NewQuatAxisAngleDeg(axis Vector3, degrees float32) Quat {
	return NewQuatAxisAngle(axis, DegToRad(degrees))
}

// NewQuatEulerDeg returns a new quaternion from Euler angles in degrees.
// Rotations are applied around Z first, then X, then Y,
// so the result is Y * X * Z.
func NewQuatEulerDeg(euler Vector3) Quat {
	nq := Quat{}
	nq.SetFromEulerDeg(euler)
	return nq
}

// NewQuatFromTo returns the shortest rotation taking the direction of
// from onto the direction of to. Neither vector needs to be normalized.
// Zero length inputs yield the identity.
func NewQuatFromTo(from, to Vector3) Quat {
	if from.LengthSquared() == 0 || to.LengthSquared() == 0 {
		return NewQuatIdentity()
	}
	nq := Quat{}
	nq.SetFromUnitVectors(from.Normal(), to.Normal())
	return nq
}

// String implements the [fmt.Stringer] interface.
func (q Quat) String() string {
	return fmt.Sprintf("Quat{%g, %g, %g, %g}", q.X, q.Y, q.Z, q.W)
}

// Set sets this quaternion's components.
func (q *Quat) Set(x, y, z, w float32) {
	q.X = x
	q.Y = y
	q.Z = z
	q.W = w
}

// SetIdentity sets this quanternion to the identity quaternion.
func (q *Quat) SetIdentity() {
	q.X = 0
	q.Y = 0
	q.Z = 0
	q.W = 1
}

// IsIdentity returns if this is an identity quaternion.
func (q Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1
}

// IsNil returns true if all values are 0 (uninitialized).
func (q Quat) IsNil() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0
}

// SetFromAxisAngle sets this quaternion with the rotation
// specified by the given axis and angle (radians).
// The axis must be normalized.
func (q *Quat) SetFromAxisAngle(axis Vector3, angle float32) {
	s, c := Sincos(angle / 2)
	q.X = axis.X * s
	q.Y = axis.Y * s
	q.Z = axis.Z * s
	q.W = c
}

// SetFromEulerDeg sets this quaternion from Euler angles in degrees,
// in Z, X, Y application order (see [NewQuatEulerDeg]).
func (q *Quat) SetFromEulerDeg(euler Vector3) {
	var qx, qy, qz Quat
	qx.SetFromAxisAngle(Vector3X, DegToRad(euler.X))
	qy.SetFromAxisAngle(Vector3Y, DegToRad(euler.Y))
	qz.SetFromAxisAngle(Vector3Z, DegToRad(euler.Z))
	*q = qy.Mul(qx).Mul(qz)
}

// ToEulerDeg returns the Euler angles in degrees, each in (-180, 180],
// that reproduce this rotation with [NewQuatEulerDeg].
// At the X = ±90 singularity Z is reported as 0.
func (q Quat) ToEulerDeg() Vector3 {
	m00 := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	m02 := 2 * (q.X*q.Z + q.Y*q.W)
	m10 := 2 * (q.X*q.Y + q.Z*q.W)
	m11 := 1 - 2*(q.X*q.X+q.Z*q.Z)
	m12 := 2 * (q.Y*q.Z - q.X*q.W)
	m20 := 2 * (q.X*q.Z - q.Y*q.W)
	m22 := 1 - 2*(q.X*q.X+q.Y*q.Y)

	var e Vector3
	e.X = Asin(-m12)
	if Abs(m12) < 0.9999999 {
		e.Y = Atan2(m02, m22)
		e.Z = Atan2(m10, m11)
	} else {
		e.Y = Atan2(-m20, m00)
		e.Z = 0
	}
	e = e.MulScalar(RadToDegFactor)
	return Vec3(WrapAngle180(e.X), WrapAngle180(e.Y), WrapAngle180(e.Z))
}

// SetFromUnitVectors sets this quaternion to the rotation from vector vFrom to vTo.
// The vectors must be normalized.
func (q *Quat) SetFromUnitVectors(vFrom, vTo Vector3) {
	var v1 Vector3
	var EPS float32 = 0.000001

	r := vFrom.Dot(vTo) + 1
	if r < EPS {
		r = 0
		if Abs(vFrom.X) > Abs(vFrom.Z) {
			v1.Set(-vFrom.Y, vFrom.X, 0)
		} else {
			v1.Set(0, -vFrom.Z, vFrom.Y)
		}
	} else {
		v1 = vFrom.Cross(vTo)
	}
	q.X = v1.X
	q.Y = v1.Y
	q.Z = v1.Z
	q.W = r

	q.Normalize()
}

// Inverse returns the inverse of this quaternion.
func (q Quat) Inverse() Quat {
	nq := q.Conjugate()
	nq.Normalize()
	return nq
}

// Conjugate returns the conjugate of this quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Dot returns the dot products of this quaternion with other.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Length returns the length of this quaternion
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize normalizes this quaternion.
func (q *Quat) Normalize() {
	l := q.Length()
	if l == 0 {
		q.SetIdentity()
		return
	}
	l = 1 / l
	q.X *= l
	q.Y *= l
	q.Z *= l
	q.W *= l
}

// Normal returns a normalized copy of this quaternion.
func (q Quat) Normal() Quat {
	q.Normalize()
	return q
}

// Mul returns the Hamilton product q * other:
// applied to a vector, other rotates first and q second.
func (q Quat) Mul(other Quat) Quat {
	// from http://www.euclideanspace.com/maths/algebra/realNormedAlgebra/quaternions/code/index.htm
	return Quat{
		X: q.X*other.W + q.W*other.X + q.Y*other.Z - q.Z*other.Y,
		Y: q.Y*other.W + q.W*other.Y + q.Z*other.X - q.X*other.Z,
		Z: q.Z*other.W + q.W*other.Z + q.X*other.Y - q.Y*other.X,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate returns v rotated by this quaternion.
func (q Quat) Rotate(v Vector3) Vector3 {
	return v.MulQuat(q)
}

// Angle returns the angle in radians of the rotation taking q onto other.
func (q Quat) Angle(other Quat) float32 {
	return 2 * Acos(Abs(q.Normal().Dot(other.Normal())))
}

// Slerp returns the spherical linear interpolation from q to other at t.
func (q Quat) Slerp(other Quat, t float32) Quat {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return other
	}
	cosHalfTheta := q.Dot(other)
	if cosHalfTheta < 0 {
		other = Quat{X: -other.X, Y: -other.Y, Z: -other.Z, W: -other.W}
		cosHalfTheta = -cosHalfTheta
	}
	if cosHalfTheta >= 1.0 {
		return q
	}
	sqrSinHalfTheta := 1.0 - cosHalfTheta*cosHalfTheta
	if sqrSinHalfTheta < 0.001 {
		s := 1 - t
		return Quat{
			X: s*q.X + t*other.X,
			Y: s*q.Y + t*other.Y,
			Z: s*q.Z + t*other.Z,
			W: s*q.W + t*other.W,
		}.Normal()
	}
	sinHalfTheta := Sqrt(sqrSinHalfTheta)
	halfTheta := Atan2(sinHalfTheta, cosHalfTheta)
	ratioA := Sin((1-t)*halfTheta) / sinHalfTheta
	ratioB := Sin(t*halfTheta) / sinHalfTheta
	return Quat{
		X: q.X*ratioA + other.X*ratioB,
		Y: q.Y*ratioA + other.Y*ratioB,
		Z: q.Z*ratioA + other.Z*ratioB,
		W: q.W*ratioA + other.W*ratioB,
	}
}
