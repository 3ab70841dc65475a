// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// degenerateEps is the squared length below which a projected
// or cross product vector is treated as having no direction.
const degenerateEps = 1e-10

// WrapAngle180 wraps an angle in degrees into (-180, 180].
func WrapAngle180(deg float32) float32 {
	deg = Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// WrapAngle360 wraps an angle in degrees into [0, 360).
func WrapAngle360(deg float32) float32 {
	deg = Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// DeltaAngle returns the shortest signed difference target - current
// in degrees, in (-180, 180].
func DeltaAngle(current, target float32) float32 {
	return WrapAngle180(target - current)
}

// LerpAngle interpolates between two angles in degrees along the
// shortest arc. t is clamped to [0, 1].
func LerpAngle(a, b, t float32) float32 {
	return a + DeltaAngle(a, b)*Clamp(t, 0, 1)
}

// MoveTowardsAngle moves current toward target (degrees) by at most
// maxDelta along the shortest arc, never overshooting.
func MoveTowardsAngle(current, target, maxDelta float32) float32 {
	d := DeltaAngle(current, target)
	if Abs(d) <= maxDelta {
		return current + d
	}
	return current + Sign(d)*maxDelta
}

// SignedAngle returns the angle in degrees from a to b around axis,
// positive when the rotation is counter-clockwise looking down axis.
// It returns 0 when either vector has zero length.
func SignedAngle(a, b, axis Vector3) float32 {
	if a.LengthSquared() < degenerateEps || b.LengthSquared() < degenerateEps {
		return 0
	}
	ang := RadToDeg(a.AngleTo(b))
	if axis.Dot(a.Cross(b)) < 0 {
		ang = -ang
	}
	return ang
}

// AngleAroundAxis returns the signed angle in degrees from a to b
// measured around axis. Both vectors are first projected onto the plane
// perpendicular to axis. When the projections are more than 90 degrees
// apart the projection of b is flipped, so the two are compared as
// undirected lines and the magnitude of the result never exceeds 90.
// Degenerate projections yield 0.
func AngleAroundAxis(a, b, axis Vector3) float32 {
	pa := axis.Cross(a.Cross(axis))
	pb := axis.Cross(b.Cross(axis))
	if pa.LengthSquared() < degenerateEps || pb.LengthSquared() < degenerateEps {
		return 0
	}
	if pa.AngleTo(pb) > Pi/2 {
		pb = pb.Negate()
	}
	return WrapAngle180(SignedAngle(pa, pb, axis))
}

// AngleBetweenPlanes returns the angle in degrees between the plane
// spanned by (aVec1, aVec2) and the plane spanned by (bVec1, bVec2).
// The magnitude is the angle between the two plane normals. The result
// is negative when the first normal points toward bVec2, which keeps the
// bend direction consistent when both planes share a common vector.
// Degenerate planes yield 0.
func AngleBetweenPlanes(aVec1, aVec2, bVec1, bVec2 Vector3) float32 {
	na := aVec1.Cross(aVec2)
	nb := bVec1.Cross(bVec2)
	if na.LengthSquared() < degenerateEps || nb.LengthSquared() < degenerateEps {
		return 0
	}
	axis := na.Cross(nb)
	var ang float32
	if axis.LengthSquared() < degenerateEps {
		ang = RadToDeg(na.AngleTo(nb))
	} else {
		ang = SignedAngle(na, nb, axis)
	}
	if na.Dot(bVec2) > 0 {
		ang = -ang
	}
	return ang
}

// ApproxEqual reports whether a and b differ by no more than epsilon on
// every axis. This is a per-component test, not a distance test.
func ApproxEqual(a, b Vector3, epsilon float32) bool {
	return Abs(a.X-b.X) <= epsilon && Abs(a.Y-b.Y) <= epsilon && Abs(a.Z-b.Z) <= epsilon
}

// DistancePointToLine returns the distance from point to the infinite line
// through lineOrigin with direction lineDirection.
func DistancePointToLine(point, lineDirection, lineOrigin Vector3) float32 {
	return lineDirection.Normal().Cross(point.Sub(lineOrigin)).Length()
}
