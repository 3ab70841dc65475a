// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ik

import (
	"fmt"
	"log/slog"

	"cogentcore.org/ik/base/errors"
	"cogentcore.org/ik/math32"
	"cogentcore.org/ik/xyz"
)

// Tunables are the per-joint motion parameters. They are plain data
// so that rig files can load them and [copier] can hot swap them.
type Tunables struct {

	// MaxAngularSpeed is the maximum rotation speed in degrees per second.
	MaxAngularSpeed float32 `toml:"max_angular_speed" yaml:"max_angular_speed"`

	// RotationGain multiplies the remaining angle to give the desired
	// speed before it is capped by MaxAngularSpeed.
	RotationGain float32 `toml:"rotation_gain" yaml:"rotation_gain"`

	// Weight scales the gravity droop.
	Weight float32 `toml:"weight" yaml:"weight"`

	// UsesGravityDroop makes the bone sag under Gravity.
	UsesGravityDroop bool `toml:"uses_gravity_droop" yaml:"uses_gravity_droop"`

	// ReturnToRestSpeed is the fraction per second of the remaining
	// deviation removed while returning to rest.
	ReturnToRestSpeed float32 `toml:"return_to_rest_speed" yaml:"return_to_rest_speed"`

	// DoesReturnToRest makes an idle joint ease back to its rest angles.
	DoesReturnToRest bool `toml:"does_return_to_rest" yaml:"does_return_to_rest"`

	// UsesSmoothing makes the bone lag behind the motion of its endpoint.
	UsesSmoothing bool `toml:"uses_smoothing" yaml:"uses_smoothing"`

	// SmoothingRate in [0, 1] is how much of the endpoint motion is
	// followed each tick: 1 is no lag.
	SmoothingRate float32 `toml:"smoothing_rate" yaml:"smoothing_rate"`

	// Gravity is the world space gravity acceleration used by droop.
	Gravity math32.Vector3 `toml:"gravity" yaml:"gravity"`
}

// DefaultTunables returns the default motion parameters.
func DefaultTunables() Tunables {
	return Tunables{
		MaxAngularSpeed:   180,
		RotationGain:      10,
		Weight:            1,
		ReturnToRestSpeed: 2,
		SmoothingRate:     0.5,
		Gravity:           math32.Vec3(0, -9.81, 0),
	}
}

// Joint is one rotating bone: a pivot transform and the endpoint
// transform at the far end of the bone. The bone rotates in the frame
// of the pivot's parent. A joint computes its rotation each tick and
// commits it in [Joint.FinalUpdate]; until then all state is hypothetical.
type Joint struct {

	// Name is used in log messages.
	Name string

	Tunables

	// DOF are the configured degrees of freedom.
	DOF Limits

	// Node is the pivot whose local rotation is driven.
	Node xyz.Transform

	// End is the endpoint at the far end of the bone.
	End xyz.Transform

	current Orientation
	ideal   Orientation
	init    Orientation

	// original frame, in the parent's space, captured at [Joint.Init]
	origRot       math32.Quat
	origForward   math32.Vector3
	origUp        math32.Vector3
	origRight     math32.Vector3
	origRootToEnd math32.Vector3

	// boneAxis is the unit bone direction in the joint's own frame.
	boneAxis   math32.Vector3
	boneLength float32

	initialized bool
	valid       bool
	moved       bool
	phase       Phase

	lastEnd    math32.Vector3
	hasLastEnd bool
}

// NewJoint returns a joint with [DefaultTunables] pivoting node toward end.
func NewJoint(name string, node, end xyz.Transform, dof ...AxisLimit) *Joint {
	return &Joint{Name: name, Tunables: DefaultTunables(), DOF: dof, Node: node, End: end}
}

// Init validates the configuration and captures the original frame.
// On error the joint is permanently invalid and all its updates are
// no-ops; the error is also logged. Init is called at most once; later
// calls return [ErrInvalidJoint] or nil according to the first result.
func (j *Joint) Init() error {
	if j.initialized {
		if !j.valid {
			return fmt.Errorf("joint %q: %w", j.Name, ErrInvalidJoint)
		}
		return nil
	}
	j.initialized = true
	var errs []error
	if j.Node == nil {
		errs = append(errs, fmt.Errorf("node: %w", ErrMissingReference))
	}
	if j.End == nil {
		errs = append(errs, fmt.Errorf("endpoint: %w", ErrMissingReference))
	}
	if err := j.DOF.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		if j.End.WorldPosition().DistanceToSquared(j.Node.WorldPosition()) < minBoneLengthSq {
			errs = append(errs, ErrZeroLengthBone)
		}
	}
	if len(errs) > 0 {
		return errors.Log(fmt.Errorf("ik: joint %q: %w", j.Name, errors.Join(errs...)))
	}

	parentInv := xyz.ParentRotation(j.Node).Inverse()
	j.origRot = j.Node.LocalRotation()
	j.origForward = xyz.Forward(j.origRot)
	j.origUp = xyz.Up(j.origRot)
	j.origRight = xyz.Right(j.origRot)
	rootToEnd := j.End.WorldPosition().Sub(j.Node.WorldPosition())
	j.boneLength = rootToEnd.Length()
	j.origRootToEnd = parentInv.Rotate(rootToEnd)
	j.boneAxis = j.origRot.Inverse().Rotate(j.origRootToEnd).Normal()

	j.init = orientationFromQuat(j.origRot, 0)
	j.current = j.init
	j.ideal = j.init
	j.phase = PhaseFresh
	j.valid = true
	slog.Debug("ik: joint initialized", "joint", j.Name, "length", j.boneLength, "orientation", j.init)
	return nil
}

// minBoneLengthSq is the squared bone length below which a bone has no direction.
const minBoneLengthSq = 1e-10

// IsValid reports whether [Joint.Init] succeeded.
func (j *Joint) IsValid() bool { return j.valid }

// Current returns the orientation the joint has reached.
func (j *Joint) Current() Orientation { return j.current }

// Ideal returns the orientation the joint is moving toward.
func (j *Joint) Ideal() Orientation { return j.ideal }

// Initial returns the orientation captured at [Joint.Init].
func (j *Joint) Initial() Orientation { return j.init }

// Phase returns where the joint is in the current tick.
func (j *Joint) Phase() Phase { return j.phase }

// Moved reports whether a solver drove the joint this tick.
func (j *Joint) Moved() bool { return j.moved }

// BoneLength returns the root to endpoint distance captured at [Joint.Init].
func (j *Joint) BoneLength() float32 { return j.boneLength }

// BoneAxis returns the unit bone direction in the joint's own frame.
func (j *Joint) BoneAxis() math32.Vector3 { return j.boneAxis }

// OriginalForward returns the +Z axis at [Joint.Init], in the parent's frame.
func (j *Joint) OriginalForward() math32.Vector3 { return j.origForward }

// OriginalUp returns the +Y axis at [Joint.Init], in the parent's frame.
func (j *Joint) OriginalUp() math32.Vector3 { return j.origUp }

// OriginalRight returns the +X axis at [Joint.Init], in the parent's frame.
func (j *Joint) OriginalRight() math32.Vector3 { return j.origRight }

// OriginalRootToEnd returns the bone vector at [Joint.Init], in the parent's frame.
func (j *Joint) OriginalRootToEnd() math32.Vector3 { return j.origRootToEnd }

// Root returns the live world position of the pivot.
func (j *Joint) Root() math32.Vector3 { return j.Node.WorldPosition() }

// Endpoint returns the live world position of the endpoint.
func (j *Joint) Endpoint() math32.Vector3 { return j.End.WorldPosition() }

// ApplyLimits enforces the degrees of freedom on o and returns the
// clamped axes. See [Limits.Apply].
func (j *Joint) ApplyLimits(o *Orientation) Axes {
	return j.DOF.Apply(o, j.init)
}

// LocalRotation returns the local rotation o would commit.
func (j *Joint) LocalRotation(o Orientation) math32.Quat {
	return o.Quat(j.boneAxis)
}

// WorldRotationFor returns the world rotation o would give the pivot
// under a parent with world rotation parentRot.
func (j *Joint) WorldRotationFor(o Orientation, parentRot math32.Quat) math32.Quat {
	return parentRot.Mul(j.LocalRotation(o))
}

// EndpointFor returns the world endpoint o would give a bone rooted at root
// under a parent with world rotation parentRot.
func (j *Joint) EndpointFor(o Orientation, parentRot math32.Quat, root math32.Vector3) math32.Vector3 {
	return root.Add(j.bendDirection(o, parentRot).MulScalar(j.boneLength))
}

// bendDirection is the world unit bone direction for o. Twist turns
// the bone around itself, so only the Euler part matters.
func (j *Joint) bendDirection(o Orientation, parentRot math32.Quat) math32.Vector3 {
	return parentRot.Mul(o.Bend()).Rotate(j.boneAxis)
}

// SetIdeal sets the orientation to move toward this tick, after
// applying the limits, and marks the joint as driven.
func (j *Joint) SetIdeal(o Orientation) {
	if !j.valid {
		return
	}
	o = o.Normalized()
	j.ApplyLimits(&o)
	j.ideal = o
	j.moved = true
}

// Hold marks the joint as driven without changing its ideal, so it keeps
// converging on the last target instead of returning to rest.
func (j *Joint) Hold() {
	if !j.valid {
		return
	}
	j.moved = true
}

// OrientToward aims the bone along the world direction dir with the
// given twist and sets the result as the ideal. It returns the axes
// that had to be clamped.
func (j *Joint) OrientToward(dir math32.Vector3, twist float32) Axes {
	if !j.valid {
		return 0
	}
	o, clamped := j.Aim(dir, xyz.ParentRotation(j.Node), twist)
	j.SetIdeal(o)
	return clamped
}

// String returns a short description for logging.
func (j *Joint) String() string {
	return fmt.Sprintf("%s %v", j.Name, j.current)
}
