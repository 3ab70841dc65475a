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

// ChainKind selects the solver for a [Chain].
type ChainKind int32

const (
	// SingleBone rotates one joint so its endpoint heads toward the target.
	SingleBone ChainKind = iota

	// TwoBone bends a base and an end joint so the effector reaches
	// the target, with the bend plane chosen by a swivel reference.
	TwoBone
)

func (k ChainKind) String() string {
	switch k {
	case SingleBone:
		return "SingleBone"
	case TwoBone:
		return "TwoBone"
	}
	return fmt.Sprintf("ChainKind(%d)", int32(k))
}

// NumJoints returns the number of joints a chain of this kind drives.
func (k ChainKind) NumJoints() int {
	if k == TwoBone {
		return 2
	}
	return 1
}

// MarshalText implements [encoding.TextMarshaler].
func (k ChainKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *ChainKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "SingleBone", "single_bone", "single":
		*k = SingleBone
	case "TwoBone", "two_bone", "two":
		*k = TwoBone
	default:
		return fmt.Errorf("ik: unknown chain kind %q", text)
	}
	return nil
}

// Chain is a group of joints driven together toward a target.
// Joints are ordered parent first.
type Chain struct {

	// Name is used in log messages.
	Name string

	// Kind selects the solver.
	Kind ChainKind

	// Joints are the driven joints, parent first.
	Joints []*Joint

	// Target is the point to reach. It can be changed at any time.
	Target xyz.Positioner

	// Swivel orients the bend plane of a [TwoBone] chain:
	// the middle joint bends toward it.
	Swivel xyz.Positioner

	// MinTargetRange is the effector to target distance at or below
	// which the chain does not move.
	MinTargetRange float32

	// MaxTargetRange is the distance at or above which a [SingleBone]
	// chain turns fully toward the target. Between the two ranges the
	// turn is eased in.
	MaxTargetRange float32

	initialized bool
	valid       bool
}

// NewSingleBone returns a [SingleBone] chain driving joint toward target.
func NewSingleBone(name string, joint *Joint, target xyz.Positioner) *Chain {
	return &Chain{Name: name, Kind: SingleBone, Joints: []*Joint{joint}, Target: target}
}

// NewTwoBone returns a [TwoBone] chain driving base and end toward target.
func NewTwoBone(name string, base, end *Joint, swivel, target xyz.Positioner) *Chain {
	return &Chain{Name: name, Kind: TwoBone, Joints: []*Joint{base, end}, Target: target, Swivel: swivel}
}

// SetTarget sets the point to reach.
func (c *Chain) SetTarget(target xyz.Positioner) {
	c.Target = target
}

// IsValid reports whether [Chain.Init] succeeded.
func (c *Chain) IsValid() bool { return c.valid }

// Init initializes the joints and validates the chain. An invalid chain
// never moves; the error is also logged. Init is called at most once.
func (c *Chain) Init() error {
	if c.initialized {
		if !c.valid {
			return fmt.Errorf("chain %q: %w", c.Name, ErrInvalidJoint)
		}
		return nil
	}
	c.initialized = true
	// joints log their own errors
	var jointErrs, errs []error
	if len(c.Joints) != c.Kind.NumJoints() {
		errs = append(errs, fmt.Errorf("%v with %d joints: %w", c.Kind, len(c.Joints), ErrChainSize))
	}
	for _, j := range c.Joints {
		if j == nil {
			errs = append(errs, fmt.Errorf("joint: %w", ErrMissingReference))
			continue
		}
		if err := j.Init(); err != nil {
			jointErrs = append(jointErrs, err)
		}
	}
	if c.Target == nil {
		errs = append(errs, fmt.Errorf("target: %w", ErrMissingReference))
	}
	if c.Kind == TwoBone && c.Swivel == nil {
		errs = append(errs, fmt.Errorf("swivel: %w", ErrMissingReference))
	}
	if c.MinTargetRange > c.MaxTargetRange {
		errs = append(errs, fmt.Errorf("min %g > max %g: %w", c.MinTargetRange, c.MaxTargetRange, ErrInvertedRange))
	}
	if len(errs)+len(jointErrs) == 0 && c.Kind == TwoBone {
		base, end := c.Joints[0], c.Joints[1]
		if !math32.ApproxEqual(base.Endpoint(), end.Root(), 1e-4) {
			errs = append(errs, ErrDisconnected)
		}
	}
	if len(errs) > 0 {
		errors.Log(fmt.Errorf("ik: chain %q: %w", c.Name, errors.Join(errs...)))
	}
	if len(errs)+len(jointErrs) > 0 {
		return fmt.Errorf("ik: chain %q: %w", c.Name, errors.Join(append(errs, jointErrs...)...))
	}
	c.valid = true
	slog.Debug("ik: chain initialized", "chain", c.Name, "kind", c.Kind)
	return nil
}

// Targets is the result of solving a chain for one tick.
type Targets struct {

	// Moved is false when the chain should not drive its joints this
	// tick, letting them return to rest.
	Moved bool

	// Joints has one entry per chain joint when Moved.
	Joints []JointTarget
}

// JointTarget is the solved ideal for one joint.
type JointTarget struct {

	// Orientation is the new ideal, already limited.
	Orientation Orientation

	// Hold keeps the previous ideal instead of Orientation.
	Hold bool
}

// Solve computes the ideal orientations for the chain from the live
// pose and target. It does not modify any joint or transform.
func Solve(c *Chain) Targets {
	if !c.valid || c.Target == nil {
		return Targets{}
	}
	switch c.Kind {
	case SingleBone:
		return solveSingleBone(c)
	case TwoBone:
		return solveTwoBone(c)
	}
	return Targets{}
}

// Apply drives the chain joints with the solved targets.
func (c *Chain) Apply(t Targets) {
	if !t.Moved {
		return
	}
	for i, jt := range t.Joints {
		if i >= len(c.Joints) {
			break
		}
		if jt.Hold {
			c.Joints[i].Hold()
		} else {
			c.Joints[i].SetIdeal(jt.Orientation)
		}
	}
}

// Tick runs one full update of the chain: early updates parent first,
// the solve, late updates and final commits parent first.
// It reports whether the chain was driven.
func (c *Chain) Tick(dt float32) bool {
	if !c.valid {
		return false
	}
	for _, j := range c.Joints {
		j.EarlyUpdate()
	}
	t := Solve(c)
	c.Apply(t)
	for _, j := range c.Joints {
		j.LateUpdate(dt)
	}
	for _, j := range c.Joints {
		j.FinalUpdate()
	}
	return t.Moved
}
