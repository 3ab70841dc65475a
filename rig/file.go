// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rig loads declarative rig descriptions from TOML or YAML
// files and builds the transform hierarchy, joints and chains they
// describe, ready to tick. Tunables can be reloaded into a live rig.
package rig

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cogentcore.org/ik/base/iox/tomlx"
	"cogentcore.org/ik/base/iox/yamlx"
	"cogentcore.org/ik/ik"
	"cogentcore.org/ik/math32"
)

// Vec3 is a position or Euler rotation written as a three element array.
type Vec3 [3]float32

// Vector3 returns v as a [math32.Vector3].
func (v Vec3) Vector3() math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}

// File is the on-disk description of a rig.
type File struct {

	// Name of the rig.
	Name string `toml:"name" yaml:"name"`

	// Nodes are the transforms, parents before children.
	Nodes []NodeSpec `toml:"nodes" yaml:"nodes"`

	// Joints are the driven bones.
	Joints []JointSpec `toml:"joints" yaml:"joints"`

	// Chains group joints with a target.
	Chains []ChainSpec `toml:"chains" yaml:"chains"`
}

// NodeSpec describes one transform.
type NodeSpec struct {
	Name string `toml:"name" yaml:"name"`

	// Parent is the name of an earlier node; empty for a top level node.
	Parent string `toml:"parent,omitempty" yaml:"parent,omitempty"`

	// Pos is the position relative to the parent.
	Pos Vec3 `toml:"pos" yaml:"pos,flow"`

	// Rot is the rotation relative to the parent, as Euler angles in degrees.
	Rot Vec3 `toml:"rot" yaml:"rot,flow"`
}

// JointSpec describes one joint.
type JointSpec struct {
	Name string `toml:"name" yaml:"name"`

	// Node is the pivot node name.
	Node string `toml:"node" yaml:"node"`

	// End is the endpoint node name.
	End string `toml:"end" yaml:"end"`

	// FreeRotation adds unconstrained entries for the three Euler axes,
	// as with [ik.FreeRotation].
	FreeRotation bool `toml:"free_rotation" yaml:"free_rotation,omitempty"`

	// Tunables override the defaults: only non-zero values take effect,
	// so a zero weight, smoothing rate or gravity cannot be written here.
	// Turn droop off with uses_gravity_droop instead, and use a small
	// positive smoothing_rate for near total lag.
	Tunables ik.Tunables `toml:"tunables" yaml:"tunables"`

	// DOF are the degrees of freedom.
	DOF []ik.AxisLimit `toml:"dof,omitempty" yaml:"dof,omitempty"`
}

// ChainSpec describes one chain. The target and swivel are either a
// fixed point or the name of a node.
type ChainSpec struct {
	Name string `toml:"name" yaml:"name"`

	Kind ik.ChainKind `toml:"kind" yaml:"kind"`

	// Joints are joint names, parent first.
	Joints []string `toml:"joints" yaml:"joints,flow"`

	Target     *Vec3  `toml:"target,omitempty" yaml:"target,flow,omitempty"`
	TargetNode string `toml:"target_node,omitempty" yaml:"target_node,omitempty"`
	Swivel     *Vec3  `toml:"swivel,omitempty" yaml:"swivel,flow,omitempty"`
	SwivelNode string `toml:"swivel_node,omitempty" yaml:"swivel_node,omitempty"`

	MinTargetRange float32 `toml:"min_target_range" yaml:"min_target_range"`
	MaxTargetRange float32 `toml:"max_target_range" yaml:"max_target_range"`
}

// Joint returns the joint spec with the given name, or nil.
func (f *File) Joint(name string) *JointSpec {
	for i := range f.Joints {
		if f.Joints[i].Name == name {
			return &f.Joints[i]
		}
	}
	return nil
}

// format returns "toml" or "yaml" for the extension of filename.
func format(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("rig: unsupported file type %q (want .toml, .yaml or .yml)", filename)
}

// Open reads a rig file, choosing TOML or YAML by extension.
func Open(filename string) (*File, error) {
	fm, err := format(filename)
	if err != nil {
		return nil, err
	}
	f := &File{}
	if fm == "toml" {
		err = tomlx.Open(f, filename)
	} else {
		err = yamlx.Open(f, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("rig: reading %s: %w", filename, err)
	}
	return f, nil
}

// Save writes a rig file, choosing TOML or YAML by extension.
func Save(f *File, filename string) error {
	fm, err := format(filename)
	if err != nil {
		return err
	}
	if fm == "toml" {
		return tomlx.Save(f, filename)
	}
	return yamlx.Save(f, filename)
}

// Read parses a rig description from r in the given format, "toml" or "yaml".
func Read(r io.Reader, fm string) (*File, error) {
	f := &File{}
	var err error
	switch fm {
	case "toml":
		err = tomlx.Read(f, r)
	case "yaml", "yml":
		err = yamlx.Read(f, r)
	default:
		return nil, fmt.Errorf("rig: unsupported format %q (want toml or yaml)", fm)
	}
	if err != nil {
		return nil, fmt.Errorf("rig: parsing %s: %w", fm, err)
	}
	return f, nil
}

// ReadBytes parses a rig description in the given format, "toml" or "yaml".
func ReadBytes(data []byte, fm string) (*File, error) {
	f := &File{}
	var err error
	switch fm {
	case "toml":
		err = tomlx.ReadBytes(f, data)
	case "yaml", "yml":
		err = yamlx.ReadBytes(f, data)
	default:
		return nil, fmt.Errorf("rig: unsupported format %q (want toml or yaml)", fm)
	}
	if err != nil {
		return nil, fmt.Errorf("rig: parsing %s: %w", fm, err)
	}
	return f, nil
}

// WriteBytes encodes f in the given format, "toml" or "yaml".
func WriteBytes(f *File, fm string) ([]byte, error) {
	switch fm {
	case "toml":
		return tomlx.WriteBytes(f)
	case "yaml", "yml":
		return yamlx.WriteBytes(f)
	}
	return nil, fmt.Errorf("rig: unsupported format %q (want toml or yaml)", fm)
}

// Example returns a small rig with a two bone arm reaching for a fixed
// point and a single bone head looking at it.
func Example() *File {
	target := Vec3{0.5, 1.2, 1.2}
	swivel := Vec3{1.5, 1, 0.5}
	return &File{
		Name: "example",
		Nodes: []NodeSpec{
			{Name: "body", Pos: Vec3{0, 1, 0}},
			{Name: "shoulder", Parent: "body", Pos: Vec3{0.2, 0.4, 0}},
			{Name: "elbow", Parent: "shoulder", Pos: Vec3{0, 0, 0.6}, Rot: Vec3{0, 60, 0}},
			{Name: "hand", Parent: "elbow", Pos: Vec3{0, 0, 0.5}},
			{Name: "neck", Parent: "body", Pos: Vec3{0, 0.6, 0}},
			{Name: "nose", Parent: "neck", Pos: Vec3{0, 0, 0.2}},
		},
		Joints: []JointSpec{
			{Name: "upper_arm", Node: "shoulder", End: "elbow", FreeRotation: true,
				Tunables: ik.Tunables{MaxAngularSpeed: 240}},
			{Name: "forearm", Node: "elbow", End: "hand",
				DOF: []ik.AxisLimit{ik.Limit(ik.RotY, -150, 150, 0), ik.Limit(ik.RotX, -10, 10, 0)}},
			{Name: "head", Node: "neck", End: "nose",
				Tunables: ik.Tunables{DoesReturnToRest: true, UsesSmoothing: true},
				DOF:      []ik.AxisLimit{ik.Limit(ik.RotX, -40, 40, 0), ik.Limit(ik.RotY, -70, 70, 0)}},
		},
		Chains: []ChainSpec{
			{Name: "arm", Kind: ik.TwoBone, Joints: []string{"upper_arm", "forearm"}, Target: &target, Swivel: &swivel},
			{Name: "look", Kind: ik.SingleBone, Joints: []string{"head"}, Target: &target, MinTargetRange: 0.05, MaxTargetRange: 0.5},
		},
	}
}
