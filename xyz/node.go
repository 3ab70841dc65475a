// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"cogentcore.org/ik/math32"
)

// Node is an in-memory [Transform]. World values are computed on demand
// from the chain of parents, so a rotation committed on a node is
// immediately visible in the world position of all its descendants.
type Node struct {

	// Name is used for lookups and diagnostics.
	Name string

	// Pose is the position and rotation relative to the parent.
	Pose Pose

	parent   *Node
	children []*Node
}

// NewNode returns a new root node with the given name and identity pose.
func NewNode(name string) *Node {
	nd := &Node{Name: name}
	nd.Pose.Defaults()
	return nd
}

// NewChild returns a new node added as a child of nd.
func (nd *Node) NewChild(name string) *Node {
	ch := NewNode(name)
	nd.AddChild(ch)
	return ch
}

// AddChild reparents ch under nd, keeping its local pose.
func (nd *Node) AddChild(ch *Node) {
	if ch.parent != nil {
		ch.parent.removeChild(ch)
	}
	ch.parent = nd
	nd.children = append(nd.children, ch)
}

func (nd *Node) removeChild(ch *Node) {
	for i, c := range nd.children {
		if c == ch {
			nd.children = append(nd.children[:i], nd.children[i+1:]...)
			return
		}
	}
}

// Children returns the direct children of the node.
func (nd *Node) Children() []*Node {
	return nd.children
}

// String implements the [fmt.Stringer] interface.
func (nd *Node) String() string {
	return fmt.Sprintf("Node{%s pos: %v}", nd.Name, nd.WorldPosition())
}

// SetPos sets the [Pose.Pos] position of the node.
func (nd *Node) SetPos(x, y, z float32) *Node {
	nd.Pose.Pos.Set(x, y, z)
	return nd
}

// SetEulerRotation sets the [Pose.Quat] rotation of the node,
// from euler angles in degrees.
func (nd *Node) SetEulerRotation(x, y, z float32) *Node {
	nd.Pose.SetEulerRotation(x, y, z)
	return nd
}

// SetAxisRotation sets the [Pose.Quat] rotation of the node,
// from local axis and angle in degrees.
func (nd *Node) SetAxisRotation(x, y, z, angle float32) *Node {
	nd.Pose.SetAxisRotation(x, y, z, angle)
	return nd
}

// WorldPose returns the absolute pose of the node.
func (nd *Node) WorldPose() Pose {
	if nd.parent == nil {
		return nd.Pose
	}
	return nd.Pose.FromRel(nd.parent.WorldPose())
}

// SetWorldPosition moves the node so that its world position is pos.
func (nd *Node) SetWorldPosition(pos math32.Vector3) {
	if nd.parent == nil {
		nd.Pose.Pos = pos
		return
	}
	par := nd.parent.WorldPose()
	nd.Pose.Pos = par.Quat.Inverse().Rotate(pos.Sub(par.Pos))
}

// WorldPosition implements [Transform].
func (nd *Node) WorldPosition() math32.Vector3 {
	return nd.WorldPose().Pos
}

// LocalPosition implements [Transform].
func (nd *Node) LocalPosition() math32.Vector3 {
	return nd.Pose.Pos
}

// WorldRotation implements [Transform].
func (nd *Node) WorldRotation() math32.Quat {
	return nd.WorldPose().Quat
}

// LocalRotation implements [Transform].
func (nd *Node) LocalRotation() math32.Quat {
	return nd.Pose.Quat
}

// SetLocalRotation implements [Transform].
func (nd *Node) SetLocalRotation(q math32.Quat) {
	nd.Pose.Quat = q.Normal()
}

// Parent implements [Transform]. A root node returns a nil interface.
func (nd *Node) Parent() Transform {
	if nd.parent == nil {
		return nil
	}
	return nd.parent
}

// FindPath returns the descendant (or nd itself) with the given name,
// searching depth first, or nil.
func (nd *Node) FindPath(name string) *Node {
	if nd.Name == name {
		return nd
	}
	for _, c := range nd.children {
		if f := c.FindPath(name); f != nil {
			return f
		}
	}
	return nil
}
