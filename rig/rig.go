// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"fmt"
	"log/slog"

	"cogentcore.org/ik/base/errors"
	"cogentcore.org/ik/ik"
	"cogentcore.org/ik/math32"
	"cogentcore.org/ik/xyz"
	"github.com/jinzhu/copier"
)

// Structural errors in a rig file. They prevent the rig from being built.
var (
	ErrUnknownNode   = errors.New("unknown node")
	ErrUnknownJoint  = errors.New("unknown joint")
	ErrUnknownChain  = errors.New("unknown chain")
	ErrDuplicateName = errors.New("duplicate name")
)

// Rig is a built rig: the transform hierarchy with its joints and chains.
type Rig struct {

	// Name of the rig.
	Name string

	// Root holds every top level node of the file.
	Root *xyz.Node

	// Joints by name.
	Joints map[string]*ik.Joint

	// Driver ticks the chains in file order.
	Driver *ik.Driver
}

// Build creates the rig described by f. Structural problems such as
// unknown or duplicate names return a nil rig. Otherwise the rig is
// returned together with any joint or chain configuration error;
// the invalid chains are skipped by [Rig.Tick].
func Build(f *File) (*Rig, error) {
	r := &Rig{Name: f.Name, Root: xyz.NewNode(f.Name), Joints: map[string]*ik.Joint{}}
	var errs []error
	nodes := map[string]*xyz.Node{}
	for _, ns := range f.Nodes {
		if _, has := nodes[ns.Name]; has {
			errs = append(errs, fmt.Errorf("node %q: %w", ns.Name, ErrDuplicateName))
			continue
		}
		par := r.Root
		if ns.Parent != "" {
			par = nodes[ns.Parent]
			if par == nil {
				errs = append(errs, fmt.Errorf("node %q: parent %q: %w", ns.Name, ns.Parent, ErrUnknownNode))
				continue
			}
		}
		nd := par.NewChild(ns.Name).SetPos(ns.Pos[0], ns.Pos[1], ns.Pos[2])
		nd.SetEulerRotation(ns.Rot[0], ns.Rot[1], ns.Rot[2])
		nodes[ns.Name] = nd
	}

	lookup := func(what, name string) xyz.Transform {
		if nd := nodes[name]; nd != nil {
			return nd
		}
		errs = append(errs, fmt.Errorf("%s %q: %w", what, name, ErrUnknownNode))
		return nil
	}
	for _, js := range f.Joints {
		if _, has := r.Joints[js.Name]; has {
			errs = append(errs, fmt.Errorf("joint %q: %w", js.Name, ErrDuplicateName))
			continue
		}
		node := lookup("joint "+js.Name+" node", js.Node)
		end := lookup("joint "+js.Name+" end", js.End)
		dof := ik.Limits(js.DOF)
		if js.FreeRotation {
			dof = append(ik.FreeRotation(), dof...)
		}
		j := ik.NewJoint(js.Name, node, end, dof...)
		j.Tunables = MergeTunables(js.Tunables)
		r.Joints[js.Name] = j
	}

	r.Driver = ik.NewDriver()
	for _, cs := range f.Chains {
		c := &ik.Chain{Name: cs.Name, Kind: cs.Kind, MinTargetRange: cs.MinTargetRange, MaxTargetRange: cs.MaxTargetRange}
		for _, jn := range cs.Joints {
			j := r.Joints[jn]
			if j == nil {
				errs = append(errs, fmt.Errorf("chain %q: joint %q: %w", cs.Name, jn, ErrUnknownJoint))
				continue
			}
			c.Joints = append(c.Joints, j)
		}
		c.Target = positioner(nodes, cs.Target, cs.TargetNode, &errs)
		c.Swivel = positioner(nodes, cs.Swivel, cs.SwivelNode, &errs)
		r.Driver.Add(c)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("rig %q: %w", f.Name, errors.Join(errs...))
	}
	err := r.Driver.Init()
	slog.Info("rig built", "rig", r.Name, "nodes", len(nodes), "joints", len(r.Joints), "chains", len(r.Driver.Chains))
	return r, err
}

// positioner resolves a fixed point or a node name. With neither it
// returns nil, which chain initialization reports.
func positioner(nodes map[string]*xyz.Node, pt *Vec3, node string, errs *[]error) xyz.Positioner {
	if node != "" {
		if nd := nodes[node]; nd != nil {
			return nd
		}
		*errs = append(*errs, fmt.Errorf("node %q: %w", node, ErrUnknownNode))
		return nil
	}
	if pt != nil {
		return xyz.Point(pt.Vector3())
	}
	return nil
}

// MergeTunables returns [ik.DefaultTunables] with every non-zero
// value of over copied on top.
func MergeTunables(over ik.Tunables) ik.Tunables {
	t := ik.DefaultTunables()
	if err := copier.CopyWithOption(&t, &over, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		slog.Error("rig: merging tunables", "err", err)
	}
	return t
}

// Node returns the node with the given name, or nil.
func (r *Rig) Node(name string) *xyz.Node {
	return r.Root.FindPath(name)
}

// Tick advances the rig by dt seconds and returns the number of chains driven.
func (r *Rig) Tick(dt float32) int {
	return r.Driver.Tick(dt)
}

// SetTarget points the named chain at a fixed world position.
func (r *Rig) SetTarget(chain string, pos math32.Vector3) error {
	c := r.Driver.Chain(chain)
	if c == nil {
		return fmt.Errorf("rig: chain %q: %w", chain, ErrUnknownChain)
	}
	c.SetTarget(xyz.Point(pos))
	return nil
}

// SetAllTargets points every chain at a fixed world position.
func (r *Rig) SetAllTargets(pos math32.Vector3) {
	for _, c := range r.Driver.Chains {
		c.SetTarget(xyz.Point(pos))
	}
}

// ApplyTunables copies the tunables of every joint in f onto the live
// joint of the same name, merged over the defaults. Limits and
// structure are not reloaded. It returns the number of joints updated.
func (r *Rig) ApplyTunables(f *File) int {
	n := 0
	for _, js := range f.Joints {
		j := r.Joints[js.Name]
		if j == nil {
			slog.Warn("rig: tunables for unknown joint", "joint", js.Name)
			continue
		}
		j.Tunables = MergeTunables(js.Tunables)
		n++
	}
	slog.Debug("rig: tunables applied", "rig", r.Name, "joints", n)
	return n
}
