// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ik provides procedural inverse kinematics for one and two
// bone limbs. A [Joint] rotates a pivot transform within per-axis
// limits, easing toward an ideal orientation at a bounded speed, with
// optional return to rest, endpoint smoothing and gravity droop.
// A [Chain] groups joints with a target, and a [Driver] runs every
// chain through the per-tick early, solve, late and final phases.
package ik

import (
	"fmt"
	"log/slog"

	"cogentcore.org/ik/base/errors"
)

// Driver ticks a set of chains.
type Driver struct {

	// Chains are updated in order.
	Chains []*Chain
}

// NewDriver returns a driver for the given chains.
func NewDriver(chains ...*Chain) *Driver {
	return &Driver{Chains: chains}
}

// Add appends a chain.
func (d *Driver) Add(c *Chain) {
	d.Chains = append(d.Chains, c)
}

// Chain returns the chain with the given name, or nil.
func (d *Driver) Chain(name string) *Chain {
	for _, c := range d.Chains {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Init initializes every chain. Invalid chains are reported in the
// returned error and skipped by [Driver.Tick]; valid chains still run.
func (d *Driver) Init() error {
	var errs []error
	for _, c := range d.Chains {
		if err := c.Init(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ik: %d of %d chains invalid: %w", len(errs), len(d.Chains), errors.Join(errs...))
	}
	slog.Debug("ik: driver initialized", "chains", len(d.Chains))
	return nil
}

// Tick advances every valid chain by dt seconds and returns the number
// of chains that were driven toward their target.
func (d *Driver) Tick(dt float32) int {
	n := 0
	for _, c := range d.Chains {
		if c.Tick(dt) {
			n++
		}
	}
	return n
}
