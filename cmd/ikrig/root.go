// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/ik/base/logx"
	"cogentcore.org/ik/math32"
	"github.com/spf13/cobra"
)

// newRootCmd returns the ikrig command tree. A fresh tree is built
// for each execution so that flags do not leak between runs.
func newRootCmd() *cobra.Command {
	var verbose, quiet bool
	root := &cobra.Command{
		Use:          "ikrig",
		Short:        "Check and run procedural IK rig files",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.UserLevelFromFlags(verbose, quiet)
			logx.Install(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	root.AddCommand(newCheckCmd(), newRunCmd(), newNewCmd())
	return root
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math32.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math32.Vector3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math32.Vector3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = float32(f)
	}
	return math32.Vec3(v[0], v[1], v[2]), nil
}
