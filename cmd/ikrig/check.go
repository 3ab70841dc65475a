// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/ik/base/errors"
	"cogentcore.org/ik/rig"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var fm string
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate rig files",
		Long: `Check loads each rig file and initializes its joints and chains, reporting
every configuration error. A FILE of - reads standard input in the --format encoding.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var errs []error
			for _, fn := range args {
				if err := checkFile(cmd, fn, fm); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVar(&fm, "format", "toml", "encoding of standard input: toml or yaml")
	return cmd
}

func checkFile(cmd *cobra.Command, filename, fm string) error {
	var f *rig.File
	var err error
	if filename == "-" {
		f, err = rig.Read(cmd.InOrStdin(), fm)
	} else {
		f, err = rig.Open(filename)
	}
	if err != nil {
		return err
	}
	r, err := rig.Build(f)
	if r == nil {
		return err
	}
	valid := 0
	for _, c := range r.Driver.Chains {
		if c.IsValid() {
			valid++
		}
	}
	status := "ok"
	if err != nil {
		status = "invalid"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d joints, %d/%d chains valid\n", status, filename, len(r.Joints), valid, len(r.Driver.Chains))
	return err
}
