// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"cogentcore.org/ik/rig"
	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	var force bool
	var fm string
	cmd := &cobra.Command{
		Use:   "new [FILE]",
		Short: "Write an example rig file (.toml, .yaml or .yml)",
		Long:  "New writes an example rig to FILE, or to standard output in the --format encoding when FILE is omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				b, err := rig.WriteBytes(rig.Example(), fm)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			fn := args[0]
			if _, err := os.Stat(fn); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", fn)
			}
			if err := rig.Save(rig.Example(), fn); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", fn)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&fm, "format", "toml", "encoding for standard output: toml or yaml")
	return cmd
}
