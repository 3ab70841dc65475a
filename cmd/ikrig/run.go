// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cogentcore.org/ik/rig"
	"github.com/spf13/cobra"
)

type runOptions struct {
	ticks  int
	dt     float32
	every  int
	target string
	chain  string
	watch  bool
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Simulate a rig and print the chain endpoints",
		Long: `Run builds the rig in FILE and ticks it at a fixed time step,
printing the endpoint of every chain. With --watch the simulation runs in
real time and joint tunables are reloaded whenever FILE is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRig(cmd, args[0], opts)
		},
	}
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", 60, "number of ticks to run (0 with --watch runs until interrupted)")
	cmd.Flags().Float32Var(&opts.dt, "dt", 1.0/60, "time step in seconds")
	cmd.Flags().IntVar(&opts.every, "every", 10, "print every N ticks")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "override the target as x,y,z")
	cmd.Flags().StringVarP(&opts.chain, "chain", "c", "", "chain to retarget (default all)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload tunables when the file changes")
	return cmd
}

func runRig(cmd *cobra.Command, filename string, opts runOptions) error {
	if opts.dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", opts.dt)
	}
	if opts.every < 1 {
		opts.every = 1
	}
	f, err := rig.Open(filename)
	if err != nil {
		return err
	}
	r, err := rig.Build(f)
	if r == nil {
		return err
	}
	if err != nil {
		slog.Warn("running with invalid chains disabled", "file", filename)
	}
	if opts.target != "" {
		pos, err := parseVec3(opts.target)
		if err != nil {
			return fmt.Errorf("--target: %w", err)
		}
		if opts.chain != "" {
			if err := r.SetTarget(opts.chain, pos); err != nil {
				return err
			}
		} else {
			r.SetAllTargets(pos)
		}
	}

	out := cmd.OutOrStdout()
	if !opts.watch {
		for i := 1; i <= opts.ticks; i++ {
			r.Tick(opts.dt)
			if i%opts.every == 0 || i == opts.ticks {
				printState(out, r, i)
			}
		}
		return nil
	}

	reloads := make(chan *rig.File, 1)
	w, err := rig.Watch(filename, func(f *rig.File) {
		select {
		case reloads <- f:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	tk := time.NewTicker(time.Duration(float64(opts.dt) * float64(time.Second)))
	defer tk.Stop()
	watchLoop(cmd.Context(), r, tk.C, reloads, opts, out)
	return nil
}

// watchLoop ticks r once for every value received on ticks, until
// opts.ticks ticks have run (forever when 0) or ctx is done. Reloaded
// files only update the tunables and never cause a tick.
func watchLoop(ctx context.Context, r *rig.Rig, ticks <-chan time.Time, reloads <-chan *rig.File, opts runOptions, out io.Writer) {
	for i := 1; opts.ticks == 0 || i <= opts.ticks; {
		select {
		case <-ctx.Done():
			return
		case nf := <-reloads:
			n := r.ApplyTunables(nf)
			slog.Info("reloaded tunables", "rig", r.Name, "joints", n)
			continue
		case <-ticks:
		}
		r.Tick(opts.dt)
		if i%opts.every == 0 {
			printState(out, r, i)
		}
		i++
	}
}

// printState writes one line per valid chain with its endpoint and
// the current orientation of its end joint.
func printState(w io.Writer, r *rig.Rig, tick int) {
	for _, c := range r.Driver.Chains {
		if !c.IsValid() {
			continue
		}
		end := c.Joints[len(c.Joints)-1]
		fmt.Fprintf(w, "%5d %-10s end=%v %s=%v\n", tick, c.Name, end.Endpoint(), end.Name, end.Current())
	}
}
