// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	fn := filepath.Join(t.TempDir(), "rig.toml")
	ex := Example()
	require.NoError(t, Save(ex, fn))
	r, err := Build(ex)
	require.NoError(t, err)

	reloaded := make(chan *File, 16)
	w, err := Watch(fn, func(f *File) { reloaded <- f })
	require.NoError(t, err)

	ex.Joint("head").Tunables.MaxAngularSpeed = 33
	require.NoError(t, Save(ex, fn))

	// a save can arrive as several events, possibly mid write
	timeout := time.After(5 * time.Second)
	var got *File
	for got == nil {
		select {
		case f := <-reloaded:
			if js := f.Joint("head"); js != nil && js.Tunables.MaxAngularSpeed == 33 {
				got = f
			}
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}
	require.NoError(t, w.Close())

	r.ApplyTunables(got)
	assert.Equal(t, float32(33), r.Joints["head"].MaxAngularSpeed)
}

func TestWatchErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := Watch("rig.json", func(*File) {})
	assert.Error(t, err)
	_, err = Watch(filepath.Join(t.TempDir(), "missing", "rig.toml"), func(*File) {})
	assert.Error(t, err)

	// other files in the directory are ignored
	dir := t.TempDir()
	fn := filepath.Join(dir, "rig.yaml")
	require.NoError(t, Save(Example(), fn))
	calls := make(chan *File, 16)
	w, err := Watch(fn, func(f *File) { calls <- f })
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o666))
	// a save truncating the file first is not reported
	require.NoError(t, os.WriteFile(fn, nil, 0o666))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, w.Close())
	assert.Empty(t, calls)
}
