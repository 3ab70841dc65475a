// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cogentcore.org/ik/base/errors"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a rig file whenever it is written.
type Watcher struct {
	watcher *fsnotify.Watcher

	// done closes the watching goroutine
	done chan bool
	wg   sync.WaitGroup
}

// Watch starts watching filename and calls fn with each successfully
// reloaded file, on the watcher goroutine. Files that fail to parse,
// as can happen mid write, are logged and skipped, and empty files
// are ignored. The directory is
// watched rather than the file so that editors that replace the file
// on save are followed.
func Watch(filename string, fn func(f *File)) (*Watcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	fm, err := format(abs)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{watcher: fw, done: make(chan bool)}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				data, err := os.ReadFile(abs)
				if err == nil && len(data) == 0 {
					continue
				}
				var f *File
				if err == nil {
					f, err = ReadBytes(data, fm)
				}
				if err != nil {
					slog.Warn("rig: reload skipped", "file", abs, "err", err)
					continue
				}
				slog.Debug("rig: reloaded", "file", abs)
				fn(f)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return w, nil
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
