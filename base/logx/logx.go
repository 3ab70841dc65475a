// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx is the diagnostic logging sink: a [log/slog] handler
// with terminal colored level names and a single user level that can be
// switched off entirely. Logging never affects solver results.
package logx

import (
	"log/slog"
	"math"
)

// LevelOff is above every real level, so nothing is logged.
const LevelOff = slog.Level(math.MaxInt32)

// UserLevel is the verbosity level of the user, which is
// consulted by every [Handler]. It defaults to info, debug with
// the debug build tag, and warn with the release build tag.
var UserLevel = defaultUserLevel

// SetEnabled switches logging on (at the default level) or off.
func SetEnabled(on bool) {
	if on {
		UserLevel = defaultUserLevel
	} else {
		UserLevel = LevelOff
	}
}

// UserLevelFromFlags returns the user level for the given verbose
// and quiet flags. Quiet wins over verbose.
func UserLevelFromFlags(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return defaultUserLevel
	}
}
