// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the console loggers used by the commands.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a logger that writes plain, uncolored lines to w, one
// per event, without timestamps. If component is non-empty, every
// event carries it as a field.
func New(w io.Writer, component string) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	ctx := zerolog.New(cw).Level(zerolog.InfoLevel).With()
	if component != "" {
		ctx = ctx.Str("component", component)
	}
	return ctx.Logger()
}
