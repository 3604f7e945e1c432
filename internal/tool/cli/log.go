// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig configures the logger of a tool.
type LogConfig struct {
	Verbose bool   // Log at debug level instead of warning level
	File    string // Also append JSON records to this file if set

	// Rotation settings of the log file.
	MaxSize    int // Megabytes
	MaxBackups int
	MaxAge     int // Days
}

// NewLogger returns a logger writing text records to w and, if a log file is
// configured, JSON records to a rotating file. The returned io.Closer closes
// the log file.
func NewLogger(w io.Writer, conf LogConfig) (*slog.Logger, io.Closer) {
	level := slog.LevelWarn
	if conf.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	var c io.Closer = nopCloser{}
	if conf.File != "" {
		lj := &lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSize,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAge,
		}
		fh := slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: slog.LevelDebug})
		h, c = multiHandler{h, fh}, lj
	}
	return slog.New(h), c
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiHandler sends every record to all handlers that accept its level.
type multiHandler []slog.Handler

func (mh multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range mh {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (mh multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range mh {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (mh multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make(multiHandler, len(mh))
	for i, h := range mh {
		hs[i] = h.WithAttrs(attrs)
	}
	return hs
}

func (mh multiHandler) WithGroup(name string) slog.Handler {
	hs := make(multiHandler, len(mh))
	for i, h := range mh {
		hs[i] = h.WithGroup(name)
	}
	return hs
}
