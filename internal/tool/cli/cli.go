// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package cli implements the shared command-line handling of the tools.
//
// Every tool reads its input from stdin and writes its output to stdout.
// Diagnostics are logged to stderr. The exit status is 0 on success, 1 if the
// operation failed, and 2 if the command line was malformed.
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Env is the environment a tool runs in.
type Env struct {
	Args   []string  // Positional arguments
	Stdin  io.Reader // Buffered standard input
	Stdout io.Writer // Buffered standard output
	Log    *slog.Logger
}

// Tool describes a command-line tool.
type Tool struct {
	Name  string // Name of the tool, used in messages
	Usage string // Synopsis of the positional arguments
	NArgs int    // Exact number of positional arguments

	// Main runs the tool. It may return a UsageError to report a malformed
	// command line.
	Main func(env *Env) error
}

// UsageError reports a malformed command line.
type UsageError string

func (e UsageError) Error() string { return string(e) }

// A Command transforms all of r into w.
type Command func(r io.Reader, w io.Writer) error

// ModeTool returns a Tool taking a single mode argument: "-" runs forward and
// "+" runs inverse.
func ModeTool(name string, forward, inverse Command) Tool {
	return Tool{
		Name:  name,
		Usage: "-|+",
		NArgs: 1,
		Main: func(env *Env) error {
			var cmd Command
			switch mode := env.Args[0]; mode {
			case "-":
				cmd = forward
			case "+":
				cmd = inverse
			default:
				return UsageError(fmt.Sprintf("invalid mode %q, want \"-\" or \"+\"", mode))
			}
			env.Log = env.Log.With("mode", env.Args[0])
			return cmd(env.Stdin, env.Stdout)
		},
	}
}

// Run parses the command line and runs the tool, returning the exit status.
func Run(t Tool, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(t.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var conf LogConfig
	fs.BoolVar(&conf.Verbose, "v", false, "Log progress at debug level")
	fs.StringVar(&conf.File, "logfile", "", "Also append JSON log records to this file")
	fs.IntVar(&conf.MaxSize, "logsize", 10, "Maximum size in megabytes of the log file before rotation")
	fs.IntVar(&conf.MaxBackups, "logbackups", 3, "Maximum number of rotated log files to keep")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] %s\n", t.Name, t.Usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ExitOK
		}
		return ExitUsage
	}
	if fs.NArg() != t.NArgs {
		fs.Usage()
		return ExitUsage
	}

	log, lc := NewLogger(stderr, conf)
	defer lc.Close()
	log = log.With("tool", t.Name)

	ir := &countReader{R: stdin}
	cw := &countWriter{W: stdout}
	bw := bufio.NewWriter(cw)
	env := &Env{
		Args:   fs.Args(),
		Stdin:  bufio.NewReader(ir),
		Stdout: bw,
		Log:    log,
	}

	log.Debug("starting", "args", env.Args)
	err := t.Main(env)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if uerr, ok := err.(UsageError); ok {
		fmt.Fprintf(stderr, "%s: %v\n", t.Name, uerr)
		fs.Usage()
		return ExitUsage
	}
	if err != nil {
		env.Log.Error("failed", "err", err, "read", ir.N, "written", cw.N)
		return ExitFailure
	}
	env.Log.Debug("done", "read", ir.N, "written", cw.N)
	return ExitOK
}

type countReader struct {
	R io.Reader
	N int64
}

func (cr *countReader) Read(buf []byte) (int, error) {
	n, err := cr.R.Read(buf)
	cr.N += int64(n)
	return n, err
}

type countWriter struct {
	W io.Writer
	N int64
}

func (cw *countWriter) Write(buf []byte) (int, error) {
	n, err := cw.W.Write(buf)
	cw.N += int64(n)
	return n, err
}
