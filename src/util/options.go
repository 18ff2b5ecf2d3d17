// Package util carries the ambient stack shared by cmd: compiler options,
// layered YAML config, and colourised diagnostic printing.
package util

import "github.com/sirupsen/logrus"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options collects the flags the CLI needs to drive one compilation. It
// carries only what a single-threaded, LLVM-JIT-only pipeline needs: no
// thread count or native-backend target triple, since codegen always goes
// through LLVM rather than a hand-rolled backend.
type Options struct {
	Src      string // Path to the source program (or "-" for stdin, in the repl).
	Verbose  bool   // Raise the log level to debug for checker/lowerer logging (written to stderr).
	LogLevel string // logrus level name: "debug", "info", "warn", "error".
	DumpAST  bool   // Print the annotated AST instead of running it.
	ExitCode bool   // Propagate main's return value as the process exit code.
}

// ---------------------
// ----- functions -----
// ---------------------

// Logger builds a logrus.Logger configured from Options.LogLevel, defaulting
// to Info when unset or unparseable.
func (o Options) Logger() *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if o.Verbose && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)
	return log
}
