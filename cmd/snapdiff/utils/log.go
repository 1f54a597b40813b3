// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const logPrefix = "snapdiff: "

type loggerKey struct{}

// SetLogger stores logger in ctx. Commands run with a context that already holds
// a logger keep it instead of building their own.
func SetLogger(ctx context.Context, logger *logr.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func GetLogger(cmd *cobra.Command) *logr.Logger {
	if v := cmd.Context().Value(loggerKey{}); v != nil {
		return v.(*logr.Logger)
	}
	return nil
}

func AddLoggerFlags(flags *pflag.FlagSet) {
	flags.Int("log-verbosity", 0, "log verbosity. 1 logs cache hits and file changes, 2 adds per table timing")
	flags.String("log-file", "", "append logs to this file instead of stderr")
}

// SetupLogger stores a stdr logger in the command context. Logs go to
// --log-file or stderr so they never mix with diff output. When fullscreen is
// true and there is no log file, logs are dropped since they would draw over
// the viewer.
func SetupLogger(cmd *cobra.Command, fullscreen bool) (cleanup func(), err error) {
	cleanup = func() {}
	if logger := GetLogger(cmd); logger != nil {
		return cleanup, nil
	}
	verbosity, err := cmd.Flags().GetInt("log-verbosity")
	if err != nil {
		return nil, err
	}
	if verbosity < 0 {
		return nil, fmt.Errorf("invalid --log-verbosity %d: must not be negative", verbosity)
	}
	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return nil, err
	}
	var out io.Writer
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		out = f
		cleanup = func() {
			f.Close()
		}
	case fullscreen:
		out = io.Discard
	default:
		out = cmd.ErrOrStderr()
	}
	logger := stdr.New(log.New(out, logPrefix, log.LstdFlags)).V(1)
	stdr.SetVerbosity(verbosity)
	cmd.SetContext(SetLogger(cmd.Context(), &logger))
	return cleanup, nil
}
