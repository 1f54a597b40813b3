// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type terminalKey struct{}

// SetTerminal overrides terminal detection for commands run with ctx.
func SetTerminal(ctx context.Context, isTerminal bool) context.Context {
	return context.WithValue(ctx, terminalKey{}, isTerminal)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsTerminal reports whether the command output is a terminal.
func IsTerminal(cmd *cobra.Command) bool {
	if v := cmd.Context().Value(terminalKey{}); v != nil {
		return v.(bool)
	}
	return isTerminal(cmd.OutOrStdout())
}
