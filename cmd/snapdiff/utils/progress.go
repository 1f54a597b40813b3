// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/wrgl/snapdiff/pkg/pbar"
)

func SetupProgressBarFlags(flags *pflag.FlagSet) {
	flags.BoolP("quiet", "q", false, "don't display progress bars")
}

// GetProgressBarContainer returns a container writing to stderr. Bars are
// hidden with --quiet or when stderr is not a terminal.
func GetProgressBarContainer(cmd *cobra.Command) (*pbar.Container, error) {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, err
	}
	if v := cmd.Context().Value(terminalKey{}); v != nil {
		quiet = quiet || !v.(bool)
	} else {
		quiet = quiet || !isTerminal(cmd.ErrOrStderr())
	}
	return pbar.NewContainer(cmd.ErrOrStderr(), quiet), nil
}
