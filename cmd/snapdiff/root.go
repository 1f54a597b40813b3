// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapdiff

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrgl/snapdiff/cmd/snapdiff/utils"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "snapdiff",
		Short:         "Compare database snapshots cell by cell",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	viper.SetEnvPrefix("")
	rootCmd.PersistentFlags().String("snapdiff-dir", "", "directory holding local config and diff cache, defaults to the nearest .snapdiff directory.")
	viper.BindEnv("snapdiff_dir")
	viper.BindPFlag("snapdiff_dir", rootCmd.PersistentFlags().Lookup("snapdiff-dir"))
	rootCmd.PersistentFlags().String("badger-log", "", `set Badger log level, valid options are "error", "warning", "debug", and "info" (defaults to "error")`)
	utils.AddLoggerFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newIgnoreCmd())
	rootCmd.AddCommand(newCacheCmd())
	return rootCmd
}
