// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapdiff

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrgl/snapdiff/pkg/local"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a snapdiff directory in current directory",
		Long:  "Initialize a snapdiff directory in current directory. It holds the local config and the diff cache and lives under <current directory>/.snapdiff.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := viper.GetString("snapdiff_dir")
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = filepath.Join(wd, local.DirName)
			}
			badgerLog, err := cmd.Flags().GetString("badger-log")
			if err != nil {
				return err
			}
			d := local.NewSnapdiffDir(dir, badgerLog)
			if d.Exist() {
				cmd.Printf("Snapdiff directory already initialized at %s\n", dir)
				return nil
			}
			if err := d.Init(); err != nil {
				return err
			}
			cmd.Printf("Snapdiff directory initialized at %s\n", dir)
			return nil
		},
	}
	return cmd
}
