// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapdiff

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/wrgl/snapdiff/cmd/snapdiff/utils"
	"github.com/wrgl/snapdiff/pkg/conf"
	conffs "github.com/wrgl/snapdiff/pkg/conf/fs"
)

func newIgnoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore [TABLE...]",
		Short: "Toggle tables hidden from diff output",
		Long:  "Toggle tables hidden from diff output. Each given table is added to config diff.ignoreTables of the local config, or removed from it if it is already there. Without arguments, list ignored tables and patterns from all config files.",
		Example: strings.Join([]string{
			`  # hide tables "audit" and "sessions"`,
			`  snapdiff ignore audit sessions`,
			``,
			`  # show table "audit" again`,
			`  snapdiff ignore audit`,
			``,
			`  # list ignored tables`,
			`  snapdiff ignore`,
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := utils.MustGetSnapdiffDir(cmd)
			if err != nil {
				return err
			}
			defer d.Close()
			if len(args) == 0 {
				c, err := utils.OpenConfig(d)
				if err != nil {
					return err
				}
				for _, name := range c.IgnoreTables() {
					cmd.Println(name)
				}
				for _, p := range c.IgnorePatterns() {
					cmd.Printf("%s (pattern)\n", p)
				}
				return nil
			}
			return toggleIgnoredTables(cmd, conffs.NewStore(d.FullPath, conffs.LocalSource, ""), args)
		},
	}
	return cmd
}

func toggleIgnoredTables(cmd *cobra.Command, s conf.Store, names []string) error {
	c, err := s.Open()
	if err != nil {
		return err
	}
	for _, name := range names {
		if c.IgnoreTable(name) {
			cmd.Printf("Ignoring table %q\n", name)
		} else {
			cmd.Printf("No longer ignoring table %q\n", name)
		}
	}
	return s.Save(c)
}
