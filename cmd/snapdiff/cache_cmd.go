// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapdiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wrgl/snapdiff/cmd/snapdiff/utils"
	"github.com/wrgl/snapdiff/pkg/diffcache"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the diff cache",
	}
	cmd.AddCommand(newCacheLsCmd())
	cmd.AddCommand(newCacheRmCmd())
	cmd.AddCommand(newCacheClearCmd())
	return cmd
}

func openCache(cmd *cobra.Command) (diffcache.Store, func(), error) {
	d, err := utils.MustGetSnapdiffDir(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, err := utils.OpenConfig(d)
	if err != nil {
		d.Close()
		return nil, nil, err
	}
	s, err := d.OpenCache(c.CacheType())
	if err != nil {
		d.Close()
		return nil, nil, err
	}
	if s == nil {
		d.Close()
		return nil, nil, fmt.Errorf("diff cache is disabled (cache.type = %q)", c.CacheType())
	}
	return s, func() {
		s.Close()
		d.Close()
	}, nil
}

func shortSum(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}

func newCacheLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List cached diffs, newest first",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			entries, err := s.List()
			if err != nil {
				return err
			}
			noColor, err := cmd.Flags().GetBool("no-color")
			if err != nil {
				return err
			}
			yellow := color.New(color.FgYellow)
			if noColor || !utils.IsTerminal(cmd) {
				yellow.DisableColor()
			} else {
				yellow.EnableColor()
			}
			for _, e := range entries {
				cmd.Printf("%s %s..%s %s %s\n",
					yellow.Sprint(e.ID),
					shortSum(e.SnapshotID1), shortSum(e.SnapshotID2),
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					strings.Join(e.Tables, ","),
				)
			}
			return nil
		},
	}
	cmd.Flags().Bool("no-color", false, "disable colors")
	return cmd
}

func newCacheRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm DIFF_ID...",
		Short: "Remove cached diffs by diff id or diff id prefix",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			for _, id := range args {
				e, err := diffcache.FindByID(s, id)
				if err != nil {
					if errors.Is(err, diffcache.ErrKeyNotFound) {
						return fmt.Errorf("no unique cached diff with id %q", id)
					}
					return err
				}
				if err := s.Delete(e.SnapshotID1, e.SnapshotID2); err != nil {
					return err
				}
				cmd.Printf("Removed diff %s\n", e.ID)
			}
			return nil
		},
	}
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached diffs",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := s.Clear(); err != nil {
				return err
			}
			cmd.Println("Diff cache cleared")
			return nil
		},
	}
	return cmd
}
