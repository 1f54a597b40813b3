// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrgl/snapdiff/pkg/conf"
	conffs "github.com/wrgl/snapdiff/pkg/conf/fs"
	"github.com/wrgl/snapdiff/pkg/local"
)

// GetSnapdiffDirPath returns --snapdiff-dir, $SNAPDIFF_DIR or the nearest
// .snapdiff directory. It returns an empty string when none is found.
func GetSnapdiffDirPath() (string, error) {
	if wd := viper.GetString("snapdiff_dir"); wd != "" {
		return wd, nil
	}
	return local.FindSnapdiffDir()
}

// GetSnapdiffDir returns the snapdiff dir, or nil if there is none.
func GetSnapdiffDir(cmd *cobra.Command) (*local.SnapdiffDir, error) {
	p, err := GetSnapdiffDirPath()
	if err != nil {
		return nil, err
	}
	if p == "" {
		return nil, nil
	}
	badgerLog, err := cmd.Flags().GetString("badger-log")
	if err != nil {
		return nil, err
	}
	return local.NewSnapdiffDir(p, badgerLog), nil
}

// MustGetSnapdiffDir is GetSnapdiffDir for commands that need an initialized
// snapdiff dir.
func MustGetSnapdiffDir(cmd *cobra.Command) (*local.SnapdiffDir, error) {
	d, err := GetSnapdiffDir(cmd)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.Exist() {
		return nil, fmt.Errorf("snapdiff directory not found. Initialize it with command:\n  snapdiff init")
	}
	return d, nil
}

// OpenConfig merges system, global and (when d is not nil) local configs.
func OpenConfig(d *local.SnapdiffDir) (*conf.Config, error) {
	rootDir := ""
	if d != nil {
		rootDir = d.FullPath
	}
	return conffs.NewStore(rootDir, conffs.AggregateSource, "").Open()
}
