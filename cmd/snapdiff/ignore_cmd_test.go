// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapdiff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/snapdiff/pkg/conf"
	conffs "github.com/wrgl/snapdiff/pkg/conf/fs"
	confmock "github.com/wrgl/snapdiff/pkg/conf/mock"
)

func TestIgnoreCmd(t *testing.T) {
	isolateConfig(t)
	dir := initSnapdiffDir(t)
	dir1, dir2 := writeSnapshots(t)

	assertCmdOutput(t, newCmd("ignore"), "")
	assertCmdOutput(t, newCmd("ignore", "audit", "sessions"), strings.Join([]string{
		`Ignoring table "audit"`,
		`Ignoring table "sessions"`,
		"",
	}, "\n"))
	assertCmdOutput(t, newCmd("diff", dir1, dir2, "--format", "csv", "--summary"), strings.Join([]string{
		"table,added_rows,deleted_rows,modified_rows,unchanged_rows,added_columns,removed_columns",
		"users,1,1,1,0,age,",
		"",
	}, "\n"))
	assertCmdOutput(t, newCmd("ignore", "sessions"), "No longer ignoring table \"sessions\"\n")

	// patterns come from config files
	s := conffs.NewStore(dir, conffs.LocalSource, "")
	c, err := s.Open()
	require.NoError(t, err)
	c.Diff.IgnorePatterns = []string{"tmp_*"}
	require.NoError(t, s.Save(c))
	assertCmdOutput(t, newCmd("ignore"), "audit\ntmp_* (pattern)\n")

	c, err = s.Open()
	require.NoError(t, err)
	assert.Equal(t, &conf.Diff{IgnoreTables: []string{"audit"}, IgnorePatterns: []string{"tmp_*"}}, c.Diff)
}

func TestIgnoreCmdWithoutSnapdiffDir(t *testing.T) {
	isolateConfig(t)
	_, err := execute(newCmd("ignore", "audit"))
	assert.ErrorContains(t, err, "snapdiff init")
}

func TestToggleIgnoredTables(t *testing.T) {
	s := confmock.NewStore(&conf.Config{Diff: &conf.Diff{PrimaryKey: "uid", IgnoreTables: []string{"a"}}})
	cmd := newCmd()
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	require.NoError(t, toggleIgnoredTables(cmd, s, []string{"a", "b", "c"}))
	assert.Equal(t, strings.Join([]string{
		`No longer ignoring table "a"`,
		`Ignoring table "b"`,
		`Ignoring table "c"`,
		"",
	}, "\n"), buf.String())
	c, err := s.Open()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, c.IgnoreTables())
	assert.Equal(t, "uid", c.PrimaryKey())
}
