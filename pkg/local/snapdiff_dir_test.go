// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package local

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/snapdiff/pkg/conf"
	confhelpers "github.com/wrgl/snapdiff/pkg/conf/helpers"
	"github.com/wrgl/snapdiff/pkg/diffcache"
)

func TestSnapdiffDirInit(t *testing.T) {
	dir := t.TempDir()
	sdDir := filepath.Join(dir, DirName)
	d := NewSnapdiffDir(sdDir, "")
	assert.Equal(t, sdDir, d.FullPath)
	assert.False(t, d.Exist())
	require.NoError(t, d.Init())
	assert.True(t, d.Exist())

	for _, typ := range []conf.CacheType{conf.CTBadger, conf.CTSQLite} {
		s, err := d.OpenCache(typ)
		require.NoError(t, err)
		entries, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, entries)
		_, err = s.Get("a", "b")
		assert.ErrorIs(t, err, diffcache.ErrKeyNotFound)
		require.NoError(t, s.Close())
	}
	assert.FileExists(t, d.SQLitePath())

	s, err := d.OpenCache(conf.CTNone)
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = d.OpenCache("redis")
	assert.Error(t, err)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	d := NewSnapdiffDir(filepath.Join(dir, DirName), "")
	defer d.Close()
	w, err := d.Watcher(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv"), []byte("id\n1\n"), 0644))
	select {
	case ev := <-w.Events:
		assert.Equal(t, "users.csv", filepath.Base(ev.Name))
		assert.True(t, ev.Op&(fsnotify.Create|fsnotify.Write) != 0)
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestFindSnapdiffDir(t *testing.T) {
	dir := t.TempDir()
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	home := confhelpers.MockHomeDir(t, dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(wd)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "abc"), 0755))
	sdDir := filepath.Join(dir, DirName)
	require.NoError(t, os.Mkdir(sdDir, 0755))
	require.NoError(t, os.Chdir(dir))
	p, err := FindSnapdiffDir()
	require.NoError(t, err)
	assert.Equal(t, sdDir, p)

	require.NoError(t, os.Chdir(filepath.Join(dir, "abc")))
	p, err = FindSnapdiffDir()
	require.NoError(t, err)
	assert.Equal(t, sdDir, p)

	// search stops at home
	require.NoError(t, os.Mkdir(filepath.Join(home, "tmp"), 0755))
	require.NoError(t, os.Chdir(filepath.Join(home, "tmp")))
	p, err = FindSnapdiffDir()
	require.NoError(t, err)
	assert.Empty(t, p)

	homeDir := filepath.Join(home, DirName)
	require.NoError(t, os.Mkdir(homeDir, 0755))
	p, err = FindSnapdiffDir()
	require.NoError(t, err)
	assert.Equal(t, homeDir, p)
}
