// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package confhelpers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// MockHomeDir points the home directory env var at a new directory under
// parentDir and returns it.
func MockHomeDir(t *testing.T, parentDir string) string {
	t.Helper()
	name, err := os.MkdirTemp(parentDir, "test_snapdiff_home")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(name) })
	name, err = filepath.EvalSymlinks(name)
	require.NoError(t, err)
	env := "HOME"
	switch runtime.GOOS {
	case "windows":
		env = "USERPROFILE"
	case "plan9":
		env = "home"
	}
	t.Setenv(env, name)
	return name
}

// MockGlobalConf redirects the global config to a temporary directory, either
// through XDG_CONFIG_HOME or through HOME.
func MockGlobalConf(t *testing.T, setXDGConfigHome bool) string {
	t.Helper()
	name := t.TempDir()
	if setXDGConfigHome {
		t.Setenv("XDG_CONFIG_HOME", name)
	} else {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", name)
	}
	return name
}

// MockSystemConf redirects the system config to a temporary directory.
func MockSystemConf(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SNAPDIFF_SYSTEM_CONFIG_DIR", dir)
	return dir
}
