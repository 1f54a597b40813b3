// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggerCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{}
	AddLoggerFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse(args))
	cmd.SetContext(context.Background())
	buf := bytes.NewBufferString("")
	cmd.SetErr(buf)
	return cmd, buf
}

func TestSetupLogger(t *testing.T) {
	cmd, buf := newLoggerCmd(t, "--log-verbosity", "1")
	cleanup, err := SetupLogger(cmd, false)
	require.NoError(t, err)
	defer cleanup()
	GetLogger(cmd).Info("found cached diff")
	assert.Contains(t, buf.String(), logPrefix)
	assert.Contains(t, buf.String(), "found cached diff")

	// logger already in context is kept
	logger := GetLogger(cmd)
	_, err = SetupLogger(cmd, true)
	require.NoError(t, err)
	assert.Same(t, logger, GetLogger(cmd))
}

func TestSetupLoggerFullscreen(t *testing.T) {
	cmd, buf := newLoggerCmd(t, "--log-verbosity", "1")
	cleanup, err := SetupLogger(cmd, true)
	require.NoError(t, err)
	defer cleanup()
	GetLogger(cmd).Info("snapshot changed")
	assert.Empty(t, buf.String())
}

func TestSetupLoggerFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "snapdiff.log")
	for _, msg := range []string{"first run", "second run"} {
		cmd, buf := newLoggerCmd(t, "--log-verbosity", "1", "--log-file", p)
		cleanup, err := SetupLogger(cmd, true)
		require.NoError(t, err)
		GetLogger(cmd).Info(msg)
		cleanup()
		assert.Empty(t, buf.String())
	}
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "first run")
	assert.Contains(t, string(b), "second run")
}

func TestSetupLoggerInvalidVerbosity(t *testing.T) {
	cmd, _ := newLoggerCmd(t, "--log-verbosity=-1")
	_, err := SetupLogger(cmd, false)
	assert.ErrorContains(t, err, "invalid --log-verbosity -1")
}
