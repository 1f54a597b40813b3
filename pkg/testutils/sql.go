// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/snapdiff/pkg/sqlutil"
)

// CreateSQLDB opens a sqlite database in a temporary directory and runs stmts
// against it.
func CreateSQLDB(t *testing.T, stmts []string) (db *sql.DB, stop func()) {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	require.NoError(t, sqlutil.ExecAll(db, stmts))
	return db, func() {
		require.NoError(t, db.Close())
	}
}
