// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package cachesql

import (
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	cachehelpers "github.com/wrgl/snapdiff/pkg/diffcache/helpers"
	"github.com/wrgl/snapdiff/pkg/testutils"
)

func TestStore(t *testing.T) {
	db, stop := testutils.CreateSQLDB(t, CreateTableStmts)
	defer stop()
	cachehelpers.TestStore(t, NewStore(db))
}

func TestMigrateTwice(t *testing.T) {
	db, stop := testutils.CreateSQLDB(t, nil)
	defer stop()
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
	cachehelpers.TestStore(t, NewStore(db))
}
