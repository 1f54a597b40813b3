// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package cachebadger

import (
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/require"
	cachehelpers "github.com/wrgl/snapdiff/pkg/diffcache/helpers"
)

func TestStore(t *testing.T) {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	s := NewStore(db)
	defer s.Close()
	cachehelpers.TestStore(t, s)
}
