// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package diffcache_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/snapdiff/pkg/diffcache"
	cachehelpers "github.com/wrgl/snapdiff/pkg/diffcache/helpers"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

func TestCodec(t *testing.T) {
	sd := cachehelpers.RandomSnapshotDiff(t, gofakeit.New(0), time.Now())
	b, err := diffcache.Encode(sd)
	require.NoError(t, err)

	decoded, err := diffcache.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, sd, decoded)

	b[len(b)-1] ^= 0xff
	_, err = diffcache.Decode(b)
	assert.ErrorIs(t, err, diffcache.ErrCorrupted)

	_, err = diffcache.Decode([]byte("short"))
	assert.ErrorIs(t, err, diffcache.ErrCorrupted)
}

func TestDecodeInvalidDiff(t *testing.T) {
	for _, td := range []*tablediff.TableDiff{
		{
			TableName:      "users",
			PrimaryColName: "id",
			PrimaryValues:  []string{"1", "1"},
			ColNames:       []string{"name"},
			RowDiffs1:      map[string]tablediff.RowDiff{},
			RowDiffs2:      map[string]tablediff.RowDiff{},
		},
		{
			TableName:      "users",
			PrimaryColName: "id",
			PrimaryValues:  []string{"1"},
			ColNames:       []string{"name"},
			RowDiffs1: map[string]tablediff.RowDiff{
				"1": {"ghost": {Status: tablediff.Deleted, Value: "x"}},
			},
			RowDiffs2: map[string]tablediff.RowDiff{},
		},
		{
			TableName:      "users",
			PrimaryColName: "id",
			PrimaryValues:  []string{"1"},
			ColNames:       []string{"name"},
			RowDiffs1: map[string]tablediff.RowDiff{
				"1": {"name": {Status: tablediff.Stay, Value: "John"}},
			},
			RowDiffs2: map[string]tablediff.RowDiff{
				"1": {"name": {Status: tablediff.Stay, Value: "Jon"}},
			},
		},
	} {
		sd := &tablediff.SnapshotDiff{
			ID:          "abc",
			SnapshotID1: "s1",
			SnapshotID2: "s2",
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
			TableDiffs:  []*tablediff.TableDiff{td},
		}
		b, err := diffcache.Encode(sd)
		require.NoError(t, err)
		_, err = diffcache.Decode(b)
		assert.ErrorIs(t, err, diffcache.ErrCorrupted)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, []byte("diff/abc/def"), diffcache.Key("abc", "def"))
}
