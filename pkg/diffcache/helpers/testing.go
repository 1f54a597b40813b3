// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package cachehelpers

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/snapdiff/pkg/diffcache"
	"github.com/wrgl/snapdiff/pkg/snapshot"
	"github.com/wrgl/snapdiff/pkg/tablediff"
	"github.com/wrgl/snapdiff/pkg/testutils"
)

// RandomSnapshotDiff diffs two random snapshot sets. CreatedAt is truncated to
// the second and put in UTC so that it survives a JSON round trip unchanged.
func RandomSnapshotDiff(t *testing.T, f *gofakeit.Faker, createdAt time.Time) *tablediff.SnapshotDiff {
	t.Helper()
	s1 := testutils.RandomSnapshot(f, "users", 10, 4)
	s2 := testutils.RandomSnapshot(f, "orders", 10, 4)
	set1 := snapshot.NewSet("old", s1, s2)
	set2 := snapshot.NewSet("new", testutils.ModifiedSnapshot(f, s1), testutils.ModifiedSnapshot(f, s2))
	sd, err := tablediff.DiffSnapshots(context.Background(), set1, set2)
	require.NoError(t, err)
	sd.CreatedAt = createdAt.UTC().Truncate(time.Second)
	return sd
}

// TestStore runs the behavior every diffcache.Store must have.
func TestStore(t *testing.T, s diffcache.Store) {
	t.Helper()
	f := gofakeit.New(0)
	now := time.Now()

	_, err := s.Get("a", "b")
	assert.ErrorIs(t, err, diffcache.ErrKeyNotFound)
	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	sd1 := RandomSnapshotDiff(t, f, now.Add(-time.Hour))
	sd2 := RandomSnapshotDiff(t, f, now)
	require.NoError(t, s.Save(sd1))
	require.NoError(t, s.Save(sd2))

	got, err := s.Get(sd1.SnapshotID1, sd1.SnapshotID2)
	require.NoError(t, err)
	assert.Equal(t, sd1, got)
	_, err = s.Get(sd1.SnapshotID2, sd1.SnapshotID1)
	assert.ErrorIs(t, err, diffcache.ErrKeyNotFound)

	entries, err = s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, sd2.ID, entries[0].ID)
	assert.Equal(t, sd1.ID, entries[1].ID)
	assert.Equal(t, []string{"users", "orders"}, entries[1].Tables)
	assert.True(t, sd1.CreatedAt.Equal(entries[1].CreatedAt), "created at %s, want %s", entries[1].CreatedAt, sd1.CreatedAt)

	e, err := diffcache.FindByID(s, sd2.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, sd2.SnapshotID1, e.SnapshotID1)
	_, err = diffcache.FindByID(s, "zzz")
	assert.ErrorIs(t, err, diffcache.ErrKeyNotFound)
	_, err = diffcache.FindByID(s, "")
	assert.ErrorIs(t, err, diffcache.ErrKeyNotFound)

	// saving the same pair again replaces the entry
	sd3 := RandomSnapshotDiff(t, f, now.Add(time.Hour))
	sd3.SnapshotID1, sd3.SnapshotID2 = sd1.SnapshotID1, sd1.SnapshotID2
	require.NoError(t, s.Save(sd3))
	got, err = s.Get(sd1.SnapshotID1, sd1.SnapshotID2)
	require.NoError(t, err)
	assert.Equal(t, sd3.ID, got.ID)
	entries, err = s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, sd3.ID, entries[0].ID)

	require.NoError(t, s.Delete(sd2.SnapshotID1, sd2.SnapshotID2))
	assert.ErrorIs(t, s.Delete(sd2.SnapshotID1, sd2.SnapshotID2), diffcache.ErrKeyNotFound)
	_, err = s.Get(sd2.SnapshotID1, sd2.SnapshotID2)
	assert.ErrorIs(t, err, diffcache.ErrKeyNotFound)

	require.NoError(t, s.Clear())
	entries, err = s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
