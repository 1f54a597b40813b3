// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync/atomic"
	"testing"

	"github.com/go-logr/stdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/snapdiff/pkg/snapshot"
)

type countingBar struct {
	n int32
}

func (b *countingBar) Incr() {
	atomic.AddInt32(&b.n, 1)
}

func testSets() (*snapshot.Set, *snapshot.Set) {
	set1 := snapshot.NewSet("before",
		snapshot.New("users", "id", snapshot.NewRow("1", "name", `"John"`)),
		snapshot.New("orders", "id", snapshot.NewRow("10", "total", "5")),
	)
	set2 := snapshot.NewSet("after",
		snapshot.New("items", "code", snapshot.NewRow("A", "title", `"Pen"`)),
		snapshot.New("users", "id", snapshot.NewRow("1", "name", `"Johnny"`)),
	)
	return set1, set2
}

func TestDiffSnapshots(t *testing.T) {
	set1, set2 := testSets()
	bar := &countingBar{}
	buf := bytes.NewBuffer(nil)
	logger := stdr.New(log.New(buf, "", 0))
	d, err := DiffSnapshots(context.Background(), set1, set2,
		WithNumWorkers(2), WithProgressBar(bar), WithDebugLogger(&logger))
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, set1.ID(), d.SnapshotID1)
	assert.Equal(t, set2.ID(), d.SnapshotID2)
	assert.False(t, d.CreatedAt.IsZero())
	assert.Equal(t, []string{"users", "orders", "items"}, d.TableNames())
	assert.Equal(t, int32(3), bar.n)
	assert.Contains(t, buf.String(), `"aligned table"`)

	assert.Equal(t, added(`"Johnny"`), d.Table("users").Cell(Second, "1", "name"))
	assert.Equal(t, deleted("5"), d.Table("orders").Cell(First, "10", "total"))
	assert.Empty(t, d.Table("orders").RowDiffs2)
	assert.Equal(t, added(`"Pen"`), d.Table("items").Cell(Second, "A", "title"))
	assert.Nil(t, d.Table("missing"))
}

func TestDiffSnapshotsErrors(t *testing.T) {
	set1, set2 := testSets()
	set2.Tables[1].PrimaryColName = "user_id"
	_, err := DiffSnapshots(context.Background(), set1, set2, WithNumWorkers(4))
	assert.True(t, errors.Is(err, ErrSchemaMismatch))

	set1, set2 = testSets()
	set1.Tables = append(set1.Tables, snapshot.New("users", "id"))
	_, err = DiffSnapshots(context.Background(), set1, set2)
	var dte *snapshot.DuplicatedTableError
	assert.True(t, errors.As(err, &dte))

	set1, set2 = testSets()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DiffSnapshots(ctx, set1, set2)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSnapshotDiffValidate(t *testing.T) {
	d := &SnapshotDiff{TableDiffs: []*TableDiff{validDiff(), validDiff()}}
	assert.Equal(t, `table diff "users": duplicated table`, d.Validate().Error())
}
