// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/wrgl/snapdiff/pkg/slice"
	"github.com/wrgl/snapdiff/pkg/snapshot"
	"golang.org/x/sync/errgroup"
)

// SnapshotDiff is the result of diffing every table of two snapshot sets.
type SnapshotDiff struct {
	ID          string       `json:"diffId" yaml:"diffId"`
	SnapshotID1 string       `json:"snapshotId1" yaml:"snapshotId1"`
	SnapshotID2 string       `json:"snapshotId2" yaml:"snapshotId2"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
	TableDiffs  []*TableDiff `json:"tableDiffs" yaml:"tableDiffs"`
}

// TableNames lists every table in display order.
func (d *SnapshotDiff) TableNames() []string {
	names := make([]string, len(d.TableDiffs))
	for i, td := range d.TableDiffs {
		names[i] = td.TableName
	}
	return names
}

func (d *SnapshotDiff) Table(name string) *TableDiff {
	for _, td := range d.TableDiffs {
		if td.TableName == name {
			return td
		}
	}
	return nil
}

func (d *SnapshotDiff) Validate() error {
	if s := slice.DuplicatedString(d.TableNames()); s != "" {
		return &InvariantError{Table: s, Msg: "duplicated table"}
	}
	for _, td := range d.TableDiffs {
		if err := td.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProgressBar is notified once per aligned table.
type ProgressBar interface {
	Incr()
}

type Differ struct {
	pt          ProgressBar
	numWorkers  int
	debugLogger *logr.Logger
}

type DifferOption func(*Differ)

func WithProgressBar(pt ProgressBar) DifferOption {
	return func(d *Differ) {
		d.pt = pt
	}
}

// WithNumWorkers bounds how many tables are aligned concurrently.
func WithNumWorkers(n int) DifferOption {
	return func(d *Differ) {
		if n > 0 {
			d.numWorkers = n
		}
	}
}

func WithDebugLogger(l *logr.Logger) DifferOption {
	return func(d *Differ) {
		d.debugLogger = l
	}
}

func NewDiffer(opts ...DifferOption) *Differ {
	d := &Differ{numWorkers: 1}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Diff aligns every table of set1 against the table of the same name in set2.
// Tables are ordered as in set1, followed by tables that only set2 has.
func (d *Differ) Diff(ctx context.Context, set1, set2 *snapshot.Set) (*SnapshotDiff, error) {
	for _, s := range []*snapshot.Set{set1, set2} {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	names := slice.Union(set1.TableNames(), set2.TableNames())
	result := &SnapshotDiff{
		ID:          uuid.New().String(),
		SnapshotID1: set1.ID(),
		SnapshotID2: set2.ID(),
		CreatedAt:   time.Now(),
		TableDiffs:  make([]*TableDiff, len(names)),
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.numWorkers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			td, err := Align(set1.Table(name), set2.Table(name))
			if err != nil {
				return err
			}
			result.TableDiffs[i] = td
			if d.debugLogger != nil {
				d.debugLogger.Info("aligned table",
					"table", name,
					"rows", len(td.PrimaryValues),
					"columns", len(td.ColNames),
				)
			}
			if d.pt != nil {
				d.pt.Incr()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// DiffSnapshots is a shorthand for NewDiffer(opts...).Diff.
func DiffSnapshots(ctx context.Context, set1, set2 *snapshot.Set, opts ...DifferOption) (*SnapshotDiff, error) {
	return NewDiffer(opts...).Diff(ctx, set1, set2)
}
