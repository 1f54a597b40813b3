// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import (
	"github.com/wrgl/snapdiff/pkg/slice"
	"github.com/wrgl/snapdiff/pkg/snapshot"
)

func emptySnapshot(s *snapshot.Snapshot) *snapshot.Snapshot {
	return &snapshot.Snapshot{Table: s.Table, PrimaryColName: s.PrimaryColName}
}

// Align classifies every cell of a table between snapshot s1 and s2. Either
// snapshot may be nil when the table only exists on the other side, in which
// case every row is reported as deleted or added.
func Align(s1, s2 *snapshot.Snapshot) (*TableDiff, error) {
	if s1 == nil && s2 == nil {
		return nil, ErrNoSnapshot
	}
	if s1 == nil {
		s1 = emptySnapshot(s2)
	} else if s2 == nil {
		s2 = emptySnapshot(s1)
	}
	if s1.Table != s2.Table {
		return nil, &SchemaMismatchError{Table: s1.Table, Field: "table name", Value1: s1.Table, Value2: s2.Table}
	}
	if s1.PrimaryColName != s2.PrimaryColName {
		return nil, &SchemaMismatchError{Table: s1.Table, Field: "primary key column", Value1: s1.PrimaryColName, Value2: s2.PrimaryColName}
	}
	for _, s := range []*snapshot.Snapshot{s1, s2} {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	d := newTableDiff(s1.Table, s1.PrimaryColName)
	d.ColNames = slice.Union(s1.Columns(), s2.Columns())
	d.PrimaryValues = slice.Union(s1.PKs(), s2.PKs())

	idx1 := s1.Index()
	idx2 := s2.Index()
	for _, pk := range d.PrimaryValues {
		i, ok1 := idx1[pk]
		j, ok2 := idx2[pk]
		switch {
		case ok1 && ok2:
			d.RowDiffs1[pk], d.RowDiffs2[pk] = compareRows(d.ColNames, s1.Rows[i].Map(), s2.Rows[j].Map())
		case ok1:
			d.RowDiffs1[pk] = wholeRow(s1.Rows[i], Deleted)
		case ok2:
			d.RowDiffs2[pk] = wholeRow(s2.Rows[j], Added)
		}
	}
	return d, nil
}

// wholeRow marks every field of a row that only one side has.
func wholeRow(r snapshot.Row, status CellStatus) RowDiff {
	row := make(RowDiff, len(r.Fields))
	for _, f := range r.Fields {
		row[f.Column] = Cell{Status: status, Value: f.Value}
	}
	return row
}

// compareRows classifies each column independently for a key present on both
// sides. Values are compared as opaque strings.
func compareRows(cols []string, m1, m2 map[string]string) (row1, row2 RowDiff) {
	row1 = make(RowDiff, len(cols))
	row2 = make(RowDiff, len(cols))
	for _, col := range cols {
		v1, ok1 := m1[col]
		v2, ok2 := m2[col]
		switch {
		case ok1 && ok2 && v1 == v2:
			row1[col] = Cell{Status: Stay, Value: v1}
			row2[col] = Cell{Status: Stay, Value: v2}
		case ok1 && ok2:
			row1[col] = Cell{Status: Deleted, Value: v1}
			row2[col] = Cell{Status: Added, Value: v2}
		case ok1:
			row1[col] = Cell{Status: Deleted, Value: v1}
			row2[col] = Cell{Status: None}
		case ok2:
			row1[col] = Cell{Status: None}
			row2[col] = Cell{Status: Added, Value: v2}
		default:
			row1[col] = Cell{Status: None}
			row2[col] = Cell{Status: None}
		}
	}
	return
}
