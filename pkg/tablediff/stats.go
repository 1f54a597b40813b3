// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import "github.com/wrgl/snapdiff/pkg/slice"

// Stats summarizes a TableDiff.
type Stats struct {
	AddedRows     int `json:"addedRows" yaml:"addedRows"`
	DeletedRows   int `json:"deletedRows" yaml:"deletedRows"`
	ModifiedRows  int `json:"modifiedRows" yaml:"modifiedRows"`
	UnchangedRows int `json:"unchangedRows" yaml:"unchangedRows"`

	// AddedColumns are columns that no snapshot 1 row has.
	AddedColumns []string `json:"addedColumns,omitempty" yaml:"addedColumns,omitempty"`
	// RemovedColumns are columns that no snapshot 2 row has.
	RemovedColumns []string `json:"removedColumns,omitempty" yaml:"removedColumns,omitempty"`
}

func columnsOf(rows map[string]RowDiff, pks []string) []string {
	present := map[string]struct{}{}
	for _, pk := range pks {
		for col, c := range rows[pk] {
			if c.Status != None {
				present[col] = struct{}{}
			}
		}
	}
	return mapKeys(present)
}

func mapKeys(m map[string]struct{}) []string {
	sl := make([]string, 0, len(m))
	for k := range m {
		sl = append(sl, k)
	}
	return sl
}

func (d *TableDiff) Stats() Stats {
	st := Stats{}
	for _, pk := range d.PrimaryValues {
		row1, ok1 := d.RowDiffs1[pk]
		row2, ok2 := d.RowDiffs2[pk]
		switch {
		case ok1 && ok2:
			modified := false
			for _, col := range d.ColNames {
				if s := row1.Cell(col).Status; s == Deleted {
					modified = true
					break
				}
				if s := row2.Cell(col).Status; s == Added {
					modified = true
					break
				}
			}
			if modified {
				st.ModifiedRows++
			} else {
				st.UnchangedRows++
			}
		case ok1:
			st.DeletedRows++
		case ok2:
			st.AddedRows++
		}
	}
	cols1 := columnsOf(d.RowDiffs1, d.PrimaryValues)
	cols2 := columnsOf(d.RowDiffs2, d.PrimaryValues)
	// keep display order
	_, st.AddedColumns, st.RemovedColumns = slice.CompareStringSlices(
		slice.Intersect(d.ColNames, cols2), slice.Intersect(d.ColNames, cols1),
	)
	return st
}
