// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

// Side selects one of the two snapshots of a diff.
type Side int

const (
	First Side = iota + 1
	Second
)

func (s Side) String() string {
	switch s {
	case First:
		return "1"
	case Second:
		return "2"
	}
	return "?"
}

// TableDiff is the side-by-side alignment of one table across two snapshots. It is
// built once by Align and must not be modified afterwards.
type TableDiff struct {
	TableName      string `json:"tableName" yaml:"tableName"`
	PrimaryColName string `json:"primaryColName" yaml:"primaryColName"`

	// PrimaryValues is the display order of rows: snapshot 1 keys followed by keys
	// that only snapshot 2 has.
	PrimaryValues []string `json:"primaryValues" yaml:"primaryValues"`

	// ColNames is the display order of columns: snapshot 1 columns followed by
	// columns that only snapshot 2 has.
	ColNames []string `json:"colNames" yaml:"colNames"`

	RowDiffs1 map[string]RowDiff `json:"rowDiffs1" yaml:"rowDiffs1"`
	RowDiffs2 map[string]RowDiff `json:"rowDiffs2" yaml:"rowDiffs2"`
}

func newTableDiff(table, pkCol string) *TableDiff {
	return &TableDiff{
		TableName:      table,
		PrimaryColName: pkCol,
		PrimaryValues:  []string{},
		ColNames:       []string{},
		RowDiffs1:      map[string]RowDiff{},
		RowDiffs2:      map[string]RowDiff{},
	}
}

// RowDiffs returns the row map of side.
func (d *TableDiff) RowDiffs(side Side) map[string]RowDiff {
	if side == First {
		return d.RowDiffs1
	}
	return d.RowDiffs2
}

// Row returns the row of pk on side. ok is false when the row does not exist on
// that side.
func (d *TableDiff) Row(side Side, pk string) (row RowDiff, ok bool) {
	row, ok = d.RowDiffs(side)[pk]
	return
}

// Cell returns the cell at pk and col on side, treating any absence as None.
func (d *TableDiff) Cell(side Side, pk, col string) Cell {
	return d.RowDiffs(side)[pk].Cell(col)
}

// Changed reports whether any cell is Added or Deleted.
func (d *TableDiff) Changed() bool {
	for _, rows := range []map[string]RowDiff{d.RowDiffs1, d.RowDiffs2} {
		for _, row := range rows {
			for _, c := range row {
				if c.Status == Added || c.Status == Deleted {
					return true
				}
			}
		}
	}
	return false
}
