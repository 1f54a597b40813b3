// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import (
	"fmt"

	"github.com/wrgl/snapdiff/pkg/slice"
)

func (d *TableDiff) invariantErr(format string, a ...interface{}) error {
	return &InvariantError{Table: d.TableName, Msg: fmt.Sprintf(format, a...)}
}

// Validate checks the structural invariants every TableDiff produced by Align
// satisfies. It is meant for diffs that were decoded from elsewhere, e.g. a cache.
func (d *TableDiff) Validate() error {
	if s := slice.DuplicatedString(d.PrimaryValues); s != "" {
		return d.invariantErr("duplicated primary value %q", s)
	}
	if s := slice.DuplicatedString(d.ColNames); s != "" {
		return d.invariantErr("duplicated column %q", s)
	}
	cols := slice.ToSet(d.ColNames)
	pks := slice.ToSet(d.PrimaryValues)
	for _, side := range []Side{First, Second} {
		for pk, row := range d.RowDiffs(side) {
			if _, ok := pks[pk]; !ok {
				return d.invariantErr("side %s: row %q is not in primary values", side, pk)
			}
			for col := range row {
				if _, ok := cols[col]; !ok {
					return d.invariantErr("side %s: row %q: orphan column %q", side, pk, col)
				}
			}
		}
	}
	for _, pk := range d.PrimaryValues {
		row1, ok1 := d.RowDiffs1[pk]
		row2, ok2 := d.RowDiffs2[pk]
		switch {
		case ok1 && ok2:
			if err := d.validatePair(pk, row1, row2); err != nil {
				return err
			}
		case ok1:
			if err := d.validateExclusive(pk, First, row1, Deleted); err != nil {
				return err
			}
		case ok2:
			if err := d.validateExclusive(pk, Second, row2, Added); err != nil {
				return err
			}
		default:
			return d.invariantErr("primary value %q has no row on either side", pk)
		}
	}
	return nil
}

func (d *TableDiff) validateExclusive(pk string, side Side, row RowDiff, want CellStatus) error {
	for col, c := range row {
		if c.Status != None && c.Status != want {
			return d.invariantErr("side %s: row %q only exists on this side but column %q is %s", side, pk, col, c.Status)
		}
	}
	return nil
}

func (d *TableDiff) validatePair(pk string, row1, row2 RowDiff) error {
	for _, col := range d.ColNames {
		c1 := row1.Cell(col)
		c2 := row2.Cell(col)
		if c1.Status == Added {
			return d.invariantErr("side 1: row %q column %q cannot be added", pk, col)
		}
		if c2.Status == Deleted {
			return d.invariantErr("side 2: row %q column %q cannot be deleted", pk, col)
		}
		if (c1.Status == Stay) != (c2.Status == Stay) {
			return d.invariantErr("row %q column %q: stay on one side only", pk, col)
		}
		if c1.Status == Stay && c1.Value != c2.Value {
			return d.invariantErr("row %q column %q: stay with different values %q and %q", pk, col, c1.Value, c2.Value)
		}
	}
	return nil
}
