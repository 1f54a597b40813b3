// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import "fmt"

// CellStatus classifies one cell on one side of a diff.
type CellStatus int

const (
	// None means the column does not apply to this row on this side: the row or
	// the column did not exist there.
	None CellStatus = iota
	Stay
	Added
	Deleted
)

var statusNames = [...]string{"none", "stay", "added", "deleted"}

func (s CellStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("CellStatus(%d)", int(s))
	}
	return statusNames[s]
}

func ParseCellStatus(s string) (CellStatus, error) {
	for i, name := range statusNames {
		if name == s {
			return CellStatus(i), nil
		}
	}
	return None, fmt.Errorf("unknown cell status %q", s)
}

func (s CellStatus) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid cell status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *CellStatus) UnmarshalText(b []byte) error {
	v, err := ParseCellStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Cell is one column's value for one row on one side. Value is meaningless when
// Status is None.
type Cell struct {
	Status CellStatus `json:"status" yaml:"status"`
	Value  string     `json:"value" yaml:"value"`
}

// RowDiff holds the cells of one primary-key value on one side. A column missing
// from the map is the same as a None cell.
type RowDiff map[string]Cell

// Cell returns the cell of column col, or a None cell when absent.
func (r RowDiff) Cell(col string) Cell {
	if c, ok := r[col]; ok && c.Status != None {
		return c
	}
	return Cell{Status: None}
}
