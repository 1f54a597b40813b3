// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

// Package present lays a TableDiff out for rendering and renders it as text, CSV
// or JSON.
package present

import "github.com/wrgl/snapdiff/pkg/tablediff"

// Line is one rendered row: the cells of a primary-key value on one side, in
// column order.
type Line struct {
	PK    string
	Side  tablediff.Side
	Cells []tablediff.Cell
}

// Grid is the rendering contract of a TableDiff: a header followed by two lines
// per primary-key value, side 1 first.
type Grid struct {
	TableName      string
	PrimaryColName string
	Columns        []string
	Lines          []Line
}

// Layout materializes every cell of d. Cells that are absent or None become
// Cell{Status: None} with an empty value.
func Layout(d *tablediff.TableDiff) *Grid {
	g := &Grid{
		TableName:      d.TableName,
		PrimaryColName: d.PrimaryColName,
		Columns:        d.ColNames,
		Lines:          make([]Line, 0, len(d.PrimaryValues)*2),
	}
	for _, pk := range d.PrimaryValues {
		for _, side := range []tablediff.Side{tablediff.First, tablediff.Second} {
			row := d.RowDiffs(side)[pk]
			cells := make([]tablediff.Cell, len(d.ColNames))
			for i, col := range d.ColNames {
				cells[i] = row.Cell(col)
			}
			g.Lines = append(g.Lines, Line{PK: pk, Side: side, Cells: cells})
		}
	}
	return g
}

// Header returns the primary key column followed by every column.
func (g *Grid) Header() []string {
	return append([]string{g.PrimaryColName}, g.Columns...)
}
