// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"github.com/rivo/tview"
	"github.com/wrgl/snapdiff/pkg/present"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

const maxCellWidth = 40

// DiffTable shows a laid out table diff. The first two columns (side and primary
// key) and the header row stay in view while scrolling.
type DiffTable struct {
	*tview.Table
}

func NewDiffTable(g *present.Grid) *DiffTable {
	t := &DiffTable{
		Table: tview.NewTable().SetFixed(1, 2).SetSelectable(true, false),
	}
	t.SetTitle(g.TableName).SetBorder(true)
	t.SetCell(0, 0, styledCell("", columnStyle).SetSelectable(false))
	for i, col := range g.Header() {
		t.SetCell(0, i+1, styledCell(col, columnStyle).SetSelectable(false))
	}
	for i, l := range g.Lines {
		row := i + 1
		t.SetCell(row, 0, styledCell(l.Side.String(), sideStyle))
		pk := ""
		if l.Side == tablediff.First {
			pk = l.PK
		}
		t.SetCell(row, 1, styledCell(pk, primaryKeyStyle))
		for j, c := range l.Cells {
			t.SetCell(row, j+2, styledCell(c.Value, StatusStyle(c.Status)).SetMaxWidth(maxCellWidth))
		}
	}
	if len(g.Lines) > 0 {
		t.Select(1, 0)
	}
	return t
}
