// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

var (
	columnStyle     = tcell.StyleDefault.Foreground(tcell.ColorAzure).Bold(true)
	sideStyle       = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	primaryKeyStyle = tcell.StyleDefault.Foreground(tcell.ColorAquaMarine).Background(tcell.ColorBlack)
	cellStyle       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	addedStyle      = cellStyle.Foreground(tcell.ColorGreen)
	deletedStyle    = cellStyle.Foreground(tcell.ColorRed)
	noneStyle       = cellStyle.Foreground(tcell.ColorDarkGray)
)

// StatusStyle returns the style of a cell with the given status.
func StatusStyle(s tablediff.CellStatus) tcell.Style {
	switch s {
	case tablediff.Added:
		return addedStyle
	case tablediff.Deleted:
		return deletedStyle
	case tablediff.None:
		return noneStyle
	}
	return cellStyle
}

func styledCell(text string, style tcell.Style) *tview.TableCell {
	fg, bg, attr := style.Decompose()
	return tview.NewTableCell(tview.Escape(text)).
		SetTextColor(fg).
		SetBackgroundColor(bg).
		SetAttributes(attr)
}
