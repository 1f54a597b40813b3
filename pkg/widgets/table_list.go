// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

// TableList lists table names with their row change counts.
type TableList struct {
	*tview.List
	names []string
}

func NewTableList() *TableList {
	l := &TableList{
		List: tview.NewList().ShowSecondaryText(true),
	}
	l.SetTitle("Tables").SetBorder(true)
	return l
}

// SetTables replaces the listed tables while keeping the current selection if
// the selected table is still listed.
func (l *TableList) SetTables(diffs []*tablediff.TableDiff) *TableList {
	selected := l.Selected()
	l.Clear()
	l.names = make([]string, len(diffs))
	for i, d := range diffs {
		l.names[i] = d.TableName
		st := d.Stats()
		l.AddItem(
			tview.Escape(d.TableName),
			fmt.Sprintf("[green]+%d [red]-%d [yellow]~%d", st.AddedRows, st.DeletedRows, st.ModifiedRows),
			0, nil,
		)
	}
	for i, name := range l.names {
		if name == selected {
			l.SetCurrentItem(i)
			break
		}
	}
	return l
}

// Selected returns the selected table name, or an empty string if the list is
// empty.
func (l *TableList) Selected() string {
	if len(l.names) == 0 {
		return ""
	}
	return l.names[l.GetCurrentItem()]
}

// Names returns the listed table names in order.
func (l *TableList) Names() []string {
	return l.names
}
