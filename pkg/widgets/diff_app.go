// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/wrgl/snapdiff/pkg/ignore"
	"github.com/wrgl/snapdiff/pkg/present"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

const (
	ignorePage = "ignore"
	mainPage   = "main"
)

// DiffApp is the interactive diff viewer: a table list on the left, the
// selected table diff on the right and a status line at the bottom.
type DiffApp struct {
	app      *tview.Application
	diff     *tablediff.SnapshotDiff
	ignored  *ignore.List
	onIgnore func(name string, ignored bool)

	Pages     *tview.Pages
	tableList *TableList
	tables    *tview.Pages
	status    *tview.TextView
	flex      *tview.Flex
}

func NewDiffApp(app *tview.Application, sd *tablediff.SnapshotDiff, ignored *ignore.List) *DiffApp {
	if ignored == nil {
		ignored = ignore.NewList()
	}
	a := &DiffApp{
		app:       app,
		ignored:   ignored,
		Pages:     tview.NewPages(),
		tableList: NewTableList(),
		tables:    tview.NewPages(),
		status:    tview.NewTextView().SetDynamicColors(true),
	}
	a.tableList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		a.showTable(a.tableList.Selected())
	})
	a.tableList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		a.app.SetFocus(a.tables)
	})
	a.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(a.tableList, 30, 0, true).
			AddItem(a.tables, 0, 1, false), 0, 1, true).
		AddItem(a.status, 1, 0, false)
	a.Pages.AddPage(mainPage, a.flex, true, true)
	a.Pages.SetInputCapture(a.inputCapture)
	a.SetDiff(sd)
	return a
}

// SetIgnoreFunc sets a handler called after a table is toggled in the settings
// modal.
func (a *DiffApp) SetIgnoreFunc(f func(name string, ignored bool)) *DiffApp {
	a.onIgnore = f
	return a
}

// SetDiff replaces the shown snapshot diff.
func (a *DiffApp) SetDiff(sd *tablediff.SnapshotDiff) *DiffApp {
	a.diff = sd
	a.refresh()
	return a
}

// Visible returns the table diffs currently shown.
func (a *DiffApp) Visible() []*tablediff.TableDiff {
	return ignore.Visible(a.diff.TableDiffs, a.ignored)
}

func (a *DiffApp) refresh() {
	visible := a.Visible()
	for _, name := range a.tableList.Names() {
		a.tables.RemovePage(name)
	}
	for _, td := range visible {
		a.tables.AddPage(td.TableName, NewDiffTable(present.Layout(td)), true, false)
	}
	a.tableList.SetTables(visible)
	a.showTable(a.tableList.Selected())
	a.status.SetText(fmt.Sprintf(
		"[grey]%s..%s  %d tables, %d ignored  [white]i[grey]: ignore tables  [white]tab[grey]: switch focus  [white]q[grey]: quit",
		shortID(a.diff.SnapshotID1), shortID(a.diff.SnapshotID2), len(visible), len(a.diff.TableDiffs)-len(visible),
	))
}

func shortID(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}

func (a *DiffApp) showTable(name string) {
	if name == "" {
		return
	}
	a.tables.SwitchToPage(name)
}

func (a *DiffApp) showIgnoreForm() {
	names := a.diff.TableNames()
	before := ignore.NewList(a.ignored.Names()...)
	form := NewIgnoreForm(names, a.ignored, func() {
		a.Pages.RemovePage(ignorePage)
		a.refresh()
		if a.onIgnore != nil {
			for _, name := range names {
				if before.Contains(name) != a.ignored.Contains(name) {
					a.onIgnore(name, a.ignored.Contains(name))
				}
			}
		}
		a.app.SetFocus(a.tableList)
	})
	a.Pages.AddPage(ignorePage, modal(form, 50, len(names)*2+5), true, true)
	a.app.SetFocus(form)
}

func (a *DiffApp) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	if a.Pages.HasPage(ignorePage) {
		return event
	}
	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		if a.tableList.HasFocus() {
			a.app.SetFocus(a.tables)
		} else {
			a.app.SetFocus(a.tableList)
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'i':
			a.showIgnoreForm()
			return nil
		case 'q':
			a.app.Stop()
			return nil
		}
	}
	return event
}
