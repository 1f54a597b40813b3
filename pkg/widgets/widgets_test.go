// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/snapdiff/pkg/ignore"
	"github.com/wrgl/snapdiff/pkg/present"
	"github.com/wrgl/snapdiff/pkg/snapshot"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

func snapshotDiff(t *testing.T) *tablediff.SnapshotDiff {
	t.Helper()
	sd, err := tablediff.DiffSnapshots(context.Background(),
		snapshot.NewSet("old",
			snapshot.New("users", "id",
				snapshot.NewRow("1", "name", "alice"),
				snapshot.NewRow("2", "name", "bob"),
			),
			snapshot.New("audit", "id", snapshot.NewRow("1", "event", "login")),
		),
		snapshot.NewSet("new",
			snapshot.New("users", "id",
				snapshot.NewRow("1", "name", "alicia"),
				snapshot.NewRow("3", "name", "carol"),
			),
			snapshot.New("audit", "id", snapshot.NewRow("1", "event", "login")),
		),
	)
	require.NoError(t, err)
	return sd
}

func assertCell(t *testing.T, table *tview.Table, row, col int, text string, fg tcell.Color) {
	t.Helper()
	c := table.GetCell(row, col)
	assert.Equal(t, text, c.Text, "cell (%d, %d)", row, col)
	assert.Equal(t, fg, c.Color, "cell (%d, %d)", row, col)
}

func TestDiffTable(t *testing.T) {
	sd := snapshotDiff(t)
	dt := NewDiffTable(present.Layout(sd.Table("users")))
	assert.Equal(t, 7, dt.GetRowCount())
	assert.Equal(t, 3, dt.GetColumnCount())
	assertCell(t, dt.Table, 0, 1, "id", tcell.ColorAzure)
	assertCell(t, dt.Table, 0, 2, "name", tcell.ColorAzure)

	assertCell(t, dt.Table, 1, 0, "1", tcell.ColorSlateGray)
	assertCell(t, dt.Table, 1, 1, "1", tcell.ColorAquaMarine)
	assertCell(t, dt.Table, 1, 2, "alice", tcell.ColorRed)
	assertCell(t, dt.Table, 2, 0, "2", tcell.ColorSlateGray)
	assertCell(t, dt.Table, 2, 1, "", tcell.ColorAquaMarine)
	assertCell(t, dt.Table, 2, 2, "alicia", tcell.ColorGreen)

	assertCell(t, dt.Table, 3, 2, "bob", tcell.ColorRed)
	assertCell(t, dt.Table, 4, 2, "", tcell.ColorDarkGray)
	assertCell(t, dt.Table, 5, 2, "", tcell.ColorDarkGray)
	assertCell(t, dt.Table, 6, 2, "carol", tcell.ColorGreen)

	row, _ := dt.GetSelection()
	assert.Equal(t, 1, row)
}

func TestStatusStyle(t *testing.T) {
	for s, c := range map[tablediff.CellStatus]tcell.Color{
		tablediff.Stay:    tcell.ColorWhite,
		tablediff.Added:   tcell.ColorGreen,
		tablediff.Deleted: tcell.ColorRed,
		tablediff.None:    tcell.ColorDarkGray,
	} {
		fg, _, _ := StatusStyle(s).Decompose()
		assert.Equal(t, c, fg, s.String())
	}
}

func TestTableList(t *testing.T) {
	sd := snapshotDiff(t)
	l := NewTableList()
	assert.Equal(t, "", l.Selected())
	l.SetTables(sd.TableDiffs)
	assert.Equal(t, []string{"users", "audit"}, l.Names())
	assert.Equal(t, "users", l.Selected())
	main, secondary := l.GetItemText(0)
	assert.Equal(t, "users", main)
	assert.Equal(t, "[green]+1 [red]-1 [yellow]~1", secondary)

	l.SetCurrentItem(1)
	l.SetTables(sd.TableDiffs)
	assert.Equal(t, "audit", l.Selected())
	l.SetTables(sd.TableDiffs[:1])
	assert.Equal(t, "users", l.Selected())
}

func TestIgnoreForm(t *testing.T) {
	list := ignore.NewList("audit")
	closed := false
	f := NewIgnoreForm([]string{"users", "audit"}, list, func() { closed = true })
	assert.Equal(t, 2, f.GetFormItemCount())

	users := f.GetFormItem(0).(*tview.Checkbox)
	audit := f.GetFormItem(1).(*tview.Checkbox)
	assert.False(t, users.IsChecked())
	assert.True(t, audit.IsChecked())

	users.SetChecked(true)
	audit.SetChecked(false)
	// SetChecked does not trigger the changed handler
	assert.Equal(t, []string{"audit"}, list.Names())

	handler := users.InputHandler()
	handler(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), func(p tview.Primitive) {})
	assert.False(t, users.IsChecked())
	handler(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), func(p tview.Primitive) {})
	assert.True(t, users.IsChecked())
	assert.Equal(t, []string{"audit", "users"}, list.Names())

	f.GetButton(0).InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(p tview.Primitive) {})
	assert.True(t, closed)
}

func TestDiffApp(t *testing.T) {
	sd := snapshotDiff(t)
	list := ignore.NewList("audit")
	toggled := map[string]bool{}
	a := NewDiffApp(tview.NewApplication(), sd, list).SetIgnoreFunc(func(name string, ignored bool) {
		toggled[name] = ignored
	})
	assert.Len(t, a.Visible(), 1)
	assert.Equal(t, []string{"users"}, a.tableList.Names())
	name, _ := a.tables.GetFrontPage()
	assert.Equal(t, "users", name)

	assert.Nil(t, a.inputCapture(tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone)))
	assert.True(t, a.Pages.HasPage(ignorePage))
	// keys go to the form while it is open
	ev := tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.Equal(t, ev, a.inputCapture(ev))

	list.Toggle("audit")
	list.Toggle("users")
	frontName, _ := a.Pages.GetFrontPage()
	assert.Equal(t, ignorePage, frontName)
	form := findIgnoreForm(t, a)
	form.GetButton(0).InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(p tview.Primitive) {})
	assert.False(t, a.Pages.HasPage(ignorePage))
	assert.Equal(t, map[string]bool{"users": true, "audit": false}, toggled)
	assert.Equal(t, []string{"audit"}, a.tableList.Names())

	a.SetDiff(snapshotDiff(t))
	assert.Equal(t, []string{"audit"}, a.tableList.Names())
}

func findIgnoreForm(t *testing.T, a *DiffApp) *IgnoreForm {
	t.Helper()
	var found *IgnoreForm
	var walk func(p tview.Primitive)
	walk = func(p tview.Primitive) {
		switch v := p.(type) {
		case *IgnoreForm:
			found = v
		case *tview.Flex:
			for i := 0; i < v.GetItemCount(); i++ {
				if item := v.GetItem(i); item != nil {
					walk(item)
				}
			}
		}
	}
	_, front := a.Pages.GetFrontPage()
	walk(front)
	require.NotNil(t, found)
	return found
}
