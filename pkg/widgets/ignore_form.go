// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package widgets

import (
	"github.com/rivo/tview"
	"github.com/wrgl/snapdiff/pkg/ignore"
)

// IgnoreForm is the settings modal where tables are checked to hide them. Each
// change toggles the table in the ignore list right away.
type IgnoreForm struct {
	*tview.Form
	list *ignore.List
}

// NewIgnoreForm lists tables in the given order. done is called when the form
// is closed.
func NewIgnoreForm(tables []string, list *ignore.List, done func()) *IgnoreForm {
	f := &IgnoreForm{
		Form: tview.NewForm(),
		list: list,
	}
	f.SetTitle("Ignore tables").SetBorder(true)
	for _, name := range tables {
		name := name
		f.AddCheckbox(tview.Escape(name), list.Contains(name), func(checked bool) {
			if checked != f.list.Contains(name) {
				f.list.Toggle(name)
			}
		})
	}
	f.AddButton("Close", done)
	f.SetCancelFunc(done)
	return f
}

// modal centers p in a box of the given size.
func modal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
