// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/colorstring"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

const maxCellWidth = 40

// TextRenderer writes grids as aligned plain-text tables. Cell status is shown by
// colour, or by a one-character marker when colour is off.
type TextRenderer struct {
	w       io.Writer
	noColor bool
	styles  map[tablediff.CellStatus]*color.Color
	markers map[tablediff.CellStatus]string
}

func NewTextRenderer(w io.Writer, noColor bool) *TextRenderer {
	r := &TextRenderer{
		w:       w,
		noColor: noColor,
		styles: map[tablediff.CellStatus]*color.Color{
			tablediff.Stay:    color.New(color.Reset),
			tablediff.Added:   color.New(color.FgGreen),
			tablediff.Deleted: color.New(color.FgRed),
			tablediff.None:    color.New(color.FgHiBlack),
		},
		markers: map[tablediff.CellStatus]string{
			tablediff.Stay:    " ",
			tablediff.Added:   "+",
			tablediff.Deleted: "-",
			tablediff.None:    " ",
		},
	}
	for _, c := range r.styles {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return r
}

func truncate(s string) string {
	return runewidth.Truncate(s, maxCellWidth, "…")
}

func (r *TextRenderer) cellText(c tablediff.Cell) string {
	if c.Status == tablediff.None {
		return ""
	}
	if r.noColor {
		return r.markers[c.Status] + c.Value
	}
	return c.Value
}

func (r *TextRenderer) columnWidths(g *Grid) []int {
	header := g.Header()
	widths := make([]int, len(header))
	for i, s := range header {
		widths[i] = runewidth.StringWidth(truncate(s))
	}
	for _, l := range g.Lines {
		if w := runewidth.StringWidth(truncate(l.PK)); w > widths[0] {
			widths[0] = w
		}
		for i, c := range l.Cells {
			if w := runewidth.StringWidth(truncate(r.cellText(c))); w > widths[i+1] {
				widths[i+1] = w
			}
		}
	}
	return widths
}

func (r *TextRenderer) title(s string) string {
	c := &colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: r.noColor,
		Reset:   true,
	}
	return c.Color(s)
}

// Render writes one grid.
func (r *TextRenderer) Render(g *Grid) error {
	if _, err := fmt.Fprintln(r.w, r.title(fmt.Sprintf("[bold]%s", g.TableName))); err != nil {
		return err
	}
	widths := r.columnWidths(g)
	header := g.Header()
	cols := make([]string, len(header))
	for i, s := range header {
		cols[i] = runewidth.FillRight(truncate(s), widths[i])
	}
	if _, err := fmt.Fprintf(r.w, "  %s\n", strings.Join(cols, " | ")); err != nil {
		return err
	}
	for _, l := range g.Lines {
		pk := ""
		if l.Side == tablediff.First {
			pk = l.PK
		}
		cells := make([]string, len(header))
		cells[0] = runewidth.FillRight(truncate(pk), widths[0])
		for i, c := range l.Cells {
			s := runewidth.FillRight(truncate(r.cellText(c)), widths[i+1])
			cells[i+1] = r.styles[c.Status].Sprint(s)
		}
		if _, err := fmt.Fprintf(r.w, "%s %s\n", l.Side, strings.Join(cells, " | ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

// RenderSummary writes one line of change counts per table diff.
func (r *TextRenderer) RenderSummary(diffs []*tablediff.TableDiff) error {
	for _, d := range diffs {
		st := d.Stats()
		line := fmt.Sprintf("%s: [green]+%d[reset] [red]-%d[reset] [yellow]~%d[reset] rows",
			d.TableName, st.AddedRows, st.DeletedRows, st.ModifiedRows)
		if n := len(st.AddedColumns); n > 0 {
			line += fmt.Sprintf(", [green]+%d[reset] columns", n)
		}
		if n := len(st.RemovedColumns); n > 0 {
			line += fmt.Sprintf(", [red]-%d[reset] columns", n)
		}
		if _, err := fmt.Fprintln(r.w, r.title(line)); err != nil {
			return err
		}
	}
	return nil
}
