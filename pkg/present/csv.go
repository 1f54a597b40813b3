// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package present

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/wrgl/snapdiff/pkg/tablediff"
)

// WriteCSV writes the grid as CSV. The first two columns are the side ("1" or
// "2") and the primary key value; each cell after that is written as
// "<status>:<value>", or left empty when the status is None.
func WriteCSV(w io.Writer, g *Grid) error {
	cw := csv.NewWriter(w)
	header := append([]string{"side"}, g.Header()...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, l := range g.Lines {
		rec := make([]string, 0, len(l.Cells)+2)
		rec = append(rec, l.Side.String(), l.PK)
		for _, c := range l.Cells {
			if c.Status == tablediff.None {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, c.Status.String()+":"+c.Value)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVSummary writes one record of change counts per table.
func WriteCSVSummary(w io.Writer, sum []TableSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"table", "added_rows", "deleted_rows", "modified_rows", "unchanged_rows", "added_columns", "removed_columns",
	}); err != nil {
		return err
	}
	for _, s := range sum {
		if err := cw.Write([]string{
			s.Table,
			strconv.Itoa(s.Stats.AddedRows),
			strconv.Itoa(s.Stats.DeletedRows),
			strconv.Itoa(s.Stats.ModifiedRows),
			strconv.Itoa(s.Stats.UnchangedRows),
			strings.Join(s.Stats.AddedColumns, "|"),
			strings.Join(s.Stats.RemovedColumns, "|"),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
