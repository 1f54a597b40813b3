// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"fmt"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/wrgl/snapdiff/pkg/snapshot"
)

func randomValue(f *gofakeit.Faker) string {
	if f.Bool() {
		return strconv.Itoa(f.Number(0, 99))
	}
	return snapshot.DisplayString(f.FirstName())
}

// RandomSnapshot builds a table of up to maxRows rows whose rows do not
// necessarily share the same columns.
func RandomSnapshot(f *gofakeit.Faker, table string, maxRows, maxCols int) *snapshot.Snapshot {
	cols := make([]string, f.Number(1, maxCols))
	for i := range cols {
		cols[i] = fmt.Sprintf("%s_%d", f.Word(), i)
	}
	s := snapshot.New(table, "id")
	n := f.Number(0, maxRows)
	for i := 0; i < n; i++ {
		row := snapshot.Row{PK: strconv.Itoa(i + 1)}
		for _, c := range cols {
			if f.Number(0, 9) == 0 {
				continue
			}
			row.Fields = append(row.Fields, snapshot.Field{Column: c, Value: randomValue(f)})
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// ModifiedSnapshot derives a later version of s: some rows are removed, some
// values change, a column may be dropped or added and new rows are appended.
func ModifiedSnapshot(f *gofakeit.Faker, s *snapshot.Snapshot) *snapshot.Snapshot {
	res := snapshot.New(s.Table, s.PrimaryColName)
	dropped := ""
	if cols := s.Columns(); len(cols) > 0 && f.Bool() {
		dropped = cols[f.Number(0, len(cols)-1)]
	}
	newCol := ""
	if f.Bool() {
		newCol = fmt.Sprintf("%s_new", f.Word())
	}
	maxPK := 0
	for _, r := range s.Rows {
		if pk, err := strconv.Atoi(r.PK); err == nil && pk > maxPK {
			maxPK = pk
		}
		if f.Number(0, 4) == 0 {
			continue
		}
		row := snapshot.Row{PK: r.PK}
		for _, fld := range r.Fields {
			if fld.Column == dropped {
				continue
			}
			if f.Number(0, 3) == 0 {
				fld.Value = randomValue(f)
			}
			row.Fields = append(row.Fields, fld)
		}
		if newCol != "" && f.Bool() {
			row.Fields = append(row.Fields, snapshot.Field{Column: newCol, Value: randomValue(f)})
		}
		res.Rows = append(res.Rows, row)
	}
	for i := f.Number(0, 3); i > 0; i-- {
		maxPK++
		row := snapshot.Row{PK: strconv.Itoa(maxPK)}
		for _, c := range s.Columns() {
			if c != dropped {
				row.Fields = append(row.Fields, snapshot.Field{Column: c, Value: randomValue(f)})
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}
