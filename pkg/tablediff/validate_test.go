// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDiff() *TableDiff {
	return &TableDiff{
		TableName:      "users",
		PrimaryColName: "id",
		PrimaryValues:  []string{"1", "2", "3"},
		ColNames:       []string{"name", "age"},
		RowDiffs1: map[string]RowDiff{
			"1": {"name": stay(`"John"`), "age": deleted("29")},
			"2": {"name": deleted(`"Anne"`)},
		},
		RowDiffs2: map[string]RowDiff{
			"1": {"name": stay(`"John"`), "age": added("30")},
			"3": {"name": added(`"Bob"`), "age": none},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validDiff().Validate())

	for _, c := range []struct {
		mutate func(d *TableDiff)
		msg    string
	}{
		{func(d *TableDiff) { d.PrimaryValues = append(d.PrimaryValues, "1") }, `duplicated primary value "1"`},
		{func(d *TableDiff) { d.ColNames = append(d.ColNames, "age") }, `duplicated column "age"`},
		{func(d *TableDiff) { d.RowDiffs1["1"]["email"] = none }, `side 1: row "1": orphan column "email"`},
		{func(d *TableDiff) { d.RowDiffs2["9"] = RowDiff{} }, `side 2: row "9" is not in primary values`},
		{func(d *TableDiff) { d.PrimaryValues = append(d.PrimaryValues, "4") }, `primary value "4" has no row on either side`},
		{func(d *TableDiff) { d.RowDiffs1["2"]["age"] = stay("1") }, `side 1: row "2" only exists on this side but column "age" is stay`},
		{func(d *TableDiff) { d.RowDiffs2["3"]["age"] = deleted("1") }, `side 2: row "3" only exists on this side but column "age" is deleted`},
		{func(d *TableDiff) { d.RowDiffs1["1"]["age"] = added("29") }, `side 1: row "1" column "age" cannot be added`},
		{func(d *TableDiff) { d.RowDiffs2["1"]["age"] = deleted("30") }, `side 2: row "1" column "age" cannot be deleted`},
		{func(d *TableDiff) { d.RowDiffs2["1"]["name"] = added(`"John"`) }, `row "1" column "name": stay on one side only`},
		{func(d *TableDiff) { d.RowDiffs2["1"]["name"] = stay(`"Jon"`) }, `row "1" column "name": stay with different values "\"John\"" and "\"Jon\""`},
	} {
		d := validDiff()
		c.mutate(d)
		err := d.Validate()
		require.Error(t, err, c.msg)
		assert.Equal(t, `table diff "users": `+c.msg, err.Error())
	}
}

func TestRowDiffCell(t *testing.T) {
	var r RowDiff
	assert.Equal(t, none, r.Cell("a"))
	r = RowDiff{"a": {Status: None, Value: "junk"}, "b": stay("1")}
	assert.Equal(t, none, r.Cell("a"))
	assert.Equal(t, stay("1"), r.Cell("b"))
}
