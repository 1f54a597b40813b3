// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellStatusText(t *testing.T) {
	assert.Equal(t, "deleted", Deleted.String())
	assert.Equal(t, "CellStatus(9)", CellStatus(9).String())
	s, err := ParseCellStatus("added")
	require.NoError(t, err)
	assert.Equal(t, Added, s)
	_, err = ParseCellStatus("moved")
	assert.Error(t, err)
	_, err = CellStatus(-1).MarshalText()
	assert.Error(t, err)
}

func TestTableDiffJSON(t *testing.T) {
	d := &TableDiff{
		TableName:      "users",
		PrimaryColName: "id",
		PrimaryValues:  []string{"1"},
		ColNames:       []string{"name"},
		RowDiffs1:      map[string]RowDiff{"1": {"name": deleted(`"John"`)}},
		RowDiffs2:      map[string]RowDiff{},
	}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"tableName": "users",
		"primaryColName": "id",
		"primaryValues": ["1"],
		"colNames": ["name"],
		"rowDiffs1": {"1": {"name": {"status": "deleted", "value": "\"John\""}}},
		"rowDiffs2": {}
	}`, string(b))

	d2 := &TableDiff{}
	require.NoError(t, json.Unmarshal(b, d2))
	assert.Equal(t, d, d2)
	assert.Error(t, json.Unmarshal([]byte(`{"rowDiffs1": {"1": {"a": {"status": "moved"}}}}`), &TableDiff{}))
}
