// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package present

import (
	"encoding/json"
	"io"

	"github.com/wrgl/snapdiff/pkg/tablediff"
)

// WriteJSON encodes the snapshot diff as indented JSON.
func WriteJSON(w io.Writer, sd *tablediff.SnapshotDiff) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sd)
}

// TableSummary is the change count of one table diff.
type TableSummary struct {
	Table string          `json:"table"`
	Stats tablediff.Stats `json:"stats"`
}

// Summary collects stats for every table diff in order.
func Summary(diffs []*tablediff.TableDiff) []TableSummary {
	res := make([]TableSummary, len(diffs))
	for i, d := range diffs {
		res[i] = TableSummary{Table: d.TableName, Stats: d.Stats()}
	}
	return res
}

// WriteJSONSummary encodes table summaries as indented JSON.
func WriteJSONSummary(w io.Writer, sum []TableSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}
