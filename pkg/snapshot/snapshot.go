// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapshot

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/pckhoi/meow"
)

// Field is one column value of a row. Value is already in its serialized display
// form (e.g. a quoted string or a bare number) and is only ever compared for equality.
type Field struct {
	Column string `json:"column" yaml:"column"`
	Value  string `json:"value" yaml:"value"`
}

// Row is a single table row identified by its primary-key value. Fields keep the
// order in which columns were captured.
type Row struct {
	PK     string  `json:"pk" yaml:"pk"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// NewRow creates a row from alternating column names and values.
func NewRow(pk string, colsAndValues ...string) Row {
	if len(colsAndValues)%2 != 0 {
		panic(fmt.Sprintf("snapshot.NewRow: odd number of column/value arguments (%d)", len(colsAndValues)))
	}
	r := Row{PK: pk, Fields: make([]Field, 0, len(colsAndValues)/2)}
	for i := 0; i < len(colsAndValues); i += 2 {
		r.Fields = append(r.Fields, Field{Column: colsAndValues[i], Value: colsAndValues[i+1]})
	}
	return r
}

// Get returns the value of column col and whether the row has that column.
func (r Row) Get(col string) (string, bool) {
	for _, f := range r.Fields {
		if f.Column == col {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the row's fields keyed by column name.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Column] = f.Value
	}
	return m
}

func writeString(h interface{ Write([]byte) (int, error) }, s string) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], uint64(len(s)))
	h.Write(b[:n])
	h.Write([]byte(s))
}

// Sum returns the 128-bit meow checksum of the row's primary key and fields.
func (r Row) Sum() []byte {
	h := meow.New(0)
	writeString(h, r.PK)
	for _, f := range r.Fields {
		writeString(h, f.Column)
		writeString(h, f.Value)
	}
	return h.Sum(nil)
}

// Snapshot is one table captured at a point in time.
type Snapshot struct {
	Table          string `json:"table" yaml:"table"`
	PrimaryColName string `json:"primaryColName" yaml:"primaryColName"`
	Rows           []Row  `json:"rows" yaml:"rows"`
}

func New(table, primaryColName string, rows ...Row) *Snapshot {
	return &Snapshot{
		Table:          table,
		PrimaryColName: primaryColName,
		Rows:           rows,
	}
}

// Columns returns column names in the order they first appear across rows.
func (s *Snapshot) Columns() []string {
	seen := map[string]struct{}{}
	cols := []string{}
	for _, r := range s.Rows {
		for _, f := range r.Fields {
			if _, ok := seen[f.Column]; ok {
				continue
			}
			seen[f.Column] = struct{}{}
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// PKs returns primary-key values in row order.
func (s *Snapshot) PKs() []string {
	pks := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		pks[i] = r.PK
	}
	return pks
}

// Index maps each primary-key value to its position in Rows. Validate should be
// called first, otherwise later duplicates shadow earlier rows.
func (s *Snapshot) Index() map[string]int {
	m := make(map[string]int, len(s.Rows))
	for i, r := range s.Rows {
		m[r.PK] = i
	}
	return m
}

// Sum returns the checksum of the whole table: primary column name, table name
// and the checksum of every row in order.
func (s *Snapshot) Sum() []byte {
	h := meow.New(0)
	writeString(h, s.Table)
	writeString(h, s.PrimaryColName)
	for _, r := range s.Rows {
		h.Write(r.Sum())
	}
	return h.Sum(nil)
}

// ID is the hex-encoded Sum.
func (s *Snapshot) ID() string {
	return hex.EncodeToString(s.Sum())
}

// Validate rejects rows that cannot be aligned unambiguously.
func (s *Snapshot) Validate() error {
	pks := make(map[string]struct{}, len(s.Rows))
	for i, r := range s.Rows {
		if r.PK == "" {
			return &MalformedRowError{Table: s.Table, Row: i, Reason: "empty primary key value"}
		}
		if _, ok := pks[r.PK]; ok {
			return &MalformedRowError{Table: s.Table, Row: i, PK: r.PK, Reason: "duplicated primary key value"}
		}
		pks[r.PK] = struct{}{}
		cols := make(map[string]struct{}, len(r.Fields))
		for _, f := range r.Fields {
			if f.Column == "" {
				return &MalformedRowError{Table: s.Table, Row: i, PK: r.PK, Reason: "empty column name"}
			}
			if f.Column == s.PrimaryColName {
				return &MalformedRowError{Table: s.Table, Row: i, PK: r.PK, Column: f.Column, Reason: "column repeats the primary key column"}
			}
			if _, ok := cols[f.Column]; ok {
				return &MalformedRowError{Table: s.Table, Row: i, PK: r.PK, Column: f.Column, Reason: "duplicated column"}
			}
			cols[f.Column] = struct{}{}
		}
	}
	return nil
}
