// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PrimaryKeys resolves the primary key column of each table.
type PrimaryKeys struct {
	Default string
	Tables  map[string]string
}

func (p PrimaryKeys) For(table string) string {
	if s, ok := p.Tables[table]; ok {
		return s
	}
	return p.Default
}

// ParsePrimaryKeys reads flag values of the form "COLUMN" (default for every table)
// or "TABLE=COLUMN".
func ParsePrimaryKeys(def string, values []string) (PrimaryKeys, error) {
	pk := PrimaryKeys{Default: def, Tables: map[string]string{}}
	for _, v := range values {
		table, col, ok := strings.Cut(v, "=")
		if !ok {
			pk.Default = v
			continue
		}
		if table == "" || col == "" {
			return pk, fmt.Errorf("invalid primary key %q, expecting TABLE=COLUMN", v)
		}
		pk.Tables[table] = col
	}
	return pk, nil
}

type readOptions struct {
	delim  rune
	format ValueFormatter
	wrap   func(name string, size int64, r io.Reader) io.Reader
}

type ReadOption func(o *readOptions)

func WithDelimiter(r rune) ReadOption {
	return func(o *readOptions) {
		if r != 0 {
			o.delim = r
		}
	}
}

func WithValueFormatter(f ValueFormatter) ReadOption {
	return func(o *readOptions) {
		o.format = f
	}
}

// WithFileWrapper wraps every file opened by ReadPath, e.g. to report read
// progress.
func WithFileWrapper(wrap func(name string, size int64, r io.Reader) io.Reader) ReadOption {
	return func(o *readOptions) {
		o.wrap = wrap
	}
}

// ReadCSV reads a table snapshot from CSV. The first record is the header and must
// contain pkCol. Every other header column becomes a field of each row.
func ReadCSV(r io.Reader, table, pkCol string, opts ...ReadOption) (*Snapshot, error) {
	o := &readOptions{delim: ','}
	for _, opt := range opts {
		opt(o)
	}
	reader := csv.NewReader(r)
	reader.Comma = o.delim
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table %q: empty csv", table)
	}
	if err != nil {
		return nil, err
	}
	pkIdx := -1
	for i, s := range header {
		if s == pkCol {
			pkIdx = i
			break
		}
	}
	if pkIdx == -1 {
		return nil, fmt.Errorf("table %q: primary key column %q not found in header %v", table, pkCol, header)
	}
	s := New(table, pkCol)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := Row{PK: rec[pkIdx], Fields: make([]Field, 0, len(rec)-1)}
		for i, v := range rec {
			if i == pkIdx {
				continue
			}
			if o.format != nil {
				v = o.format(v)
			}
			row.Fields = append(row.Fields, Field{Column: header[i], Value: v})
		}
		s.Rows = append(s.Rows, row)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// TableName derives a table name from a CSV file path.
func TableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readFile(path string, pk PrimaryKeys, opts []ReadOption) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	o := &readOptions{}
	for _, opt := range opts {
		opt(o)
	}
	var r io.Reader = f
	if o.wrap != nil {
		fi, err := f.Stat()
		if err != nil {
			return nil, err
		}
		r = o.wrap(filepath.Base(path), fi.Size(), f)
	}
	table := TableName(path)
	return ReadCSV(r, table, pk.For(table), opts...)
}

// ReadPath reads a snapshot set from a single CSV file or from every *.csv file of
// a directory (in file name order).
func ReadPath(path string, pk PrimaryKeys, opts ...ReadOption) (*Set, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	set := NewSet(path)
	if !fi.IsDir() {
		t, err := readFile(path, pk, opts)
		if err != nil {
			return nil, err
		}
		set.Tables = append(set.Tables, t)
		return set, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		t, err := readFile(filepath.Join(path, name), pk, opts)
		if err != nil {
			return nil, err
		}
		set.Tables = append(set.Tables, t)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
