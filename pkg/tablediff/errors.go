// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package tablediff

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrNoSnapshot     = errors.New("both snapshots are nil")
)

// SchemaMismatchError is returned when two snapshots cannot describe the same table.
type SchemaMismatchError struct {
	Table          string
	Field          string
	Value1, Value2 string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: table %q: %s %q != %q", ErrSchemaMismatch, e.Table, e.Field, e.Value1, e.Value2)
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// InvariantError is returned by TableDiff.Validate.
type InvariantError struct {
	Table string
	Msg   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("table diff %q: %s", e.Table, e.Msg)
}
