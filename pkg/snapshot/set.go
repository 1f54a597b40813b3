// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package snapshot

import (
	"encoding/hex"

	"github.com/pckhoi/meow"
)

// Set groups every table captured at the same point in time.
type Set struct {
	// Name is a human readable label, usually the path the set was read from.
	Name   string      `json:"name,omitempty" yaml:"name,omitempty"`
	Tables []*Snapshot `json:"tables" yaml:"tables"`
}

func NewSet(name string, tables ...*Snapshot) *Set {
	return &Set{Name: name, Tables: tables}
}

// Table returns the snapshot of the named table or nil.
func (s *Set) Table(name string) *Snapshot {
	for _, t := range s.Tables {
		if t.Table == name {
			return t
		}
	}
	return nil
}

func (s *Set) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Table
	}
	return names
}

// ID identifies the set by content: two sets with the same tables and rows share
// the same ID regardless of where they were read from.
func (s *Set) ID() string {
	h := meow.New(0)
	for _, t := range s.Tables {
		h.Write(t.Sum())
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Set) Validate() error {
	seen := map[string]struct{}{}
	for _, t := range s.Tables {
		if _, ok := seen[t.Table]; ok {
			return &DuplicatedTableError{Table: t.Table}
		}
		seen[t.Table] = struct{}{}
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type DuplicatedTableError struct {
	Table string
}

func (e *DuplicatedTableError) Error() string {
	return "duplicated table " + e.Table
}
