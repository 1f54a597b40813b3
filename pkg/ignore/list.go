// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

// Package ignore tracks which table diffs are hidden from view. A List is plain
// session state: it is owned by one caller and is not safe for concurrent use.
package ignore

import (
	"sort"

	"github.com/gobwas/glob"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

type List struct {
	names map[string]struct{}
}

func NewList(tableNames ...string) *List {
	l := &List{names: map[string]struct{}{}}
	for _, s := range tableNames {
		l.names[s] = struct{}{}
	}
	return l
}

// Contains reports whether tableName is hidden. A nil List hides nothing.
func (l *List) Contains(tableName string) bool {
	if l == nil {
		return false
	}
	_, ok := l.names[tableName]
	return ok
}

// Toggle hides tableName if it is visible and shows it otherwise. It returns
// whether the table is hidden afterwards.
func (l *List) Toggle(tableName string) (hidden bool) {
	if _, ok := l.names[tableName]; ok {
		delete(l.names, tableName)
		return false
	}
	l.names[tableName] = struct{}{}
	return true
}

// Names returns hidden table names in sorted order.
func (l *List) Names() []string {
	if l == nil {
		return nil
	}
	sl := make([]string, 0, len(l.names))
	for s := range l.names {
		sl = append(sl, s)
	}
	sort.Strings(sl)
	return sl
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}

// AddPattern hides every table of tableNames that matches the glob pattern. The
// pattern is expanded once; tables toggled later are unaffected by it.
func (l *List) AddPattern(pattern string, tableNames []string) error {
	g, err := glob.Compile(pattern)
	if err != nil {
		return err
	}
	for _, s := range tableNames {
		if g.Match(s) {
			l.names[s] = struct{}{}
		}
	}
	return nil
}

// Visible returns the diffs whose table is not in l, keeping their order.
func Visible(diffs []*tablediff.TableDiff, l *List) []*tablediff.TableDiff {
	res := make([]*tablediff.TableDiff, 0, len(diffs))
	for _, d := range diffs {
		if !l.Contains(d.TableName) {
			res = append(res, d)
		}
	}
	return res
}
