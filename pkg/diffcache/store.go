// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

// Package diffcache persists computed snapshot diffs keyed by the pair of
// snapshot ids they were computed from.
package diffcache

import (
	"errors"
	"sort"
	"time"

	"github.com/wrgl/snapdiff/pkg/tablediff"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrCorrupted   = errors.New("corrupted cache entry")
)

// Entry describes a cached diff without its table diffs.
type Entry struct {
	ID          string    `json:"diffId"`
	SnapshotID1 string    `json:"snapshotId1"`
	SnapshotID2 string    `json:"snapshotId2"`
	CreatedAt   time.Time `json:"createdAt"`
	Tables      []string  `json:"tables"`
}

func NewEntry(sd *tablediff.SnapshotDiff) Entry {
	return Entry{
		ID:          sd.ID,
		SnapshotID1: sd.SnapshotID1,
		SnapshotID2: sd.SnapshotID2,
		CreatedAt:   sd.CreatedAt,
		Tables:      sd.TableNames(),
	}
}

type Store interface {
	// Get returns ErrKeyNotFound if no diff was saved for this pair.
	Get(snapshotID1, snapshotID2 string) (*tablediff.SnapshotDiff, error)

	// Save replaces any diff saved for the same pair.
	Save(sd *tablediff.SnapshotDiff) error

	Delete(snapshotID1, snapshotID2 string) error

	// List returns entries sorted from the newest to the oldest.
	List() ([]Entry, error)

	Clear() error

	Close() error
}

// SortEntries orders entries from the newest to the oldest.
func SortEntries(sl []Entry) {
	sort.SliceStable(sl, func(i, j int) bool {
		if sl[i].CreatedAt.Equal(sl[j].CreatedAt) {
			return sl[i].ID < sl[j].ID
		}
		return sl[i].CreatedAt.After(sl[j].CreatedAt)
	})
}

// FindByID returns the entry whose diff id starts with prefix. It returns
// ErrKeyNotFound when prefix is empty or when no entry or more than one entry
// matches.
func FindByID(s Store, prefix string) (*Entry, error) {
	if prefix == "" {
		return nil, ErrKeyNotFound
	}
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	var found *Entry
	for i, e := range entries {
		if len(e.ID) >= len(prefix) && e.ID[:len(prefix)] == prefix {
			if found != nil {
				return nil, ErrKeyNotFound
			}
			found = &entries[i]
		}
	}
	if found == nil {
		return nil, ErrKeyNotFound
	}
	return found, nil
}
