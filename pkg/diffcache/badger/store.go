// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package cachebadger

import (
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/wrgl/snapdiff/pkg/diffcache"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

// Store keeps encoded snapshot diffs in badger.
type Store struct {
	db *badger.DB
}

func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(snapshotID1, snapshotID2 string) (*tablediff.SnapshotDiff, error) {
	var v []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(diffcache.Key(snapshotID1, snapshotID2))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return diffcache.ErrKeyNotFound
			}
			return err
		}
		v, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return diffcache.Decode(v)
}

func (s *Store) Save(sd *tablediff.SnapshotDiff) error {
	b, err := diffcache.Encode(sd)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(diffcache.Key(sd.SnapshotID1, sd.SnapshotID2), b)
	})
}

func (s *Store) Delete(snapshotID1, snapshotID2 string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		k := diffcache.Key(snapshotID1, snapshotID2)
		if _, err := txn.Get(k); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return diffcache.ErrKeyNotFound
			}
			return err
		}
		return txn.Delete(k)
	})
}

func (s *Store) List() ([]diffcache.Entry, error) {
	entries := []diffcache.Entry{}
	err := s.db.View(func(txn *badger.Txn) error {
		opt := badger.DefaultIteratorOptions
		opt.Prefix = diffcache.KeyPrefix
		it := txn.NewIterator(opt)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			sd, err := diffcache.Decode(v)
			if err != nil {
				return err
			}
			entries = append(entries, diffcache.NewEntry(sd))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	diffcache.SortEntries(entries)
	return entries, nil
}

func (s *Store) Clear() error {
	return s.db.DropPrefix(diffcache.KeyPrefix)
}

func (s *Store) Close() error {
	return s.db.Close()
}
