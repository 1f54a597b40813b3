// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package cachesql

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/wrgl/snapdiff/pkg/diffcache"
	"github.com/wrgl/snapdiff/pkg/sqlutil"
	"github.com/wrgl/snapdiff/pkg/tablediff"
)

var CreateTableStmts = []string{
	`CREATE TABLE IF NOT EXISTS diffs (
		snapshot_id1 TEXT NOT NULL,
		snapshot_id2 TEXT NOT NULL,
		diff_id      TEXT NOT NULL,
		created_at   INTEGER NOT NULL,
		tables       TEXT NOT NULL,
		content      BLOB NOT NULL,
		PRIMARY KEY (snapshot_id1, snapshot_id2)
	)`,
}

// Store keeps encoded snapshot diffs in a sqlite table. Entry metadata is
// stored in plain columns so that listing does not decode content.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the diffs table if it does not exist.
func Migrate(db *sql.DB) error {
	return sqlutil.ExecAll(db, CreateTableStmts)
}

func (s *Store) Get(snapshotID1, snapshotID2 string) (*tablediff.SnapshotDiff, error) {
	row := s.db.QueryRow(
		`SELECT content FROM diffs WHERE snapshot_id1 = ? AND snapshot_id2 = ?`,
		snapshotID1, snapshotID2,
	)
	var b []byte
	if err := row.Scan(&b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, diffcache.ErrKeyNotFound
		}
		return nil, err
	}
	return diffcache.Decode(b)
}

func (s *Store) Save(sd *tablediff.SnapshotDiff) error {
	b, err := diffcache.Encode(sd)
	if err != nil {
		return err
	}
	tables, err := json.Marshal(sd.TableNames())
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO diffs (snapshot_id1, snapshot_id2, diff_id, created_at, tables, content)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (snapshot_id1, snapshot_id2) DO UPDATE SET
			diff_id=excluded.diff_id, created_at=excluded.created_at,
			tables=excluded.tables, content=excluded.content`,
		sd.SnapshotID1, sd.SnapshotID2, sd.ID, sd.CreatedAt.UnixNano(), string(tables), b,
	)
	return err
}

func (s *Store) Delete(snapshotID1, snapshotID2 string) error {
	res, err := s.db.Exec(
		`DELETE FROM diffs WHERE snapshot_id1 = ? AND snapshot_id2 = ?`,
		snapshotID1, snapshotID2,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return diffcache.ErrKeyNotFound
	}
	return nil
}

func (s *Store) List() ([]diffcache.Entry, error) {
	entries := []diffcache.Entry{}
	var (
		e         diffcache.Entry
		createdAt int64
		tables    string
	)
	err := sqlutil.QueryRows(s.db,
		`SELECT diff_id, snapshot_id1, snapshot_id2, created_at, tables FROM diffs`,
		nil,
		[]interface{}{&e.ID, &e.SnapshotID1, &e.SnapshotID2, &createdAt, &tables},
		func() error {
			entry := e
			entry.CreatedAt = time.Unix(0, createdAt)
			if err := json.Unmarshal([]byte(tables), &entry.Tables); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	diffcache.SortEntries(entries)
	return entries, nil
}

func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM diffs`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
