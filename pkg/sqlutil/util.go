// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package sqlutil

import (
	"database/sql"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// RunInTx runs fn in a transaction, rolling back if fn returns an error.
func RunInTx(db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ExecAll executes statements in order inside a single transaction.
func ExecAll(db *sql.DB, stmts []string) error {
	return RunInTx(db, func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

// QueryRows scans each result row into dest then calls cb.
func QueryRows(q Querier, query string, args []interface{}, dest []interface{}, cb func() error) error {
	rows, err := q.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		if err = cb(); err != nil {
			return err
		}
	}
	return rows.Err()
}
