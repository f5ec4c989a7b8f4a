// Copyright 2026 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pingcap/log"
	"github.com/pingcap/mru-cleaner/pkg/errors"
	"github.com/pingcap/mru-cleaner/pkg/mru"
	"go.uber.org/zap"
)

const (
	// CreateTableSQL is the schema a host uses to keep its MRU lists in MySQL.
	CreateTableSQL = `CREATE TABLE IF NOT EXISTS mru_items (
	list_id VARCHAR(128) NOT NULL,
	position INT NOT NULL,
	item_value TEXT NOT NULL,
	PRIMARY KEY (list_id, position)
)`

	selectItemsSQL = "SELECT position, item_value FROM mru_items WHERE list_id = ? ORDER BY position"
	deleteItemSQL  = "DELETE FROM mru_items WHERE list_id = ? AND position = ?"
	shiftItemsSQL  = "UPDATE mru_items SET position = position - 1 WHERE list_id = ? AND position > ? ORDER BY position"

	defaultDialTimeout = 5 * time.Second
	removeTimeout      = 10 * time.Second
)

// Store is an MRU list kept in a MySQL table, one row per item.
type Store struct {
	db     *sql.DB
	listID string
}

// Open connects to the MySQL server described by dsn.
func Open(dsn, listID string) (*Store, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultDialTimeout
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, errors.Trace(err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Minute)
	return New(db, listID), nil
}

// New creates a store over an existing connection pool.
func New(db *sql.DB, listID string) *Store {
	return &Store{db: db, listID: listID}
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// ResolveList implements host.Accessor. The returned list removes rows
// directly; it does not need a flush.
func (s *Store) ResolveList(ctx context.Context) (mru.List, error) {
	rows, err := s.db.QueryContext(ctx, selectItemsSQL, s.listID)
	if err != nil {
		return nil, errors.WrapError(errors.ErrMRUListUnavailable, err, s.listID)
	}
	defer rows.Close()

	l := &list{ctx: ctx, store: s}
	for rows.Next() {
		var (
			position int64
			value    string
		)
		if err := rows.Scan(&position, &value); err != nil {
			return nil, errors.WrapError(errors.ErrMRUStoreDecode, err, s.listID)
		}
		l.positions = append(l.positions, position)
		l.values = append(l.values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(errors.ErrMRUListUnavailable, err, s.listID)
	}
	return l, nil
}

type list struct {
	ctx       context.Context
	store     *Store
	positions []int64
	values    []string
}

func (l *list) Len() int {
	return len(l.values)
}

func (l *list) PathAt(index int) (string, error) {
	if index < 0 || index >= len(l.values) {
		return "", errors.Errorf("mru index %d out of range [0, %d)", index, len(l.values))
	}
	return mru.PathFromValue(l.values[index]), nil
}

// RemoveAt deletes the row at index and moves every later row up by one
// position in a single transaction.
func (l *list) RemoveAt(index int) error {
	if index < 0 || index >= len(l.values) {
		return errors.ErrMRUItemRemove.GenWithStackByArgs(index)
	}
	position := l.positions[index]

	ctx, cancel := context.WithTimeout(l.ctx, removeTimeout)
	defer cancel()
	if err := l.store.removeRow(ctx, position); err != nil {
		return errors.WrapError(errors.ErrMRUItemRemove, err, index)
	}

	for i := index + 1; i < len(l.positions); i++ {
		l.positions[i]--
	}
	l.positions = append(l.positions[:index], l.positions[index+1:]...)
	l.values = append(l.values[:index], l.values[index+1:]...)
	return nil
}

func (s *Store) removeRow(ctx context.Context, position int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Warn("rollback mru item removal failed",
				zap.String("listID", s.listID),
				zap.Int64("position", position),
				zap.Error(rbErr))
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteItemSQL, s.listID, position); err != nil {
		return errors.Trace(err)
	}
	if _, err = tx.ExecContext(ctx, shiftItemsSQL, s.listID, position); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(tx.Commit())
}
