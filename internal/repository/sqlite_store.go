package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteStore(db *sql.DB, logger *zap.Logger) *SQLiteStore {
	return &SQLiteStore{
		db:     db,
		logger: logger,
	}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := squirrel.Select("value").
		From("kv_store").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMany(ctx, []Entry{{Key: key, Value: value}})
}

func (s *SQLiteStore) SetMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC().UnixMilli()
	for _, e := range entries {
		query, args, err := squirrel.Insert("kv_store").
			Columns("key", "value", "updated_at").
			Values(e.Key, string(e.Value), now).
			Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to write key %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
