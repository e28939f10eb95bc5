package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sql, args, err := pgSelectValue(key).ToSql()
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = s.db.QueryRow(ctx, sql, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	sql, args, err := pgUpsert(Entry{Key: key, Value: value}).ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) SetMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback(ctx)
	}()

	for _, e := range entries {
		sql, args, err := pgUpsert(e).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to write key %s: %w", e.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close is a no-op; the pool is owned by the caller that created it.
func (s *PostgresStore) Close() error {
	return nil
}

func pgSelectValue(key string) squirrel.SelectBuilder {
	return squirrel.Select("value").
		From("kv_store").
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar)
}

func pgUpsert(e Entry) squirrel.InsertBuilder {
	return squirrel.Insert("kv_store").
		Columns("key", "value", "updated_at").
		Values(e.Key, string(e.Value), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)
}
