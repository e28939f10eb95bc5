package repository

import "context"

// Entry is one key/value pair written by SetMany.
type Entry struct {
	Key   string
	Value []byte
}

// KVStore is the persistence boundary of the token registry: string keys,
// JSON values. SetMany must apply all entries or none.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries []Entry) error
	Ping(ctx context.Context) error
	Close() error
}
