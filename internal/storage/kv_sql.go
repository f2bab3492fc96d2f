package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Veraticus/cashheal/internal/common"
)

// Get reads a value from the kv table.
func (s *SQLiteStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(key, "key"); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, common.StorageError("kv get", err)
	}
	return value, true, nil
}

// Set writes a value to the kv table.
func (s *SQLiteStorage) Set(ctx context.Context, key, value string) error {
	return s.SetMulti(ctx, map[string]string{key: value})
}

// SetMulti writes every entry inside one transaction.
func (s *SQLiteStorage) SetMulti(ctx context.Context, entries map[string]string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for key := range entries {
		if err := validateString(key, "key"); err != nil {
			return err
		}
	}

	now := s.now().UnixMilli()
	return s.withTx(ctx, "kv set", func(q querier) error {
		for key, value := range entries {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
			`, key, value, now); err != nil {
				return common.StorageError("kv set", err)
			}
		}
		return nil
	})
}

// Remove deletes a key from the kv table. Missing keys are not an error.
func (s *SQLiteStorage) Remove(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return common.StorageError("kv remove", err)
	}
	return nil
}
