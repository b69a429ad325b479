package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/dbx"
)

// RecordRepository is a small key/value repository over the records table.
// Each durable record (cart state, session) lives under its own key.
type RecordRepository struct {
	db dbx.DBTX
}

// NewRecordRepository returns a RecordRepository bound to the given DBTX.
func NewRecordRepository(db dbx.DBTX) *RecordRepository {
	return &RecordRepository{db: db}
}

// Get returns the value stored under key, or (nil, nil) when the key is
// absent.
func (r *RecordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	return value, nil
}

// Set upserts value under key.
func (r *RecordRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set record[%s]: %w", key, err)
	}
	return nil
}

// Delete removes the record under key. Deleting an absent key is a no-op.
func (r *RecordRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete record[%s]: %w", key, err)
	}
	return nil
}
