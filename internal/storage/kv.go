package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Namespace table names. They map one-to-one onto the document tables
// created by the initial migration.
const (
	nsLocal = "local_data"
	nsSync  = "sync_data"
)

// getDoc reads the JSON document stored under key in the given namespace
// and unmarshals it into dest. Returns ErrNotFound when the key is
// absent and ErrUnavailable when the store has no database handle.
func (s *Store) getDoc(ctx context.Context, ns, key string, dest any) error {
	if s.db == nil {
		return ErrUnavailable
	}

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM `+ns+` WHERE key = ?`, key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("getting %s/%s: %w", ns, key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("unmarshaling %s/%s: %w", ns, key, err)
	}
	return nil
}

// setDocs JSON-marshals each value and upserts every key within a single
// transaction, so a multi-collection update lands as one write.
func (s *Store) setDocs(ctx context.Context, ns string, docs map[string]any) error {
	if s.db == nil {
		return ErrUnavailable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning %s write: %w", ns, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for key, value := range docs {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshaling %s/%s: %w", ns, key, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+ns+` (key, value, updated_at)
			 VALUES (?, ?, datetime('now'))
			 ON CONFLICT(key) DO UPDATE SET
				value      = excluded.value,
				updated_at = excluded.updated_at`,
			key, string(data),
		); err != nil {
			return fmt.Errorf("setting %s/%s: %w", ns, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s write: %w", ns, err)
	}
	return nil
}

// deleteDocs removes the given keys within a single transaction. Keys
// that do not exist are ignored.
func (s *Store) deleteDocs(ctx context.Context, ns string, keys ...string) error {
	if s.db == nil {
		return ErrUnavailable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning %s delete: %w", ns, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM `+ns+` WHERE key = ?`, key,
		); err != nil {
			return fmt.Errorf("deleting %s/%s: %w", ns, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s delete: %w", ns, err)
	}
	return nil
}
