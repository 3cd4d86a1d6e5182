// Package sqlite provides a SQLite-backed credential store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/storage"
)

//go:embed schema.sql
var schema string

// Storage persists the credential pair as two rows of a key/value table
type Storage struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and applies the schema
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Storage{sqlDB: sqlDB}, nil
}

// Ensure Storage implements the interface
var _ storage.CredentialStore = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (model.Credentials, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT key, value FROM credentials WHERE key IN (?, ?)`,
		storage.KeyToken, storage.KeyDisplayName,
	)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("query credentials: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var creds model.Credentials
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return model.Credentials{}, fmt.Errorf("scan credentials: %w", err)
		}
		switch key {
		case storage.KeyToken:
			creds.Token = value
		case storage.KeyDisplayName:
			creds.DisplayName = value
		}
	}
	if err := rows.Err(); err != nil {
		return model.Credentials{}, fmt.Errorf("iterate credentials: %w", err)
	}

	if !creds.Complete() {
		return model.Credentials{}, nil
	}
	return creds, nil
}

func (s *Storage) Save(ctx context.Context, creds model.Credentials) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC().UnixMilli()
		for key, value := range map[string]string{
			storage.KeyToken:       creds.Token,
			storage.KeyDisplayName: creds.DisplayName,
		} {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
				 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				key, value, now,
			); err != nil {
				return fmt.Errorf("upsert %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *Storage) Clear(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM credentials WHERE key IN (?, ?)`,
			storage.KeyToken, storage.KeyDisplayName,
		); err != nil {
			return fmt.Errorf("delete credentials: %w", err)
		}
		return nil
	})
}

// Close closes the SQLite handle
func (s *Storage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
