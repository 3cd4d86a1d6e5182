// Package file persists credentials as a small JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/storage"
)

// Storage keeps the credential pair in a JSON object keyed by the fixed
// storage keys. Writes go to a temp file that is renamed into place, so a
// reader sees either the old pair or the new one.
type Storage struct {
	path string
}

// New creates a file store at path. The file is created on first Save.
func New(path string) *Storage {
	return &Storage{path: path}
}

// DefaultPath returns ~/.activities/credentials.json, or a relative path if
// the home directory cannot be resolved
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".activities", "credentials.json")
	}
	return filepath.Join(home, ".activities", "credentials.json")
}

// Ensure Storage implements the interface
var _ storage.CredentialStore = (*Storage)(nil)

// Path returns the backing file path
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) Load(ctx context.Context) (model.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Credentials{}, nil // No file is fine
		}
		return model.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return model.Credentials{}, fmt.Errorf("parse credentials: %w", err)
	}

	creds := model.Credentials{
		Token:       values[storage.KeyToken],
		DisplayName: values[storage.KeyDisplayName],
	}
	if !creds.Complete() {
		return model.Credentials{}, nil
	}
	return creds, nil
}

func (s *Storage) Save(ctx context.Context, creds model.Credentials) error {
	data, err := json.Marshal(map[string]string{
		storage.KeyToken:       creds.Token,
		storage.KeyDisplayName: creds.DisplayName,
	})
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}

func (s *Storage) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
