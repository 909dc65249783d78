package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CredentialStore persists the bearer credential across restarts.
// The credential is the only value the client ever persists.
type CredentialStore interface {
	// Load returns the stored credential, or "" when none exists.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore keeps the credential in a single well-known file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token+"\n"), 0o600)
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore is an in-process CredentialStore used by tests.
type MemoryStore struct {
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load() (string, error) { return m.token, nil }

func (m *MemoryStore) Save(token string) error { m.token = token; return nil }

func (m *MemoryStore) Clear() error { m.token = ""; return nil }
