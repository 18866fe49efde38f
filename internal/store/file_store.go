package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"sealbox/internal/domain"
)

// FileStore persists account data as one JSON file per type under dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory must exist.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// GetAccountData reads the entry for dataType; a missing file is (nil, nil).
func (s *FileStore) GetAccountData(_ context.Context, dataType string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path(dataType))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// PutAccountData replaces the entry for dataType via a temp file then rename.
func (s *FileStore) PutAccountData(_ context.Context, dataType string, content any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return err
	}
	path := s.path(dataType)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// path maps a data type to a filename; types may carry characters that are
// not filesystem-safe, so the type is percent-escaped.
func (s *FileStore) path(dataType string) string {
	return filepath.Join(s.dir, url.PathEscape(dataType)+".json")
}

var _ domain.AccountDataStore = (*FileStore)(nil)
