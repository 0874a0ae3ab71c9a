package gate

import (
	"context"
	"fmt"
	"os"
)

// FileStore keeps the gate as a marker file: present means on, absent means
// off. Used when no Redis address is configured.
type FileStore struct {
	path string
}

// NewFileStore creates a marker-file backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Enable(_ context.Context) error {
	if err := os.WriteFile(s.path, []byte("on"), 0644); err != nil {
		return fmt.Errorf("failed to write notifications flag: %w", err)
	}
	return nil
}

func (s *FileStore) Disable(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove notifications flag: %w", err)
	}
	return nil
}

func (s *FileStore) Enabled(_ context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
