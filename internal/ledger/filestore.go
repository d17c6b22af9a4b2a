package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sagiphub/reliefhub-go/internal/types"
)

// FileStore keeps the registry as one JSON document on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path. The parent directory is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the registry. A missing file or one that does not parse is an
// empty registry: corrupted local storage must never brick the client.
func (s *FileStore) Load() ([]types.OwnedRequest, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	var recs []types.OwnedRequest
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, nil
	}
	return recs, nil
}

// Save writes the whole registry atomically via a temp-file rename.
func (s *FileStore) Save(recs []types.OwnedRequest) error {
	if recs == nil {
		recs = []types.OwnedRequest{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ledger-*")
	if err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
