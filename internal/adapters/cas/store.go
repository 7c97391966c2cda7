// Package cas implements the per-project state store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.StateStore using one JSON file per project root.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new StateStore.
func NewStore() *Store {
	return &Store{}
}

// Get reads the state saved under root. It returns nil when nothing was saved yet.
func (s *Store) Get(root string) (*domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filename := statePath(root)
	//nolint:gosec // Path is constructed from the project root
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", filename)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}

	return &state, nil
}

// Put replaces the state saved under root.
func (s *Store) Put(root string, state domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := statePath(root)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from the project root
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp, filename); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

func statePath(root string) string {
	return filepath.Join(root, domain.DefaultStatePath())
}
