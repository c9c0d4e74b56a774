// Package state persists pre-change proxied baselines. Two backends exist:
// a local JSON file for single-host deployments and a Redis hash for hosts
// that share state.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cdnguard/cdnguard/internal/core/domain"
)

// stateDocument is the on-disk layout, keyed by domain name.
type stateDocument struct {
	Domains map[string]domain.SavedState `json:"domains"`
}

// FileStore keeps saved baselines in one JSON document. Writes go through a
// temp file and rename so a crash never leaves a torn file behind. The mutex
// covers goroutines in this process only; separate processes sharing one
// state file can lose updates, so run at most one instance per state path.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(ctx context.Context, domainName string) (*domain.SavedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	state, ok := doc.Domains[domainName]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *FileStore) Save(ctx context.Context, state domain.SavedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Domains[state.Domain] = state
	return s.write(doc)
}

func (s *FileStore) All(ctx context.Context) (map[string]domain.SavedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Domains, nil
}

// load reads the current document. A missing or empty file is an empty
// document, not an error.
func (s *FileStore) load() (stateDocument, error) {
	doc := stateDocument{Domains: make(map[string]domain.SavedState)}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("reading state file %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing state file %s: %w", s.path, err)
	}
	if doc.Domains == nil {
		doc.Domains = make(map[string]domain.SavedState)
	}
	return doc, nil
}

func (s *FileStore) write(doc stateDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating state directory %s: %w", dir, err)
		}
	}

	// Temp file lives in the target directory so the rename stays on one
	// filesystem and is atomic.
	tmp, err := os.CreateTemp(dir, ".cdnguard-state-*")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	if werr == nil {
		werr = tmp.Chmod(0600)
	}
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmpName, s.path)
	}
	if werr != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing state file %s: %w", s.path, werr)
	}
	return nil
}
