// Package jsonstore persists the process document as a single JSON file,
// the format shared with the legacy deployment.
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ganot/procflow/internal/domain/process"
)

// document is the persisted shape. Older deployments wrote the process list
// as the document root; Load accepts both, Save always writes this one.
type document struct {
	Processes []process.Process `json:"processes"`
}

// Store is a file-backed document store.
type Store struct {
	path string
}

// New creates a store persisting to the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the whole document. A missing or empty file yields an empty
// process list.
func (s *Store) Load(ctx context.Context) ([]process.Process, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []process.Process{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []process.Process{}, nil
	}

	var procs []process.Process
	if data[0] == '[' {
		if err := json.Unmarshal(data, &procs); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", s.path, err)
		}
	} else {
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", s.path, err)
		}
		procs = doc.Processes
	}

	if procs == nil {
		procs = []process.Process{}
	}
	for i := range procs {
		process.Normalize(&procs[i])
	}
	return procs, nil
}

// Save replaces the document on disk. The write goes through a temp file in
// the same directory plus a rename, so readers never observe a partial
// document.
func (s *Store) Save(ctx context.Context, processes []process.Process) error {
	if processes == nil {
		processes = []process.Process{}
	}
	data, err := json.MarshalIndent(document{Processes: processes}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("preparing %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
