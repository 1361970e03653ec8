// Package uploads stores attachment payloads on the local filesystem.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ganot/procflow/internal/domain/process"
	"github.com/google/uuid"
)

// Disk is a FileStore writing into a single directory. Stored names are
// random so originals with the same name cannot collide.
type Disk struct {
	dir string
}

// NewDisk creates the upload directory if needed and returns a store for it.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("preparing upload dir %s: %w", dir, err)
	}
	return &Disk{dir: dir}, nil
}

// Dir returns the directory payloads are stored in.
func (d *Disk) Dir() string {
	return d.dir
}

// Save writes the payload under a generated name, keeping the original
// extension so downloads get a sensible content type.
func (d *Disk) Save(ctx context.Context, originalName string, r io.Reader) (process.Attachment, error) {
	stored := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(d.dir, stored)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return process.Attachment{}, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return process.Attachment{}, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return process.Attachment{}, fmt.Errorf("closing %s: %w", path, err)
	}

	return process.Attachment{
		StoredName:   stored,
		OriginalName: originalName,
		Path:         path,
	}, nil
}

// Remove deletes a stored payload. A payload already gone is not an error.
func (d *Disk) Remove(ctx context.Context, att process.Attachment) error {
	path := filepath.Join(d.dir, filepath.Base(att.StoredName))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
