package process

import (
	"context"
	"io"
)

// DocumentStore persists the full process list as one document. Every write
// replaces the document wholesale (read-modify-write, last writer wins);
// callers are expected to serialize their load/save cycles.
type DocumentStore interface {
	// Load returns all stored processes, normalized. A missing or empty
	// document yields an empty slice, not an error.
	Load(ctx context.Context) ([]Process, error)
	// Save replaces the stored document with the given processes.
	Save(ctx context.Context, processes []Process) error
}

// FileStore persists attachment payloads.
type FileStore interface {
	// Save stores the contents of r under a generated name and returns the
	// attachment reference to record on the process.
	Save(ctx context.Context, originalName string, r io.Reader) (Attachment, error)
	// Remove deletes a stored attachment's payload.
	Remove(ctx context.Context, att Attachment) error
}
