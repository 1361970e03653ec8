package repository

import (
	"github.com/ganot/procflow/internal/domain/process"
)

// DocumentStore persists the full process list as one document. Every write
// replaces the document wholesale (read-modify-write, last writer wins);
// callers are expected to serialize their load/save cycles. The interface is
// defined in the process package so the service there can depend on it
// without importing this package; this alias keeps the repository-side name.
type DocumentStore = process.DocumentStore

// FileStore persists attachment payloads.
type FileStore = process.FileStore
