package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/procflow/internal/domain/process"
)

// Store implements the document store on SQLite: one row per process, the
// record itself kept as an opaque JSON document. Save replaces the whole
// document in one transaction, matching the file store's read-modify-write
// contract.
type Store struct {
	db *DB
}

// NewStore creates a SQLite-backed document store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Load returns all stored processes ordered by ID.
func (s *Store) Load(ctx context.Context) ([]process.Process, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM processes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying processes: %w", err)
	}
	defer rows.Close()

	procs := []process.Process{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning process row: %w", err)
		}
		var p process.Process
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("parsing process document: %w", err)
		}
		process.Normalize(&p)
		procs = append(procs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating process rows: %w", err)
	}
	return procs, nil
}

// Save replaces the stored document with the given processes.
func (s *Store) Save(ctx context.Context, processes []process.Process) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM processes`); err != nil {
		return fmt.Errorf("clearing processes: %w", err)
	}

	for _, p := range processes {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding process %d: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO processes (id, doc) VALUES (?, ?)`, p.ID, string(doc)); err != nil {
			return fmt.Errorf("inserting process %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing processes: %w", err)
	}
	return nil
}
