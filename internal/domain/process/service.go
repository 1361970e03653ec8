package process

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Service handles process operations over the document store. Every
// operation is a whole-document read-modify-write; mu serializes them so
// concurrent HTTP requests cannot interleave load and save (the store's
// last-writer-wins semantics within one operation are unchanged).
type Service struct {
	store  DocumentStore
	files  FileStore
	logger *slog.Logger
	clock  func() time.Time
	mu     sync.Mutex
}

// NewService creates a new process service.
func NewService(store DocumentStore, files FileStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:  store,
		files:  files,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new process with both history timelines seeded.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Process, error) {
	if strings.TrimSpace(input.Object) == "" || strings.TrimSpace(input.Phase) == "" {
		return nil, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	procs, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading processes: %w", err)
	}

	nextID := 1
	for _, p := range procs {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	created := NewProcess(input, s.clock(), func() int { return nextID })
	procs = append(procs, created)

	if err := s.store.Save(ctx, procs); err != nil {
		return nil, fmt.Errorf("saving processes: %w", err)
	}

	s.logger.Info("process created", "id", created.ID, "phase", created.Phase)
	return &created, nil
}

// Get returns a process by ID.
func (s *Service) Get(ctx context.Context, id int) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	procs, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading processes: %w", err)
	}
	for i := range procs {
		if procs[i].ID == id {
			return &procs[i], nil
		}
	}
	return nil, ErrProcessNotFound
}

// List returns all stored processes.
func (s *Service) List(ctx context.Context) ([]Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	procs, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading processes: %w", err)
	}
	return procs, nil
}

// Update applies a partial update to the process with the given ID. History
// timelines are only touched when logHistory is set and the phase or
// location actually changed. No mutation is persisted when the process does
// not exist.
func (s *Service) Update(ctx context.Context, id int, upd Update, logHistory bool) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	procs, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading processes: %w", err)
	}

	idx := -1
	for i := range procs {
		if procs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrProcessNotFound
	}

	updated := ApplyUpdate(procs[idx], upd, logHistory, s.clock())
	procs[idx] = updated

	if err := s.store.Save(ctx, procs); err != nil {
		return nil, fmt.Errorf("saving processes: %w", err)
	}

	s.logger.Info("process updated", "id", id, "logHistory", logHistory)
	return &updated, nil
}

// Delete removes a process and its stored attachment files. File removal is
// best effort: a failed unlink is logged, the record is deleted regardless.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	procs, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading processes: %w", err)
	}

	idx := -1
	for i := range procs {
		if procs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrProcessNotFound
	}

	if s.files != nil {
		for _, att := range procs[idx].Attachments {
			if err := s.files.Remove(ctx, att); err != nil {
				s.logger.Warn("removing attachment", "id", id, "file", att.StoredName, "error", err)
			}
		}
	}

	procs = append(procs[:idx], procs[idx+1:]...)
	if err := s.store.Save(ctx, procs); err != nil {
		return fmt.Errorf("saving processes: %w", err)
	}

	s.logger.Info("process deleted", "id", id)
	return nil
}
