package repair

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/procflow/internal/repository"
)

// Service runs the repair pass against the document store.
type Service struct {
	store  repository.DocumentStore
	logger *slog.Logger
}

// NewService creates a new repair service.
func NewService(store repository.DocumentStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Run loads the document, corrects contracted start dates and persists the
// result only when something changed. On a failed save the in-memory
// corrections are lost but the pass is idempotent, so the caller may simply
// re-run it.
func (s *Service) Run(ctx context.Context) (int, error) {
	procs, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading processes: %w", err)
	}

	corrected := ContractDates(procs)
	if corrected == 0 {
		s.logger.Info("repair pass found nothing to correct")
		return 0, nil
	}

	if err := s.store.Save(ctx, procs); err != nil {
		return corrected, fmt.Errorf("saving repaired processes: %w", err)
	}

	s.logger.Info("repair pass complete", "corrected", corrected)
	return corrected, nil
}
