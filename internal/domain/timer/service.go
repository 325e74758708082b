// Package timer implements the accounting state machine: at most one ledger
// entry in the whole system runs at a time, and accumulated totals only ever
// change through explicit stop and reset transitions.
package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/repository"
	"github.com/vibetimer/vibetimer/internal/timeutil"
)

// Service performs start/stop/reset transitions against the ledger. All
// transitions are serialized by an internal mutex: two near-simultaneous
// starts racing on the running-entry scan could otherwise both conclude
// nothing is running.
type Service struct {
	entries LedgerRepository
	vibes   VibeRepository
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex
}

// NewService creates a new timer service.
func NewService(entries LedgerRepository, vibes VibeRepository, logger *slog.Logger) *Service {
	return &Service{
		entries: entries,
		vibes:   vibes,
		logger:  logger,
		now:     time.Now,
	}
}

// SetNow overrides the wall clock, for tests.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

func (s *Service) isToday(date string) bool {
	return date == timeutil.DateKey(s.now())
}

// Start makes the target entry the single running one. Any other running
// entry, on any date, first has its session banked and is stopped. Starting
// the vibe that is already running is a no-op that preserves the session
// start.
func (s *Service) Start(ctx context.Context, date, vibeID string) (*ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isToday(date) {
		return nil, ErrReadOnlyDate
	}

	target, err := s.materialize(ctx, date, vibeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	running, err := s.entries.FindRunning(ctx)
	switch {
	case err == nil:
		if running.Date == target.Date && running.VibeID == target.VibeID {
			return running, nil
		}
		running.TotalTime += running.SessionSeconds(now)
		running.IsRunning = false
		running.StartTime = nil
		if err := s.entries.Update(ctx, running); err != nil {
			return nil, fmt.Errorf("stopping running entry: %w", err)
		}
	case errors.Is(err, repository.ErrNotFound):
		// nothing running
	default:
		return nil, fmt.Errorf("finding running entry: %w", err)
	}

	start := now.UnixMilli()
	target.IsRunning = true
	target.StartTime = &start
	if err := s.entries.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("starting entry: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("timer started", "date", date, "vibe", vibeID)
	}
	return target, nil
}

// Stop banks the running session into the entry's total and stops it.
// Stopping an entry that is not running changes nothing and is not an error.
func (s *Service) Stop(ctx context.Context, date, vibeID string) (*ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isToday(date) {
		return nil, ErrReadOnlyDate
	}

	entry, err := s.entries.Get(ctx, date, vibeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVibeNotFound
		}
		return nil, fmt.Errorf("loading entry: %w", err)
	}
	if !entry.IsRunning {
		return entry, nil
	}

	entry.TotalTime += entry.SessionSeconds(s.now())
	entry.IsRunning = false
	entry.StartTime = nil
	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("stopping entry: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("timer stopped", "date", date, "vibe", vibeID, "total", entry.TotalTime)
	}
	return entry, nil
}

// ResetAll zeroes every entry on the date: stopped, total 0, no start.
// An unaccumulated running session is discarded, not banked.
func (s *Service) ResetAll(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isToday(date) {
		return ErrReadOnlyDate
	}

	entries, err := s.entries.GetByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}
	for i := range entries {
		e := &entries[i]
		e.TotalTime = 0
		e.IsRunning = false
		e.StartTime = nil
		if err := s.entries.Update(ctx, e); err != nil {
			return fmt.Errorf("resetting entry %s: %w", e.VibeID, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("timers reset", "date", date, "entries", len(entries))
	}
	return nil
}

// Running returns the single running entry, or nil when no timer runs. It is
// derived by scanning the ledger, never read from tracked state.
func (s *Service) Running(ctx context.Context) (*ledger.Entry, error) {
	entry, err := s.entries.FindRunning(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding running entry: %w", err)
	}
	return entry, nil
}

// materialize loads the (date, vibe) entry, creating a zero one when the
// date has no row for a known vibe yet.
func (s *Service) materialize(ctx context.Context, date, vibeID string) (*ledger.Entry, error) {
	entry, err := s.entries.Get(ctx, date, vibeID)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading entry: %w", err)
	}

	v, err := s.vibes.Get(ctx, vibeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVibeNotFound
		}
		return nil, fmt.Errorf("loading vibe: %w", err)
	}

	entry = &ledger.Entry{
		Date:      date,
		VibeID:    v.ID,
		Name:      v.Name,
		Color:     v.Color,
		CreatedAt: s.now(),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("materializing entry: %w", err)
	}
	return entry, nil
}
