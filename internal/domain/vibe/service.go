package vibe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/repository/errs"
	"github.com/vibetimer/vibetimer/internal/timeutil"
)

// Service handles registry operations: defining vibes and maintaining their
// per-date ledger entries.
type Service struct {
	vibes   Repository
	entries LedgerRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new vibe registry service.
func NewService(vibes Repository, entries LedgerRepository, logger *slog.Logger) *Service {
	return &Service{
		vibes:   vibes,
		entries: entries,
		logger:  logger,
		now:     time.Now,
	}
}

// SetNow overrides the wall clock, for tests.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

func (s *Service) isToday(date string) bool {
	return date == timeutil.DateKey(s.now())
}

// Create defines a new vibe and seeds a zero ledger entry for the date.
// Names are unique case-insensitively against the current registry. Only
// today accepts new vibes; historical dates are view-only.
func (s *Service) Create(ctx context.Context, date, name, color string) (*ledger.Entry, error) {
	if !s.isToday(date) {
		return nil, ErrReadOnlyDate
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.vibes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vibes: %w", err)
	}
	for _, v := range existing {
		if strings.EqualFold(v.Name, name) {
			return nil, ErrDuplicateName
		}
	}

	if strings.TrimSpace(color) == "" {
		color = paletteColor(len(existing))
	}

	now := s.now()
	v := &Vibe{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
	}
	if err := s.vibes.Create(ctx, v); err != nil {
		if errors.Is(err, errs.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("creating vibe: %w", err)
	}

	entry := &ledger.Entry{
		Date:      date,
		VibeID:    v.ID,
		Name:      v.Name,
		Color:     v.Color,
		CreatedAt: now,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("seeding ledger entry: %w", err)
	}

	return entry, nil
}

// Edit renames or recolors a vibe in place. Uniqueness is not re-checked
// against other vibes. The denormalized name and color on the operated
// date's ledger entry are kept in step when such an entry exists.
func (s *Service) Edit(ctx context.Context, date, vibeID, newName, newColor string) error {
	v, err := s.vibes.Get(ctx, vibeID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrVibeNotFound
		}
		return fmt.Errorf("loading vibe: %w", err)
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidInput
	}
	v.Name = newName
	if strings.TrimSpace(newColor) != "" {
		v.Color = newColor
	}
	if err := s.vibes.Update(ctx, v); err != nil {
		return fmt.Errorf("updating vibe: %w", err)
	}

	entry, err := s.entries.Get(ctx, date, vibeID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("loading ledger entry: %w", err)
	}
	entry.Name = v.Name
	entry.Color = v.Color
	if err := s.entries.Update(ctx, entry); err != nil {
		return fmt.Errorf("updating ledger entry: %w", err)
	}
	return nil
}

// Delete removes a vibe definition and its ledger entry for the operated
// date. Entries on other dates are left behind as orphans so historical
// days keep their accounting. A running session on the deleted vibe is
// abandoned, not banked.
func (s *Service) Delete(ctx context.Context, date, vibeID string) error {
	if err := s.vibes.Delete(ctx, vibeID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrVibeNotFound
		}
		return fmt.Errorf("deleting vibe: %w", err)
	}

	if err := s.entries.Delete(ctx, date, vibeID); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("deleting ledger entry: %w", err)
	}
	return nil
}

// List returns the date's ledger entries, lazily seeding a zero entry for
// every registry vibe that has none yet. Entries are ordered by creation.
func (s *Service) List(ctx context.Context, date string) ([]ledger.Entry, error) {
	rows, err := s.entries.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}

	known, err := s.vibes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vibes: %w", err)
	}

	have := make(map[string]bool, len(rows))
	for _, e := range rows {
		have[e.VibeID] = true
	}

	now := s.now()
	for _, v := range known {
		if have[v.ID] {
			continue
		}
		entry := ledger.Entry{
			Date:      date,
			VibeID:    v.ID,
			Name:      v.Name,
			Color:     v.Color,
			CreatedAt: now,
		}
		if err := s.entries.Create(ctx, &entry); err != nil {
			return nil, fmt.Errorf("seeding ledger entry: %w", err)
		}
		rows = append(rows, entry)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].VibeID < rows[j].VibeID
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return rows, nil
}

// EnsureDefaults seeds a starter registry on first run. It is a no-op when
// any vibe exists.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	existing, err := s.vibes.List(ctx)
	if err != nil {
		return fmt.Errorf("listing vibes: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := s.now()
	for i, name := range defaultNames {
		v := &Vibe{
			ID:        uuid.NewString(),
			Name:      name,
			Color:     paletteColor(i),
			CreatedAt: now,
		}
		if err := s.vibes.Create(ctx, v); err != nil {
			return fmt.Errorf("seeding default vibe %q: %w", name, err)
		}
	}
	if s.logger != nil {
		s.logger.Info("seeded default vibes", "count", len(defaultNames))
	}
	return nil
}
