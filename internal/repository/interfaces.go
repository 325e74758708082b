package repository

import (
	"context"

	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/domain/vibe"
)

// VibeRepository manages vibe definition persistence
type VibeRepository interface {
	Create(ctx context.Context, v *vibe.Vibe) error
	Get(ctx context.Context, id string) (*vibe.Vibe, error)
	List(ctx context.Context) ([]vibe.Vibe, error)
	Update(ctx context.Context, v *vibe.Vibe) error
	Delete(ctx context.Context, id string) error
}

// LedgerRepository manages per-date ledger entry persistence. Entries are
// keyed by (date, vibe_id); FindRunning scans the whole store for the one
// entry with is_running set, on any date.
type LedgerRepository interface {
	Create(ctx context.Context, e *ledger.Entry) error
	Get(ctx context.Context, date, vibeID string) (*ledger.Entry, error)
	GetByDate(ctx context.Context, date string) ([]ledger.Entry, error)
	Update(ctx context.Context, e *ledger.Entry) error
	Delete(ctx context.Context, date, vibeID string) error
	FindRunning(ctx context.Context) (*ledger.Entry, error)
}
