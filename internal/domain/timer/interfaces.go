package timer

import (
	"context"

	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/domain/vibe"
)

// LedgerRepository provides the ledger access the state machine needs.
// FindRunning is the system-wide scan backing the single-running-timer
// invariant; no running pointer is tracked anywhere else.
type LedgerRepository interface {
	Create(ctx context.Context, e *ledger.Entry) error
	Get(ctx context.Context, date, vibeID string) (*ledger.Entry, error)
	GetByDate(ctx context.Context, date string) ([]ledger.Entry, error)
	Update(ctx context.Context, e *ledger.Entry) error
	FindRunning(ctx context.Context) (*ledger.Entry, error)
}

// VibeRepository provides vibe lookup for entry materialization.
type VibeRepository interface {
	Get(ctx context.Context, id string) (*vibe.Vibe, error)
}
