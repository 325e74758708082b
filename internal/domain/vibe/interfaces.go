package vibe

import (
	"context"

	"github.com/vibetimer/vibetimer/internal/domain/ledger"
)

// Repository provides persistence for vibe definitions.
type Repository interface {
	Create(ctx context.Context, v *Vibe) error
	Get(ctx context.Context, id string) (*Vibe, error)
	List(ctx context.Context) ([]Vibe, error)
	Update(ctx context.Context, v *Vibe) error
	Delete(ctx context.Context, id string) error
}

// LedgerRepository provides the ledger access the registry needs to seed
// and maintain per-date entries.
type LedgerRepository interface {
	Create(ctx context.Context, e *ledger.Entry) error
	Get(ctx context.Context, date, vibeID string) (*ledger.Entry, error)
	GetByDate(ctx context.Context, date string) ([]ledger.Entry, error)
	Update(ctx context.Context, e *ledger.Entry) error
	Delete(ctx context.Context, date, vibeID string) error
}
