package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/domain/vibe"
)

// VibeRepository is a mock for repository.VibeRepository.
type VibeRepository struct {
	mock.Mock
}

func (m *VibeRepository) Create(ctx context.Context, v *vibe.Vibe) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VibeRepository) Get(ctx context.Context, id string) (*vibe.Vibe, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*vibe.Vibe); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VibeRepository) List(ctx context.Context) ([]vibe.Vibe, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]vibe.Vibe); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VibeRepository) Update(ctx context.Context, v *vibe.Vibe) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VibeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// LedgerRepository is a mock for repository.LedgerRepository.
type LedgerRepository struct {
	mock.Mock
}

func (m *LedgerRepository) Create(ctx context.Context, e *ledger.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *LedgerRepository) Get(ctx context.Context, date, vibeID string) (*ledger.Entry, error) {
	args := m.Called(ctx, date, vibeID)
	if e, ok := args.Get(0).(*ledger.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LedgerRepository) GetByDate(ctx context.Context, date string) ([]ledger.Entry, error) {
	args := m.Called(ctx, date)
	if list, ok := args.Get(0).([]ledger.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LedgerRepository) Update(ctx context.Context, e *ledger.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *LedgerRepository) Delete(ctx context.Context, date, vibeID string) error {
	args := m.Called(ctx, date, vibeID)
	return args.Error(0)
}

func (m *LedgerRepository) FindRunning(ctx context.Context) (*ledger.Entry, error) {
	args := m.Called(ctx)
	if e, ok := args.Get(0).(*ledger.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
