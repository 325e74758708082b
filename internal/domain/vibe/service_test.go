package vibe_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/domain/vibe"
	"github.com/vibetimer/vibetimer/internal/repository/errs"
	"github.com/vibetimer/vibetimer/internal/repository/mocks"
	"github.com/vibetimer/vibetimer/internal/timeutil"
)

var clock = time.Date(2025, 4, 20, 10, 0, 0, 0, time.Local)

func newService(vibes *mocks.VibeRepository, entries *mocks.LedgerRepository) *vibe.Service {
	svc := vibe.NewService(vibes, entries, nil)
	svc.SetNow(func() time.Time { return clock })
	return svc
}

func TestVibeService_Create(t *testing.T) {
	ctx := context.Background()
	today := timeutil.DateKey(clock)

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	vibes.On("List", ctx).Return([]vibe.Vibe{}, nil)
	vibes.On("Create", ctx, mock.Anything).Return(nil)

	var seeded *ledger.Entry
	entries.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		seeded = args.Get(1).(*ledger.Entry)
	}).Return(nil)

	svc := newService(vibes, entries)
	entry, err := svc.Create(ctx, today, "Focus", "#0EA5E9")
	require.NoError(t, err)
	require.NotEmpty(t, entry.VibeID)
	require.Equal(t, "Focus", entry.Name)
	require.Equal(t, today, entry.Date)
	require.Equal(t, int64(0), entry.TotalTime)
	require.False(t, entry.IsRunning)
	require.Nil(t, entry.StartTime)

	require.NotNil(t, seeded)
	require.Equal(t, entry.VibeID, seeded.VibeID)
}

func TestVibeService_Create_DuplicateNameCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	today := timeutil.DateKey(clock)

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	vibes.On("List", ctx).Return([]vibe.Vibe{{ID: "v1", Name: "Focus"}}, nil)

	svc := newService(vibes, entries)
	_, err := svc.Create(ctx, today, "focus", "#111")
	require.ErrorIs(t, err, vibe.ErrDuplicateName)
	vibes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVibeService_Create_EmptyName(t *testing.T) {
	ctx := context.Background()
	today := timeutil.DateKey(clock)

	svc := newService(&mocks.VibeRepository{}, &mocks.LedgerRepository{})
	_, err := svc.Create(ctx, today, "   ", "#111")
	require.ErrorIs(t, err, vibe.ErrInvalidInput)
}

func TestVibeService_Create_ReadOnlyDate(t *testing.T) {
	ctx := context.Background()

	svc := newService(&mocks.VibeRepository{}, &mocks.LedgerRepository{})
	_, err := svc.Create(ctx, "2020-01-01", "Focus", "#111")
	require.ErrorIs(t, err, vibe.ErrReadOnlyDate)
}

func TestVibeService_Create_DefaultColorFromPalette(t *testing.T) {
	ctx := context.Background()
	today := timeutil.DateKey(clock)

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	vibes.On("List", ctx).Return([]vibe.Vibe{{ID: "v1", Name: "Work"}}, nil)
	vibes.On("Create", ctx, mock.Anything).Return(nil)
	entries.On("Create", ctx, mock.Anything).Return(nil)

	svc := newService(vibes, entries)
	entry, err := svc.Create(ctx, today, "Focus", "")
	require.NoError(t, err)
	require.Equal(t, vibe.Palette[1], entry.Color)
}

func TestVibeService_Edit(t *testing.T) {
	ctx := context.Background()
	today := timeutil.DateKey(clock)

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	vibes.On("Get", ctx, "v1").Return(&vibe.Vibe{ID: "v1", Name: "Focus", Color: "#000"}, nil)

	var updated *vibe.Vibe
	vibes.On("Update", ctx, mock.Anything).Run(func(args mock.Arguments) {
		updated = args.Get(1).(*vibe.Vibe)
	}).Return(nil)

	entry := &ledger.Entry{Date: today, VibeID: "v1", Name: "Focus", Color: "#000"}
	entries.On("Get", ctx, today, "v1").Return(entry, nil)

	var updatedEntry *ledger.Entry
	entries.On("Update", ctx, mock.Anything).Run(func(args mock.Arguments) {
		updatedEntry = args.Get(1).(*ledger.Entry)
	}).Return(nil)

	svc := newService(vibes, entries)
	require.NoError(t, svc.Edit(ctx, today, "v1", "Deep Work", "#111"))

	require.Equal(t, "Deep Work", updated.Name)
	require.Equal(t, "#111", updated.Color)
	require.Equal(t, "Deep Work", updatedEntry.Name)
	require.Equal(t, "#111", updatedEntry.Color)
}

func TestVibeService_Edit_NoEntryForDate(t *testing.T) {
	// Editing a vibe with no ledger row on the operated date updates the
	// registry only.
	ctx := context.Background()

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	vibes.On("Get", ctx, "v1").Return(&vibe.Vibe{ID: "v1", Name: "Focus"}, nil)
	vibes.On("Update", ctx, mock.Anything).Return(nil)
	entries.On("Get", ctx, "2025-01-01", "v1").Return(nil, errs.ErrNotFound)

	svc := newService(vibes, entries)
	require.NoError(t, svc.Edit(ctx, "2025-01-01", "v1", "Deep Work", ""))
	entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVibeService_Edit_NotFound(t *testing.T) {
	ctx := context.Background()

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}
	vibes.On("Get", ctx, "ghost").Return(nil, errs.ErrNotFound)

	svc := newService(vibes, entries)
	require.ErrorIs(t, svc.Edit(ctx, "2025-01-01", "ghost", "X", ""), vibe.ErrVibeNotFound)
}

func TestVibeService_Delete(t *testing.T) {
	ctx := context.Background()
	today := timeutil.DateKey(clock)

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	vibes.On("Delete", ctx, "v1").Return(nil)
	entries.On("Delete", ctx, today, "v1").Return(nil)

	svc := newService(vibes, entries)
	require.NoError(t, svc.Delete(ctx, today, "v1"))
}

func TestVibeService_Delete_KeepsHistoricalOrphans(t *testing.T) {
	// No ledger row on the operated date is fine: rows on other dates are
	// left alone either way.
	ctx := context.Background()
	today := timeutil.DateKey(clock)

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	vibes.On("Delete", ctx, "v1").Return(nil)
	entries.On("Delete", ctx, today, "v1").Return(errs.ErrNotFound)

	svc := newService(vibes, entries)
	require.NoError(t, svc.Delete(ctx, today, "v1"))
}

func TestVibeService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}
	vibes.On("Delete", ctx, "ghost").Return(errs.ErrNotFound)

	svc := newService(vibes, entries)
	require.ErrorIs(t, svc.Delete(ctx, "2025-04-20", "ghost"), vibe.ErrVibeNotFound)
}

func TestVibeService_List_SeedsMissingEntries(t *testing.T) {
	ctx := context.Background()

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	known := []vibe.Vibe{
		{ID: "v1", Name: "Work", Color: "#0EA5E9", CreatedAt: clock.Add(-2 * time.Hour)},
		{ID: "v2", Name: "Study", Color: "#10B981", CreatedAt: clock.Add(-time.Hour)},
	}
	existing := []ledger.Entry{
		{Date: "2025-04-20", VibeID: "v1", Name: "Work", TotalTime: 50, CreatedAt: clock.Add(-2 * time.Hour)},
	}

	entries.On("GetByDate", ctx, "2025-04-20").Return(existing, nil)
	vibes.On("List", ctx).Return(known, nil)

	var seeded []ledger.Entry
	entries.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		seeded = append(seeded, *args.Get(1).(*ledger.Entry))
	}).Return(nil)

	svc := newService(vibes, entries)
	list, err := svc.List(ctx, "2025-04-20")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "v1", list[0].VibeID)
	require.Equal(t, int64(50), list[0].TotalTime)
	require.Equal(t, "v2", list[1].VibeID)
	require.Equal(t, int64(0), list[1].TotalTime)

	require.Len(t, seeded, 1)
	require.Equal(t, "v2", seeded[0].VibeID)
	require.False(t, seeded[0].IsRunning)
}

func TestVibeService_EnsureDefaults(t *testing.T) {
	ctx := context.Background()

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}

	vibes.On("List", ctx).Return([]vibe.Vibe{}, nil)

	var created []vibe.Vibe
	vibes.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = append(created, *args.Get(1).(*vibe.Vibe))
	}).Return(nil)

	svc := newService(vibes, entries)
	require.NoError(t, svc.EnsureDefaults(ctx))
	require.Len(t, created, 5)
	require.Equal(t, "Work", created[0].Name)
	require.Equal(t, vibe.Palette[0], created[0].Color)
}

func TestVibeService_EnsureDefaults_NoopWhenPopulated(t *testing.T) {
	ctx := context.Background()

	vibes := &mocks.VibeRepository{}
	entries := &mocks.LedgerRepository{}
	vibes.On("List", ctx).Return([]vibe.Vibe{{ID: "v1", Name: "Focus"}}, nil)

	svc := newService(vibes, entries)
	require.NoError(t, svc.EnsureDefaults(ctx))
	vibes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
