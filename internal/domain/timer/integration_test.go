package timer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vibetimer/vibetimer/internal/domain/timer"
	"github.com/vibetimer/vibetimer/internal/domain/vibe"
	"github.com/vibetimer/vibetimer/internal/sqlite"
	"github.com/vibetimer/vibetimer/internal/timeutil"
)

// fakeClock advances only when told, so elapsed time is exact.
type fakeClock struct {
	at time.Time
}

func (c *fakeClock) now() time.Time          { return c.at }
func (c *fakeClock) advance(d time.Duration) { c.at = c.at.Add(d) }

func newLedgerFixture(t *testing.T) (*timer.Service, *vibe.Service, *fakeClock, string) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	clk := &fakeClock{at: time.Date(2025, 4, 20, 9, 0, 0, 0, time.Local)}

	vibeRepo := sqlite.NewVibeRepository(db)
	ledgerRepo := sqlite.NewLedgerRepository(db)

	registry := vibe.NewService(vibeRepo, ledgerRepo, nil)
	registry.SetNow(clk.now)
	timers := timer.NewService(ledgerRepo, vibeRepo, nil)
	timers.SetNow(clk.now)

	return timers, registry, clk, timeutil.DateKey(clk.at)
}

// At no point during any start/stop sequence do two entries run at once.
func TestSingleRunnerInvariant(t *testing.T) {
	ctx := context.Background()
	timers, registry, clk, today := newLedgerFixture(t)

	focus, err := registry.Create(ctx, today, "Focus", "#0EA5E9")
	require.NoError(t, err)
	brk, err := registry.Create(ctx, today, "Break", "#10B981")
	require.NoError(t, err)
	deep, err := registry.Create(ctx, today, "Deep Work", "#9b87f5")
	require.NoError(t, err)

	ids := []string{focus.VibeID, brk.VibeID, deep.VibeID, focus.VibeID, deep.VibeID}
	for _, id := range ids {
		_, err := timers.Start(ctx, today, id)
		require.NoError(t, err)
		clk.advance(7 * time.Second)

		entries, err := registry.List(ctx, today)
		require.NoError(t, err)
		running := 0
		for _, e := range entries {
			if e.IsRunning {
				running++
				require.NotNil(t, e.StartTime)
			} else {
				require.Nil(t, e.StartTime)
			}
		}
		require.Equal(t, 1, running)
	}
}

// Conservation: totals after stop equal totals before start plus the exact
// whole seconds between the calls, regardless of what ran in between.
func TestConservationAcrossSwitches(t *testing.T) {
	ctx := context.Background()
	timers, registry, clk, today := newLedgerFixture(t)

	focus, err := registry.Create(ctx, today, "Focus", "#0EA5E9")
	require.NoError(t, err)
	brk, err := registry.Create(ctx, today, "Break", "#10B981")
	require.NoError(t, err)

	// Focus runs 65s, then break runs 30s (stopping focus implicitly),
	// then break is stopped.
	_, err = timers.Start(ctx, today, focus.VibeID)
	require.NoError(t, err)
	clk.advance(65 * time.Second)

	_, err = timers.Start(ctx, today, brk.VibeID)
	require.NoError(t, err)
	clk.advance(30 * time.Second)

	stopped, err := timers.Stop(ctx, today, brk.VibeID)
	require.NoError(t, err)
	require.Equal(t, int64(30), stopped.TotalTime)

	entries, err := registry.List(ctx, today)
	require.NoError(t, err)

	totals := map[string]int64{}
	for _, e := range entries {
		require.False(t, e.IsRunning)
		totals[e.Name] = e.TotalTime
	}
	require.Equal(t, int64(65), totals["Focus"])
	require.Equal(t, int64(30), totals["Break"])

	// An idempotent stop banks nothing further.
	again, err := timers.Stop(ctx, today, brk.VibeID)
	require.NoError(t, err)
	require.Equal(t, int64(30), again.TotalTime)
}

func TestResetClearsDay(t *testing.T) {
	ctx := context.Background()
	timers, registry, clk, today := newLedgerFixture(t)

	focus, err := registry.Create(ctx, today, "Focus", "#0EA5E9")
	require.NoError(t, err)

	_, err = timers.Start(ctx, today, focus.VibeID)
	require.NoError(t, err)
	clk.advance(500 * time.Second)

	require.NoError(t, timers.ResetAll(ctx, today))

	entries, err := registry.List(ctx, today)
	require.NoError(t, err)
	for _, e := range entries {
		require.Equal(t, int64(0), e.TotalTime)
		require.False(t, e.IsRunning)
		require.Nil(t, e.StartTime)
	}

	running, err := timers.Running(ctx)
	require.NoError(t, err)
	require.Nil(t, running)
}
