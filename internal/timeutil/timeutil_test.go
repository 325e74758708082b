package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestElapsedSeconds(t *testing.T) {
	base := time.Date(2025, 4, 20, 10, 0, 0, 0, time.UTC)

	require.Equal(t, int64(0), ElapsedSeconds(0, base))
	require.Equal(t, int64(0), ElapsedSeconds(-5, base))

	start := base.UnixMilli()
	require.Equal(t, int64(0), ElapsedSeconds(start, base))
	require.Equal(t, int64(65), ElapsedSeconds(start, base.Add(65*time.Second)))

	// Truncation: 999ms of sub-second time is dropped.
	require.Equal(t, int64(64), ElapsedSeconds(start, base.Add(64*time.Second+999*time.Millisecond)))

	// A start in the future never goes negative.
	require.Equal(t, int64(0), ElapsedSeconds(base.Add(time.Hour).UnixMilli(), base))
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "00:00:00", FormatDuration(0))
	require.Equal(t, "00:01:05", FormatDuration(65))
	require.Equal(t, "01:00:00", FormatDuration(3600))
	require.Equal(t, "00:00:00", FormatDuration(-10))

	// Hours are not reduced modulo 24.
	require.Equal(t, "25:00:01", FormatDuration(25*3600+1))
}

func TestParseDuration(t *testing.T) {
	for _, s := range []int64{0, 1, 59, 60, 65, 3599, 3600, 86400, 90061} {
		parsed, err := ParseDuration(FormatDuration(s))
		require.NoError(t, err)
		require.Equal(t, s, parsed)
	}

	_, err := ParseDuration("garbage")
	require.Error(t, err)
	_, err = ParseDuration("00:61:00")
	require.Error(t, err)
}

func TestDateKey(t *testing.T) {
	day := time.Date(2025, 1, 1, 23, 59, 0, 0, time.Local)
	require.Equal(t, "2025-01-01", DateKey(day))

	parsed, err := ParseDateKey("2025-01-01")
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", DateKey(parsed))

	_, err = ParseDateKey("01/01/2025")
	require.Error(t, err)
}
