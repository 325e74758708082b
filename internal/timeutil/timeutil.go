// Package timeutil provides the time arithmetic shared by the ledger,
// the transports, and the CLI: elapsed-session computation, HH:MM:SS
// formatting, and calendar-day keys.
package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day key format used throughout the system.
const DateLayout = "2006-01-02"

// ElapsedSeconds returns the whole seconds elapsed between a session start
// (epoch milliseconds) and now. It truncates, never rounds, so sub-second
// time is lost rather than double-counted across stop/start cycles.
// A zero, negative, or future start yields 0.
func ElapsedSeconds(startMillis int64, now time.Time) int64 {
	if startMillis <= 0 {
		return 0
	}
	elapsed := (now.UnixMilli() - startMillis) / 1000
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// FormatDuration renders seconds as zero-padded HH:MM:SS. The hours field is
// not reduced modulo 24, so totals beyond a day stay readable. Negative
// input clamps to zero.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ParseDuration is the inverse of FormatDuration.
func ParseDuration(s string) (int64, error) {
	var hours, minutes, secs int64
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &hours, &minutes, &secs); err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || secs < 0 || secs > 59 {
		return 0, fmt.Errorf("parse duration %q: out of range", s)
	}
	return hours*3600 + minutes*60 + secs, nil
}

// DateKey formats a time as its local YYYY-MM-DD calendar day.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD key back into a local midnight time.
func ParseDateKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
