// Package ledger defines the per-date accounting record that the registry,
// the timer, and both persistence backends share.
package ledger

import (
	"time"

	"github.com/vibetimer/vibetimer/internal/timeutil"
)

// Entry is the accounting record for one vibe on one calendar day. The vibe
// name and color are denormalized onto each row so that historical days stay
// renderable after the vibe itself is deleted; vibe_id is a weak reference.
type Entry struct {
	Date      string    `json:"date"`
	VibeID    string    `json:"vibe_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	TotalTime int64     `json:"total_time"`
	IsRunning bool      `json:"is_running"`
	StartTime *int64    `json:"start_time,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionSeconds returns the derived elapsed time of the current running
// session. Session time is never persisted as authoritative state; it is
// always recomputed from StartTime.
func (e *Entry) SessionSeconds(now time.Time) int64 {
	if !e.IsRunning || e.StartTime == nil {
		return 0
	}
	return timeutil.ElapsedSeconds(*e.StartTime, now)
}

// LiveTotal is the accumulated total plus the running session, in seconds.
func (e *Entry) LiveTotal(now time.Time) int64 {
	return e.TotalTime + e.SessionSeconds(now)
}
