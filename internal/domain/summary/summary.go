// Package summary computes the time-distribution report rendered as the
// day's pie chart: live per-vibe seconds and their share of the total.
package summary

import (
	"sort"
	"time"

	"github.com/vibetimer/vibetimer/internal/domain/ledger"
)

// Slice is one vibe's share of a day.
type Slice struct {
	VibeID     string  `json:"vibe_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Seconds    int64   `json:"seconds"`
	Percentage float64 `json:"percentage"`
}

// Report is the distribution for one date.
type Report struct {
	Date         string  `json:"date"`
	TotalSeconds int64   `json:"total_seconds"`
	Slices       []Slice `json:"slices"`
}

// Distribution builds the report for a date's entries. Running sessions
// count at their live value as of now. Zero slices are dropped and the rest
// sorted by descending share.
func Distribution(date string, entries []ledger.Entry, now time.Time) Report {
	var total int64
	for i := range entries {
		total += entries[i].LiveTotal(now)
	}

	slices := make([]Slice, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		secs := e.LiveTotal(now)
		if secs == 0 {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = float64(secs) / float64(total) * 100
		}
		slices = append(slices, Slice{
			VibeID:     e.VibeID,
			Name:       e.Name,
			Color:      e.Color,
			Seconds:    secs,
			Percentage: pct,
		})
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Seconds > slices[j].Seconds
	})

	return Report{Date: date, TotalSeconds: total, Slices: slices}
}
