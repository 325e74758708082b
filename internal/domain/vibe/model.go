package vibe

import "time"

// Vibe is a user-defined named activity that time is tracked against.
type Vibe struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Palette is the fixed set of color tokens offered when no color is chosen.
// Free-form hex values are also accepted; color carries no invariant.
var Palette = []string{
	"#0EA5E9", // blue
	"#9b87f5", // purple
	"#10B981", // green
	"#F97316", // orange
	"#D946EF", // pink
	"#8B5CF6", // indigo
	"#EC4899", // hot pink
	"#F59E0B", // gold
	"#06B6D4", // cyan
	"#22C55E", // emerald
}

// defaultNames seeds a fresh registry so a first run has something to track.
var defaultNames = []string{"Work", "Study", "Exercise", "Social", "Self-care"}

// paletteColor picks a palette entry for the i-th vibe, wrapping around.
func paletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
