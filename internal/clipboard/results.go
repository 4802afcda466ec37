// Package clipboard copies the canvas and recognised results to the system
// clipboard.
package clipboard

import (
	"strings"

	"github.com/example/inkcalc/internal/overlay"
)

// FormatResults renders records one per line, as shown on the canvas.
func FormatResults(records []overlay.Record) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Text()
	}
	return strings.Join(lines, "\n")
}

// WriteResults copies the result labels as text.
func WriteResults(records []overlay.Record) error {
	return WriteText(FormatResults(records))
}
