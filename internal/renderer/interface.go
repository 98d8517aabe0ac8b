package renderer

import (
	"context"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
)

// Clip is one rendered highlight. Never mutated after creation; a failed
// cut leaves no Clip and no file.
type Clip struct {
	Start      float64
	Duration   float64
	OutputPath string
	Event      event.Event
}

// Renderer cuts top-ranked events into clips and writes the human-readable
// timestamp index.
type Renderer interface {
	// Render expects events already sorted descending by score. Per-clip
	// failures are skipped, not fatal; callers compare len(result) against
	// numClips to detect partial success.
	Render(ctx context.Context, mediaPath string, events []event.Event, outputDir string, numClips int, clipDurationSec float64) ([]Clip, error)
	WriteTimestampList(events []event.Event, outputPath string, numEvents int) error
}
