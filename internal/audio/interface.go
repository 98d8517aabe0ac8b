package audio

import (
	"context"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
)

// Detector extracts loudness-based events from a media file's audio track.
type Detector interface {
	Detect(ctx context.Context, mediaPath string) ([]event.Event, error)
}
