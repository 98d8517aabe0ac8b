package highlighter

import (
	"context"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
	"github.com/nguyentantai21042004/highlight-flow/internal/renderer"
)

// Request describes one extraction run.
type Request struct {
	MediaPath       string
	CommentLogPath  string // optional; empty means audio-only
	OutputDir       string
	NumClips        int
	ClipDurationSec float64
}

// Result is what an extraction run produced. Clips may be fewer than
// requested when individual cuts failed.
type Result struct {
	Clips         []renderer.Clip
	TimestampPath string
	Events        []event.Event
}

// Highlighter runs the full detection, merge and render pipeline.
type Highlighter interface {
	Extract(ctx context.Context, req Request) (*Result, error)
}
