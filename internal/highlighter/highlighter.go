package highlighter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
	"github.com/nguyentantai21042004/highlight-flow/internal/merger"
)

// ErrNoClips is returned when not a single clip could be produced.
var ErrNoClips = errors.New("no clips could be produced")

// timestampListEntries caps the timestamp index length.
const timestampListEntries = 20

// Extract runs detection on both channels, merges the events, cuts the top
// clips and writes the timestamp index into the output directory.
//
// Channel degradation is deliberate: a failed audio analysis or an absent
// comment log reduces the run to whatever the other channel found. Only
// structural problems — missing media, malformed comment log, zero clips —
// abort the run.
func (h *implHighlighter) Extract(ctx context.Context, req Request) (*Result, error) {
	if _, err := os.Stat(req.MediaPath); err != nil {
		return nil, fmt.Errorf("input media: %w", err)
	}

	h.logger.Info(ctx, "Analyzing: %s", req.MediaPath)

	h.logger.Info(ctx, "Analyzing audio...")
	audioEvents, err := h.audio.Detect(ctx, req.MediaPath)
	if err != nil {
		h.logger.Warn(ctx, "Audio analysis failed, continuing with comment events only: %v", err)
		audioEvents = nil
	}
	h.logger.Info(ctx, "Found %d audio events", len(audioEvents))

	var commentEvents []event.Event
	if req.CommentLogPath != "" {
		if _, err := os.Stat(req.CommentLogPath); err != nil {
			h.logger.Warn(ctx, "Comment log not found, continuing with audio only: %s", req.CommentLogPath)
		} else {
			h.logger.Info(ctx, "Analyzing comments: %s", req.CommentLogPath)
			commentEvents, err = h.comments.Detect(ctx, req.CommentLogPath)
			if err != nil {
				return nil, fmt.Errorf("comment analysis: %w", err)
			}
			h.logger.Info(ctx, "Found %d comment events", len(commentEvents))
		}
	}

	h.logger.Info(ctx, "Merging events...")
	merged := merger.Merge(audioEvents, commentEvents, h.cfg.Merge.WindowSec)
	h.logger.Info(ctx, "Merged into %d events", len(merged))

	h.logger.Info(ctx, "Generating %d clips...", req.NumClips)
	clips, err := h.renderer.Render(ctx, req.MediaPath, merged, req.OutputDir, req.NumClips, req.ClipDurationSec)
	if err != nil {
		return nil, fmt.Errorf("render clips: %w", err)
	}
	if len(clips) == 0 {
		return nil, ErrNoClips
	}

	timestampPath := filepath.Join(req.OutputDir, "timestamps.txt")
	if err := h.renderer.WriteTimestampList(merged, timestampPath, timestampListEntries); err != nil {
		return nil, err
	}

	requested := req.NumClips
	if requested > len(merged) {
		requested = len(merged)
	}
	h.logger.Info(ctx, "Done! %d / %d clips generated", len(clips), requested)

	return &Result{
		Clips:         clips,
		TimestampPath: timestampPath,
		Events:        merged,
	}, nil
}
