package renderer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
)

// encodeTimeout bounds each external cut. Hitting it fails that clip only.
const encodeTimeout = 10 * time.Minute

// Render cuts the top numClips events into stream-copied clips. The window
// around each event is the clip duration plus padding on both sides,
// clamped so it never starts before zero or runs past the source's end.
func (r *implRenderer) Render(ctx context.Context, mediaPath string, events []event.Event, outputDir string, numClips int, clipDurationSec float64) ([]Clip, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	videoDuration, err := r.prober.Duration(ctx, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("probe media duration: %w", err)
	}

	padding := r.cfg.Clips.PaddingSec
	ext := filepath.Ext(mediaPath)
	if ext == "" {
		ext = ".mp4"
	}

	if numClips < 0 {
		numClips = 0
	}
	if numClips > len(events) {
		numClips = len(events)
	}

	var clips []Clip
	for i, e := range events[:numClips] {
		start := e.Timestamp - clipDurationSec/2 - padding
		if start < 0 {
			start = 0
		}
		duration := clipDurationSec + padding*2
		if start+duration > videoDuration {
			duration = videoDuration - start
		}
		if duration <= 0 {
			r.logger.Warn(ctx, "Skipping clip %d: event at %.1fs leaves no window inside %.1fs media", i+1, e.Timestamp, videoDuration)
			continue
		}

		outputPath := filepath.Join(outputDir, clipFilename(i+1, e, ext))

		if err := r.cutClip(ctx, mediaPath, outputPath, start, duration); err != nil {
			r.logger.Warn(ctx, "Failed to create clip at %.1fs: %v", e.Timestamp, err)
			continue
		}

		clips = append(clips, Clip{
			Start:      start,
			Duration:   duration,
			OutputPath: outputPath,
			Event:      e,
		})
		r.logger.Info(ctx, "Clip %d/%d: %s", i+1, numClips, outputPath)
	}

	return clips, nil
}

// cutClip runs a stream-copy cut under the encode timeout. No re-encode,
// so cuts snap to the nearest keyframes.
func (r *implRenderer) cutClip(ctx context.Context, mediaPath, outputPath string, start, duration float64) error {
	cctx, cancel := context.WithTimeout(ctx, encodeTimeout)
	defer cancel()

	args := []string{
		"-i", mediaPath,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-c", "copy",
		"-y", outputPath,
	}

	if _, err := r.executor.Execute(cctx, r.cfg.FFmpeg.BinaryPath, args...); err != nil {
		// A failed cut must leave no partial artifact behind.
		os.Remove(outputPath)
		return err
	}
	return nil
}

// clipFilename embeds the 1-based rank, an MMmSSs timestamp and the score
// so a directory listing alone explains where each clip came from.
func clipFilename(index int, e event.Event, ext string) string {
	minutes := int(e.Timestamp) / 60
	seconds := int(e.Timestamp) % 60
	return fmt.Sprintf("highlight_%02d_%02dm%02ds_score%.1f%s", index, minutes, seconds, e.Score, ext)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
