package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
)

// Detect analyzes the media file's audio track and returns loudness events
// sorted ascending by timestamp. Extraction failure is fatal for this
// detector only; the caller is expected to continue with zero audio events.
//
// Detection deliberately reuses silencedetect twice at different
// sensitivities instead of a true loudness-unit analysis: a strict pass
// marks sound re-onsets (volume_peak), a loose pass segments quiet from
// not-quiet and scores the sustained gaps (loud_segment, weighted higher).
func (d *implDetector) Detect(ctx context.Context, mediaPath string) ([]event.Event, error) {
	audioPath, err := d.extractAudio(ctx, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	defer d.cleanupTempFile(ctx, audioPath)

	peaks := d.detectVolumePeaks(ctx, audioPath)
	loud := d.detectLoudSegments(ctx, mediaPath)

	events := append(peaks, loud...)
	event.SortByTime(events)

	d.logger.Debug(ctx, "audio analysis: %d peaks, %d loud segments", len(peaks), len(loud))
	return events, nil
}

// extractAudio converts the media file's audio track to 16kHz mono 16-bit
// PCM, which silencedetect handles predictably regardless of the source
// container.
func (d *implDetector) extractAudio(ctx context.Context, mediaPath string) (string, error) {
	tempDir := d.cfg.Paths.Temp
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	audioPath := filepath.Join(tempDir, "highlight_audio_"+stem+".wav")

	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := d.executor.Execute(ctx, d.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return audioPath, nil
}

// detectVolumePeaks runs the strict silencedetect pass. Each silence end is
// the point where sound resumes, scored 1.0.
func (d *implDetector) detectVolumePeaks(ctx context.Context, audioPath string) []event.Event {
	filter := fmt.Sprintf("silencedetect=noise=%gdB:d=%g",
		d.cfg.Audio.PeakNoiseDB, d.cfg.Audio.PeakMinSilenceSec)

	stderr, err := d.runNullOutput(ctx, audioPath, filter)
	if err != nil {
		d.logger.Warn(ctx, "volume peak pass failed, continuing without peaks: %v", err)
		return nil
	}

	var events []event.Event
	for _, end := range parseSilenceEnds(stderr) {
		events = append(events, event.Event{
			Timestamp: end,
			Kind:      event.KindVolumePeak,
			Score:     1.0,
			Sources:   []event.Source{event.SourceAudio},
		})
	}
	return events
}

// detectLoudSegments runs the loose silencedetect pass and scores the gaps
// between silences. A gap longer than the configured minimum is a sustained
// loud segment, positioned at its midpoint and scored 2.0.
func (d *implDetector) detectLoudSegments(ctx context.Context, mediaPath string) []event.Event {
	// Gate on the loudness summary first: a zero-length or unreadable audio
	// track yields no integrated loudness, and then there is nothing to
	// segment.
	summaryErr := func() error {
		stderr, err := d.runNullOutput(ctx, mediaPath, "ebur128=peak=true")
		if err != nil {
			return err
		}
		if _, ok := parseIntegratedLoudness(stderr); !ok {
			return fmt.Errorf("no integrated loudness summary")
		}
		return nil
	}()
	if summaryErr != nil {
		d.logger.Warn(ctx, "loudness summary unavailable, skipping loud segments: %v", summaryErr)
		return nil
	}

	filter := fmt.Sprintf("silencedetect=noise=%gdB:d=%g",
		d.cfg.Audio.LoudNoiseDB, d.cfg.Audio.LoudMinSilenceSec)

	stderr, err := d.runNullOutput(ctx, mediaPath, filter)
	if err != nil {
		d.logger.Warn(ctx, "loud segment pass failed, continuing without segments: %v", err)
		return nil
	}

	spans := parseSilenceSpans(stderr)
	return loudSegmentsFromSilence(spans, d.cfg.Audio.LoudMinSegmentSec)
}

// loudSegmentsFromSilence inverts a silence timeline: the stretches between
// consecutive silences are the loud segments.
func loudSegmentsFromSilence(spans []silenceSpan, minSegmentSec float64) []event.Event {
	var events []event.Event
	prevEnd := 0.0

	for _, span := range spans {
		if span.Start-prevEnd > minSegmentSec {
			events = append(events, event.Event{
				Timestamp:    prevEnd + (span.Start-prevEnd)/2,
				Kind:         event.KindLoudSegment,
				Score:        2.0,
				Sources:      []event.Source{event.SourceAudio},
				SegmentStart: prevEnd,
				SegmentEnd:   span.Start,
			})
		}
		if span.End > 0 {
			prevEnd = span.End
		}
	}

	return events
}

// runNullOutput runs ffmpeg with an analysis filter and a null muxer,
// returning stderr where the filter reports.
func (d *implDetector) runNullOutput(ctx context.Context, inputPath, filter string) (string, error) {
	args := []string{
		"-i", inputPath,
		"-af", filter,
		"-f", "null", "-",
	}

	_, stderr, err := d.executor.ExecuteCapture(ctx, d.cfg.FFmpeg.BinaryPath, args...)
	if err != nil {
		return "", err
	}
	return stderr, nil
}

func (d *implDetector) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		d.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	} else {
		d.logger.Debug(ctx, "Cleaned up temp file: %s", path)
	}
}
