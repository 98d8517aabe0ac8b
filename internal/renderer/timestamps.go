package renderer

import (
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/highlight-flow/internal/event"
)

// WriteTimestampList writes a plain-text index of the top events, one line
// per highlight, suitable for pasting into a video description:
//
//	1:23:45 - ハイライト1 (score: 4.5, audio+comment)
func (r *implRenderer) WriteTimestampList(events []event.Event, outputPath string, numEvents int) error {
	if numEvents > len(events) {
		numEvents = len(events)
	}

	lines := []string{"# ハイライトタイムスタンプ\n"}
	for i, e := range events[:numEvents] {
		lines = append(lines, fmt.Sprintf("%s - ハイライト%d (score: %.1f, %s)",
			event.FormatTimestamp(e.Timestamp), i+1, e.Score, e.SourceLabel()))
	}

	if err := os.WriteFile(outputPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("write timestamp list: %w", err)
	}
	return nil
}
