package digest

import (
	"context"
	"fmt"
	"strings"
)

// generateTitleCard synthesizes a fixed-duration card: solid background,
// centered text, silent stereo audio track so concat sees matching streams.
func (a *implAssembler) generateTitleCard(ctx context.Context, text, outputPath string) error {
	cfg := a.cfg.Digest

	cctx, cancel := context.WithTimeout(ctx, encodeTimeout)
	defer cancel()

	args := []string{
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=black:s=%dx%d:d=%g", cfg.Width, cfg.Height, cfg.TitleDurationSec),
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=44100:d=%g", cfg.TitleDurationSec),
		"-vf", fmt.Sprintf("drawtext=text='%s':fontcolor=white:fontsize=%d:x=(w-text_w)/2:y=(h-text_h)/2",
			escapeDrawText(text), cfg.FontSize),
		"-c:v", "libx264", "-preset", "fast",
		"-c:a", "aac",
		"-shortest",
		"-y", outputPath,
	}

	if _, err := a.executor.Execute(cctx, a.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return err
	}
	return nil
}

// escapeDrawText escapes the characters the drawtext filter treats as
// syntax inside its text argument.
func escapeDrawText(text string) string {
	text = strings.ReplaceAll(text, `'`, `\'`)
	text = strings.ReplaceAll(text, `:`, `\:`)
	return text
}
