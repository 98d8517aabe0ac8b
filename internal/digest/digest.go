package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoHighlights is returned when there is nothing to concatenate. A
// digest of just a title card, or of nothing at all, is invalid.
var ErrNoHighlights = errors.New("no highlight clips to assemble")

// encodeTimeout bounds each transition/title encode. Exceeding it is a
// normal failure, not a crash.
const encodeTimeout = 10 * time.Minute

// Assemble concatenates the given clips into outputPath. With a title, a
// synthesized card is prepended. Scratch files created here are removed
// whether assembly succeeds or not; the clips themselves are never touched.
func (a *implAssembler) Assemble(ctx context.Context, clipPaths []string, outputPath string, opts Options) (string, error) {
	if len(clipPaths) == 0 {
		return "", ErrNoHighlights
	}

	all := make([]string, 0, len(clipPaths)+1)

	if opts.Title != "" {
		card, err := os.CreateTemp("", "digest_title_*.mp4")
		if err != nil {
			return "", fmt.Errorf("create title card file: %w", err)
		}
		card.Close()
		defer os.Remove(card.Name())

		if err := a.generateTitleCard(ctx, opts.Title, card.Name()); err != nil {
			return "", fmt.Errorf("generate title card: %w", err)
		}
		a.logger.Info(ctx, "Title card generated: %s", opts.Title)
		all = append(all, card.Name())
	}

	all = append(all, clipPaths...)

	a.logger.Info(ctx, "Concatenating %d clips...", len(all))
	if err := a.concat(ctx, all, outputPath, opts.WithTransition); err != nil {
		return "", err
	}

	return outputPath, nil
}

func (a *implAssembler) concat(ctx context.Context, clipPaths []string, outputPath string, withTransition bool) error {
	if len(clipPaths) == 1 {
		return copyFile(clipPaths[0], outputPath)
	}
	if withTransition {
		return a.concatWithTransitions(ctx, clipPaths, outputPath)
	}
	return a.concatStreamCopy(ctx, clipPaths, outputPath)
}

// concatStreamCopy joins clips through ffmpeg's concat demuxer without
// re-encoding, driven by a generated manifest file.
func (a *implAssembler) concatStreamCopy(ctx context.Context, clipPaths []string, outputPath string) error {
	manifest, err := writeConcatManifest(clipPaths)
	if err != nil {
		return err
	}
	defer os.Remove(manifest)

	args := []string{
		"-f", "concat", "-safe", "0",
		"-i", manifest,
		"-c", "copy",
		"-y", outputPath,
	}
	if _, err := a.executor.Execute(ctx, a.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return fmt.Errorf("concat clips: %w", err)
	}
	return nil
}

// concatWithTransitions folds the clip list left to right, cross-fading
// each pair, until a single file remains. Each step re-encodes, so this is
// the slow path.
func (a *implAssembler) concatWithTransitions(ctx context.Context, clipPaths []string, outputPath string) error {
	tempDir, err := os.MkdirTemp("", "digest_")
	if err != nil {
		return fmt.Errorf("create transition temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	current := clipPaths[0]
	for i, clip := range clipPaths[1:] {
		stepOut := filepath.Join(tempDir, fmt.Sprintf("trans_%d.mp4", i+1))
		if err := a.addTransition(ctx, current, clip, stepOut); err != nil {
			return fmt.Errorf("transition %d: %w", i+1, err)
		}
		current = stepOut
	}

	return copyFile(current, outputPath)
}

// addTransition cross-fades a pair of clips. The fade starts at the end of
// the first clip minus the transition duration.
func (a *implAssembler) addTransition(ctx context.Context, clip1, clip2, output string) error {
	firstDuration, err := a.prober.Duration(ctx, clip1)
	if err != nil {
		return err
	}

	d := a.cfg.Digest.TransitionDuration
	offset := firstDuration - d
	if offset < 0 {
		offset = 0
	}

	cctx, cancel := context.WithTimeout(ctx, encodeTimeout)
	defer cancel()

	filter := fmt.Sprintf(
		"[0:v][1:v]xfade=transition=%s:duration=%g:offset=%g[v];[0:a][1:a]acrossfade=d=%g[a]",
		a.cfg.Digest.TransitionType, d, offset, d)

	args := []string{
		"-i", clip1, "-i", clip2,
		"-filter_complex", filter,
		"-map", "[v]", "-map", "[a]",
		"-y", output,
	}
	if _, err := a.executor.Execute(cctx, a.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return err
	}
	return nil
}

// writeConcatManifest writes the concat demuxer's file list. Single quotes
// in paths get the shell-style '\'' escape the demuxer expects.
func writeConcatManifest(clipPaths []string) (string, error) {
	f, err := os.CreateTemp("", "digest_concat_*.txt")
	if err != nil {
		return "", fmt.Errorf("create concat manifest: %w", err)
	}

	var b strings.Builder
	for _, clip := range clipPaths {
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(clip, "'", `'\''`))
		b.WriteString("'\n")
	}

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write concat manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}
