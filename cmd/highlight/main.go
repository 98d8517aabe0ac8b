package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nguyentantai21042004/highlight-flow/internal/audio"
	"github.com/nguyentantai21042004/highlight-flow/internal/comments"
	"github.com/nguyentantai21042004/highlight-flow/internal/config"
	"github.com/nguyentantai21042004/highlight-flow/internal/digest"
	"github.com/nguyentantai21042004/highlight-flow/internal/highlighter"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
	"github.com/nguyentantai21042004/highlight-flow/internal/media"
	"github.com/nguyentantai21042004/highlight-flow/internal/renderer"
	"github.com/nguyentantai21042004/highlight-flow/internal/watcher"
	"github.com/nguyentantai21042004/highlight-flow/pkg/executor"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "extract":
		os.Exit(runExtract(os.Args[2:]))
	case "digest":
		os.Exit(runDigest(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "version", "-v", "--version":
		fmt.Println("highlight-flow " + version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  highlight extract -i <archive> [-o dir] [-c commentlog] [-n clips] [-duration sec]")
	fmt.Println("  highlight digest  -i <archive> [-o out.mp4] [-c commentlog] [-n clips] [-duration sec] [-title text] [-transition]")
	fmt.Println("  highlight watch   -dir <dropdir> [-o outroot]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  extract  cut highlight clips from a stream archive and write a timestamp index")
	fmt.Println("  digest   extract highlights and concatenate them into a single digest video")
	fmt.Println("  watch    monitor a directory and extract highlights from every new archive")
	fmt.Println()
	fmt.Println("All commands accept -config <path> (default config.yaml; optional).")
}

// deps is the shared wiring for every subcommand.
type deps struct {
	cfg         *config.Config
	log         logger.Logger
	highlighter highlighter.Highlighter
	assembler   digest.Assembler
}

func buildDeps(configPath string) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level)
	exec := executor.New()
	prober := media.New(cfg, exec)

	audioDet := audio.New(cfg, exec, logger.WithPrefix(log, "audio"))
	commentDet := comments.New(cfg, logger.WithPrefix(log, "comments"))
	rend := renderer.New(cfg, exec, prober, logger.WithPrefix(log, "renderer"))

	return &deps{
		cfg:         cfg,
		log:         log,
		highlighter: highlighter.New(cfg, audioDet, commentDet, rend, logger.WithPrefix(log, "archive-highlight")),
		assembler:   digest.New(cfg, exec, prober, logger.WithPrefix(log, "digest")),
	}, nil
}

func runExtract(args []string) int {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	input := fs.String("i", "", "input archive video (required)")
	outputDir := fs.String("o", "", "output directory (default ./highlights)")
	commentLog := fs.String("c", "", "comment log path (JSON/CSV, optional)")
	numClips := fs.Int("n", 0, "number of clips to extract (default 5)")
	duration := fs.Float64("duration", 0, "clip duration in seconds (default 60)")
	configPath := fs.String("config", "config.yaml", "config file path")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i <archive> is required")
		return 2
	}

	d, err := buildDeps(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	req := highlighter.Request{
		MediaPath:       *input,
		CommentLogPath:  *commentLog,
		OutputDir:       firstNonEmpty(*outputDir, d.cfg.Paths.Output),
		NumClips:        firstPositiveInt(*numClips, d.cfg.Clips.Count),
		ClipDurationSec: firstPositiveFloat(*duration, d.cfg.Clips.DurationSec),
	}

	result, err := d.highlighter.Extract(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("\n%d clips generated:\n", len(result.Clips))
	for _, clip := range result.Clips {
		fmt.Printf("  %s\n", clip.OutputPath)
	}
	fmt.Printf("\nTimestamps: %s\n", result.TimestampPath)
	return 0
}

func runDigest(args []string) int {
	fs := flag.NewFlagSet("digest", flag.ExitOnError)
	input := fs.String("i", "", "input archive video (required)")
	output := fs.String("o", "./digest.mp4", "output digest path")
	commentLog := fs.String("c", "", "comment log path (JSON/CSV, optional)")
	numClips := fs.Int("n", 10, "number of highlights")
	duration := fs.Float64("duration", 0, "clip duration in seconds (default 60)")
	title := fs.String("title", "", "title card text (optional)")
	transition := fs.Bool("transition", false, "cross-fade between clips (re-encodes, slow)")
	configPath := fs.String("config", "config.yaml", "config file path")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i <archive> is required")
		return 2
	}

	d, err := buildDeps(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx := context.Background()

	// The extraction working directory is deliberately kept after the run:
	// the user may want the individual clips, and it makes a bad digest
	// inspectable. Only digest-internal scratch (title card, fold steps,
	// concat manifest) is cleaned up.
	workDir, err := os.MkdirTemp("", "digest_highlights_")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	req := highlighter.Request{
		MediaPath:       *input,
		CommentLogPath:  *commentLog,
		OutputDir:       workDir,
		NumClips:        *numClips,
		ClipDurationSec: firstPositiveFloat(*duration, d.cfg.Clips.DurationSec),
	}

	result, err := d.highlighter.Extract(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	clipPaths := make([]string, 0, len(result.Clips))
	for _, clip := range result.Clips {
		clipPaths = append(clipPaths, clip.OutputPath)
	}

	out, err := d.assembler.Assemble(ctx, clipPaths, *output, digest.Options{
		Title:          *title,
		WithTransition: *transition,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("\nDigest: %s (%d highlights)\n", out, len(clipPaths))
	fmt.Printf("Clips kept in: %s\n", workDir)
	return 0
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	dropDir := fs.String("dir", "", "directory to watch for new archives (required)")
	outRoot := fs.String("o", "", "root output directory (default ./highlights)")
	configPath := fs.String("config", "config.yaml", "config file path")
	fs.Parse(args)

	if *dropDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -dir <dropdir> is required")
		return 2
	}

	d, err := buildDeps(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := firstNonEmpty(*outRoot, d.cfg.Paths.Output)
	if err := os.MkdirAll(root, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	handler := func(ctx context.Context, mediaPath string) error {
		stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
		req := highlighter.Request{
			MediaPath:       mediaPath,
			CommentLogPath:  siblingCommentLog(mediaPath),
			OutputDir:       filepath.Join(root, stem),
			NumClips:        d.cfg.Clips.Count,
			ClipDurationSec: d.cfg.Clips.DurationSec,
		}
		_, err := d.highlighter.Extract(ctx, req)
		return err
	}

	w, err := watcher.New(*dropDir, handler, logger.WithPrefix(d.log, "watcher"), d.cfg.Performance.MaxConcurrent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	d.log.Info(ctx, "Watching %s, output under %s. Press Ctrl+C to stop", *dropDir, root)

	select {
	case <-sigChan:
		d.log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		return 1
	}

	cancel()
	return 0
}

// siblingCommentLog looks for a comment log dropped next to the archive
// with the same stem (archive.mp4 -> archive.json / archive.csv).
func siblingCommentLog(mediaPath string) string {
	stem := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	for _, ext := range []string{".json", ".csv"} {
		if _, err := os.Stat(stem + ext); err == nil {
			return stem + ext
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositiveInt(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstPositiveFloat(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
