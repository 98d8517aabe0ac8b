package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/highlight-flow/internal/logger"
)

// settleDelay gives the uploading process time to finish writing before we
// start probing the file.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	dropDir       string
	handler       ArchiveHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start processes CREATE events until the context is cancelled. Each
// archive is handled in its own goroutine; the semaphore bounds how many
// extractions run at once. Within one extraction, clip cutting stays
// serial — concurrency exists only across independent archives.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Archive watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.dropDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for running extractions to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Archive watcher stopped")
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if ev.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isArchiveFile(ev.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", ev.Name)
				continue
			}

			w.logger.Info(ctx, "New archive detected: %s", ev.Name)
			time.Sleep(settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(mediaPath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, mediaPath); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", mediaPath, err)
					}
				}(ev.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying fsnotify watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isArchiveFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv", ".ts":
		return true
	}
	return false
}
