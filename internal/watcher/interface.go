package watcher

import "context"

// Watcher monitors a drop directory for newly arrived archive files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// ArchiveHandler processes one archive file dropped into the watched
// directory.
type ArchiveHandler func(ctx context.Context, mediaPath string) error
