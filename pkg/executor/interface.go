package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteCapture returns stdout and stderr separately, even on success.
	// ffmpeg analysis filters (silencedetect, ebur128) report their findings
	// on stderr with a zero exit code.
	ExecuteCapture(ctx context.Context, name string, args ...string) (string, string, error)
}
